package main

import (
	"context"
	"errors"
	"fmt"

	"fornex/internal/config"
	"fornex/internal/domain"
	"fornex/internal/pkg/logger"
	"fornex/internal/repository"
)

// seed fills the configured store with demo suppliers and one client.
// Records whose email or CNPJ already exist are skipped, so running it
// twice is harmless.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	stores, err := repository.Open(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open record stores")
	}

	err = run(context.Background(), stores, log)
	if cerr := stores.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("close record stores")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(ctx context.Context, stores *repository.Stores, log *logger.Logger) error {
	// ================== COMPANIES ==================
	log.Info().Msg("creating companies...")

	companies := []domain.Company{
		{
			Name:             "Metalúrgica Silva",
			Email:            "contato@metalurgicasilva.com.br",
			TaxID:            "12.345.678/0001-90",
			Password:         "silva123",
			ShortDescription: "Peças usinadas sob medida",
			LongDescription:  "Usinagem CNC, corte a laser e dobra de chapas para a indústria desde 1987.",
			Address:          "Rua das Indústrias, 450",
			Phone:            "(41) 3333-1010",
			Location:         "Curitiba - Paraná",
			Plan:             domain.PlanPremium,
			Products:         []string{"Aço Inox", "Chapas", "Eixos"},
			Categories:       []string{"Metalurgia"},
		},
		{
			Name:             "Embalagens Norte",
			Email:            "vendas@embalagensnorte.com.br",
			TaxID:            "23.456.789/0001-01",
			Password:         "norte123",
			ShortDescription: "Caixas de papelão ondulado",
			LongDescription:  "Embalagens personalizadas para e-commerce e indústria.",
			Phone:            "(92) 3222-4040",
			Location:         "Manaus - Amazonas",
			Products:         []string{"Caixa kraft", "Fita adesiva"},
			Categories:       []string{"Embalagens"},
		},
		{
			Name:             "Tecidos Bahia",
			Email:            "comercial@tecidosbahia.com.br",
			TaxID:            "34.567.890/0001-12",
			Password:         "bahia123",
			ShortDescription: "Tecidos de algodão e linho",
			Phone:            "(71) 3555-2020",
			Location:         "Salvador - Bahia",
			Products:         []string{"Algodão cru", "Linho"},
			Categories:       []string{"Têxtil"},
		},
		{
			Name:             "Química Paulista",
			Email:            "sac@quimicapaulista.com.br",
			TaxID:            "45.678.901/0001-23",
			Password:         "quimica123",
			ShortDescription: "Insumos químicos industriais",
			LongDescription:  "Distribuição de solventes, resinas e aditivos.",
			Location:         "Campinas - São Paulo",
			Plan:             domain.PlanPremium,
			Products:         []string{"Solventes", "Resinas"},
			Categories:       []string{"Química", "Plásticos"},
		},
	}

	created := 0
	for i := range companies {
		c := companies[i]
		err := stores.Companies.Create(ctx, &c)
		switch {
		case err == nil:
			created++
			log.Info().Str("id", c.ID).Str("name", c.Name).Msg("company created")
		case errors.Is(err, repository.ErrEmailTaken), errors.Is(err, repository.ErrTaxIDTaken):
			log.Info().Str("name", c.Name).Msg("company exists, skipped")
		default:
			return fmt.Errorf("create company %s: %w", c.Name, err)
		}
	}

	// ================== CLIENTS ==================
	log.Info().Msg("creating clients...")

	client := domain.User{
		Name:     "Cliente Demo",
		Email:    "cliente@fornex.com.br",
		TaxID:    "123.456.789-00",
		Password: "cliente123",
		Phone:    "(11) 99999-0000",
	}
	if err := stores.Users.Create(ctx, &client); err != nil && !errors.Is(err, repository.ErrEmailTaken) {
		return fmt.Errorf("create client: %w", err)
	}

	log.Info().Int("companies_created", created).Msg("seed completed")
	return nil
}
