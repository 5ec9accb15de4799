package auth

import (
	"encoding/json"
	"strings"
)

// Requests bind from JSON or from an HTML form; field names are the ones the
// registration pages post.

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"senha" form:"senha" validate:"required"`
}

type RegisterClientRequest struct {
	Name            string `json:"nome" form:"nome" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required"`
	Password        string `json:"senha" form:"senha" validate:"required"`
	ConfirmPassword string `json:"ConfSenha" form:"ConfSenha" validate:"required,eqfield=Password"`
	TaxID           string `json:"cpf" form:"cpf"`
	Phone           string `json:"telefone" form:"telefone"`
}

type RegisterCompanyRequest struct {
	Name             string      `json:"nome" form:"nome" validate:"required"`
	Email            string      `json:"email" form:"email" validate:"required"`
	Password         string      `json:"senha" form:"senha" validate:"required"`
	ConfirmPassword  string      `json:"ConfSenha" form:"ConfSenha" validate:"required,eqfield=Password"`
	TaxID            string      `json:"cnpj" form:"cnpj" validate:"required"`
	Address          string      `json:"endereco" form:"endereco"`
	Phone            string      `json:"telefone" form:"telefone"`
	ShortDescription string      `json:"descricao" form:"descricao"`
	LongDescription  string      `json:"sobre" form:"sobre"`
	Location         string      `json:"localizacao" form:"localizacao"`
	Plan             string      `json:"plano" form:"plano"`
	Products         ProductList `json:"produtos" form:"produtos"`
}

// ProductList accepts either a JSON array or a comma separated string.
type ProductList []string

func (p *ProductList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*p = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = ProductList{s}
	return nil
}

// Normalize splits comma separated entries and drops blanks.
func (p ProductList) Normalize() []string {
	out := make([]string, 0, len(p))
	for _, entry := range p {
		for _, item := range strings.Split(entry, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
