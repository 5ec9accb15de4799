package domain

type Plan string

const (
	PlanBasic   Plan = ""
	PlanPremium Plan = "premium"
)

func (p Plan) IsPremium() bool {
	return p == PlanPremium
}

// Company is a supplier listed in the directory. JSON keys match the
// persisted empresas.json layout.
type Company struct {
	ID               string   `json:"id" gorm:"column:id;primaryKey"`
	Name             string   `json:"nome" gorm:"column:name"`
	Email            string   `json:"email" gorm:"column:email;uniqueIndex"`
	TaxID            string   `json:"cnpj" gorm:"column:tax_id;uniqueIndex"`
	Password         string   `json:"senha,omitempty" gorm:"column:password"`
	ShortDescription string   `json:"descricao" gorm:"column:short_description"`
	LongDescription  string   `json:"sobre" gorm:"column:long_description"`
	Address          string   `json:"endereco" gorm:"column:address"`
	Phone            string   `json:"telefone" gorm:"column:phone"`
	Location         string   `json:"localizacao" gorm:"column:location"`
	ImagePath        *string  `json:"imagem" gorm:"column:image_path"`
	Plan             Plan     `json:"plano" gorm:"column:plan"`
	Products         []string `json:"produtos" gorm:"column:products;serializer:json"`
	Categories       []string `json:"categorias" gorm:"column:categories;serializer:json"`
}

func (Company) TableName() string { return "companies" }

// Public returns a copy without credentials, safe to send to browsers.
func (c Company) Public() Company {
	c.Password = ""
	c.Products = cloneStrings(c.Products)
	c.Categories = cloneStrings(c.Categories)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
