package domain

// User is a registered client. TaxID holds the CPF, which also addresses the
// client's upload directory.
type User struct {
	Email            string  `json:"email" gorm:"column:email;primaryKey"`
	Name             string  `json:"nome" gorm:"column:name"`
	TaxID            string  `json:"cpf" gorm:"column:tax_id;index"`
	Password         string  `json:"senha,omitempty" gorm:"column:password"`
	Phone            string  `json:"telefone" gorm:"column:phone"`
	ProfileImagePath *string `json:"imagemPerfil,omitempty" gorm:"column:profile_image_path"`
}

func (User) TableName() string { return "users" }

func (u User) Public() User {
	u.Password = ""
	return u
}
