package domain

import "time"

// Inquiry is a quote request sent by a client to a company.
type Inquiry struct {
	ID          string    `json:"id" gorm:"column:id;primaryKey"`
	CompanyID   string    `json:"empresaId" gorm:"column:company_id;index"`
	ClientEmail string    `json:"clienteEmail" gorm:"column:client_email"`
	ClientName  string    `json:"clienteNome" gorm:"column:client_name"`
	ClientTaxID string    `json:"clienteCpf" gorm:"column:client_tax_id"`
	Message     string    `json:"mensagem" gorm:"column:message"`
	CreatedAt   time.Time `json:"criadoEm" gorm:"column:created_at"`
}

func (Inquiry) TableName() string { return "inquiries" }
