package inquiry

import "fornex/internal/session"

// SubmitRequest is the quote form payload. The browser sends its cached
// session alongside the message.
type SubmitRequest struct {
	CompanyID string          `json:"empresaId"`
	Message   string          `json:"mensagem"`
	Session   session.Session `json:"sessao"`
}
