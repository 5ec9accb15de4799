package session

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fornex/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestSession_RoundTripCompany(t *testing.T) {
	s := ForCompany(domain.Company{ID: "4", Name: "Acme", Password: "segredo", ImagePath: strPtr("/uploads/empresas/4/perfil.png")})

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "segredo")
	assert.Contains(t, string(raw), `"tipo":"empresa"`)

	var back Session
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, KindCompany, back.Kind)
	assert.True(t, back.CanEditCompany("4"))
	assert.False(t, back.CanEditCompany("5"))
	assert.False(t, back.CanRequestQuote())
	assert.Equal(t, "/uploads/empresas/4/perfil.png", back.AvatarPath())
}

func TestSession_Client(t *testing.T) {
	s := ForClient(domain.User{Email: "ana@x.com", TaxID: "123"})

	assert.True(t, s.CanRequestQuote())
	assert.False(t, s.CanEditCompany(""))
	assert.Equal(t, DefaultAvatar, s.AvatarPath())

	s.User.ProfileImagePath = strPtr("/uploads/usuarios/123/perfil.jpg")
	assert.Equal(t, "/uploads/usuarios/123/perfil.jpg", s.AvatarPath())
}

func TestParse_MalformedIsAnonymous(t *testing.T) {
	inputs := []string{
		``,
		`not json`,
		`null`,
		`{"tipo":"admin","dados":{"id":"1"}}`,
		`{"tipo":"empresa"}`,
		`{"tipo":"empresa","dados":"texto"}`,
		`{"tipo":"cliente","dados":{"nome":"sem email"}}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			s := Parse([]byte(in))
			assert.True(t, s.IsAnonymous())
			assert.False(t, s.CanRequestQuote())
			assert.False(t, s.CanEditCompany("1"))
			assert.Equal(t, DefaultAvatar, s.AvatarPath())
		})
	}
}

func TestSession_AnonymousMarshalsNull(t *testing.T) {
	raw, err := json.Marshal(Anonymous())
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestFromHeader(t *testing.T) {
	raw := `{"tipo":"empresa","dados":{"id":"7","nome":"Ação & Cia","email":"a@x.com"}}`

	s := FromHeader(url.PathEscape(raw))
	require.Equal(t, KindCompany, s.Kind)
	assert.True(t, s.CanEditCompany("7"))
	assert.False(t, s.CanEditCompany("8"))
	assert.Equal(t, "Ação & Cia", s.Company.Name)

	assert.True(t, FromHeader(raw).CanEditCompany("7"))
	assert.True(t, FromHeader("").IsAnonymous())
	assert.True(t, FromHeader("%7Bquebrado").IsAnonymous())
}
