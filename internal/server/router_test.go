package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fornex/internal/config"
	"fornex/internal/database"
	"fornex/internal/pkg/logger"
	"fornex/internal/repository"
	"fornex/internal/session"
)

type suite struct {
	t      *testing.T
	router *gin.Engine
}

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	public := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(public, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "login.html"), []byte("<h1>login</h1>"), 0o644))

	return &config.Config{
		AppEnv:         "development",
		StoreDriver:    config.StoreJSON,
		DataDir:        filepath.Join(dir, "data"),
		UploadDir:      filepath.Join(dir, "uploads"),
		UploadMaxBytes: 1 << 20,
		PublicDir:      public,
	}
}

func newSuite(t *testing.T, stores *repository.Stores) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &suite{t: t, router: NewRouter(testConfig(t), stores, logger.Nop())}
}

func jsonSuite(t *testing.T) *suite {
	stores, err := repository.OpenJSON(t.TempDir())
	require.NoError(t, err)
	return newSuite(t, stores)
}

func sqliteSuite(t *testing.T) *suite {
	dsn := fmt.Sprintf("file:server_test_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	stores := repository.OpenGorm(db)
	t.Cleanup(func() { _ = stores.Close() })
	return newSuite(t, stores)
}

func (s *suite) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func TestDirectoryFlow(t *testing.T) {
	backends := map[string]func(*testing.T) *suite{
		"json":   jsonSuite,
		"sqlite": sqliteSuite,
	}

	for name, newBackend := range backends {
		t.Run(name, func(t *testing.T) {
			s := newBackend(t)

			companies := []map[string]any{
				{"nome": "Metalúrgica Silva", "email": "m@x.com", "senha": "1", "ConfSenha": "1", "cnpj": "10", "produtos": []string{"Aço Inox"}},
				{"nome": "Tecidos Bahia", "email": "t@x.com", "senha": "1", "ConfSenha": "1", "cnpj": "20", "produtos": "Algodão, Linho", "plano": "premium"},
			}
			for _, c := range companies {
				require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/cadastroEmpresa", c).Code)
			}
			require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/cadastro", map[string]any{
				"nome": "Ana", "email": "ana@x.com", "senha": "1", "ConfSenha": "1", "cpf": "123",
			}).Code)

			rr := s.do(http.MethodPost, "/login", map[string]any{"email": "ana@x.com", "senha": "1"})
			require.Equal(t, http.StatusOK, rr.Code)
			var login struct {
				Tipo  string          `json:"tipo"`
				Dados json.RawMessage `json:"dados"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))
			assert.Equal(t, "cliente", login.Tipo)

			rr = s.do(http.MethodGet, "/api/empresas?produto=linho", nil)
			require.Equal(t, http.StatusOK, rr.Code)
			var found []map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &found))
			require.Len(t, found, 1)
			assert.Equal(t, "2", found[0]["id"])

			rr = s.do(http.MethodGet, "/api/empresas?q=", nil)
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &found))
			require.Len(t, found, 2)
			assert.Equal(t, "premium", found[0]["plano"])

			rr = s.do(http.MethodPost, "/api/orcamento", map[string]any{
				"empresaId": "1",
				"mensagem":  "Cotação de 200 chapas",
				"sessao":    map[string]any{"tipo": login.Tipo, "dados": login.Dados},
			})
			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

			rr = s.do(http.MethodGet, "/api/empresa/1/orcamentos", nil)
			require.Equal(t, http.StatusForbidden, rr.Code)

			rr = s.do(http.MethodPost, "/login", map[string]any{"email": "m@x.com", "senha": "1"})
			require.Equal(t, http.StatusOK, rr.Code)
			var companyLogin struct {
				Tipo   string          `json:"tipo"`
				Dados  json.RawMessage `json:"dados"`
				Avatar string          `json:"avatar"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &companyLogin))
			assert.Equal(t, "empresa", companyLogin.Tipo)
			assert.Equal(t, "/img/IconeConta.png", companyLogin.Avatar)

			cached, err := json.Marshal(map[string]any{"tipo": companyLogin.Tipo, "dados": companyLogin.Dados})
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodGet, "/api/empresa/1/orcamentos", nil)
			req.Header.Set(session.Header, url.PathEscape(string(cached)))
			rr = httptest.NewRecorder()
			s.router.ServeHTTP(rr, req)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Contains(t, rr.Body.String(), "Cotação de 200 chapas")
		})
	}
}

func TestHealthAndSite(t *testing.T) {
	s := jsonSuite(t)

	rr := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login.html", rr.Header().Get("Location"))

	rr = s.do(http.MethodGet, "/login.html", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "login")

	rr = s.do(http.MethodGet, "/nao-existe.html", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodPost, "/nao-existe", map[string]any{})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["erro"])
}

func TestErrorEnvelope(t *testing.T) {
	s := jsonSuite(t)

	rr := s.do(http.MethodGet, "/api/empresa/42", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body struct {
		Success bool   `json:"success"`
		Erro    string `json:"erro"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, body.Erro, body.Error.Message)
}
