package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fornex/internal/domain"
	"fornex/internal/domain/upload"
	"fornex/internal/repository"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 32)...)
)

type testEnv struct {
	router     *gin.Engine
	stores     *repository.Stores
	uploadDir  string
	categories string
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	stores, err := repository.OpenJSON(filepath.Join(dir, "data"))
	require.NoError(t, err)

	ctx := context.Background()
	seed := []*domain.Company{
		{Name: "Metalúrgica Silva", Email: "m@x.com", TaxID: "1", Password: "segredo", Location: "Curitiba - Paraná", Categories: []string{"Metalurgia"}, Products: []string{"Aço"}},
		{Name: "Tecidos Bahia", Email: "t@x.com", TaxID: "2", Password: "segredo", Location: "Salvador - Bahia", Categories: []string{"Têxtil"}, Plan: domain.PlanPremium},
	}
	for _, c := range seed {
		require.NoError(t, stores.Companies.Create(ctx, c))
	}

	env := &testEnv{
		stores:     stores,
		uploadDir:  filepath.Join(dir, "uploads"),
		categories: filepath.Join(dir, "categorias.json"),
	}
	svc := NewService(stores.Companies, upload.NewService(env.uploadDir, "/uploads", 1024), env.categories, nil)

	env.router = gin.New()
	NewHandler(svc, nil).RegisterRoutes(env.router.Group("/api"))
	return env
}

func (e *testEnv) get(t *testing.T, path string, out any) int {
	t.Helper()
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out))
	}
	return rr.Code
}

func multipartPut(t *testing.T, path string, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("imagem", "logo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestGetCompanies_WithoutFilterKeepsStoreOrder(t *testing.T) {
	env := setupTestRouter(t)

	var got []map[string]any
	require.Equal(t, http.StatusOK, env.get(t, "/api/empresas", &got))
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0]["id"])
	for _, c := range got {
		assert.NotContains(t, c, "senha")
	}
}

func TestGetCompanies_FilterParams(t *testing.T) {
	env := setupTestRouter(t)

	var ordered []domain.Company
	require.Equal(t, http.StatusOK, env.get(t, "/api/empresas?q=", &ordered))
	assert.Equal(t, []string{"2", "1"}, ids(ordered))

	var byRegion []domain.Company
	require.Equal(t, http.StatusOK, env.get(t, "/api/empresas?estado=Paran%C3%A1,Amazonas", &byRegion))
	assert.Equal(t, []string{"1"}, ids(byRegion))

	var none []domain.Company
	require.Equal(t, http.StatusOK, env.get(t, "/api/empresas?categoria=metal", &none))
	assert.Empty(t, none)
}

func TestGetCompany(t *testing.T) {
	env := setupTestRouter(t)

	var c domain.Company
	require.Equal(t, http.StatusOK, env.get(t, "/api/empresa/2", &c))
	assert.Equal(t, "Tecidos Bahia", c.Name)
	assert.Empty(t, c.Password)

	assert.Equal(t, http.StatusNotFound, env.get(t, "/api/empresa/99", nil))
}

func TestUpdateCompany_PartialWithImage(t *testing.T) {
	env := setupTestRouter(t)

	req := multipartPut(t, "/api/empresa/1", map[string]string{
		"sobre":      "Desde 1990",
		"produtos":   "Aço Inox, Chapas,",
		"categorias": "Metalurgia, Usinagem",
	}, pngBytes)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got domain.Company
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Metalúrgica Silva", got.Name)
	assert.Equal(t, "Desde 1990", got.LongDescription)
	assert.Equal(t, []string{"Aço Inox", "Chapas"}, got.Products)
	assert.Equal(t, []string{"Metalurgia", "Usinagem"}, got.Categories)
	require.NotNil(t, got.ImagePath)
	assert.Equal(t, "/uploads/empresas/1/perfil.png", *got.ImagePath)

	_, err := os.Stat(filepath.Join(env.uploadDir, "empresas", "1", "perfil.png"))
	assert.NoError(t, err)

	stored, err := env.stores.Companies.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "segredo", stored.Password)
	assert.Equal(t, "Curitiba - Paraná", stored.Location)
}

func TestUpdateCompany_Errors(t *testing.T) {
	env := setupTestRouter(t)

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, multipartPut(t, "/api/empresa/99", map[string]string{"nome": "x"}, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, multipartPut(t, "/api/empresa/1", nil, []byte("not an image at all")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"erro"`)

	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, multipartPut(t, "/api/empresa/1", nil, append(pngBytes, make([]byte, 2048)...)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestUpdateCompany_ConcurrentPartialEdits(t *testing.T) {
	env := setupTestRouter(t)

	edits := []map[string]string{
		{"nome": "Metalúrgica Silva & Filhos"},
		{"telefone": "(41) 9999-0000"},
		{"sobre": "Desde 1990"},
		{"localizacao": "Curitiba - Paraná, Brasil"},
	}

	var wg sync.WaitGroup
	for _, fields := range edits {
		wg.Add(1)
		go func(fields map[string]string) {
			defer wg.Done()
			rr := httptest.NewRecorder()
			env.router.ServeHTTP(rr, multipartPut(t, "/api/empresa/1", fields, nil))
			assert.Equal(t, http.StatusOK, rr.Code)
		}(fields)
	}
	wg.Wait()

	stored, err := env.stores.Companies.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Metalúrgica Silva & Filhos", stored.Name)
	assert.Equal(t, "(41) 9999-0000", stored.Phone)
	assert.Equal(t, "Desde 1990", stored.LongDescription)
	assert.Equal(t, "Curitiba - Paraná, Brasil", stored.Location)
}

// failingSave runs the edit and then fails the write, like a full disk.
type failingSave struct {
	repository.CompanyStore
}

func (f failingSave) Modify(ctx context.Context, id string, fn func(*domain.Company) error) (*domain.Company, error) {
	return f.CompanyStore.Modify(ctx, id, func(c *domain.Company) error {
		if err := fn(c); err != nil {
			return err
		}
		return errors.New("write empresas.json: no space left on device")
	})
}

func TestUpdateCompany_FailedSaveKeepsCurrentImage(t *testing.T) {
	env := setupTestRouter(t)

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, multipartPut(t, "/api/empresa/1", nil, pngBytes))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	images := upload.NewService(env.uploadDir, "/uploads", 1024)
	svc := NewService(failingSave{env.stores.Companies}, images, env.categories, nil)
	r := gin.New()
	NewHandler(svc, nil).RegisterRoutes(r.Group("/api"))

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, multipartPutFile(t, "/api/empresa/1", "logo.jpg", jpegBytes))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	stored, err := env.stores.Companies.GetByID(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, stored.ImagePath)
	assert.Equal(t, "/uploads/empresas/1/perfil.png", *stored.ImagePath)

	entries, err := os.ReadDir(filepath.Join(env.uploadDir, "empresas", "1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "perfil.png", entries[0].Name())
}

func multipartPutFile(t *testing.T, path, name string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("imagem", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestGetCategories(t *testing.T) {
	env := setupTestRouter(t)

	var derived []CategoryOption
	require.Equal(t, http.StatusOK, env.get(t, "/api/categorias", &derived))
	assert.Equal(t, []CategoryOption{{Name: "Metalurgia"}, {Name: "Têxtil"}}, derived)

	require.NoError(t, os.WriteFile(env.categories, []byte(`[{"nome":"Alimentos"},{"nome":"Química"}]`), 0o644))
	var configured []CategoryOption
	require.Equal(t, http.StatusOK, env.get(t, "/api/categorias", &configured))
	assert.Equal(t, []CategoryOption{{Name: "Alimentos"}, {Name: "Química"}}, configured)

	require.NoError(t, os.WriteFile(env.categories, []byte(`{broken`), 0o644))
	assert.Equal(t, http.StatusInternalServerError, env.get(t, "/api/categorias", nil))
}

func TestGetStates(t *testing.T) {
	env := setupTestRouter(t)

	var states []State
	require.Equal(t, http.StatusOK, env.get(t, "/api/estados", &states))
	assert.Len(t, states, 27)
	assert.Contains(t, states, State{Code: "SP", Name: "São Paulo"})
}
