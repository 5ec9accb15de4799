package upload

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 32)...)
)

// fileHeader builds a real multipart header the way gin receives it.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("imagem", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["imagem"][0]
}

func TestSave_StoresProfileImage(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "", 0)

	got, err := svc.Save(context.Background(), Subject{Kind: KindCompany, ID: "3"}, fileHeader(t, "logo.png", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, "/uploads/empresas/3/perfil.png", got)
	data, err := os.ReadFile(filepath.Join(dir, "empresas", "3", "perfil.png"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSave_KeepsPreviousUntilPrune(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "", 0)
	ctx := context.Background()
	subject := Subject{Kind: KindUser, ID: "123.456.789-00"}

	_, err := svc.Save(ctx, subject, fileHeader(t, "a.png", pngBytes))
	require.NoError(t, err)

	userDir := filepath.Join(dir, "usuarios", "123.456.789-00")
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "outro.txt"), []byte("keep"), 0o644))

	got, err := svc.Save(ctx, subject, fileHeader(t, "b.jpeg", jpegBytes))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/usuarios/123.456.789-00/perfil.jpg", got)
	assert.ElementsMatch(t, []string{"outro.txt", "perfil.png", "perfil.jpg"}, dirNames(t, userDir))

	require.NoError(t, svc.Prune(subject, got))
	assert.ElementsMatch(t, []string{"outro.txt", "perfil.jpg"}, dirNames(t, userDir))
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "", 0)
	ctx := context.Background()
	subject := Subject{Kind: KindCompany, ID: "7"}

	assert.NoError(t, svc.Prune(subject, ""), "missing directory is not an error")

	old, err := svc.Save(ctx, subject, fileHeader(t, "a.png", pngBytes))
	require.NoError(t, err)
	_, err = svc.Save(ctx, subject, fileHeader(t, "b.jpg", jpegBytes))
	require.NoError(t, err)

	companyDir := filepath.Join(dir, "empresas", "7")
	require.NoError(t, svc.Prune(subject, old))
	assert.Equal(t, []string{"perfil.png"}, dirNames(t, companyDir))

	require.NoError(t, svc.Prune(subject, ""))
	assert.Empty(t, dirNames(t, companyDir))

	assert.ErrorIs(t, svc.Prune(Subject{KindCompany, "../7"}, ""), ErrInvalidSubject)
}

func TestSave_Rejections(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "/uploads", 64)
	ctx := context.Background()

	cases := []struct {
		name    string
		subject Subject
		file    *multipart.FileHeader
		want    error
	}{
		{"empty file", Subject{KindCompany, "1"}, fileHeader(t, "x.png", nil), ErrEmptyFile},
		{"too large", Subject{KindCompany, "1"}, fileHeader(t, "x.png", append(pngBytes, make([]byte, 64)...)), ErrFileTooLarge},
		{"not an image", Subject{KindCompany, "1"}, fileHeader(t, "x.png", []byte("just some text")), ErrInvalidMimeType},
		{"traversal", Subject{KindCompany, "../1"}, fileHeader(t, "x.png", pngBytes), ErrInvalidSubject},
		{"dot dot", Subject{KindUser, ".."}, fileHeader(t, "x.png", pngBytes), ErrInvalidSubject},
		{"unknown kind", Subject{"outros", "1"}, fileHeader(t, "x.png", pngBytes), ErrInvalidSubject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Save(ctx, tc.subject, tc.file)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := os.Stat(filepath.Join(dir, "empresas"))
	assert.True(t, os.IsNotExist(err))
}
