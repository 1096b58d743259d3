package serverhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery-catalog/internal/catalog/handler"
	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/config"
	"nursery-catalog/internal/fileio"
	"nursery-catalog/internal/sources"
)

type fakeSource struct {
	rows  map[string][][]string
	files []model.ImageFile
}

func (f *fakeSource) FetchInventoryRows(_ context.Context, sheet string) ([][]string, error) {
	return f.rows[sheet], nil
}

func (f *fakeSource) FetchImageListing(_ context.Context, folder string) ([]model.ImageFile, error) {
	return f.files, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		AllowOrigins:   []string{"*"},
		MaxUploadMB:    1,
		Categories:     config.DefaultCategories(),
		ImageFolders:   []config.ImageFolder{{ID: "f1", Page: "perennials"}},
		TagThreshold:   model.DefaultTagThreshold,
		ImageThreshold: model.DefaultImageThreshold,
	}
	src := &fakeSource{
		rows: map[string][][]string{
			"Plants": {
				{"102", "Echinacea purpurea", "Coneflower", "", "Perennial", "sun, native"},
			},
		},
		files: []model.ImageFile{
			{Name: "echinacea_purpurea.jpg", ID: "i1", Download: "https://d/echinacea", Folder: "f1"},
			{Name: "hosta.jpg", ID: "i2", Download: "https://d/hosta", Folder: "f1"},
		},
	}
	open := func(bool) (sources.RowSource, sources.ImageSource) { return src, src }
	svc := handler.NewService(cfg, open, zerolog.Nop())
	return NewRouter(cfg, svc, zerolog.Nop())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "nursery_http_request_duration_seconds")
}

func TestNormalizeTags(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"resolved", `{"category":"plants","tags":"Full Shade, native, perennial"}`, http.StatusOK, `{"tags":["native","shade"]}`},
		{"houseplant replace", `{"category":"houseplants","tags":"sun"}`, http.StatusOK, `{"tags":["bright light"]}`},
		{"unresolved", `{"category":"plants","tags":"banana"}`, http.StatusUnprocessableEntity, ""},
		{"unknown category", `{"category":"cacti","tags":"sun"}`, http.StatusNotFound, ""},
		{"bad json", `{"category":`, http.StatusBadRequest, ""},
		{"unknown field", `{"category":"plants","tag":"sun"}`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/tags/normalize", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.want != "" {
				assert.JSONEq(t, tt.want, rec.Body.String())
			}
		})
	}

	rec := do(t, h, http.MethodPost, "/tags/normalize", `{"category":"plants","tags":"banana"}`)
	var body struct {
		Error string `json:"error"`
		Tag   string `json:"tag"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "banana", body.Tag)
}

func TestMatchImages(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/images/match",
		`{"category":"plants","scientific_name":"Echinacea purpurea","common_name":"Coneflower"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Query  string   `json:"query"`
		Images []string `json:"images"`
		Best   string   `json:"best"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "echinacea purpurea coneflower", body.Query)
	assert.Equal(t, []string{"https://d/echinacea"}, body.Images)
	assert.Equal(t, "https://d/echinacea", body.Best)

	// страница veggies не содержит фото из папки perennials
	rec = do(t, h, http.MethodPost, "/images/match",
		`{"category":"veggies","scientific_name":"Echinacea purpurea"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"images": []`)
}

func TestCatalogAndTitles(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/catalog/plants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

	rows, err := fileio.ReadCatalog(rec.Body)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Echinacea purpurea (Coneflower)", rows[0].Title)
	assert.Equal(t, []string{"https://d/echinacea"}, rows[0].ImageURLs)

	rec = do(t, h, http.MethodGet, "/titles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "102\tEchinacea purpurea Coneflower\t\tEchinacea purpurea (Coneflower)")

	rec = do(t, h, http.MethodGet, "/catalog/cacti", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTitlesCoverAllCategories(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/titles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	full := rec.Body.String()
	require.Contains(t, full, "102\tEchinacea purpurea Coneflower")

	// сборка одной категории не подменяет общую карту заголовков
	rec = do(t, h, http.MethodGet, "/catalog/veggies", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/titles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, full, rec.Body.String())
}
