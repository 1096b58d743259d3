package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nursery-catalog/internal/catalog/images"
	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/fileio"
	"nursery-catalog/internal/middleware"
)

// Health: проверка живости.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type normalizeRequest struct {
	Category string `json:"category"`
	Tags     string `json:"tags"`
}

type normalizeResponse struct {
	Tags []string `json:"tags"`
}

// NormalizeTags разбирает сырую строку тегов словарём категории.
func (s *Service) NormalizeTags(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cat, err := s.cfg.Category(req.Category)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	set, err := s.normalizer(cat).Normalize(req.Tags)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{Tags: set.Sorted()})
}

type matchRequest struct {
	Category       string `json:"category"`
	ScientificName string `json:"scientific_name"`
	CommonName     string `json:"common_name"`
}

type matchResponse struct {
	Query  string   `json:"query"`
	Images []string `json:"images"` // по возрастанию score, лучшая последней
	Best   string   `json:"best,omitempty"`
}

// MatchImages подбирает фото для названия растения.
func (s *Service) MatchImages(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var pages []string
	if req.Category != "" {
		cat, err := s.cfg.Category(req.Category)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		pages = cat.Pages
	}
	photos, err := s.imageCatalog(r.Context(), toBool(r.URL.Query().Get("refresh"), false))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	it := model.InventoryItem{ScientificName: req.ScientificName, CommonName: req.CommonName}
	found := images.NewMatcher(s.cfg.ImageThreshold, s.logger).Match(it, photos.Pages(pages...))
	resp := matchResponse{Query: images.Query(it), Images: found}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if len(found) > 0 {
		resp.Best = found[len(found)-1]
	}
	writeJSON(w, http.StatusOK, resp)
}

// Catalog собирает одну категорию и отдаёт файл импорта.
func (s *Service) Catalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "category")
	cat, err := s.cfg.Category(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	res, err := s.build(r.Context(), toBool(r.URL.Query().Get("refresh"), false), cat.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+cat.Name+`.csv"`)
	w.Header().Set("Cache-Control", "no-store")
	if err := fileio.WriteCatalog(w, res.Catalogs[cat.Name]); err != nil {
		s.logger.Error().Err(err).Str("rid", middleware.GetRequestID(r)).Msg("write csv")
		return
	}
	s.logger.Info().
		Str("rid", middleware.GetRequestID(r)).
		Str("category", cat.Name).
		Int("rows", len(res.Catalogs[cat.Name])).
		Dur("elapsed", time.Since(start)).
		Msg("catalog served")
}

// Titles отдаёт TSV заголовков последней сборки (или собирает всё заново).
func (s *Service) Titles(w http.ResponseWriter, r *http.Request) {
	res := s.lastResult()
	if refresh := toBool(r.URL.Query().Get("refresh"), false); res == nil || refresh {
		var err error
		if res, err = s.build(r.Context(), refresh); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := fileio.WriteTitleReview(w, res.Titles); err != nil {
		s.logger.Error().Err(err).Str("rid", middleware.GetRequestID(r)).Msg("write tsv")
	}
}

// fail: ошибки данных → 422, прочее (источники) → 502.
func (s *Service) fail(w http.ResponseWriter, r *http.Request, err error) {
	rid := middleware.GetRequestID(r)

	var (
		unresolved *model.UnresolvedTagError
		schema     *model.SchemaError
		ambiguous  *model.AmbiguousClassificationError
		missing    *model.MissingClassificationError
		format     *model.FormatError
		field      *model.MissingFieldError
	)
	switch {
	case errors.As(err, &unresolved):
		s.logger.Warn().Err(err).Str("rid", rid).Msg("unresolved tag")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Tag: unresolved.Tag})
	case errors.As(err, &schema), errors.As(err, &ambiguous), errors.As(err, &missing),
		errors.As(err, &format), errors.As(err, &field):
		s.logger.Warn().Err(err).Str("rid", rid).Msg("bad inventory data")
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, model.ErrUnknownCategory):
		writeError(w, http.StatusNotFound, err)
	default:
		s.logger.Error().Err(err).Str("rid", rid).Msg("source")
		writeError(w, http.StatusBadGateway, err)
	}
}
