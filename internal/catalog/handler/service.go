// Package handler exposes the catalog pipeline over HTTP.
package handler

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"nursery-catalog/internal/catalog/images"
	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/catalog/tags"
	"nursery-catalog/internal/config"
	"nursery-catalog/internal/pipeline"
	"nursery-catalog/internal/sources"
)

// SourcesFunc открывает источники; refresh просит обойти снимок.
type SourcesFunc func(refresh bool) (sources.RowSource, sources.ImageSource)

// Service держит общее состояние хендлеров: нормализаторы по категориям,
// каталог фото и последний результат сборки.
type Service struct {
	cfg    config.Config
	logger zerolog.Logger
	open   SourcesFunc

	mu          sync.Mutex
	normalizers map[string]*tags.Normalizer
	photos      *images.Catalog
	last        *pipeline.Result
}

func NewService(cfg config.Config, open SourcesFunc, logger zerolog.Logger) *Service {
	return &Service{
		cfg:         cfg,
		logger:      logger,
		open:        open,
		normalizers: make(map[string]*tags.Normalizer),
	}
}

func (s *Service) newPipeline(refresh bool) *pipeline.Pipeline {
	rows, imgs := s.open(refresh)
	return &pipeline.Pipeline{Config: s.cfg, Rows: rows, Images: imgs, Logger: s.logger}
}

func (s *Service) normalizer(cat model.Category) *tags.Normalizer {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.normalizers[cat.Name]
	if !ok {
		n = tags.New(cat.Tags, s.cfg.TagThreshold, s.logger)
		s.normalizers[cat.Name] = n
	}
	return n
}

// imageCatalog грузит каталог фото один раз (или заново при refresh).
func (s *Service) imageCatalog(ctx context.Context, refresh bool) (*images.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.photos != nil && !refresh {
		return s.photos, nil
	}
	c, err := s.newPipeline(refresh).ImageCatalog(ctx)
	if err != nil {
		return nil, err
	}
	s.photos = c
	return c, nil
}

// build запускает сборку. Для /titles запоминается только полная сборка:
// карта заголовков общая для всех категорий.
func (s *Service) build(ctx context.Context, refresh bool, categories ...string) (*pipeline.Result, error) {
	res, err := s.newPipeline(refresh).Run(ctx, categories...)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		s.mu.Lock()
		s.last = res
		s.mu.Unlock()
	}
	return res, nil
}

func (s *Service) lastResult() *pipeline.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
