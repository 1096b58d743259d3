// Package pipeline wires sources, cleaning and transformation into one
// catalog build.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"nursery-catalog/internal/catalog/images"
	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/catalog/transform"
	"nursery-catalog/internal/config"
	"nursery-catalog/internal/inventory"
	"nursery-catalog/internal/metrics"
	"nursery-catalog/internal/sources"
)

// Pipeline: одна сборка каталога. Images может быть nil: тогда фото
// берутся только из листа.
type Pipeline struct {
	Config config.Config
	Rows   sources.RowSource
	Images sources.ImageSource
	Logger zerolog.Logger
}

// Result: итог сборки.
type Result struct {
	Order      []string // категории в порядке сборки
	Catalogs   map[string][]model.CatalogRow
	Stats      map[string]inventory.Stats
	Titles     *model.TitleMap
	Categories model.CategorySets
}

// Run builds the named categories (all configured ones when none are given)
// in configuration order. The first failing category aborts the build.
func (p *Pipeline) Run(ctx context.Context, only ...string) (*Result, error) {
	if p.Rows == nil {
		return nil, errors.New("pipeline: no row source")
	}
	started := time.Now()
	defer func() { metrics.PipelineDuration.Observe(time.Since(started).Seconds()) }()

	cats, err := p.categories(only)
	if err != nil {
		return nil, err
	}

	catalog, err := p.ImageCatalog(ctx)
	if err != nil {
		return nil, err
	}

	cleaner := inventory.NewCleaner(p.Logger)
	tr := transform.New(p.Config.Thresholds(), catalog, p.Logger)
	res := &Result{
		Catalogs: make(map[string][]model.CatalogRow, len(cats)),
		Stats:    make(map[string]inventory.Stats, len(cats)),
	}

	for _, cat := range cats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := p.Rows.FetchInventoryRows(ctx, cat.Sheet)
		if err != nil {
			return nil, fmt.Errorf("%s: fetch sheet %q: %w", cat.Name, cat.Sheet, err)
		}
		items, st, err := cleaner.Clean(cat.Name, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cat.Name, err)
		}
		rows, err := tr.Run(cat, items)
		if err != nil {
			return nil, err
		}
		res.Order = append(res.Order, cat.Name)
		res.Catalogs[cat.Name] = rows
		res.Stats[cat.Name] = st

		p.Logger.Info().
			Str("category", cat.Name).
			Int("rows_in", st.Rows).
			Int("dropped", st.Dropped).
			Int("catalog_rows", len(rows)).
			Msg("category built")
	}

	res.Titles = tr.Titles
	res.Categories = tr.Categories
	for title, keys := range res.Titles.Duplicates() {
		skus := make([]int, 0, len(keys))
		for _, k := range keys {
			skus = append(skus, k.SKU)
		}
		p.Logger.Warn().Str("title", title).Ints("skus", skus).Msg("duplicate title")
	}

	p.Logger.Info().
		Int("categories", len(res.Order)).
		Int("images", catalog.Len()).
		Dur("took", time.Since(started)).
		Msg("catalog built")
	return res, nil
}

func (p *Pipeline) categories(only []string) ([]model.Category, error) {
	if len(only) == 0 {
		return p.Config.Categories, nil
	}
	out := make([]model.Category, 0, len(only))
	for _, name := range only {
		cat, err := p.Config.Category(name)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

// ImageCatalog собирает кандидатов из всех настроенных папок (nil без Images).
func (p *Pipeline) ImageCatalog(ctx context.Context) (*images.Catalog, error) {
	if p.Images == nil {
		return nil, nil
	}
	if len(p.Config.ImageFolders) == 0 {
		p.Logger.Warn().Msg("image source set but no image_folders configured, items get no photos")
	}
	var files []model.ImageFile
	for _, f := range p.Config.ImageFolders {
		list, err := p.Images.FetchImageListing(ctx, f.ID)
		if err != nil {
			return nil, fmt.Errorf("image folder %s (%s): %w", f.ID, f.Page, err)
		}
		p.Logger.Debug().Str("folder", f.ID).Str("page", f.Page).Int("files", len(list)).Msg("image listing")
		files = append(files, list...)
	}
	return images.NewCatalog(files, p.Config.FolderPages()), nil
}
