// Package transform turns cleaned inventory items into storefront catalog rows.
package transform

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"nursery-catalog/internal/catalog/images"
	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/catalog/tags"
	"nursery-catalog/internal/metrics"
)

// Transformer собирает каталог по категориям и копит общие для запуска
// данные: карту заголовков и категории по страницам.
// Не потокобезопасен: один запуск — одна горутина.
type Transformer struct {
	thresholds  model.Thresholds
	catalog     *images.Catalog
	matcher     *images.Matcher
	normalizers map[string]*tags.Normalizer
	logger      zerolog.Logger

	Titles     *model.TitleMap
	Categories model.CategorySets
}

// New returns a transformer matching photos against catalog (may be nil).
func New(th model.Thresholds, catalog *images.Catalog, logger zerolog.Logger) *Transformer {
	if th.Tag <= 0 {
		th.Tag = model.DefaultTagThreshold
	}
	if th.Image <= 0 {
		th.Image = model.DefaultImageThreshold
	}
	return &Transformer{
		thresholds:  th,
		catalog:     catalog,
		matcher:     images.NewMatcher(th.Image, logger),
		normalizers: make(map[string]*tags.Normalizer),
		logger:      logger,
		Titles:      model.NewTitleMap(),
		Categories:  make(model.CategorySets),
	}
}

type titled struct {
	item  model.InventoryItem
	title string
}

// Run transforms the items of one category. Items are emitted by title,
// descending; equal titles keep their input order. The first failing item
// aborts the whole batch.
func (t *Transformer) Run(cat model.Category, items []model.InventoryItem) ([]model.CatalogRow, error) {
	norm := t.normalizer(cat)
	photos := t.catalog.Pages(cat.Pages...)

	list := make([]titled, 0, len(items))
	for _, it := range items {
		title, err := RenderTitle(cat.Title, it)
		if err != nil {
			return nil, t.fail(cat, it, err)
		}
		list = append(list, titled{item: it, title: title})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].title > list[j].title })

	var out []model.CatalogRow
	for _, e := range list {
		rows, err := t.product(cat, norm, photos, e.item, e.title)
		if err != nil {
			return nil, t.fail(cat, e.item, err)
		}
		out = append(out, rows...)
	}

	t.logger.Info().
		Str("category", cat.Name).
		Int("items", len(items)).
		Int("rows", len(out)).
		Msg("category transformed")
	return out, nil
}

func (t *Transformer) product(cat model.Category, norm *tags.Normalizer, photos *images.Catalog, it model.InventoryItem, title string) ([]model.CatalogRow, error) {
	t.Titles.Add(model.TitleKey{
		SKU:            it.SKU,
		ScientificName: it.ScientificName,
		CommonName:     it.CommonName,
		Pot:            it.Pot,
	}, title)

	set, err := norm.Normalize(joinRaw(it.Category, it.Tags))
	if err != nil {
		var unresolved *model.UnresolvedTagError
		if errors.As(err, &unresolved) {
			unresolved.Item = &it
		}
		return nil, err
	}

	exp, err := Select(cat.Strategy, set)
	if err != nil {
		return nil, err
	}

	base := model.NewCatalogRow()
	base.Title = title
	base.Description = Describe(it)
	base.SKU = strconv.Itoa(it.SKU)
	base.Tags = set.Sorted()
	base.ImageURLs = t.photo(it, photos)

	rows, err := Expand(exp, cat, it, set, base)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(rows); i++ {
		rows[i] = rows[i].Variant()
	}

	page := rows[0].ProductPage
	t.Categories.Add(page, rows[0].Categories...)
	metrics.CatalogRowsTotal.WithLabelValues(page).Add(float64(len(rows)))
	return rows, nil
}

// photo: ссылка из листа важнее подобранной; из подобранных берём лучшую (последнюю).
func (t *Transformer) photo(it model.InventoryItem, photos *images.Catalog) []string {
	if it.ImageURL != "" {
		metrics.ImageMatchesTotal.WithLabelValues("sheet").Inc()
		return []string{it.ImageURL}
	}
	found := t.matcher.Match(it, photos)
	if len(found) == 0 {
		metrics.ImageMatchesTotal.WithLabelValues("none").Inc()
		t.logger.Debug().Int("sku", it.SKU).Str("query", images.Query(it)).Msg("no image match")
		return nil
	}
	metrics.ImageMatchesTotal.WithLabelValues("matched").Inc()
	return []string{found[len(found)-1]}
}

func (t *Transformer) normalizer(cat model.Category) *tags.Normalizer {
	n, ok := t.normalizers[cat.Name]
	if !ok {
		n = tags.New(cat.Tags, t.thresholds.Tag, t.logger)
		t.normalizers[cat.Name] = n
	}
	return n
}

func (t *Transformer) fail(cat model.Category, it model.InventoryItem, err error) error {
	t.logger.Error().
		Err(err).
		Str("category", cat.Name).
		Interface("item", it).
		Msg("item rejected")
	return fmt.Errorf("%s: sku %d: %w", cat.Name, it.SKU, err)
}

// категория и теги из листа разбираются одним словарём
func joinRaw(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ",")
}
