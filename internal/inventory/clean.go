package inventory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/metrics"
	"nursery-catalog/internal/utils"
)

// Stats: сводка очистки одного листа.
type Stats struct {
	Rows    int
	Kept    int
	Dropped int // строки без SKU
}

// Cleaner проверяет форму строк и собирает из них InventoryItem.
type Cleaner struct {
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewCleaner(logger zerolog.Logger) *Cleaner {
	return &Cleaner{validate: validator.New(), logger: logger}
}

// Clean pads every row to NumColumns, drops rows without a SKU and converts
// the rest. The first malformed row aborts with *model.SchemaError.
func (c *Cleaner) Clean(category string, rows [][]string) ([]model.InventoryItem, Stats, error) {
	st := Stats{Rows: len(rows)}
	items := make([]model.InventoryItem, 0, len(rows))

	for i, raw := range rows {
		row := pad(raw)

		// без SKU: не товар (пустая строка или разделитель)
		if row[ColSKU] == "" {
			st.Dropped++
			metrics.RowsDroppedTotal.WithLabelValues(category).Inc()
			c.logger.Debug().Str("category", category).Int("row", i).Strs("cells", raw).Msg("row without sku dropped")
			continue
		}

		it, err := c.item(row)
		if err != nil {
			c.logger.Error().Err(err).Str("category", category).Int("row", i).Strs("cells", raw).Msg("schema")
			return nil, st, &model.SchemaError{Index: i, Row: raw, Err: err}
		}
		items = append(items, it)
	}

	st.Kept = len(items)
	c.logger.Info().
		Str("category", category).
		Int("rows", st.Rows).
		Int("kept", st.Kept).
		Int("dropped", st.Dropped).
		Msg("inventory cleaned")
	return items, st, nil
}

func (c *Cleaner) item(row []string) (model.InventoryItem, error) {
	sku, err := parseSKU(row[ColSKU])
	if err != nil {
		return model.InventoryItem{}, err
	}
	it := model.InventoryItem{
		SKU:            sku,
		ScientificName: row[ColScientificName],
		CommonName:     row[ColCommonName],
		ImageURL:       row[ColImageURL],
		Category:       row[ColCategory],
		Tags:           row[ColTags],
		Zone:           row[ColZone],
		Info:           row[ColInfo],
		Pot:            row[ColPot],
		Location:       row[ColLocation],
	}
	if s := row[ColPrice]; s != "" {
		p, ok := utils.ParsePrice(s)
		if !ok {
			return model.InventoryItem{}, fmt.Errorf("price: not a number: %q", s)
		}
		it.Price = &p
	}
	if err := c.validate.Struct(it); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return model.InventoryItem{}, fmt.Errorf("%s: failed %q check: %v", strings.ToLower(fe.Field()), fe.Tag(), fe.Value())
		}
		return model.InventoryItem{}, err
	}
	return it, nil
}

// pad дополняет строку до NumColumns и обрезает пробелы.
func pad(raw []string) []string {
	row := make([]string, NumColumns)
	for i := 0; i < NumColumns && i < len(raw); i++ {
		row[i] = strings.TrimSpace(raw[i])
	}
	return row
}

// SKU в таблице может прийти как "12" или "12.0"
func parseSKU(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("sku: not an integer: %q", s)
	}
	return int(f), nil
}
