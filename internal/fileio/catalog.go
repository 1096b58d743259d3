package fileio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nursery-catalog/internal/catalog/model"
)

// CatalogHeader: колонки файла импорта витрины, в этом порядке.
var CatalogHeader = []string{
	"Product ID [Non Editable]",
	"Variant ID [Non Editable]",
	"Product Type [Non Editable]",
	"Product Page",
	"Product URL",
	"Title",
	"Description",
	"SKU",
	"Option Name 1",
	"Option Value 1",
	"Option Name 2",
	"Option Value 2",
	"Option Name 3",
	"Option Value 3",
	"Price",
	"Sale Price",
	"On Sale",
	"Stock",
	"Categories",
	"Tags",
	"Weight",
	"Length",
	"Width",
	"Height",
	"Visible",
	"Hosted Image URLs",
}

const (
	listSep  = ", "
	imageSep = " "
)

// WriteCatalog пишет заголовок и строки каталога в CSV.
func WriteCatalog(w io.Writer, rows []model.CatalogRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CatalogHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(catalogRecord(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func catalogRecord(r model.CatalogRow) []string {
	return []string{
		r.ProductID,
		r.VariantID,
		r.ProductType,
		r.ProductPage,
		r.ProductURL,
		r.Title,
		r.Description,
		r.SKU,
		r.OptionName1,
		r.OptionValue1,
		r.OptionName2,
		r.OptionValue2,
		r.OptionName3,
		r.OptionValue3,
		formatPrice(r.Price),
		formatPrice(r.SalePrice),
		r.OnSale,
		strconv.Itoa(r.Stock),
		strings.Join(r.Categories, listSep),
		strings.Join(r.Tags, listSep),
		formatFloat(r.Weight),
		formatFloat(r.Length),
		formatFloat(r.Width),
		formatFloat(r.Height),
		r.Visible,
		strings.Join(r.ImageURLs, imageSep),
	}
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ReadCatalog читает файл, записанный WriteCatalog. Колонки ищутся по
// заголовку, так что порядок в файле может отличаться.
func ReadCatalog(r io.Reader) ([]model.CatalogRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog: empty file")
		}
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, h := range CatalogHeader {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("catalog: missing column %q", h)
		}
	}

	var out []model.CatalogRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(name string) string {
			if i := col[name]; i < len(rec) {
				return rec[i]
			}
			return ""
		}
		row, err := parseCatalogRecord(get)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseCatalogRecord(get func(string) string) (model.CatalogRow, error) {
	r := model.CatalogRow{
		ProductID:    get("Product ID [Non Editable]"),
		VariantID:    get("Variant ID [Non Editable]"),
		ProductType:  get("Product Type [Non Editable]"),
		ProductPage:  get("Product Page"),
		ProductURL:   get("Product URL"),
		Title:        get("Title"),
		Description:  get("Description"),
		SKU:          get("SKU"),
		OptionName1:  get("Option Name 1"),
		OptionValue1: get("Option Value 1"),
		OptionName2:  get("Option Name 2"),
		OptionValue2: get("Option Value 2"),
		OptionName3:  get("Option Name 3"),
		OptionValue3: get("Option Value 3"),
		OnSale:       get("On Sale"),
		Categories:   splitList(get("Categories"), listSep),
		Tags:         splitList(get("Tags"), listSep),
		Visible:      get("Visible"),
		ImageURLs:    splitList(get("Hosted Image URLs"), imageSep),
	}

	var err error
	if r.Price, err = parsePrice(get("Price")); err != nil {
		return r, fmt.Errorf("price: %w", err)
	}
	if r.SalePrice, err = parsePrice(get("Sale Price")); err != nil {
		return r, fmt.Errorf("sale price: %w", err)
	}
	if s := strings.TrimSpace(get("Stock")); s != "" {
		if r.Stock, err = strconv.Atoi(s); err != nil {
			return r, fmt.Errorf("stock: %w", err)
		}
	}
	dims := []struct {
		name string
		dst  *float64
	}{
		{"Weight", &r.Weight},
		{"Length", &r.Length},
		{"Width", &r.Width},
		{"Height", &r.Height},
	}
	for _, d := range dims {
		s := strings.TrimSpace(get(d.name))
		if s == "" {
			continue
		}
		if *d.dst, err = strconv.ParseFloat(s, 64); err != nil {
			return r, fmt.Errorf("%s: %w", strings.ToLower(d.name), err)
		}
	}
	return r, nil
}

func parsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// splitList режет "a, b" по запятым, а список ссылок (sep из пробелов) по пробелам.
func splitList(s, sep string) []string {
	var parts []string
	if sep = strings.TrimSpace(sep); sep == "" {
		parts = strings.Fields(s)
	} else {
		parts = strings.Split(s, sep)
	}
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
