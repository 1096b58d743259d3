package model

import (
	"strconv"
	"strings"
)

// InventoryItem: одна очищенная строка листа инвентаря.
type InventoryItem struct {
	SKU            int      `json:"sku"`
	ScientificName string   `json:"scientific_name"`
	CommonName     string   `json:"common_name"`
	ImageURL       string   `json:"image_url" validate:"omitempty,url,startswith=http"`
	Category       string   `json:"category"`
	Tags           string   `json:"tags"`
	Zone           string   `json:"zone"`
	Info           string   `json:"info"`
	Pot            string   `json:"pot"`
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	Location       string   `json:"location"`
}

// Field: значение поля по имени (для шаблонов заголовков).
func (it InventoryItem) Field(name string) (string, bool) {
	switch name {
	case "sku":
		return strconv.Itoa(it.SKU), true
	case "scientific_name":
		return it.ScientificName, true
	case "common_name":
		return it.CommonName, true
	case "category":
		return it.Category, true
	case "zone":
		return it.Zone, true
	case "pot":
		return it.Pot, true
	case "location":
		return it.Location, true
	}
	return "", false
}

// ImageFile is one entry of a raw file listing.
type ImageFile struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Download string `json:"download"`
	Folder   string `json:"folder"`
}

// ImageCandidate: файл-кандидат с очищенным именем.
type ImageCandidate struct {
	Name        string
	Clean       string
	ID          string
	Download    string
	ProductPage string
}

// CatalogRow is one line of a storefront import file. Empty strings and nil
// slices are written as empty cells.
type CatalogRow struct {
	ProductID    string
	VariantID    string
	ProductType  string
	ProductPage  string
	ProductURL   string
	Title        string
	Description  string
	SKU          string
	OptionName1  string
	OptionValue1 string
	OptionName2  string
	OptionValue2 string
	OptionName3  string
	OptionValue3 string
	Price        *float64
	SalePrice    *float64
	OnSale       string
	Stock        int
	Categories   []string
	Tags         []string
	Weight       float64
	Length       float64
	Width        float64
	Height       float64
	Visible      string
	ImageURLs    []string
}

// Дефолты витрины (как в схеме импорта).
const (
	DefaultProductType = "SERVICE"
	DefaultOnSale      = "No"
	DefaultVisible     = "Yes"
	DefaultWeight      = 1.0
)

// NewCatalogRow returns a row with the storefront defaults applied.
func NewCatalogRow() CatalogRow {
	return CatalogRow{
		ProductType: DefaultProductType,
		OnSale:      DefaultOnSale,
		Visible:     DefaultVisible,
		Weight:      DefaultWeight,
	}
}

// Variant возвращает строку-вариант. Витринные поля несёт только первая строка товара.
func (r CatalogRow) Variant() CatalogRow {
	r.ProductType = ""
	r.ProductPage = ""
	r.ProductURL = ""
	r.Title = ""
	r.Description = ""
	r.Categories = nil
	r.Tags = nil
	r.Visible = ""
	r.ImageURLs = nil
	return r
}

// Slug turns a tag into a category label: "reg water" -> "reg-water".
func Slug(s string) string {
	return strings.Join(strings.Fields(s), "-")
}
