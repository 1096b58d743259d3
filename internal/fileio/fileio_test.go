package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/catalog/tags"
)

func price(f float64) *float64 { return &f }

func TestReadRows_CSV(t *testing.T) {
	data := "SKU,Scientific Name\n101,Acer rubrum\n102,Cornus florida\n"

	rows, err := ReadRows(strings.NewReader(data), "inventory.csv", "", 1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"101", "Acer rubrum"},
		{"102", "Cornus florida"},
	}, rows)
}

func TestReadRows_Delimiters(t *testing.T) {
	tests := []struct {
		name, file, data string
	}{
		{"semicolon", "inventory.csv", "SKU;Scientific Name\n101;Acer rubrum, red\n"},
		{"tsv", "inventory.tsv", "SKU\tScientific Name\n101\tAcer rubrum, red\n"},
		{"bom", "inventory.csv", "\ufeffSKU,Scientific Name\n101,\"Acer rubrum, red\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadRows(strings.NewReader(tt.data), tt.file, "", 1)
			require.NoError(t, err)
			assert.Equal(t, [][]string{{"101", "Acer rubrum, red"}}, rows)
		})
	}
}

func TestReadRows_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Perennials"))
	_, err := f.NewSheet("Trees")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Perennials", "A1", &[]any{"SKU", "Scientific Name", "Price"}))
	require.NoError(t, f.SetSheetRow("Perennials", "A2", &[]any{201, "Echinacea purpurea", 4.99}))
	require.NoError(t, f.SetSheetRow("Trees", "A1", &[]any{"SKU"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadRows(bytes.NewReader(buf.Bytes()), "inventory.xlsx", "Perennials", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"201", "Echinacea purpurea", "4.99"}, rows[0])

	_, err = ReadRows(bytes.NewReader(buf.Bytes()), "inventory.xlsx", "Houseplants", 1)
	assert.Error(t, err)
}

func TestReadRows_Unsupported(t *testing.T) {
	_, err := ReadRows(strings.NewReader(""), "inventory.ods", "", 0)
	assert.ErrorContains(t, err, "unsupported file")
}

func TestReadMaps(t *testing.T) {
	data := "Name,ID,Download\nacer-rubrum.jpg,f1,https://d/1\n,,\nhosta.png,f2,https://d/2\n"

	recs, err := ReadMaps(strings.NewReader(data), "listing.csv", 1)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "acer-rubrum.jpg", recs[0]["name"])
	assert.Equal(t, "https://d/2", recs[1]["download"])
}

func TestCatalog_RoundTrip(t *testing.T) {
	first := model.NewCatalogRow()
	first.ProductPage = "perennials"
	first.Title = "Echinacea purpurea (Coneflower)"
	first.Description = "<p>Tough, \"long\" bloomer</p>"
	first.SKU = "201"
	first.OptionName1 = "Size"
	first.OptionValue1 = `4"`
	first.Price = price(4.99)
	first.Categories = []string{"perennials", "full-sun", "native"}
	first.Tags = []string{"full sun", "native"}
	first.ImageURLs = []string{"https://d/1", "https://d/2"}

	second := first.Variant()
	second.OptionValue1 = "gal"
	second.Price = price(8.99)

	var buf bytes.Buffer
	require.NoError(t, WriteCatalog(&buf, []model.CatalogRow{first, second}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Product ID [Non Editable],Variant ID [Non Editable]"))
	assert.Contains(t, lines[1], "4.99")
	assert.Contains(t, lines[1], `"perennials, full-sun, native"`)

	got, err := ReadCatalog(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, second, got[1])
	assert.Equal(t, []string{"full sun", "native"}, got[0].Tags)
	assert.Nil(t, got[1].Tags)
}

func TestCatalog_TagSetRoundTrip(t *testing.T) {
	set := tags.NewSet("sun", "native")
	row := model.NewCatalogRow()
	row.SKU = "12"
	row.Tags = set.Sorted()

	var buf bytes.Buffer
	require.NoError(t, WriteCatalog(&buf, []model.CatalogRow{row}))
	assert.Contains(t, buf.String(), `"native, sun"`)

	got, err := ReadCatalog(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, set, tags.NewSet(got[0].Tags...))
}

func TestReadCatalog_MissingColumn(t *testing.T) {
	_, err := ReadCatalog(strings.NewReader("Title,SKU\nA,1\n"))
	assert.ErrorContains(t, err, "missing column")
}

func TestWriteTitleReview(t *testing.T) {
	titles := model.NewTitleMap()
	titles.Add(model.TitleKey{SKU: 1, ScientificName: "Acer rubrum", CommonName: "Red Maple", Pot: "gal"}, "Acer rubrum\n(Red Maple)")
	titles.Add(model.TitleKey{SKU: 2, ScientificName: "Hosta", Pot: `4"`}, "Hosta")

	var buf bytes.Buffer
	require.NoError(t, WriteTitleReview(&buf, titles))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SKU\tMatch String\tPot\tTitle", lines[0])
	assert.Equal(t, "1\tAcer rubrum Red Maple\tgal\tAcer rubrum (Red Maple)", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2\tHosta\t"))
}

func TestWriteCategoryReport(t *testing.T) {
	sets := model.CategorySets{}
	sets.Add("trees-and-shrubs", "trees-and-shrubs", "native")
	sets.Add("perennials", "sun", "perennials")

	var buf bytes.Buffer
	require.NoError(t, WriteCategoryReport(&buf, sets))
	assert.Equal(t,
		"perennials\n  perennials\n  sun\ntrees-and-shrubs\n  native\n  trees-and-shrubs\n",
		buf.String())
}
