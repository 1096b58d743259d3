package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery-catalog/internal/catalog/model"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestWorkbook_CSVDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Perennials.csv", "SKU,Scientific Name\n201,Echinacea purpurea\n,\n")

	rows, err := Workbook{Path: dir}.FetchInventoryRows(context.Background(), "Perennials")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"201", "Echinacea purpurea"}, {"", ""}}, rows)

	_, err = Workbook{Path: dir}.FetchInventoryRows(context.Background(), "Trees")
	assert.Error(t, err)
}

func TestListing(t *testing.T) {
	p := writeFile(t, t.TempDir(), "listing.csv",
		"name,id,download,folder\n"+
			"acer-rubrum.jpg,f1,https://d/1,trees\n"+
			"hosta.png,f2,https://d/2,perennials\n"+
			"shared.png,f3,https://d/3,\n")
	l := &Listing{Path: p}

	got, err := l.FetchImageListing(context.Background(), "trees")
	require.NoError(t, err)
	assert.Equal(t, []model.ImageFile{
		{Name: "acer-rubrum.jpg", ID: "f1", Download: "https://d/1", Folder: "trees"},
		{Name: "shared.png", ID: "f3", Download: "https://d/3", Folder: "trees"},
	}, got)

	got, err = l.FetchImageListing(context.Background(), "perennials")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListing_Missing(t *testing.T) {
	l := &Listing{Path: filepath.Join(t.TempDir(), "nope.csv")}
	_, err := l.FetchImageListing(context.Background(), "trees")
	assert.Error(t, err)
}

func TestCellString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"Acer", "Acer"},
		{float64(101), "101"},
		{4.99, "4.99"},
		{1e7, "10000000"},
		{true, "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cellString(tt.in))
	}
}
