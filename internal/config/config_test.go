package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery-catalog/internal/catalog/model"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
	assert.Equal(t, model.DefaultThresholds(), cfg.Thresholds())
	assert.Equal(t, "snapshot.db", cfg.SnapshotDB)
	assert.Equal(t, "out", cfg.OutputDir)
	require.Len(t, cfg.Categories, 3)
	assert.Equal(t, "plants", cfg.Categories[0].Name)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeFile(t, "nursery.yaml", `
port: 9000
spreadsheet_id: sheet-123
image_threshold: 80
image_folders:
  - id: folder-a
    page: perennials
  - id: folder-b
    page: trees-and-shrubs
`)
	t.Setenv("NURSERY_PORT", "9100")
	t.Setenv("NURSERY_SNAPSHOT_RUN", "2024-spring")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "sheet-123", cfg.SpreadsheetID)
	assert.Equal(t, "2024-spring", cfg.SnapshotRun)
	assert.Equal(t, 80, cfg.Thresholds().Image)
	assert.Equal(t, map[string]string{
		"folder-a": "perennials",
		"folder-b": "trees-and-shrubs",
	}, cfg.FolderPages())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"threshold", "tag_threshold: 120\n"},
		{"zero threshold", "image_threshold: 0\n"},
		{"negative threshold", "tag_threshold: -5\n"},
		{"listing without folders", "image_listing: listing.csv\n"},
		{"folder without page", "image_folders:\n  - id: folder-a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "nursery.yaml", tt.yaml))
			assert.ErrorContains(t, err, "invalid config")
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCategory(t *testing.T) {
	cfg := Config{Categories: DefaultCategories()}

	cat, err := cfg.Category("Veggies")
	require.NoError(t, err)
	assert.Equal(t, model.StrategyVeggies, cat.Strategy)

	_, err = cfg.Category("cacti")
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestDefaultCategoriesAreValid(t *testing.T) {
	for _, c := range DefaultCategories() {
		assert.NoError(t, validateCategory(c), c.Name)
	}
}

func TestLoadCategories(t *testing.T) {
	path := writeFile(t, "vocabulary.yaml", `
categories:
  - name: plants
    sheet: Plants
    title: "{scientific_name}"
    strategy: plants
    tags:
      valid: [sun, shade, tree, shrub]
      exclude: [perennial]
      exceptions:
        full shade: shade
    tiers:
      tree-shrub:
        - {option: gal, price: 9.99}
      perennial:
        - {option: '4"', price: 5.49}
    pages: [perennials, trees-and-shrubs]
`)
	cats, err := LoadCategories(path)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "shade", cats[0].Tags.Exceptions["full shade"])
	assert.InDelta(t, 9.99, cats[0].Tiers["tree-shrub"][0].Price, 0.001)

	t.Run("via config", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "nursery.yaml", "vocabulary: "+path+"\n"))
		require.NoError(t, err)
		require.Len(t, cfg.Categories, 1)
	})

	bad := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "categories:\n  - name: x\n    colour: red\n", "colour"},
		{"empty", "categories: []\n", "no categories"},
		{"strategy", "categories:\n  - {name: x, title: t, strategy: cacti, tags: {valid: [sun]}}\n", "unknown strategy"},
		{"replace target", "categories:\n  - {name: x, title: t, strategy: houseplants, tags: {valid: [sun], replace: {sun: bright}}}\n", "outside the vocabulary"},
		{"tiers", "categories:\n  - {name: x, title: t, strategy: veggies, tags: {valid: [sun]}}\n", "price tiers"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCategories(writeFile(t, "vocabulary.yaml", tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
