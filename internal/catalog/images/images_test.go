package images

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery-catalog/internal/catalog/match"
	"nursery-catalog/internal/catalog/model"
)

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Echinacea purpurea 2.jpg", "echinacea purpurea"},
		{"Echinacea_Purpurea (3).JPG", "echinacea purpurea"},
		{"Échinacea  purpurea.png", "echinacea purpurea"},
		{"jpgfolder.jpeg", "jpgfolder"},
		{"St. John's Wort.jpg", "st john's wort"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanName(tt.in), tt.in)
	}
}

func testCatalog() *Catalog {
	return NewCatalog([]model.ImageFile{
		{Name: "Echinacea purpurea 2.jpg", ID: "1", Download: "https://d/1", Folder: "f-per"},
		{Name: "Echinacea_purpurea_white.JPG", ID: "2", Download: "https://d/2", Folder: "f-per"},
		{Name: "zzz qqq.png", ID: "3", Download: "https://d/3", Folder: "f-per"},
		{Name: "Basil.jpg", ID: "4", Download: "https://d/4", Folder: "f-herb"},
		{Name: "no link.jpg", ID: "5", Folder: "f-herb"},
		{Name: "Echinacea purpurea copy.jpg", ID: "6", Download: "https://d/1", Folder: "f-per"},
	}, map[string]string{"f-per": "perennials", "f-herb": "herbs"})
}

var coneflower = model.InventoryItem{
	SKU:            101,
	ScientificName: "Echinacea purpurea",
	CommonName:     "Purple Coneflower",
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	c := testCatalog()
	require.Equal(t, 4, c.Len(), "entries without a link or with a repeated link are skipped")

	first := c.Candidates()[0]
	assert.Equal(t, "echinacea purpurea", first.Clean)
	assert.Equal(t, "perennials", first.ProductPage)

	assert.Equal(t, 1, c.Pages("herbs").Len())
	assert.Equal(t, 3, c.Pages("perennials", "trees-and-shrubs").Len())
	assert.Equal(t, 4, c.Pages().Len())
}

func TestMatch_AscendingBestLast(t *testing.T) {
	t.Parallel()

	got := NewMatcher(model.DefaultImageThreshold, zerolog.Nop()).Match(coneflower, testCatalog())
	assert.Equal(t, []string{"https://d/2", "https://d/1"}, got)
}

func TestMatch_Deduplicates(t *testing.T) {
	t.Parallel()

	m := NewMatcher(model.DefaultImageThreshold, zerolog.Nop())
	got := m.Match(coneflower, testCatalog().Pages("perennials"))

	count := 0
	for _, ref := range got {
		if ref == "https://d/1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	require.NotEmpty(t, got)
	assert.Equal(t, "https://d/1", got[len(got)-1])
}

func TestMatch_None(t *testing.T) {
	t.Parallel()

	m := NewMatcher(0, zerolog.Nop())
	assert.Nil(t, m.Match(coneflower, testCatalog().Pages("herbs")))
	assert.Nil(t, m.Match(coneflower, NewCatalog(nil, nil)))

	strict := NewMatcher(99, zerolog.Nop())
	assert.Equal(t, []string{"https://d/1"}, strict.Match(coneflower, testCatalog()))
}

func TestMatch_LogsThroughInjectedLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := NewMatcher(model.DefaultImageThreshold, zerolog.New(&buf).Level(zerolog.DebugLevel))
	m.Match(coneflower, testCatalog())
	assert.Contains(t, buf.String(), `"message":"image candidates"`)
	assert.Contains(t, buf.String(), `"https://d/1"`)
}

func TestMergeMax(t *testing.T) {
	t.Parallel()

	setScores := []match.Match{{Key: "a", Score: 100}, {Key: "b", Score: 80}}
	sortScores := []match.Match{{Key: "b", Score: 90}, {Key: "a", Score: 67}, {Key: "c", Score: 10}}

	got := mergeMax(setScores, sortScores)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, 100, got[0].Score)
	assert.Equal(t, "b", got[1].Key)
	assert.Equal(t, 90, got[1].Score)

	asc := ascending(got, 75)
	require.Len(t, asc, 2)
	assert.Equal(t, "b", asc[0].Key)
	assert.Equal(t, "a", asc[1].Key)
}
