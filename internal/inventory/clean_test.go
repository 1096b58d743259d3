package inventory

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery-catalog/internal/catalog/model"
)

func TestClean(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"101", "Echinacea purpurea", "Purple Coneflower", "", "Perennial", "sun, native", "3-8", "Tough.", "4\"", "$4.99", "", "", "", "B2"},
		{"", "Section: Shrubs"},
		{},
		{"102.0", " Quercus alba ", "White Oak", "https://example.com/oak.jpg", "Trees", "tree"},
	}

	items, st, err := NewCleaner(zerolog.Nop()).Clean("plants", rows)
	require.NoError(t, err)
	assert.Equal(t, Stats{Rows: 4, Kept: 2, Dropped: 2}, st)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, 101, first.SKU)
	assert.Equal(t, "Purple Coneflower", first.CommonName)
	assert.Equal(t, "B2", first.Location)
	require.NotNil(t, first.Price)
	assert.InDelta(t, 4.99, *first.Price, 0.0001)

	second := items[1]
	assert.Equal(t, 102, second.SKU)
	assert.Equal(t, "Quercus alba", second.ScientificName, "cells are trimmed")
	assert.Nil(t, second.Price, "padded price stays empty")
	assert.Empty(t, second.Location)
}

func TestClean_SchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  []string
	}{
		{"sku not integer", []string{"12a", "Aster"}},
		{"fractional sku", []string{"12.5", "Aster"}},
		{"malformed url", []string{"12", "Aster", "", "not a url"}},
		{"non-http url", []string{"12", "Aster", "", "ftp://example.com/a.jpg"}},
		{"bad price", []string{"12", "Aster", "", "", "", "", "", "", "", "call us"}},
		{"negative price", []string{"12", "Aster", "", "", "", "", "", "", "", "-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := [][]string{{"1", "Ok"}, tt.row}
			_, _, err := NewCleaner(zerolog.Nop()).Clean("plants", rows)

			var se *model.SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 1, se.Index)
			assert.Equal(t, tt.row, se.Row)
		})
	}
}
