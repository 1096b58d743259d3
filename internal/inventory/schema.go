// Package inventory cleans raw spreadsheet rows into inventory items.
package inventory

// Колонки листа инвентаря (A..N).
const (
	ColSKU            = 0  // A
	ColScientificName = 1  // B
	ColCommonName     = 2  // C
	ColImageURL       = 3  // D
	ColCategory       = 4  // E
	ColTags           = 5  // F
	ColZone           = 6  // G
	ColInfo           = 7  // H
	ColPot            = 8  // I
	ColPrice          = 9  // J
	ColLocation       = 13 // N

	// NumColumns: ширина диапазона, индекс последней колонки + 1.
	NumColumns = ColLocation + 1
)

// Range is the sheet range holding inventory rows, below the header row.
const Range = "A2:N"

// HeaderRows: сколько строк сверху занимает шапка.
const HeaderRows = 1
