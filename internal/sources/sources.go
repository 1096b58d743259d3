// Package sources fetches raw inventory rows and photo listings, either from
// Google Sheets/Drive or from local export files.
package sources

import (
	"context"

	"nursery-catalog/internal/catalog/model"
)

// RowSource отдаёт строки листа инвентаря без заголовка.
type RowSource interface {
	FetchInventoryRows(ctx context.Context, sheet string) ([][]string, error)
}

// ImageSource отдаёт список файлов одной папки с фото.
type ImageSource interface {
	FetchImageListing(ctx context.Context, folder string) ([]model.ImageFile, error)
}
