package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"nursery-catalog/internal/fileio"
)

const (
	TitlesFile     = "titles.tsv"
	CategoriesFile = "categories.txt"
)

// CatalogFile: имя файла импорта для категории.
func CatalogFile(category string) string { return category + ".csv" }

// Write сохраняет результат сборки в dir: файл импорта на категорию,
// TSV заголовков и отчёт по категориям. Возвращает записанные пути.
func Write(dir string, res *Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	put := func(name string, fn func(f *os.File) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	for _, cat := range res.Order {
		rows := res.Catalogs[cat]
		err := put(CatalogFile(cat), func(f *os.File) error { return fileio.WriteCatalog(f, rows) })
		if err != nil {
			return written, err
		}
	}
	if err := put(TitlesFile, func(f *os.File) error { return fileio.WriteTitleReview(f, res.Titles) }); err != nil {
		return written, err
	}
	if err := put(CategoriesFile, func(f *os.File) error { return fileio.WriteCategoryReport(f, res.Categories) }); err != nil {
		return written, err
	}
	return written, nil
}
