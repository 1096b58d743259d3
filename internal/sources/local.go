package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/fileio"
	"nursery-catalog/internal/inventory"
)

// Workbook читает листы из локальной выгрузки (.xlsx/.xls) или из папки
// с CSV по листу: <dir>/<sheet>.csv.
type Workbook struct {
	Path string
}

func (w Workbook) FetchInventoryRows(_ context.Context, sheet string) ([][]string, error) {
	path := w.Path
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	if st.IsDir() {
		path = filepath.Join(path, sheet+".csv")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	defer f.Close()

	rows, err := fileio.ReadRows(f, path, sheet, inventory.HeaderRows)
	if err != nil {
		return nil, fmt.Errorf("workbook %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// Listing читает локальный CSV со списком фото (name, id, download[, folder]).
// Файлы без колонки folder относятся к любой запрошенной папке.
type Listing struct {
	Path string

	once  sync.Once
	files []model.ImageFile
	err   error
}

func (l *Listing) FetchImageListing(_ context.Context, folder string) ([]model.ImageFile, error) {
	l.once.Do(l.load)
	if l.err != nil {
		return nil, l.err
	}
	var out []model.ImageFile
	for _, f := range l.files {
		if f.Folder == "" || f.Folder == folder {
			f.Folder = folder
			out = append(out, f)
		}
	}
	return out, nil
}

func (l *Listing) load() {
	f, err := os.Open(l.Path)
	if err != nil {
		l.err = fmt.Errorf("listing: %w", err)
		return
	}
	defer f.Close()

	recs, err := fileio.ReadMaps(f, l.Path, 1)
	if err != nil {
		l.err = fmt.Errorf("listing %s: %w", filepath.Base(l.Path), err)
		return
	}
	for _, m := range recs {
		l.files = append(l.files, model.ImageFile{
			Name:     m["name"],
			ID:       m["id"],
			Download: m["download"],
			Folder:   m["folder"],
		})
	}
}
