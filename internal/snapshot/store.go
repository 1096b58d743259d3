// Package snapshot keeps fetched sheet rows and photo listings in a local
// sqlite file so repeated runs do not hit the live sources.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nursery-catalog/internal/catalog/model"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot: сырые данные одного запуска.
type Snapshot struct {
	Rows   map[string][][]string        // лист → строки
	Images map[string][]model.ImageFile // папка → файлы
}

func New() *Snapshot {
	return &Snapshot{
		Rows:   make(map[string][][]string),
		Images: make(map[string][]model.ImageFile),
	}
}

type runRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

type sheetRecord struct {
	ID    uint   `gorm:"primaryKey"`
	RunID uint   `gorm:"index;not null"`
	Sheet string `gorm:"not null"`
	Cells string // JSON [][]string
}

// folderRecord отмечает папку, листинг которой сохранён (в том числе пустой).
type folderRecord struct {
	ID     uint   `gorm:"primaryKey"`
	RunID  uint   `gorm:"index;not null"`
	Folder string `gorm:"not null"`
}

type imageRecord struct {
	ID       uint   `gorm:"primaryKey"`
	RunID    uint   `gorm:"index;not null"`
	Folder   string `gorm:"index"`
	Position int
	Name     string
	FileID   string
	Download string
}

// Store: sqlite-хранилище снимков.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite file at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if err := db.AutoMigrate(&runRecord{}, &sheetRecord{}, &folderRecord{}, &imageRecord{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load returns the snapshot saved under run or ErrNotFound.
func (s *Store) Load(ctx context.Context, run string) (*Snapshot, error) {
	db := s.db.WithContext(ctx)

	var r runRecord
	if err := db.Where("name = ?", run).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, run)
		}
		return nil, err
	}

	snap := New()

	var sheets []sheetRecord
	if err := db.Where("run_id = ?", r.ID).Find(&sheets).Error; err != nil {
		return nil, err
	}
	for _, sh := range sheets {
		var rows [][]string
		if err := json.Unmarshal([]byte(sh.Cells), &rows); err != nil {
			return nil, fmt.Errorf("snapshot %s sheet %s: %w", run, sh.Sheet, err)
		}
		snap.Rows[sh.Sheet] = rows
	}

	var folders []folderRecord
	if err := db.Where("run_id = ?", r.ID).Find(&folders).Error; err != nil {
		return nil, err
	}
	for _, f := range folders {
		snap.Images[f.Folder] = []model.ImageFile{}
	}

	var images []imageRecord
	if err := db.Where("run_id = ?", r.ID).Order("folder, position").Find(&images).Error; err != nil {
		return nil, err
	}
	for _, im := range images {
		snap.Images[im.Folder] = append(snap.Images[im.Folder], model.ImageFile{
			Name:     im.Name,
			ID:       im.FileID,
			Download: im.Download,
			Folder:   im.Folder,
		})
	}
	return snap, nil
}

// Save replaces whatever was stored under run.
func (s *Store) Save(ctx context.Context, run string, snap *Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old runRecord
		err := tx.Where("name = ?", run).First(&old).Error
		switch {
		case err == nil:
			if err := tx.Where("run_id = ?", old.ID).Delete(&sheetRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Where("run_id = ?", old.ID).Delete(&folderRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Where("run_id = ?", old.ID).Delete(&imageRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&old).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		r := runRecord{Name: run}
		if err := tx.Create(&r).Error; err != nil {
			return err
		}
		for sheet, rows := range snap.Rows {
			cells, err := json.Marshal(rows)
			if err != nil {
				return err
			}
			if err := tx.Create(&sheetRecord{RunID: r.ID, Sheet: sheet, Cells: string(cells)}).Error; err != nil {
				return err
			}
		}
		for folder, files := range snap.Images {
			if err := tx.Create(&folderRecord{RunID: r.ID, Folder: folder}).Error; err != nil {
				return err
			}
			if len(files) == 0 {
				continue
			}
			recs := make([]imageRecord, 0, len(files))
			for i, f := range files {
				recs = append(recs, imageRecord{
					RunID:    r.ID,
					Folder:   folder,
					Position: i,
					Name:     f.Name,
					FileID:   f.ID,
					Download: f.Download,
				})
			}
			if err := tx.CreateInBatches(recs, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Runs lists stored run names, newest first.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&runRecord{}).Order("created_at desc, id desc").Pluck("name", &names).Error
	return names, err
}
