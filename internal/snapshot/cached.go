package snapshot

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/metrics"
	"nursery-catalog/internal/sources"
)

// Cached реализует RowSource и ImageSource поверх снимка. Читает из Store, а при
// промахе (или Refresh) ходит в живые источники и дописывает снимок.
type Cached struct {
	Store   *Store
	Run     string
	Rows    sources.RowSource
	Images  sources.ImageSource
	Refresh bool
	Logger  zerolog.Logger

	mu   sync.Mutex
	snap *Snapshot
}

var (
	_ sources.RowSource   = (*Cached)(nil)
	_ sources.ImageSource = (*Cached)(nil)
)

func (c *Cached) FetchInventoryRows(ctx context.Context, sheet string) ([][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	rows, ok := snap.Rows[sheet]
	if ok && !c.Refresh {
		metrics.SnapshotHitsTotal.WithLabelValues("hit").Inc()
		return rows, nil
	}
	metrics.SnapshotHitsTotal.WithLabelValues(missLabel(c.Refresh)).Inc()

	rows, err = c.Rows.FetchInventoryRows(ctx, sheet)
	if err != nil {
		return nil, err
	}
	snap.Rows[sheet] = rows
	c.Logger.Debug().Str("run", c.Run).Str("sheet", sheet).Int("rows", len(rows)).Msg("snapshot updated")
	return rows, c.Store.Save(ctx, c.Run, snap)
}

func (c *Cached) FetchImageListing(ctx context.Context, folder string) ([]model.ImageFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	files, ok := snap.Images[folder]
	if ok && !c.Refresh {
		metrics.SnapshotHitsTotal.WithLabelValues("hit").Inc()
		return files, nil
	}
	metrics.SnapshotHitsTotal.WithLabelValues(missLabel(c.Refresh)).Inc()

	files, err = c.Images.FetchImageListing(ctx, folder)
	if err != nil {
		return nil, err
	}
	snap.Images[folder] = files
	c.Logger.Debug().Str("run", c.Run).Str("folder", folder).Int("files", len(files)).Msg("snapshot updated")
	return files, c.Store.Save(ctx, c.Run, snap)
}

// load читает снимок один раз; отсутствие снимка — не ошибка.
func (c *Cached) load(ctx context.Context) (*Snapshot, error) {
	if c.snap != nil {
		return c.snap, nil
	}
	snap, err := c.Store.Load(ctx, c.Run)
	switch {
	case errors.Is(err, ErrNotFound):
		snap = New()
	case err != nil:
		return nil, err
	}
	c.snap = snap
	return snap, nil
}

func missLabel(refresh bool) string {
	if refresh {
		return "refresh"
	}
	return "miss"
}
