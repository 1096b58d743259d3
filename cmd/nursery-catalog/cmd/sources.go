package cmd

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nursery-catalog/internal/config"
	"nursery-catalog/internal/snapshot"
	"nursery-catalog/internal/sources"
)

// liveSources: локальные файлы, если заданы, иначе Google Sheets/Drive.
// remote: true, если хотя бы один источник сетевой.
func liveSources(ctx context.Context, cfg config.Config) (rows sources.RowSource, imgs sources.ImageSource, remote bool, err error) {
	switch {
	case cfg.Workbook != "":
		rows = sources.Workbook{Path: cfg.Workbook}
	case cfg.SpreadsheetID != "":
		if rows, err = sources.NewSheets(ctx, cfg.SpreadsheetID, cfg.CredentialsFile); err != nil {
			return nil, nil, false, err
		}
		remote = true
	default:
		return nil, nil, false, errors.New("no inventory source: set workbook or spreadsheet_id")
	}

	switch {
	case cfg.ImageListing != "":
		imgs = &sources.Listing{Path: cfg.ImageListing}
	case len(cfg.ImageFolders) > 0 && cfg.SpreadsheetID != "":
		if imgs, err = sources.NewDrive(ctx, cfg.CredentialsFile); err != nil {
			return nil, nil, false, err
		}
		remote = true
	}
	return rows, imgs, remote, nil
}

// opener собирает источники для сборок. Сетевые источники оборачиваются
// снимком, если задан snapshot_db; run по умолчанию — новый uuid.
type opener struct {
	rows   sources.RowSource
	imgs   sources.ImageSource
	store  *snapshot.Store
	run    string
	logger zerolog.Logger
}

func newOpener(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*opener, error) {
	rows, imgs, remote, err := liveSources(ctx, cfg)
	if err != nil {
		return nil, err
	}
	o := &opener{rows: rows, imgs: imgs, logger: logger}
	if !remote || cfg.SnapshotDB == "" {
		return o, nil
	}

	if o.store, err = snapshot.Open(cfg.SnapshotDB); err != nil {
		return nil, err
	}
	o.run = cfg.SnapshotRun
	if o.run == "" {
		o.run = uuid.NewString()
	}
	logger.Info().Str("db", cfg.SnapshotDB).Str("run", o.run).Msg("snapshot enabled")
	return o, nil
}

func (o *opener) open(refresh bool) (sources.RowSource, sources.ImageSource) {
	if o.store == nil {
		return o.rows, o.imgs
	}
	c := &snapshot.Cached{
		Store:   o.store,
		Run:     o.run,
		Rows:    o.rows,
		Images:  o.imgs,
		Refresh: refresh,
		Logger:  o.logger,
	}
	if o.imgs == nil {
		return c, nil
	}
	return c, c
}

func (o *opener) Close() error {
	if o.store == nil {
		return nil
	}
	return o.store.Close()
}
