package sources

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/inventory"
)

// Sheets читает лист инвентаря из Google Sheets.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheets authenticates with the service account key at credentialsFile.
func NewSheets(ctx context.Context, spreadsheetID, credentialsFile string) (*Sheets, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *Sheets) FetchInventoryRows(ctx context.Context, sheet string) ([][]string, error) {
	rng := sheet + "!" + inventory.Range
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets %s: %w", rng, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, rec := range resp.Values {
		row := make([]string, len(rec))
		for i, v := range rec {
			row[i] = cellString(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellString: UNFORMATTED_VALUE отдаёт числа как float64: 101 → "101", 4.99 → "4.99".
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// Drive листает папки с фото в Google Drive.
type Drive struct {
	svc *drive.Service
}

func NewDrive(ctx context.Context, credentialsFile string) (*Drive, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("drive client: %w", err)
	}
	return &Drive{svc: svc}, nil
}

// FetchImageListing walks every page of the folder listing.
func (d *Drive) FetchImageListing(ctx context.Context, folder string) ([]model.ImageFile, error) {
	var out []model.ImageFile
	token := ""
	for {
		call := d.svc.Files.List().
			Q(fmt.Sprintf("'%s' in parents", folder)).
			Fields("nextPageToken, files(id, name, webContentLink)").
			Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("drive folder %s: %w", folder, err)
		}
		for _, f := range resp.Files {
			out = append(out, model.ImageFile{
				Name:     f.Name,
				ID:       f.Id,
				Download: f.WebContentLink,
				Folder:   folder,
			})
		}
		if token = resp.NextPageToken; token == "" {
			return out, nil
		}
	}
}
