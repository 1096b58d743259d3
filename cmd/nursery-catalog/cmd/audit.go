package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nursery-catalog/internal/catalog/model"
	"nursery-catalog/internal/fileio"
)

// auditCmd строит отчёт по категориям из уже выгруженных файлов импорта.
func auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit <catalog.csv>...",
		Short: "Print the category report of existing import files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}
			sets, err := auditFiles(args)
			if err != nil {
				return err
			}
			logger.Info().Int("files", len(args)).Int("pages", len(sets)).Msg("audit")
			return fileio.WriteCategoryReport(cmd.OutOrStdout(), sets)
		},
	}
}

func auditFiles(paths []string) (model.CategorySets, error) {
	sets := make(model.CategorySets)
	for _, path := range paths {
		rows, err := readCatalogFile(path)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			// категории несёт только первая строка товара
			if r.ProductPage != "" {
				sets.Add(r.ProductPage, r.Categories...)
			}
		}
	}
	return sets, nil
}

func readCatalogFile(path string) ([]model.CatalogRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := fileio.ReadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
