package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nursery-catalog/internal/fileio"
	"nursery-catalog/internal/pipeline"
)

func buildCmd() *cobra.Command {
	var (
		outDir     string
		categories []string
		refresh    bool
		run        string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the storefront import files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.OutputDir = outDir
			}
			if run != "" {
				cfg.SnapshotRun = run
			}

			o, err := newOpener(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer o.Close()

			rows, imgs := o.open(refresh)
			p := &pipeline.Pipeline{Config: cfg, Rows: rows, Images: imgs, Logger: logger}
			res, err := p.Run(cmd.Context(), categories...)
			if err != nil {
				return err
			}

			written, err := pipeline.Write(cfg.OutputDir, res)
			if err != nil {
				return err
			}
			for _, path := range written {
				logger.Info().Str("path", path).Msg("written")
			}
			if n := len(res.Titles.Duplicates()); n > 0 {
				fmt.Fprintf(os.Stderr, "%d duplicate titles, see %s\n", n, pipeline.TitlesFile)
			}
			return fileio.WriteCategoryReport(cmd.OutOrStdout(), res.Categories)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "build only these categories")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the stored snapshot and fetch live data")
	cmd.Flags().StringVar(&run, "run", "", "snapshot run name to read or record")
	return cmd
}
