package cli

import (
	"fmt"
	"log/slog"

	"dcolors/internal/app"
	"dcolors/internal/config"
	"dcolors/internal/repository"
	"dcolors/internal/services/imaging"
	services "dcolors/internal/services/painting_service"

	"github.com/spf13/cobra"
)

func newImportCmd(logger func() *slog.Logger) *cobra.Command {
	var (
		configPath   string
		manifestPath string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-import paintings from a YAML manifest",
		Long: `Reads a manifest of paintings, optimizes every listed image file and
stores each entry in the catalog database configured in --config.

Entries are validated with the same rules as the admin form. Invalid entries
and unreadable images are reported and skipped; the rest are still imported.`,
		Example: `  dcolorsctl import --config config/local.yaml --manifest paintings.yaml

  # Validate and optimize only, nothing is written
  dcolorsctl import --config config/local.yaml --manifest paintings.yaml --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			ctx := cmd.Context()

			cfg := config.MustLoadPath(configPath)

			manifest, err := LoadManifest(manifestPath)
			if err != nil {
				return err
			}

			optimizer := imaging.NewOptimizer(log, app.ImagingOptions(cfg.Imaging))

			var creator PaintingCreator
			if !dryRun {
				repo, err := repository.NewRepository(ctx, cfg.Storage)
				if err != nil {
					return fmt.Errorf("open catalog storage: %w", err)
				}
				defer repo.Close()

				creator = services.NewPaintingService(log, repo.Paintings, nil, services.Options{
					Timeout:  cfg.Storage.Timeout,
					CacheTTL: cfg.Catalog.CacheTTL,
					Locale:   cfg.Catalog.Locale,
				})
			}

			reports, err := NewImporter(log, optimizer, creator).Run(ctx, manifest)
			if err != nil {
				return err
			}

			failed, err := WriteReports(cmd.OutOrStdout(), reports)
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d entries were not imported", failed, len(reports))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the service config file")
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to the YAML manifest")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and optimize without writing to the catalog")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
