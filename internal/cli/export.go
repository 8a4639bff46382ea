package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/miguelito4/herodotus-quotes/internal/store"
)

var exportOut string

// exportCmd writes a timestamped snapshot of the verified log.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the verified log as a timestamped JSON document",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := context.Background()
		cfg := loadConfig()

		durable, openErr := store.OpenSQLite(cfg.Store.DatabasePath)
		var durableBackend store.Backend
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: durable store unavailable, exporting from cache: %v\n", openErr)
		} else {
			durableBackend = durable
			defer func() { _ = durable.Close() }()
		}

		gateway := store.NewGateway(durableBackend, store.NewFileCache(cfg.Store.CachePath), cfg.Store.WriteTimeout)
		verified := gateway.LoadVerified(ctx)
		if len(verified) == 0 {
			fmt.Println("Nothing to export: the verified log is empty.")
			return nil
		}

		now := time.Now()
		out := exportOut
		if out == "" {
			out = store.DefaultExportName(now)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close export file: %w", closeErr)
			}
		}()

		if err := store.ExportSnapshot(f, verified, now); err != nil {
			return err
		}

		fmt.Printf("✓ Exported %d verified quotes to %s\n", len(verified), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: verified_quotes_<date>.json)")
}
