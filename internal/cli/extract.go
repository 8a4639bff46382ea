package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/miguelito4/herodotus-quotes/internal/corpus"
	"github.com/miguelito4/herodotus-quotes/internal/pipeline"
)

var (
	extractOut     string
	extractBooks   []string
	minConfidence  float64
	extractTimeout time.Duration
)

// extractCmd rebuilds the quote corpus from the source volumes.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Fetch the source text and extract the quote corpus",
	Long: `Extract downloads the two Project Gutenberg volumes of the Histories,
splits them into books, and runs attribution-pattern extraction against the
known character set. The result is written as quotes.json for the browse and
curate commands.

Downloads are cached, rate limited, and robots.txt compliant.

Example:
  herodotus extract
  herodotus extract --books 1,2 --min-confidence 0.8`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&extractOut, "out", "", "output path (default: configured quotes path)")
	extractCmd.Flags().StringSliceVar(&extractBooks, "books", nil, "digit book ids to keep (default: all)")
	extractCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "drop quotes below this attribution confidence")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 10*time.Minute, "overall extraction timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg := loadConfig()

	// Character metadata steers speaker resolution; extraction without it
	// resolves almost nothing, so require it.
	characters, err := corpus.LoadCharacters(cfg.Data.CharactersPath)
	if err != nil {
		return fmt.Errorf("load characters: %w", err)
	}
	if len(characters) == 0 {
		return fmt.Errorf("no character metadata at %s; extraction needs the character set", cfg.Data.CharactersPath)
	}

	p := pipeline.NewPipeline(cfg, characters)
	quotes, err := p.Run(ctx, pipeline.VolumeURLs, pipeline.ExtractOptions{
		MinConfidence: minConfidence,
		Books:         extractBooks,
		Workers:       cfg.Concurrency.ExtractWorkers,
	})
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	out := extractOut
	if out == "" {
		out = cfg.Data.QuotesPath
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(quotes); err != nil {
		return fmt.Errorf("write quotes: %w", err)
	}

	fmt.Printf("✓ Extracted %d quotes to %s\n", len(quotes), out)
	return nil
}
