package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/miguelito4/herodotus-quotes/internal/corpus"
	"github.com/miguelito4/herodotus-quotes/internal/model"
	"github.com/miguelito4/herodotus-quotes/internal/query"
	"github.com/miguelito4/herodotus-quotes/internal/search"
)

var (
	bookFilter string
	sortOrder  string
	asJSON     bool
	randSeed   int64
)

// booksCmd lists the books present in the corpus.
var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List books in the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := openCorpus()
		if err != nil {
			return err
		}

		index := search.NewIndex(cs)
		engine := query.NewEngine(cs)

		var rows [][]string
		for _, book := range index.ListBooks() {
			rows = append(rows, []string{book, strconv.Itoa(len(engine.QuotesIn(book)))})
		}
		fmt.Println(renderTable([]string{"Book", "Quotes"}, rows))
		return nil
	},
}

// speakersCmd lists speakers, optionally narrowed by a search query.
var speakersCmd = &cobra.Command{
	Use:   "speakers [query]",
	Short: "List speakers, or search them by name or alias",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := openCorpus()
		if err != nil {
			return err
		}

		index := search.NewIndex(cs)
		engine := query.NewEngine(cs)
		characters := cs.Characters()

		speakers := index.ListSpeakers()
		if len(args) == 1 {
			speakers = index.MatchSpeakers(args[0])
			if len(speakers) == 0 {
				fmt.Printf("No speakers match %q\n", args[0])
				return nil
			}
		}

		var rows [][]string
		for _, speaker := range speakers {
			rows = append(rows, []string{
				speaker,
				characters.DisplayName(speaker),
				strconv.Itoa(len(engine.QuotesFor(speaker, query.BookAll, query.OrderAsc))),
			})
		}
		fmt.Println(renderTable([]string{"Speaker", "Standard Name", "Quotes"}, rows))
		return nil
	},
}

// quotesCmd shows all quotes for one speaker.
var quotesCmd = &cobra.Command{
	Use:   "quotes <speaker>",
	Short: "Show quotes attributed to a speaker",
	Long: `Show all quotes attributed to exactly the given speaker name,
optionally restricted to a single book. Ordering is by numeric book value;
within a book, corpus order is preserved.

Example:
  herodotus quotes Croesus
  herodotus quotes Croesus --book 1 --order desc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := openCorpus()
		if err != nil {
			return err
		}

		order := query.OrderAsc
		if sortOrder == "desc" {
			order = query.OrderDesc
		}

		engine := query.NewEngine(cs)
		quotes := engine.QuotesFor(args[0], bookFilter, order)
		if len(quotes) == 0 {
			fmt.Printf("No quotes for %q in book %q\n", args[0], bookFilter)
			return nil
		}

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(quotes)
		}
		for _, q := range quotes {
			printQuote(q)
		}
		return nil
	},
}

// randomCmd draws one quote uniformly at random.
var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := openCorpus()
		if err != nil {
			return err
		}

		var opts []query.Option
		if randSeed != 0 {
			opts = append(opts, query.WithRand(rand.New(rand.NewSource(randSeed))))
		}

		engine := query.NewEngine(cs, opts...)
		q, err := engine.Random(bookFilter)
		if err != nil {
			if errors.Is(err, query.ErrEmptySelection) {
				fmt.Printf("No quotes in book %q\n", bookFilter)
				return nil
			}
			return err
		}

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(q)
		}
		printQuote(q)
		return nil
	},
}

func printQuote(q model.QuoteRecord) {
	fmt.Printf("\n“%s”\n", q.Text)
	fmt.Printf("  — %s, Book %s", q.Speaker, q.Book)
	if q.ID != "" {
		fmt.Printf(" (%s)", q.ID)
	}
	fmt.Println()
}

// openCorpus loads the corpus from the configured paths.
func openCorpus() (*corpus.Store, error) {
	cfg := loadConfig()
	cs, err := corpus.Load(cfg.Data.QuotesPath, cfg.Data.CharactersPath)
	if err != nil {
		return nil, fmt.Errorf("no corpus available (run 'herodotus extract' first): %w", err)
	}
	return cs, nil
}

func init() {
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(speakersCmd)
	rootCmd.AddCommand(quotesCmd)
	rootCmd.AddCommand(randomCmd)

	quotesCmd.Flags().StringVar(&bookFilter, "book", query.BookAll, "book filter (digit id or 'all')")
	quotesCmd.Flags().StringVar(&sortOrder, "order", "asc", "book sort order (asc or desc)")
	quotesCmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")

	randomCmd.Flags().StringVar(&bookFilter, "book", query.BookAll, "book filter (digit id or 'all')")
	randomCmd.Flags().Int64Var(&randSeed, "seed", 0, "random seed (0 means time-based)")
	randomCmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
}
