package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miguelito4/herodotus-quotes/internal/curate"
	"github.com/miguelito4/herodotus-quotes/internal/store"
)

var curateBook string

// curateCmd runs the interactive review workflow.
var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Review quotes one by one and build the verified log",
	Long: `Curate walks one book's quotes in order. For each quote:

  y  verify            n  reject
  Y  verify + mark historically significant
  s  skip (no record)  b  back one quote
  o  set a corrected speaker for this quote
  t  set notes for this quote
  q  quit

Every decision is persisted immediately: to the durable store when it is
reachable, and always to the local cache. A storage failure is reported as
a warning and never discards your work.`,
	RunE: runCurate,
}

func init() {
	rootCmd.AddCommand(curateCmd)
	curateCmd.Flags().StringVar(&curateBook, "book", "", "book to review (required, digit id)")
	_ = curateCmd.MarkFlagRequired("book")
}

func runCurate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := loadConfig()

	cs, err := openCorpus()
	if err != nil {
		return err
	}

	durable, err := store.OpenSQLite(cfg.Store.DatabasePath)
	if err != nil {
		// The session can still run on the cache alone; warn and continue.
		fmt.Fprintf(os.Stderr, "Warning: durable store unavailable: %v\n", err)
	} else {
		defer func() { _ = durable.Close() }()
	}

	var durableBackend store.Backend
	if durable != nil {
		durableBackend = durable
	}
	gateway := store.NewGateway(durableBackend, store.NewFileCache(cfg.Store.CachePath), cfg.Store.WriteTimeout)

	session := curate.NewSession(ctx, cs, gateway,
		curate.WithRejectPolicy(cfg.Curation.RejectPolicy))
	if session.State() == curate.StateError {
		return session.Err()
	}
	if err := session.SelectBook(curateBook); err != nil {
		return err
	}

	fmt.Printf("Reviewing book %s: %d quotes, %d already verified\n",
		curateBook, session.Remaining(), session.VerifiedCount(curateBook))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		current, ok := session.Current()
		if !ok {
			fmt.Printf("\nBook %s exhausted. Verified %d entries (%.0f%%).\n",
				curateBook, session.VerifiedCount(curateBook), session.Progress())
			return nil
		}

		fmt.Printf("\n[%d/%d] %s (confidence %.2f)\n", session.Index()+1,
			session.Index()+session.Remaining(), current.Speaker, current.Confidence)
		fmt.Printf("“%s”\n", current.Text)
		fmt.Print("y/Y/n/s/b/o/t/q> ")

		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		var decisionErr error
		switch input {
		case "y":
			decisionErr = session.Decide(ctx, true, false)
		case "Y":
			decisionErr = session.Decide(ctx, true, true)
		case "n":
			decisionErr = session.Decide(ctx, false, false)
		case "s":
			decisionErr = session.Skip()
		case "b":
			session.Retreat()
		case "o":
			fmt.Print("corrected speaker> ")
			if scanner.Scan() {
				session.SetSpeakerOverride(strings.TrimSpace(scanner.Text()))
			}
		case "t":
			fmt.Print("notes> ")
			if scanner.Scan() {
				session.SetNotes(strings.TrimSpace(scanner.Text()))
			}
		case "q":
			fmt.Printf("Stopped at %d/%d, %.0f%% verified.\n",
				session.Index(), session.Index()+session.Remaining(), session.Progress())
			return nil
		default:
			fmt.Println("unrecognized input")
		}

		reportPersist(decisionErr)
		if input == "y" || input == "Y" || input == "n" {
			fmt.Printf("Progress: %.0f%%\n", session.Progress())
		}
	}
}

// reportPersist surfaces persistence warnings without stopping the session.
func reportPersist(err error) {
	if err == nil {
		return
	}

	var soft *store.PersistError
	var total *store.TotalPersistFailure
	switch {
	case errors.As(err, &soft):
		fmt.Fprintf(os.Stderr, "Warning: %v (last durable save: %s)\n", soft, timestamp(soft.LastDurable))
	case errors.As(err, &total):
		fmt.Fprintf(os.Stderr, "STORAGE FAILURE: %v\nYour work is retained in memory for this session; export it before quitting.\n", total)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
