package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "herodotus",
	Short: "Herodotus Quotes - browse and curate quotations from the Histories",
	Long: `Herodotus Quotes is a tool for browsing and curating quotations
extracted from Herodotus' Histories, attributed to named speakers.

Browse the corpus by book and speaker, draw random quotes, and run the
review workflow that turns parsed quotes into a verified, durable log.
The verified log survives storage hiccups: writes fall back to a local
cache and your in-session work is never discarded.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("herodotus v0.2.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.herodotus/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.herodotus")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match HERODOTUS_*
	viper.SetEnvPrefix("HERODOTUS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, the config file, and flags into one Config.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("data.quotes_path"); v != "" {
		cfg.Data.QuotesPath = v
	}
	if v := viper.GetString("data.characters_path"); v != "" {
		cfg.Data.CharactersPath = v
	}
	if v := viper.GetString("store.database_path"); v != "" {
		cfg.Store.DatabasePath = v
	}
	if v := viper.GetString("store.cache_path"); v != "" {
		cfg.Store.CachePath = v
	}
	if v := viper.GetDuration("store.write_timeout"); v > 0 {
		cfg.Store.WriteTimeout = v
	}
	if v := viper.GetString("curation.reject_policy"); v != "" {
		cfg.Curation.RejectPolicy = model.RejectPolicy(v)
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetInt("concurrency.extract_workers"); v > 0 {
		cfg.Concurrency.ExtractWorkers = v
	}
	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.HTTP.Timeout = v
	}
	cfg.Output.Verbose = verbose || viper.GetBool("output.verbose")

	return cfg
}

// timestamp formats warning timestamps consistently across commands.
func timestamp(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}
