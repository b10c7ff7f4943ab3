package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dorkhound",
	Short: "Multi-backend dork query search client",
	Long: `dorkhound runs search-engine dork queries through rotating proxies and
browser identities, caches results on disk, and exports them as CSV, JSON
or console output.

Examples:
  # Run dorks from a file against Google, write CSV and JSON
  dorkhound -f dorks.txt

  # Scope every dork to one target, route through proxies, use the Brave API
  dorkhound -f dorks.txt -t example.org -e brave -p proxies.txt --console

  # Slow down and keep a history of every run
  dorkhound -f dorks.txt -d 5 --history sqlite:dorkhound.db`,
	Version:       version,
	RunE:          runSearch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	flags := rootCmd.Flags()
	flags.StringVarP(&queryFile, "file", "f", "", "File containing dork queries, one per line (required)")
	flags.StringVarP(&target, "target", "t", "", "Restrict every query to this domain (site: prefix)")
	flags.StringVarP(&engineName, "engine", "e", "google", "Search backend: google, bing, brave, duckduckgo, searxng")
	flags.StringVarP(&outputPrefix, "output", "o", "results", "Filename prefix for exported result files")
	flags.Float64VarP(&delaySeconds, "delay", "d", 2, "Minimum delay between live requests, in seconds")
	flags.StringVarP(&proxiesFile, "proxies", "p", "", "File containing proxy URLs, one per line")
	flags.BoolVar(&useCache, "cache", false, "Cache results on disk for 24 hours")
	flags.BoolVar(&csvOut, "csv", true, "Export results as CSV")
	flags.BoolVar(&jsonOut, "json", true, "Export results as JSON")
	flags.BoolVar(&consoleOut, "console", false, "Print results to the console")
	flags.Float64Var(&timeoutSeconds, "timeout", 10, "Per-request timeout, in seconds")
	flags.StringVar(&configFile, "config", "", "Config file with backend credentials (default config.json)")
	flags.StringVar(&historyDSN, "history", "", "History store: sqlite:<path> or postgres://<dsn>")
	flags.IntVar(&metricsPort, "metrics-port", 0, "Expose Prometheus metrics on this port (0 disables)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.MarkFlagRequired("file")
}
