package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/FranksOps/dorkhound/internal/cache"
	"github.com/FranksOps/dorkhound/internal/config"
	"github.com/FranksOps/dorkhound/internal/dork"
	"github.com/FranksOps/dorkhound/internal/engine"
	"github.com/FranksOps/dorkhound/internal/metrics"
	"github.com/FranksOps/dorkhound/internal/output"
	"github.com/FranksOps/dorkhound/internal/storage"
	"github.com/FranksOps/dorkhound/internal/storage/postgres"
	"github.com/FranksOps/dorkhound/internal/storage/sqlite"
	"github.com/FranksOps/dorkhound/pkg/proxy"
)

var (
	queryFile      string
	target         string
	engineName     string
	outputPrefix   string
	delaySeconds   float64
	proxiesFile    string
	useCache       bool
	csvOut         bool
	jsonOut        bool
	consoleOut     bool
	timeoutSeconds float64
	configFile     string
	historyDSN     string
	metricsPort    int
	verbose        bool
)

const banner = "" +
	"     _            _    _                           _\n" +
	"  __| | ___  _ __| | _| |__   ___  _   _ _ __   __| |\n" +
	" / _` |/ _ \\| '__| |/ / '_ \\ / _ \\| | | | '_ \\ / _` |\n" +
	"| (_| | (_) | |  |   <| | | | (_) | |_| | | | | (_| |\n" +
	" \\__,_|\\___/|_|  |_|\\_\\_| |_|\\___/ \\__,_|_| |_|\\__,_|\n"

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// readQueries loads dorks from the input file, skipping blank lines and
// '#' comments.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open query file: %w", err)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read query file: %w", err)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("no queries found in %s", path)
	}
	return queries, nil
}

// scopeToTarget prefixes every query with site:<target>.
func scopeToTarget(queries []string, target string) []string {
	if target == "" {
		return queries
	}
	scoped := make([]string, len(queries))
	for i, q := range queries {
		scoped[i] = fmt.Sprintf("site:%s %s", target, q)
	}
	return scoped
}

// validateCredentials fails fast when the selected backend cannot possibly
// answer, instead of burning through the whole batch with empty results.
func validateCredentials(kind engine.Kind, settings config.Settings) error {
	switch kind {
	case engine.KindBing:
		if settings.Bing.APIKey == "" {
			return fmt.Errorf("bing requires an API key: set BING_API_KEY or bing.api_key in the config file")
		}
	case engine.KindBrave:
		if settings.Brave.APIKey == "" {
			return fmt.Errorf("brave requires an API key: set BRAVE_API_KEY or brave.api_key in the config file")
		}
	case engine.KindSearXNG:
		if settings.SearXNG.Endpoint == "" {
			return fmt.Errorf("searxng requires an endpoint: set SEARXNG_ENDPOINT or searxng.endpoint in the config file")
		}
	}
	return nil
}

// openHistory dispatches the --history DSN to a storage backend.
func openHistory(ctx context.Context, dsn string) (storage.Backend, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return sqlite.New(strings.TrimPrefix(dsn, "sqlite:"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported history DSN %q: use sqlite:<path> or postgres://<dsn>", dsn)
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	queries, err := readQueries(queryFile)
	if err != nil {
		return err
	}
	queries = scopeToTarget(queries, target)

	kind, err := engine.ParseKind(engineName)
	if err != nil {
		return err
	}

	settings := config.Load(configFile)
	if err := validateCredentials(kind, settings); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *proxy.Pool
	if proxiesFile != "" {
		pool = proxy.NewPool()
		n, err := pool.LoadFile(proxiesFile)
		if err != nil {
			return err
		}
		logger.Info("loaded proxies", "count", n, "file", proxiesFile)
	}

	var history storage.Backend
	if historyDSN != "" {
		history, err = openHistory(ctx, historyDSN)
		if err != nil {
			return err
		}
		defer history.Close()
	}

	if metricsPort > 0 {
		srv := metrics.Start(metricsPort)
		defer srv.Stop(context.Background())
		logger.Info("metrics server started", "port", metricsPort)
	}

	client, err := dork.New(dork.Config{
		Engine:   kind,
		Delay:    time.Duration(delaySeconds * float64(time.Second)),
		Timeout:  time.Duration(timeoutSeconds * float64(time.Second)),
		UseCache: useCache,
		CacheDir: cache.DefaultDir,
		Proxies:  pool,
		History:  history,
		Logger:   logger,
		Bing:     settings.Bing,
		Brave:    settings.Brave,
		SearXNG:  settings.SearXNG,
	})
	if err != nil {
		return err
	}

	fmt.Print(banner + "\n")
	fmt.Printf("Engine:  %s\n", kind)
	fmt.Printf("Queries: %d\n", len(queries))
	if target != "" {
		fmt.Printf("Target:  %s\n", target)
	}
	if pool != nil {
		fmt.Printf("Proxies: %d\n", pool.Len())
	}
	fmt.Println()

	start := time.Now()
	results := client.SearchMany(ctx, queries)

	if consoleOut {
		if err := output.WriteConsole(os.Stdout, results); err != nil {
			logger.Error("console output failed", "err", err)
		}
	}
	// Each export is attempted independently; one failure must not drop the
	// remaining formats.
	if csvOut {
		if path, err := output.SaveCSV("", outputPrefix, results); err != nil {
			logger.Error("csv export failed", "err", err)
		} else {
			fmt.Printf("CSV written to %s\n", path)
		}
	}
	if jsonOut {
		if path, err := output.SaveJSON("", outputPrefix, results); err != nil {
			logger.Error("json export failed", "err", err)
		} else {
			fmt.Printf("JSON written to %s\n", path)
		}
	}

	fmt.Printf("\nDone: %d queries, %d results in %s\n",
		results.Len(), results.Total(), time.Since(start).Round(time.Millisecond))
	if pool != nil {
		for _, prx := range pool.Snapshot() {
			fmt.Printf("  proxy %s: %d ok, %d failed\n", prx.URL, prx.Successes, prx.Failures)
		}
	}

	return ctx.Err()
}
