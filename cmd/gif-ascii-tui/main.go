package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/lmittmann/tint"

	"github.com/altinukshini/gif-ascii-tui/internal/api"
	"github.com/altinukshini/gif-ascii-tui/internal/cache"
	"github.com/altinukshini/gif-ascii-tui/internal/config"
	"github.com/altinukshini/gif-ascii-tui/internal/model"
	"github.com/altinukshini/gif-ascii-tui/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	apiURL := flag.String("api", "", "Conversion service base URL (default $"+config.EnvAPIURL+" or "+config.DefaultAPIURL+")")
	token := flag.String("token", "", "Bearer token for the conversion service (default $"+config.EnvToken+")")
	gifURL := flag.String("url", "", "Convert the GIF at this URL on startup")
	file := flag.String("file", "", "Upload and convert this .gif or .webp file on startup")
	searchTerm := flag.String("search", "", "Search GIPHY on startup")
	limit := flag.Int("limit", config.DefaultSearchLimit, "Number of search results")
	timeout := flag.Duration("timeout", 60*time.Second, "HTTP request timeout")
	cacheSizeMB := flag.Int("cache-size", 200, "Max result cache size in MB")
	cacheTTL := flag.Duration("cache-ttl", 7*24*time.Hour, "Result cache TTL")
	searchCacheTTL := flag.Duration("search-cache-ttl", 0, "Cache search listings for this long (0 disables)")
	logFile := flag.String("log-file", "", "Write logs to this file")
	debugLog := flag.Bool("debug", false, "Log at debug level, including HTTP traffic")
	printMode := flag.Bool("print", false, "Print the result to stdout instead of starting the TUI")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("gif-ascii-tui", version)
		os.Exit(0)
	}

	sources := 0
	for _, s := range []string{*gifURL, *file, *searchTerm} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		fmt.Fprintln(os.Stderr, "Error: use only one of -url, -file and -search")
		os.Exit(1)
	}

	cfg := config.Config{
		APIURL:         *apiURL,
		Token:          *token,
		SearchLimit:    *limit,
		Timeout:        *timeout,
		CacheDir:       defaultCacheDir(),
		CacheSizeMB:    *cacheSizeMB,
		CacheTTL:       *cacheTTL,
		SearchCacheTTL: *searchCacheTTL,
		LogFile:        *logFile,
		Debug:          *debugLog,
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logOut, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Log error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	opts := api.Options{Logger: logger}
	if cfg.Debug && logOut != nil {
		opts.HTTPLog = logOut
	}
	client, err := api.NewClient(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	results, err := cache.NewResultCache(filepath.Join(cfg.CacheDir, "results"), cfg.CacheSizeMB, cfg.CacheTTL)
	if err != nil {
		// History is optional; keep going without it.
		logger.Warn("result cache unavailable", "dir", cfg.CacheDir, "err", err)
		results = nil
	}

	startup := tui.Startup{URL: *gifURL, File: *file, Search: *searchTerm}
	terminal := term.FromEnv()

	if *printMode {
		if err := runPrint(terminal.Out(), client, terminal, startup, cfg.SearchLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !terminal.IsTerminalOutput() {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal; use -print for non-interactive output")
		os.Exit(1)
	}

	logger.Info("starting", "version", version, "api", cfg.APIURL)
	app := tui.NewApp(cfg, client, results, logger, startup)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "gif-ascii-tui")
	}
	return filepath.Join(os.TempDir(), "gif-ascii-tui")
}

// newLogger builds the process logger. The TUI owns the terminal, so logs
// only go to -log-file; without it they are discarded.
func newLogger(cfg config.Config) (*slog.Logger, io.Writer, func(), error) {
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(
		tint.NewHandler(f, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05.000",
			NoColor:    true,
		}),
	)
	return logger, f, func() { f.Close() }, nil
}

func runPrint(out io.Writer, client *api.Client, terminal term.Term, startup tui.Startup, limit int) error {
	ctx := context.Background()

	switch {
	case startup.Search != "":
		results, err := client.Search(ctx, api.SearchQuery{Term: startup.Search, Limit: limit})
		if err != nil {
			return errors.New(api.Message(err, api.SearchFallback))
		}
		return printResults(out, terminal, results)

	case startup.URL != "", startup.File != "":
		var (
			res *model.ConversionResult
			err error
		)
		if startup.File != "" {
			res, err = client.ConvertFile(ctx, startup.File)
		} else {
			res, err = client.ConvertURL(ctx, startup.URL)
		}
		if err != nil {
			return errors.New(api.Message(err, api.ConvertFallback))
		}
		if err := res.Validate(); err != nil {
			return fmt.Errorf("%s: %w", api.MalformedMessage, err)
		}
		_, err = io.WriteString(out, strings.Join(res.Frames, "\n\n")+"\n")
		return err

	default:
		return errors.New("-print needs one of -url, -file or -search")
	}
}

func printResults(w io.Writer, terminal term.Term, results []model.SearchResult) error {
	isTTY := terminal.IsTerminalOutput()
	width := 80
	if isTTY {
		if tw, _, err := terminal.Size(); err == nil {
			width = tw
		}
	}

	tp := tableprinter.New(w, isTTY, width)
	tp.AddHeader([]string{"ID", "TITLE", "URL"})
	for _, r := range results {
		tp.AddField(r.ID)
		tp.AddField(r.DisplayTitle())
		tp.AddField(r.URL)
		tp.EndRow()
	}
	return tp.Render()
}
