package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/jsonlens/internal/datasource"
	"github.com/vanderheijden86/jsonlens/pkg/config"
	"github.com/vanderheijden86/jsonlens/pkg/debug"
	"github.com/vanderheijden86/jsonlens/pkg/jsontree"
	"github.com/vanderheijden86/jsonlens/pkg/metrics"
	"github.com/vanderheijden86/jsonlens/pkg/ui"
	"github.com/vanderheijden86/jsonlens/pkg/version"
	"github.com/vanderheijden86/jsonlens/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	dbPath := flag.String("db", "", "SQLite database to read from")
	table := flag.String("table", "", "Database table holding JSON fields (default \"records\")")
	recordID := flag.String("record", "", "Record id to load (required with --db)")
	field := flag.String("field", "", "JSON field to view (prompts when omitted with --db)")
	noWatch := flag.Bool("no-watch", false, "Disable live reload on file changes")
	expandDepth := flag.Int("expand-depth", -1, "Expand containers up to this depth on startup")
	flag.Parse()

	if *help {
		fmt.Println("Usage: jsonlens [options] [file|-]")
		fmt.Println("\nAn interactive viewer for JSON documents.")
		fmt.Println("Reads a JSON file, stdin (-), or a field of a SQLite record (--db).")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("jsonlens %s\n", version.Version)
		os.Exit(0)
	}

	appCfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults
		appCfg = config.DefaultConfig()
	}
	if *expandDepth >= 0 {
		appCfg.UI.ExpandDepth = *expandDepth
	}
	if *table != "" {
		appCfg.Source.Table = *table
	}
	if *field == "" {
		*field = appCfg.Source.Field
	}
	if *noWatch {
		appCfg.Watch.Enabled = false
	}

	opts, cleanup, err := resolveSource(*dbPath, *recordID, *field, flag.Arg(0), appCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	// Without a terminal there is no TUI to run: fetch once, pretty-print,
	// exit. Pipelines get the same document the viewer would show.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := printPretty(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m := ui.NewModel(opts)
	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}

	// After the TUI returns the terminal is back to normal; dump the
	// collected timings into the debug log.
	if debug.Enabled() && metrics.Enabled() {
		metrics.LogTimings(debug.Log)
	}
}

// resolveSource turns the CLI arguments into model options: a record source,
// an optional watcher, and the identifiers the source needs. The returned
// cleanup closes whatever was opened.
func resolveSource(dbPath, recordID, field, fileArg string, cfg config.Config) (ui.Options, func(), error) {
	noop := func() {}

	if dbPath != "" {
		if fileArg != "" {
			return ui.Options{}, noop, errors.New("--db and a file argument are mutually exclusive")
		}
		if recordID == "" {
			return ui.Options{}, noop, errors.New("--record is required with --db")
		}
		table := cfg.Source.Table
		if table == "" {
			table = datasource.DefaultTable
		}
		src, err := datasource.OpenSQLite(config.ExpandHome(dbPath), table)
		if err != nil {
			return ui.Options{}, noop, err
		}
		cleanup := func() { src.Close() }

		if field == "" {
			field, err = pickField(src)
			if err != nil {
				cleanup()
				return ui.Options{}, noop, err
			}
		}

		opts := ui.Options{
			Source:     src,
			RecordID:   recordID,
			Field:      field,
			SourcePath: dbPath,
			Config:     cfg,
		}
		if w := startWatcher(src.Path(), cfg); w != nil {
			opts.Watcher = w
			prev := cleanup
			cleanup = func() {
				w.Stop()
				prev()
			}
		}
		return opts, cleanup, nil
	}

	if fileArg == "" || fileArg == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return ui.Options{}, noop, fmt.Errorf("reading stdin: %w", err)
		}
		return ui.Options{
			Source:     datasource.NewStaticSource(string(raw)),
			SourcePath: "(stdin)",
			Config:     cfg,
		}, noop, nil
	}

	path := config.ExpandHome(fileArg)
	src, srcType, err := datasource.Open(path)
	if err != nil {
		return ui.Options{}, noop, err
	}
	if srcType == datasource.SourceTypeSQLite {
		src.Close()
		return ui.Options{}, noop, fmt.Errorf("%s is a SQLite database, use --db", fileArg)
	}

	opts := ui.Options{
		Source:     src,
		SourcePath: fileArg,
		Config:     cfg,
	}
	cleanup := func() { src.Close() }
	if w := startWatcher(path, cfg); w != nil {
		opts.Watcher = w
		prev := cleanup
		cleanup = func() {
			w.Stop()
			prev()
		}
	}
	return opts, cleanup, nil
}

// pickField lists the JSON-capable columns and asks which one to view.
func pickField(src *datasource.SQLiteSource) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fields, err := src.ListJSONFields(ctx)
	if err != nil {
		return "", fmt.Errorf("listing fields: %w", err)
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("no text columns in table %q", src.Table())
	}
	if len(fields) == 1 {
		return fields[0], nil
	}

	var field string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Which field?").
			Options(huh.NewOptions(fields...)...).
			Value(&field),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return field, nil
}

// startWatcher starts live reload for the given path when enabled. Watch
// failures are not fatal: the viewer still works, it just will not refresh.
func startWatcher(path string, cfg config.Config) *watcher.Watcher {
	if !cfg.Watch.Enabled || path == "" {
		return nil
	}

	var wopts []watcher.Option
	if cfg.Watch.Debounce > 0 {
		wopts = append(wopts, watcher.WithDebounceDuration(time.Duration(cfg.Watch.Debounce)))
	}
	if cfg.Watch.PollInterval > 0 {
		wopts = append(wopts, watcher.WithPollInterval(time.Duration(cfg.Watch.PollInterval)))
	}
	if cfg.Watch.ForcePoll {
		wopts = append(wopts, watcher.WithForcePoll(true))
	}

	w, err := watcher.New(path, wopts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
		return nil
	}
	if err := w.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
		return nil
	}
	return w
}

// printPretty fetches the field once and writes the pretty-printed document
// to stdout. An unparseable document is an error here, unlike in the TUI
// where it becomes a visible message.
func printPretty(opts ui.Options) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data, err := datasource.LoadField(ctx, opts.Source, opts.RecordID, opts.Field)
	if err != nil {
		return err
	}
	raw := data.Value.Text
	if data.Value.Null {
		raw = ""
	}

	doc := jsontree.NewDocument(raw)
	if msg := doc.Err(); msg != "" {
		return errors.New(msg)
	}
	fmt.Println(doc.Pretty())
	return nil
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set JSONLENS_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("JSONLENS_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
