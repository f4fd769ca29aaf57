// Command foldexctl loads a content snapshot into an in-process engine and queries it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/foldex/internal/version"
	foldex "github.com/kailas-cloud/foldex/pkg/sdk"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "foldexctl",
		Usage:   "Search a folder and shared-content snapshot from the command line",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to a JSON snapshot: {\"folders\": [...], \"shared\": [...]}",
				EnvVars: []string{"FOLDEX_SEED_FILE"},
			},
			&cli.Float64Flag{
				Name:  "fuzzy-threshold",
				Usage: "Maximum per-field fuzzy distance in (0, 1]",
				Value: 0.6,
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "Folder nesting limit, 0 for unlimited",
				Value: 64,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a ranked search",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Keep only this kind (folder, item, shared, all)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Keep only records with this exact category",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results (max 100)",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "no-script-aware",
						Usage: "Disable jamo-aware matching for Hangul queries",
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Autocomplete names and tags",
				ArgsUsage: "<prefix>",
				Action:    suggestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of suggestions",
						Value: 5,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Count indexed records by kind",
				Action: statsCommand,
			},
			{
				Name:   "popular",
				Usage:  "List popular queries",
				Action: popularCommand,
			},
		},
	}
}

// openEngine builds an engine from the global flags and indexes the snapshot file.
func openEngine(c *cli.Context) (*foldex.Engine, error) {
	path := c.String("data")
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required (--data)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap foldex.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	eng, err := foldex.New(
		foldex.WithLogger(slog.Default()),
		foldex.WithFuzzyThreshold(c.Float64("fuzzy-threshold")),
		foldex.WithMaxDepth(c.Int("max-depth")),
		foldex.WithCacheSize(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	st, err := eng.IndexSnapshot(ctx(c), snap)
	if err != nil {
		_ = eng.Close()
		return nil, fmt.Errorf("failed to index snapshot: %w", err)
	}
	slog.Debug("snapshot indexed", "path", path, "records", st.TotalItems)
	return eng, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query is required")
	}

	eng, err := openEngine(c)
	if err != nil {
		return err
	}
	defer eng.Close()

	opts := &foldex.SearchOptions{
		Kind:     foldex.Kind(c.String("kind")),
		Category: c.String("category"),
		Limit:    c.Int("limit"),
	}
	if c.Bool("no-script-aware") {
		off := false
		opts.UseScriptAwareMatching = &off
	}

	results, err := eng.SearchScored(ctx(c), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.Bool("json") {
		return writeJSON(c, results)
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tKIND\tID\tNAME\tCATEGORY")
	for _, r := range results {
		fmt.Fprintf(tw, "%.1f\t%s\t%s\t%s\t%s\n", r.Score, r.Kind, r.ID, r.DisplayName, r.Category)
	}
	return tw.Flush()
}

func suggestCommand(c *cli.Context) error {
	eng, err := openEngine(c)
	if err != nil {
		return err
	}
	defer eng.Close()

	items, err := eng.Suggestions(ctx(c), strings.Join(c.Args().Slice(), " "), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("suggestions failed: %w", err)
	}
	return writeLines(c, items)
}

func statsCommand(c *cli.Context) error {
	eng, err := openEngine(c)
	if err != nil {
		return err
	}
	defer eng.Close()

	st, err := eng.Stats(ctx(c))
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}
	if c.Bool("json") {
		return writeJSON(c, st)
	}
	fmt.Fprintf(c.App.Writer, "total: %d\nfolders: %d\nitems: %d\nshared: %d\n",
		st.TotalItems, st.Folders, st.StorageItems, st.SharedFolders)
	return nil
}

func popularCommand(c *cli.Context) error {
	eng, err := foldex.New()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer eng.Close()
	return writeLines(c, eng.PopularQueries())
}

func writeLines(c *cli.Context, lines []string) error {
	if c.Bool("json") {
		return writeJSON(c, lines)
	}
	for _, l := range lines {
		fmt.Fprintln(c.App.Writer, l)
	}
	return nil
}

func writeJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func ctx(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
