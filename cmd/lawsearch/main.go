// Command lawsearch is the operator CLI: rebuild and inspect the search index,
// run ad hoc queries and load rulings from JSON lines
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawsearch/internal/core/version"
	"lawsearch/internal/platform/config"
	"lawsearch/internal/platform/logger"
	sdomain "lawsearch/internal/services/search/domain"

	"github.com/urfave/cli/v2"
)

const (
	defaultTimeout = 10 * time.Second
	defaultImport  = 30 * time.Minute
)

// withSession opens the backends for one command and closes them after
func withSession(use indexUse, fn func(*cli.Context, *session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := open(c.Context, config.New(), c.Command.Name, use)
		if err != nil {
			return err
		}
		defer s.close()
		return fn(c, s)
	}
}

func main() {
	config.LoadDotenv()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:    "lawsearch",
		Usage:   "Maintain and query the court ruling search index",
		Version: version.Info("lawsearch").String(),
		Commands: []*cli.Command{
			{
				Name:  "reindex",
				Usage: "Stream every stored ruling into the search index",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "batch-size", Aliases: []string{"b"}, Usage: "rulings per bulk request, 0 uses CORE_SEARCH_BATCH_SIZE"},
				},
				Action: withSession(indexPersistent, reindex),
			},
			{
				Name:      "index-one",
				Usage:     "Index a single ruling by id",
				ArgsUsage: "<id>",
				Action:    withSession(indexPersistent, indexOne),
			},
			{
				Name:   "count",
				Usage:  "Print the number of indexed documents",
				Action: withSession(indexPersistent, count),
			},
			{
				Name:      "search",
				Usage:     "Run a query against the index",
				ArgsUsage: "[query]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "question text; positional arg is a fallback"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: sdomain.DefaultLimit},
					&cli.IntFlag{Name: "offset", Aliases: []string{"o"}},
					&cli.DurationFlag{Name: "timeout", Value: defaultTimeout},
				},
				Action: withSession(indexScratch, search),
			},
			{
				Name:  "import",
				Usage: "Upsert rulings from a JSON lines file, one ruling object per line",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "path to rulings.jsonl, - reads stdin"},
					&cli.DurationFlag{Name: "timeout", Value: defaultImport},
				},
				Action: withSession(indexScratch, importRulings),
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		l.Error().Err(err).Msg("lawsearch failed")
		stop()
		os.Exit(1)
	}
}
