package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"lawsearch/internal/platform/logger"
	sdomain "lawsearch/internal/services/search/domain"

	"github.com/urfave/cli/v2"
)

func reindex(c *cli.Context, s *session) error {
	res, err := s.search.ReindexAll(c.Context, c.Int("batch-size"))
	if err != nil {
		return err
	}
	logger.Get().Info().
		Int("indexed", res.Indexed).
		Int("failed", res.Failed).
		Int("batches", res.Batches).
		Dur("took", res.Took).
		Msg("reindex finished")
	return printJSON(c.App.Writer, res)
}

func indexOne(c *cli.Context, s *session) error {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return cli.Exit("index-one needs a ruling id", 2)
	}
	res, err := s.search.IndexOne(c.Context, id)
	if err != nil {
		return err
	}
	if err := printJSON(c.App.Writer, res); err != nil {
		return err
	}
	if res.Indexed == 0 {
		return cli.Exit("ruling "+id+" was not indexed: "+res.Detail, 1)
	}
	return nil
}

func count(c *cli.Context, s *session) error {
	n, err := s.search.CountIndexedDocuments(c.Context)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, sdomain.CountResult{Index: s.search.IndexName(), Count: n})
}

func search(c *cli.Context, s *session) error {
	q := strings.TrimSpace(c.String("query"))
	if q == "" && c.NArg() > 0 {
		q = strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	}
	timeout := c.Duration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(c.Context, timeout)
	defer cancel()
	res, err := s.search.Search(ctx, sdomain.Query{Q: q, Limit: c.Int("limit"), Offset: c.Int("offset")})
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, res)
}

func importRulings(c *cli.Context, s *session) error {
	var in io.Reader = os.Stdin
	if path := c.Path("file"); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	sum, err := loadJSONL(ctx, in, s.rulings)
	if err != nil {
		return err
	}
	if err := printJSON(c.App.Writer, sum); err != nil {
		return err
	}
	if sum.Failed > 0 {
		return cli.Exit("some lines were rejected", 1)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
