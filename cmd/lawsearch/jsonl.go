package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"lawsearch/internal/platform/logger"
	rdomain "lawsearch/internal/services/rulings/domain"
)

// maxLine fits the longest precedent bodies seen in exports
const maxLine = 8 << 20

// importSummary counts what one import did
type importSummary struct {
	Lines   int           `json:"lines"`
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Failed  int           `json:"failed"`
	Errors  []importError `json:"errors,omitempty"`
}

type importError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// maxImportErrors caps the error list, Failed keeps the real count
const maxImportErrors = 50

type upserter interface {
	Upsert(ctx context.Context, in rdomain.UpsertInput) (rdomain.UpsertResult, error)
}

// loadJSONL upserts one ruling per non blank line
// a bad line is counted and skipped, a read error or a cancelled ctx stops the run
func loadJSONL(ctx context.Context, r io.Reader, dst upserter) (importSummary, error) {
	log := logger.Named("import")
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	var sum importSummary
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Lines++

		res, err := upsertLine(ctx, raw, dst)
		if err != nil {
			sum.Failed++
			log.Warn().Err(err).Int("line", line).Msg("ruling rejected")
			if len(sum.Errors) < maxImportErrors {
				sum.Errors = append(sum.Errors, importError{Line: line, Error: err.Error()})
			}
			continue
		}
		if res.Created {
			sum.Created++
		} else {
			sum.Updated++
		}
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("read line %d: %w", line+1, err)
	}
	log.Info().Int("lines", sum.Lines).Int("created", sum.Created).Int("updated", sum.Updated).Int("failed", sum.Failed).Msg("import finished")
	return sum, nil
}

func upsertLine(ctx context.Context, raw []byte, dst upserter) (rdomain.UpsertResult, error) {
	var in rdomain.UpsertInput
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return rdomain.UpsertResult{}, fmt.Errorf("decode: %w", err)
	}
	return dst.Upsert(ctx, in)
}
