package localdir

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/rawbatch"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

// Provider reads raw snapshot exports from a local directory. Files follow
// the scraper's naming scheme, spotrac_<kind>_<period>*.csv, so one period
// can have several vintages side by side; each becomes its own batch. A
// period with no file is simply absent from the result.
type Provider struct {
	dir    string
	logger *logging.Logger
}

func NewProvider(dir string, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.Default()
	}
	return &Provider{dir: dir, logger: logger}
}

func (p *Provider) ListBatches(ctx context.Context, kind rawbatch.Kind, periods []int) ([]rawbatch.Batch, error) {
	out := make([]rawbatch.Batch, 0, len(periods))
	for _, period := range periods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pattern := filepath.Join(p.dir, fmt.Sprintf("spotrac_%s_%d*.csv", kind, period))
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s batches: %w", kind, err)
		}
		sort.Strings(matches)

		for _, path := range matches {
			batch, err := p.readBatch(path, kind, period)
			if err != nil {
				return nil, err
			}
			out = append(out, batch)
		}
	}

	p.logger.InfoContext(ctx, "local raw batches listed",
		"kind", string(kind),
		"dir", p.dir,
		"batches", len(out),
	)
	return out, nil
}

func (p *Provider) readBatch(path string, kind rawbatch.Kind, period int) (rawbatch.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return rawbatch.Batch{}, fmt.Errorf("open raw file %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return rawbatch.Batch{}, fmt.Errorf("stat raw file %s: %w", path, err)
	}

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return rawbatch.Batch{}, fmt.Errorf("parse raw file %s: %w", path, err)
	}
	if len(records) == 0 {
		return rawbatch.Batch{}, fmt.Errorf("raw file %s has no header row", path)
	}

	return rawbatch.Batch{
		Kind:        kind,
		Period:      period,
		Source:      filepath.Base(path),
		Columns:     normalizeHeader(records[0]),
		Rows:        records[1:],
		RetrievedAt: info.ModTime().UTC(),
	}, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, column := range header {
		out[i] = strings.ToLower(strings.TrimSpace(column))
	}
	return out
}
