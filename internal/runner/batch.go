package runner

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/panjf2000/ants/v2"

	"github.com/vegasq/csvselect/internal/logger"
	"github.com/vegasq/csvselect/internal/output"
	"github.com/vegasq/csvselect/internal/reader"
	"github.com/vegasq/csvselect/internal/tempfile"
)

// BatchOptions control Batch
type BatchOptions struct {
	Workers int // pool size; < 1 means 1
	Limit   int // per-query row limit; 0 = unlimited

	// Save writes every successful result to a generated file in SaveDir
	Save      bool
	SaveDir   string
	Delimiter rune // delimiter of saved files; 0 = ','
}

// Outcome is the result of one query in a batch
type Outcome struct {
	Index    int
	Query    string
	Result   *output.Memory
	Rows     int
	Path     string // saved result file, if any
	Duration time.Duration
	Err      error
}

// Batch runs queries concurrently against table. Each query reads through
// its own cursor. Outcomes are returned in input order.
//
// A cancelled ctx stops new queries from being submitted; those get
// ctx.Err() as their error and Batch returns it too.
func Batch(ctx context.Context, table *reader.Table, queries []string, opts BatchOptions) ([]Outcome, error) {
	log := logger.Get()

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]Outcome, len(queries))
	var wg sync.WaitGroup

	for i, text := range queries {
		outcomes[i] = Outcome{Index: i, Query: text}

		if err := ctx.Err(); err != nil {
			outcomes[i].Err = err
			continue
		}

		out := &outcomes[i]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					out.Err = fmt.Errorf("query panicked: %v", r)
				}
			}()
			runOne(table, out, opts)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			out.Err = fmt.Errorf("failed to submit query: %w", err)
		}
	}
	wg.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			log.Warn("batch query failed", "index", o.Index, "query", o.Query, "error", o.Err)
		}
	}
	log.Info("batch finished", "queries", len(queries), "failed", failed, "workers", workers)

	return outcomes, ctx.Err()
}

func runOne(table *reader.Table, out *Outcome, opts BatchOptions) {
	start := time.Now()
	defer func() { out.Duration = time.Since(start) }()

	mem := output.NewMemory()
	if _, err := Select(out.Query, table.Cursor(), output.Limit(mem, opts.Limit)); err != nil {
		out.Err = err
		return
	}
	out.Result = mem
	out.Rows = mem.Len()

	if !opts.Save {
		return
	}
	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	path := tempfile.Name(opts.SaveDir, ".csv")
	if err := mem.Save(path, delimiter); err != nil {
		out.Err = err
		return
	}
	out.Path = path
}

// WriteSummary renders one table line per outcome
func WriteSummary(w io.Writer, outcomes []Outcome) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "query", "rows", "file", "error"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, o := range outcomes {
		rows, errText := strconv.Itoa(o.Rows), ""
		if o.Err != nil {
			rows, errText = "-", o.Err.Error()
		}
		table.Append([]string{strconv.Itoa(o.Index + 1), o.Query, rows, o.Path, errText})
	}
	table.Render()
}
