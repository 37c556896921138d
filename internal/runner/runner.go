// Package runner ties parsing, validation and evaluation together and runs
// batches of queries against one table on a worker pool.
package runner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vegasq/csvselect/internal/logger"
	"github.com/vegasq/csvselect/internal/query"
)

// Prepare parses text and validates it against schema.
func Prepare(text string, schema query.Schema) (*query.Expression, error) {
	expr, err := query.Parse(text)
	if err != nil {
		return nil, err
	}
	if err := query.Validate(expr, schema); err != nil {
		return nil, err
	}
	return expr, nil
}

// Select runs one query against src and streams the result into sink.
// It returns the number of rows handed to sink.
func Select(text string, src query.Dataset, sink query.Sink) (int, error) {
	expr, err := Prepare(text, src.Schema())
	if err != nil {
		logger.Get().Debug("query rejected", "query", text, "error", err)
		return 0, err
	}
	return Run(expr, src, sink)
}

// Run executes an expression returned by Prepare.
func Run(expr *query.Expression, src query.Dataset, sink query.Sink) (int, error) {
	log := logger.Get()
	start := time.Now()

	n, err := query.Execute(expr, src, sink)
	if err != nil {
		log.Warn("query failed", "query", expr.Raw, "error", err)
		return n, err
	}

	log.Debug("query executed", "query", expr.Raw, "rows", n, "duration", time.Since(start))
	return n, nil
}

// ReadQueries reads one query per line. Blank lines and lines starting
// with # are skipped.
func ReadQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	// room for the longest accepted query plus its \r\n
	scanner.Buffer(make([]byte, 64*1024), query.MaxQueryLength+2)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	return queries, nil
}
