// Package shell implements the interactive query prompt.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/vegasq/csvselect/internal/logger"
	"github.com/vegasq/csvselect/internal/output"
	"github.com/vegasq/csvselect/internal/reader"
	"github.com/vegasq/csvselect/internal/runner"
	"github.com/vegasq/csvselect/internal/tempfile"
)

// ErrNoResult is returned by .save before any query has succeeded
var ErrNoResult = errors.New("no result to save")

const helpText = `Enter a query, for example:
  SELECT name, age WHERE age > 30

Commands:
  .help            show this help
  .schema          list the columns of the loaded file
  .format <name>   set the output format (csv, tsv, json, jsonl, table)
  .limit <n>       show at most n rows, 0 for all
  .save [path]     write the last result as CSV
  .exit            leave the shell
`

// Shell runs queries typed at a prompt against one table
type Shell struct {
	table     *reader.Table
	format    string
	limit     int
	outputDir string

	// HistoryPath is where prompt history is kept between sessions; "" disables it
	HistoryPath string
	Prompt      string

	last *output.Memory
}

// New creates a shell over table
func New(table *reader.Table, format string, limit int, outputDir string) (*Shell, error) {
	if _, err := output.New(format, io.Discard); err != nil {
		return nil, err
	}
	return &Shell{
		table:     table,
		format:    strings.ToLower(format),
		limit:     limit,
		outputDir: outputDir,
		Prompt:    "csvselect> ",
	}, nil
}

// DefaultHistoryPath returns ~/.csvselect_history, or "" without a home dir
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".csvselect_history")
}

// Run reads lines until .exit or end of input. Errors from individual
// lines are printed to errOut and the prompt continues.
func (s *Shell) Run(out, errOut io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)
	s.loadHistory(line)
	defer s.saveHistory(line)

	fmt.Fprintf(out, "%s: %d columns, %d rows. Type .help for help.\n",
		s.table.Path, len(s.table.Header), s.table.Len())

	for {
		text, err := line.Prompt(s.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(text) == "" {
			continue
		}
		line.AppendHistory(text)

		exit, err := s.Execute(text, out)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		if exit {
			return nil
		}
	}
}

func (s *Shell) loadHistory(line *liner.State) {
	if s.HistoryPath == "" {
		return
	}
	f, err := os.Open(s.HistoryPath)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		logger.Get().Debug("failed to read history", "path", s.HistoryPath, "error", err)
	}
}

func (s *Shell) saveHistory(line *liner.State) {
	if s.HistoryPath == "" {
		return
	}
	f, err := os.Create(s.HistoryPath)
	if err != nil {
		logger.Get().Debug("failed to write history", "path", s.HistoryPath, "error", err)
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}

// Execute handles one input line. It reports whether the shell should exit.
func (s *Shell) Execute(text string, out io.Writer) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	if strings.HasPrefix(text, ".") {
		return s.command(text, out)
	}
	return false, s.query(text, out)
}

func (s *Shell) command(text string, out io.Writer) (bool, error) {
	fields := strings.Fields(text)
	name, args := fields[0], fields[1:]

	switch name {
	case ".exit", ".quit":
		return true, nil

	case ".help":
		fmt.Fprint(out, helpText)

	case ".schema":
		for i, col := range s.table.Columns() {
			fmt.Fprintf(out, "%d\t%s\t%s\n", i+1, col.Name, col.Type)
		}
		fmt.Fprintf(out, "(%d rows)\n", s.table.Len())

	case ".format":
		if len(args) != 1 {
			fmt.Fprintf(out, "format: %s\n", s.format)
			return false, nil
		}
		if _, err := output.New(args[0], io.Discard); err != nil {
			return false, err
		}
		s.format = strings.ToLower(args[0])

	case ".limit":
		if len(args) != 1 {
			fmt.Fprintf(out, "limit: %d\n", s.limit)
			return false, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return false, fmt.Errorf("limit must be a non-negative integer, got %q", args[0])
		}
		s.limit = n

	case ".save":
		if s.last == nil {
			return false, ErrNoResult
		}
		path := tempfile.Name(s.outputDir, ".csv")
		if len(args) > 0 {
			path = args[0]
		}
		if err := s.last.Save(path, ','); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "saved %d rows to %s\n", s.last.Len(), path)

	default:
		return false, fmt.Errorf("unknown command %q, type .help for help", name)
	}
	return false, nil
}

func (s *Shell) query(text string, out io.Writer) error {
	formatter, err := output.New(s.format, out)
	if err != nil {
		return err
	}

	mem := output.NewMemory()
	if _, err := runner.Select(text, s.table.Cursor(), output.Limit(mem, s.limit)); err != nil {
		return err
	}
	s.last = mem

	if err := mem.Replay(formatter); err != nil {
		return err
	}
	if err := formatter.Flush(); err != nil {
		return err
	}
	if s.format == "table" {
		fmt.Fprintf(out, "(%d rows)\n", mem.Len())
	}
	return nil
}

var keywords = []string{"SELECT", "WHERE", ".help", ".schema", ".format", ".limit", ".save", ".exit"}

// complete offers keywords and column names for the word under the cursor
func (s *Shell) complete(line string) []string {
	start := strings.LastIndexAny(line, " \t,") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var candidates []string
	for _, kw := range keywords {
		if strings.HasPrefix(strings.ToLower(kw), strings.ToLower(word)) {
			candidates = append(candidates, prefix+kw)
		}
	}
	for _, col := range s.table.Header {
		if strings.HasPrefix(col, word) {
			candidates = append(candidates, prefix+col)
		}
	}
	sort.Strings(candidates)
	return candidates
}
