package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vegasq/csvselect/internal/config"
	"github.com/vegasq/csvselect/internal/logger"
	"github.com/vegasq/csvselect/internal/output"
	"github.com/vegasq/csvselect/internal/reader"
	"github.com/vegasq/csvselect/internal/runner"
	"github.com/vegasq/csvselect/internal/shell"
	"github.com/vegasq/csvselect/internal/tempfile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "csvselect",
		Short: "Run SELECT queries against CSV, TSV and Parquet files",
		Long: `csvselect runs a small SELECT language against tabular files:

  SELECT * | col [, col ...] [WHERE col <op> value]

where <op> is one of = < > <= >=. Values that look like decimal numbers on
both sides are compared numerically, everything else as text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(cfg.Log)
		},
	}

	root.PersistentFlags().StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "Log format: text, json")

	root.AddCommand(
		newQueryCmd(cfg),
		newSchemaCmd(cfg),
		newShellCmd(cfg),
		newBatchCmd(cfg),
	)
	return root
}

// delimiterFlag registers -d, defaulting to the configured delimiter
func delimiterFlag(cmd *cobra.Command, cfg *config.Config) *string {
	def := ""
	switch cfg.Delimiter {
	case 0:
	case '\t':
		def = `\t`
	default:
		def = string(cfg.Delimiter)
	}
	return cmd.Flags().StringP("delimiter", "d", def, `Input delimiter (default: by extension, "\t" for tab)`)
}

// openTable resolves glob patterns to their first match and loads the file
func openTable(cmd *cobra.Command, pattern, delimiter string) (*reader.Table, error) {
	delim, err := config.ParseDelimiter(delimiter)
	if err != nil {
		return nil, err
	}

	path := pattern
	if strings.ContainsAny(pattern, "*?[") {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", pattern)
		}
		path = matches[0]
		if len(matches) > 1 {
			fmt.Fprintf(cmd.ErrOrStderr(), "# Using %s (%d files matched)\n", path, len(matches))
		}
	}

	table, err := reader.Open(path, delim)
	if err != nil {
		return nil, err
	}
	logger.Get().Debug("loaded table", "path", path, "columns", len(table.Header), "rows", table.Len())
	return table, nil
}

var formatExt = map[string]string{
	"csv":   ".csv",
	"tsv":   ".tsv",
	"json":  ".jsonl",
	"jsonl": ".jsonl",
	"table": ".txt",
}

func newQueryCmd(cfg *config.Config) *cobra.Command {
	var (
		text     string
		format   string
		dest     string
		limit    int
		sanitize bool
	)

	cmd := &cobra.Command{
		Use:   "query -q <query> <file>",
		Short: "Run one query and write the result",
		Example: `  csvselect query -q "SELECT name, age WHERE age > 30" people.csv
  csvselect query -f json -q "SELECT *" people.parquet
  csvselect query -o auto -q "SELECT city WHERE city = Paris" people.csv`,
		Args: cobra.ExactArgs(1),
	}
	delimiter := delimiterFlag(cmd, cfg)
	cmd.Flags().StringVarP(&text, "query", "q", "", "Query to run")
	cmd.Flags().StringVarP(&format, "format", "f", cfg.Format, "Output format: "+strings.Join(output.Formats, ", "))
	cmd.Flags().StringVarP(&dest, "output", "o", "-", `Output file, "-" for stdout, "auto" for a generated file`)
	cmd.Flags().IntVar(&limit, "limit", cfg.Limit, "Limit number of rows (0 = unlimited)")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Escape values that spreadsheets would run as formulas (csv/tsv)")
	_ = cmd.MarkFlagRequired("query")

	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		if limit < 0 {
			return fmt.Errorf("--limit must be non-negative, got %d", limit)
		}
		format = strings.ToLower(format)
		formatter, err := output.New(format, io.Discard)
		if err != nil {
			return err
		}
		if w, ok := formatter.(*output.CSVWriter); ok {
			w.Sanitize = sanitize
		}

		table, err := openTable(cmd, args[0], *delimiter)
		if err != nil {
			return err
		}
		// reject the query before the destination is created or truncated
		expr, err := runner.Prepare(text, table.Header)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if dest != "-" {
			var (
				f         *os.File
				createErr error
			)
			if dest == "auto" {
				f, createErr = tempfile.Create(cfg.OutputDir, formatExt[format])
			} else {
				f, createErr = os.Create(dest)
			}
			if createErr != nil {
				return fmt.Errorf("failed to create output file: %w", createErr)
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil && err == nil {
					err = closeErr
				}
				if err == nil && dest == "auto" {
					fmt.Fprintln(cmd.OutOrStdout(), f.Name())
				}
			}()
			w = f
		}
		formatter.SetOutput(w)

		if _, err := runner.Run(expr, table.Cursor(), output.Limit(formatter, limit)); err != nil {
			return err
		}
		return formatter.Flush()
	}
	return cmd
}

func newSchemaCmd(cfg *config.Config) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema <file>",
		Short: "List the columns of a file",
		Args:  cobra.ExactArgs(1),
	}
	delimiter := delimiterFlag(cmd, cfg)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: "+strings.Join(output.Formats, ", "))

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		formatter, err := output.New(format, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		table, err := openTable(cmd, args[0], *delimiter)
		if err != nil {
			return err
		}

		if err := formatter.SetHeader([]string{"index", "column", "type", "nullable"}); err != nil {
			return err
		}
		for i, col := range table.Columns() {
			row := []string{strconv.Itoa(i + 1), col.Name, col.Type, strconv.FormatBool(col.Nullable)}
			if err := formatter.AppendRow(row); err != nil {
				return err
			}
		}
		if err := formatter.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "# %d rows\n", table.Len())
		return nil
	}
	return cmd
}

func newShellCmd(cfg *config.Config) *cobra.Command {
	var (
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "shell <file>",
		Short: "Query a file interactively",
		Args:  cobra.ExactArgs(1),
	}
	delimiter := delimiterFlag(cmd, cfg)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: "+strings.Join(output.Formats, ", "))
	cmd.Flags().IntVar(&limit, "limit", cfg.Limit, "Limit number of rows (0 = unlimited)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		table, err := openTable(cmd, args[0], *delimiter)
		if err != nil {
			return err
		}
		sh, err := shell.New(table, format, limit, cfg.OutputDir)
		if err != nil {
			return err
		}
		sh.HistoryPath = shell.DefaultHistoryPath()
		return sh.Run(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return cmd
}

func newBatchCmd(cfg *config.Config) *cobra.Command {
	var (
		file      string
		workers   int
		limit     int
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "batch -F <queries.txt> <file>",
		Short: "Run many queries concurrently and save each result",
		Long: `Runs one query per line of the queries file (blank lines and lines
starting with # are skipped). Each result is saved as a CSV file with a
generated name and a summary is printed.`,
		Args: cobra.ExactArgs(1),
	}
	delimiter := delimiterFlag(cmd, cfg)
	cmd.Flags().StringVarP(&file, "file", "F", "", `Queries file, "-" for stdin`)
	cmd.Flags().IntVarP(&workers, "workers", "w", cfg.Workers, "Number of concurrent queries")
	cmd.Flags().IntVar(&limit, "limit", cfg.Limit, "Limit rows per result (0 = unlimited)")
	cmd.Flags().StringVar(&outputDir, "output-dir", cfg.OutputDir, "Directory for result files (default: system temp dir)")
	_ = cmd.MarkFlagRequired("file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if limit < 0 {
			return fmt.Errorf("--limit must be non-negative, got %d", limit)
		}
		queries, err := readQueryFile(cmd, file)
		if err != nil {
			return err
		}
		if len(queries) == 0 {
			return errors.New("no queries to run")
		}

		table, err := openTable(cmd, args[0], *delimiter)
		if err != nil {
			return err
		}

		outcomes, err := runner.Batch(cmd.Context(), table, queries, runner.BatchOptions{
			Workers: workers,
			Limit:   limit,
			Save:    true,
			SaveDir: outputDir,
		})
		runner.WriteSummary(cmd.OutOrStdout(), outcomes)
		if err != nil {
			return err
		}

		failed := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d queries failed", failed, len(outcomes))
		}
		return nil
	}
	return cmd
}

func readQueryFile(cmd *cobra.Command, path string) ([]string, error) {
	if path == "-" {
		return runner.ReadQueries(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open queries file: %w", err)
	}
	defer f.Close()
	return runner.ReadQueries(f)
}
