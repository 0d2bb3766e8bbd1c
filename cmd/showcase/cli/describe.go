package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rksiitd1/amazing-dashboard/internal/dataset"
	"github.com/rksiitd1/amazing-dashboard/internal/showcase"
)

// DescribeOptions defines available flags for the describe command.
type DescribeOptions struct {
	Path       string
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// DescribeSummary is the JSON form of the describe output.
type DescribeSummary struct {
	File    string              `json:"file"`
	Rows    int                 `json:"rows"`
	Columns []string            `json:"columns"`
	Preview [][]string          `json:"preview"`
	Stats   map[string][]string `json:"stats"`
	Order   []string            `json:"stat_order"`
}

// DescribeCommand prints the preview and summary statistics of a CSV or
// XLSX file, as the analysis page shows them.
func DescribeCommand(opts DescribeOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if strings.TrimSpace(opts.Path) == "" {
		_, _ = fmt.Fprintln(opts.Stderr, "describe: a file path is required")
		return 1
	}
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "describe: %v\n", err)
		return 1
	}
	table, err := dataset.Read(opts.Path, data)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "describe: %v\n", err)
		return 1
	}
	head := table.Head(showcase.PreviewRows)
	summary := table.Describe()

	if opts.JSONOutput {
		out := DescribeSummary{
			File:    opts.Path,
			Rows:    table.Len(),
			Columns: table.Columns,
			Preview: head.Rows,
			Stats:   make(map[string][]string, len(summary.Rows)),
		}
		for _, row := range summary.Rows {
			out.Order = append(out.Order, row.Stat)
			out.Stats[row.Stat] = row.Cells
		}
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "describe: encode json: %v\n", err)
			return 1
		}
		return 0
	}

	_, _ = fmt.Fprintf(opts.Stdout, "%s: %d rows x %d columns\n\nData Preview\n", opts.Path, table.Len(), len(table.Columns))
	tw := tabwriter.NewWriter(opts.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintf(tw, "\t%s\t\n", strings.Join(head.Columns, "\t"))
	for i, row := range head.Rows {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t\n", i, strings.Join(row, "\t"))
	}
	_ = tw.Flush()

	_, _ = fmt.Fprintln(opts.Stdout, "\nData Statistics")
	tw = tabwriter.NewWriter(opts.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintf(tw, "\t%s\t\n", strings.Join(summary.Columns, "\t"))
	for _, row := range summary.Rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t\n", row.Stat, strings.Join(row.Cells, "\t"))
	}
	_ = tw.Flush()
	return 0
}
