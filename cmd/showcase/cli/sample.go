// Package cli implements the offline showcase commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rksiitd1/amazing-dashboard/internal/showcase"
	"github.com/rksiitd1/amazing-dashboard/internal/synthetic"
)

// SampleOptions defines available flags for the sample command.
type SampleOptions struct {
	// Pass replays a page's render pass; empty starts a fresh one.
	Pass   string
	Out    string
	Stdout io.Writer
	Stderr io.Writer
}

// SampleCommand writes the synthetic series of a render pass as CSV.
func SampleCommand(opts SampleOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	pass := showcase.NewPass(time.Now())
	if opts.Pass != "" {
		replayed, err := showcase.ReplayPass(opts.Pass, time.Now())
		if err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "sample: %v\n", err)
			return 1
		}
		pass = replayed
	}

	out := opts.Stdout
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "sample: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	if err := synthetic.WriteCSV(out, synthetic.Generate(pass.Seed())); err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "sample: write csv: %v\n", err)
		return 1
	}
	if opts.Out != "" {
		_, _ = fmt.Fprintf(opts.Stderr, "wrote pass %s to %s\n", pass.ID, opts.Out)
	}
	return 0
}
