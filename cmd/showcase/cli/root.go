package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrExit signals a subcommand that already reported its failure.
var ErrExit = errors.New("command failed")

// ServeFunc starts the HTTP server and blocks until ctx is cancelled.
type ServeFunc func(ctx context.Context) error

// NewRootCommand assembles the showcase command tree. Running the binary
// without a subcommand serves the pages.
func NewRootCommand(serve ServeFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "showcase",
		Short:         "Amazing Showcase App: dashboard, data analysis and interactive demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the showcase pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})

	var sample SampleOptions
	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the synthetic time series of a render pass as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sample.Stdout = cmd.OutOrStdout()
			sample.Stderr = cmd.ErrOrStderr()
			return exit(SampleCommand(sample))
		},
	}
	sampleCmd.Flags().StringVar(&sample.Pass, "pass", "", "render pass ID to replay (default: fresh pass)")
	sampleCmd.Flags().StringVarP(&sample.Out, "out", "o", "", "output file path (default: stdout)")
	root.AddCommand(sampleCmd)

	var describe DescribeOptions
	describeCmd := &cobra.Command{
		Use:   "describe <file.csv|file.xlsx>",
		Short: "Print the preview and summary statistics of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			describe.Path = args[0]
			describe.Stdout = cmd.OutOrStdout()
			describe.Stderr = cmd.ErrOrStderr()
			return exit(DescribeCommand(describe))
		},
	}
	describeCmd.Flags().BoolVar(&describe.JSONOutput, "json", false, "print JSON instead of tables")
	root.AddCommand(describeCmd)

	return root
}

func exit(code int) error {
	if code != 0 {
		return fmt.Errorf("%w: exit status %d", ErrExit, code)
	}
	return nil
}
