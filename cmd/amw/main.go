// Command amw parses documents in the indentation-sensitive markup this
// module implements and prints the resulting value tree.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petbrain/amw"
)

var verbose bool

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "amw",
		Short: "Parse amw documents",
		Long:  "amw reads one or more documents written in an indentation-sensitive markup and prints the decoded value tree.",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable parser trace logging")
	root.AddCommand(parseCmd(), jsonCmd())
	return root
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file ...]",
		Short: "Parse one or more files in block mode and print the decoded value of each",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, amw.Parse)
		},
	}
}

func jsonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json [file ...]",
		Short: "Parse one or more files as strict JSON and print the decoded value of each",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, amw.ParseJSON)
		},
	}
}

func runParse(cmd *cobra.Command, args []string, parseFn func(io.Reader) (any, error)) error {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		amw.SetLogger(logger)
		defer logger.Sync()
	}
	if len(args) == 0 {
		return parseOneFile(cmd.Context(), "-", parseFn)
	}
	return parseFiles(cmd.Context(), args, parseFn)
}

// parseFiles parses every named file concurrently, bounded by the host's
// GOMAXPROCS, stopping at the first error: parses already running finish,
// and no further file is started (§5's "independent parses over disjoint
// sources may run concurrently").
func parseFiles(ctx context.Context, paths []string, parseFn func(io.Reader) (any, error)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return parseOneFile(ctx, path, parseFn)
		})
	}
	return g.Wait()
}

func parseOneFile(_ context.Context, path string, parseFn func(io.Reader) (any, error)) error {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
	}

	value, err := parseFn(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableMethods: true}
	fmt.Printf("%s:\n%s", path, cfg.Sdump(value))
	return nil
}
