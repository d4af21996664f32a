// Command xdrdump inspects a raw XDR-encoded file without decoding it
// against any schema: it reports whether the byte count satisfies RFC 4506
// framing (a multiple of four) and prints the content grouped by 4-octet
// word, the unit every XDR item is padded to.
//
// It intentionally cannot decode a file into typed values — the wire format
// is not self-describing, and this package's Non-goals exclude schema
// discovery. Actual decoding needs a Go type and xdrserde.FromBytes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dandax123/xdr-serde/internal/hexdump"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "xdrdump",
		Short:         "Inspect the framing of a raw XDR byte stream",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log framing diagnostics")

	inspect := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Report word alignment and print a 4-octet-grouped hex dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				var err error
				logger, err = zap.NewDevelopment()
				if err != nil {
					return err
				}
			}
			defer logger.Sync() //nolint:errcheck

			buf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("read input", zap.String("file", args[0]), zap.Int("bytes", len(buf)))

			report := hexdump.Inspect(buf)
			fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
			fmt.Fprint(cmd.OutOrStdout(), report.Dump())
			if !report.Aligned {
				return fmt.Errorf("xdrdump: %d bytes is not a multiple of 4 (RFC 4506 §3 violation)", len(buf))
			}
			return nil
		},
	}
	root.AddCommand(inspect)
	return root
}
