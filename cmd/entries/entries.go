// Package entries exports the normalized entries of an iCompta export as CSV
// for review.
package entries

import (
	"fmt"

	"fjacquet/icompta-ledger/cmd/common"
	csvexport "fjacquet/icompta-ledger/internal/common"
	"fjacquet/icompta-ledger/internal/fileutils"
	"fjacquet/icompta-ledger/internal/parsererror"

	"github.com/spf13/cobra"
)

// Cmd represents the entries command
var Cmd = NewCommand()

// NewCommand returns a new entries command with its own flag set.
func NewCommand() *cobra.Command {
	f := &common.ConversionFlags{}
	cmd := &cobra.Command{
		Use:   "entries <input> <account>",
		Short: "Export the normalized entries of an iCompta export as CSV",
		Long: `Export the entries that convert would write, one CSV row per entry, with
the raw and normalized category side by side. Useful to review a rule table.

Example:
  icompta-ledger entries comptes.csv Liabilities:MasterCard -o review.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], args[1])
		},
	}
	f.Register(cmd, "Output CSV file (default: standard output)")
	return cmd
}

func run(cmd *cobra.Command, f *common.ConversionFlags, input, account string) error {
	c, err := f.Setup(cmd)
	if err != nil {
		return err
	}

	opts := f.Options(c, input, account)
	entries, _, err := c.GetConverter().CollectEntries(opts)
	if err != nil {
		return err
	}

	delimiter := c.GetConfig().Delimiter()
	if f.Output == "" {
		return csvexport.WriteEntriesCSV(cmd.OutOrStdout(), entries, delimiter)
	}

	out, err := fileutils.CreateAtomic(f.Output)
	if err != nil {
		return &parsererror.IOError{Path: f.Output, Op: "create", Err: err}
	}
	defer out.Abort()

	if err := csvexport.WriteEntriesCSV(out, entries, delimiter); err != nil {
		return &parsererror.IOError{Path: f.Output, Op: "write", Err: err}
	}
	if err := out.Commit(); err != nil {
		return &parsererror.IOError{Path: f.Output, Op: "write", Err: err}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Entries have been successfully written to \"%s\"\n", f.Output)
	return nil
}
