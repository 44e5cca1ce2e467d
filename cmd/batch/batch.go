// Package batch handles batch processing of files
package batch

import (
	"fmt"

	"fjacquet/icompta-ledger/cmd/common"
	"fjacquet/icompta-ledger/internal/batch"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = NewCommand()

// NewCommand returns a new batch command with its own flag set.
func NewCommand() *cobra.Command {
	f := &common.ConversionFlags{}
	cmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir> <account>",
		Short: "Batch convert the iCompta exports of a directory",
		Long: `Batch convert every iCompta CSV export of an input directory into a ledger
file of the same name in another directory.

Each file is validated and converted independently; a file that fails does not
stop the others.

Example:
  icompta-ledger batch exports/ ledgers/ Liabilities:MasterCard`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], args[1], args[2])
		},
	}
	f.Register(cmd, "")
	return cmd
}

func run(cmd *cobra.Command, f *common.ConversionFlags, inputDir, outputDir, account string) error {
	c, err := f.Setup(cmd)
	if err != nil {
		return err
	}

	template := f.Options(c, "", account)

	p := batch.NewProcessor(c.GetConverter(), c.GetLogger())
	summary, err := p.ConvertDirectory(inputDir, outputDir, template)
	if err != nil {
		return fmt.Errorf("error during batch conversion: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, file := range summary.Files {
		if file.Err != nil {
			fmt.Fprintf(out, "FAILED %s: %v\n", file.Input, file.Err)
			continue
		}
		fmt.Fprintf(out, "Conversion has been successfully written to \"%s\"\n", file.Output)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, len(summary.Files))
	}
	return nil
}
