// Package convert handles the conversion of an iCompta export into a ledger
// file.
package convert

import (
	"fmt"

	"fjacquet/icompta-ledger/cmd/common"
	"fjacquet/icompta-ledger/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = NewCommand()

// NewCommand returns a new convert command with its own flag set.
func NewCommand() *cobra.Command {
	f := &common.ConversionFlags{}
	cmd := &cobra.Command{
		Use:   "convert <input> <account>",
		Short: "Convert an iCompta CSV export into a ledger file",
		Long: `Convert an iCompta CSV export into a ledger file.

Every row becomes one entry. Expenses are posted to Expenses:<category>, income
is posted to <account> and balanced against Income:<category>.

Example:
  icompta-ledger convert comptes.csv Liabilities:MasterCard -c CAD -o 2016.ledger`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], args[1])
		},
	}
	f.Register(cmd, "Output file (default: input file with a .ledger extension)")
	return cmd
}

func run(cmd *cobra.Command, f *common.ConversionFlags, input, account string) error {
	c, err := f.Setup(cmd)
	if err != nil {
		return err
	}

	res, err := c.GetConverter().Convert(f.Options(c, input, account))
	if err != nil {
		return err
	}

	if res.Skipped > 0 {
		root.Log.Warnf("%d malformed rows were skipped", res.Skipped)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Conversion has been successfully written to \"%s\"\n", res.Output)
	return nil
}
