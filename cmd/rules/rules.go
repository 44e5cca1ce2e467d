// Package rules prints or saves the effective category rule table.
package rules

import (
	"fmt"

	"fjacquet/icompta-ledger/cmd/root"
	"fjacquet/icompta-ledger/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the rules command
var Cmd = NewCommand()

// NewCommand returns a new rules command with its own flag set.
func NewCommand() *cobra.Command {
	var rulesFile, output string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the category rules in application order",
		Long: `Show the category rules in the order they are applied, as YAML.

Without --rules the built-in table is shown. With -o the table is written to a
file that can be edited and passed back with --rules.

Example:
  icompta-ledger rules -o rules.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("rules") {
				cfg.Categories.RulesFile = rulesFile
			}

			c, err := root.NewContainer(cfg)
			if err != nil {
				return err
			}
			table := c.GetNormalizer().Rules()

			if output != "" {
				if err := c.GetStore().SaveRules(table, output); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rules have been successfully written to \"%s\"\n", output)
				return nil
			}

			data, err := store.MarshalRules(table)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML file with the category rules")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the rules to this file instead of standard output")
	return cmd
}
