package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// keysCmd prints the effective bindings after config overrides
func keysCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the effective key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, *flags)
			if err != nil {
				return err
			}
			keys, err := cfg.KeyTable()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, b := range keys.Bindings() {
				fmt.Fprintf(tw, "%s\t%s\n", b.Key, b.Action)
			}
			return tw.Flush()
		},
	}
}
