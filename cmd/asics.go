package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sonic-net/qosgen/qos/asic"
)

var asicsCmd = &cobra.Command{
	Use:   "asics",
	Short: "List supported ASIC families and their buffer parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printAsics(cmd.OutOrStdout())
	},
}

func printAsics(w io.Writer) error {
	fmt.Fprintf(w, "%-8s %-10s %-8s %s\n", "FAMILY", "CELL_SIZE", "ENGINES", "ACCOUNTING")
	for _, family := range asic.Families() {
		p, err := asic.Lookup(family)
		if err != nil {
			return err
		}
		acct, err := asic.AccountingOf(family)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-8s %-10d %-8d %s\n", family, p.CellSizeBytes, p.EngineCount, acct)
	}
	return nil
}
