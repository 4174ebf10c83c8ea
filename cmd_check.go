package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"frt-offers/repository"
)

var checkDataCmd = &cobra.Command{
	Use:   "check-data",
	Short: "Validate the reference data files",
	Long: `Loads ports, cargoes, charterers and clauses the same way the server does
at startup and reports the first integrity problem, if any.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := repository.LoadCatalog(referenceSource(cfg.Data))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "reference data OK (version %s)\n", cat.Version())
		fmt.Fprintf(out, "  load ports:      %d\n", len(cat.LoadPorts()))
		fmt.Fprintf(out, "  discharge ports: %d\n", len(cat.DischargePorts()))
		fmt.Fprintf(out, "  cargoes:         %d\n", len(cat.Cargoes()))
		fmt.Fprintf(out, "  charterers:      %d\n", len(cat.Charterers()))
		fmt.Fprintf(out, "  clauses:         %d\n", cat.ClauseCount())
		for _, w := range cat.Warnings() {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
		return nil
	},
}
