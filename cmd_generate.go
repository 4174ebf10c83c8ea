package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"frt-offers/domain"
)

var (
	requestFile string
	jsonOutput  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render one firm offer from a JSON request",
	Long: `Reads an offer request as JSON (from --file, or stdin) and prints the
firm offer text. With --json the full result including the summary is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if requestFile != "" && requestFile != "-" {
			f, err := os.Open(requestFile)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		var req domain.OfferRequest
		dec := json.NewDecoder(in)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return fmt.Errorf("invalid request: %w", err)
		}

		a, err := newApp(cmd.Context(), cfg, logger, false)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.offers.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		_, err = fmt.Fprintln(out, result.FirmOfferText)
		return err
	},
}

func init() {
	generateCmd.Flags().StringVarP(&requestFile, "file", "f", "", "request JSON file (default stdin)")
	generateCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full result as JSON")
}
