package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fandolabs/planreview/internal/domain"
	"github.com/fandolabs/planreview/internal/parse"
)

func newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [response-file]",
		Short: "Parse a single reviewer response into findings",
		Long: `parse extracts severity-tagged findings from a reviewer response read
from the named file or stdin. Exit code 1 signals outstanding HIGH or
MEDIUM findings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			response, _, err := readPlan(path)
			if err != nil {
				return err
			}

			result, err := parse.Parse(response)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			case "summary":
				t := result.Totals
				fmt.Printf("%d HIGH, %d MEDIUM, %d LOW, %d NITPICK\n", t.High, t.Medium, t.Low, t.Nitpick)
				if result.ShouldStop {
					fmt.Println(result.StopReason)
				}
			case "counts":
				t := result.Totals
				fmt.Printf("%d %d %d %d\n", t.High, t.Medium, t.Low, t.Nitpick)
			default:
				return fmt.Errorf("unknown format %q: use json, summary, or counts", format)
			}

			if result.Totals.Outstanding() {
				return exitCode(domain.ExitOutstanding)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json, summary, or counts")

	return cmd
}
