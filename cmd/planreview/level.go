package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fandolabs/planreview/internal/profile"
)

func newLevelCmd() *cobra.Command {
	var (
		format     string
		listLevels bool
	)

	cmd := &cobra.Command{
		Use:   "level [plan-file]",
		Short: "Classify a plan's security sensitivity level",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listLevels {
				for _, l := range profile.Levels {
					fmt.Printf("%-12s %s\n", l.Level, l.Description)
				}
				return nil
			}

			planPath := ""
			if len(args) > 0 {
				planPath = args[0]
			}
			plan, _, err := readPlan(planPath)
			if err != nil {
				return err
			}

			detection := profile.DetectLevel(plan)

			switch format {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(detection)
			case "text":
				fmt.Printf("%s (confidence %.2f)\n", detection.Level, detection.Confidence)
				fmt.Println(detection.Description)
				if len(detection.MatchedKeywords) > 0 {
					fmt.Printf("matched: %s\n", strings.Join(detection.MatchedKeywords, ", "))
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q: use text or json", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&listLevels, "list-levels", false, "list sensitivity levels and exit")

	return cmd
}
