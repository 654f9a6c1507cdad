package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fandolabs/planreview/internal/profile"
)

func newRouteCmd() *cobra.Command {
	var (
		minMatches   int
		format       string
		listProfiles bool
	)

	cmd := &cobra.Command{
		Use:   "route [plan-file]",
		Short: "Show which reviewer profiles a plan routes to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listProfiles {
				for _, p := range profile.Profiles {
					fmt.Printf("%-12s %s\n", p.ID, p.Description)
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

			detection, err := profile.Detect(plan, minMatches)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(detection)
			case "names":
				if len(detection.Profiles) == 0 {
					fmt.Println(profile.GenericID)
					return nil
				}
				fmt.Println(strings.Join(detection.Profiles, " "))
				return nil
			case "text":
				fmt.Println(detection.Summary)
				for _, id := range detection.Profiles {
					fmt.Printf("  %-12s %s\n", id, strings.Join(detection.DetectedKeywords[id], ", "))
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q: use text, json, or names", format)
			}
		},
	}

	cmd.Flags().IntVar(&minMatches, "min-matches", profile.DefaultMinMatches, "distinct keyword matches required to select a profile")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, or names")
	cmd.Flags().BoolVar(&listProfiles, "list-profiles", false, "list available profiles and exit")

	return cmd
}
