package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long: `Show aggregate statistics over the capture corpus: totals,
per-location face counts and daily activity.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("json", false, "Output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	cfg := config.Load()
	ctx := context.Background()

	svc, pool, err := setupService(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	stats, err := svc.Stats(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(stats)
	}

	fmt.Printf("Observations:      %d\n", stats.TotalObservations)
	fmt.Printf("With faces:        %d\n", stats.WithFaces)
	fmt.Printf("Total faces:       %d\n", stats.TotalFaces)
	fmt.Printf("Fully identified:  %d\n", stats.FullyIdentified)
	if stats.BusiestLocation != "" {
		fmt.Printf("Busiest location:  %s\n", stats.BusiestLocation)
	}

	if len(stats.Locations) > 0 {
		fmt.Println("\nFaces by location:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, loc := range stats.Locations {
			fmt.Fprintf(w, "  %s\t%d\n", loc.Location, loc.Count)
		}
		w.Flush()
	}

	if len(stats.DailyActivity) > 0 {
		fmt.Println("\nDaily activity:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, day := range stats.DailyActivity {
			fmt.Fprintf(w, "  %s\t%d\n", day.Date, day.Count)
		}
		w.Flush()
	}

	return nil
}
