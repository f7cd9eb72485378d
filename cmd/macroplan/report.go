package macroplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Adherence reports",
}

var (
	reportWeek      string
	reportTolerance float64
	reportJSON      bool
)

var reportWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Weekly adherence against the day-adjusted goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			date, err := resolveDate(sqldb, reportWeek)
			if err != nil {
				return err
			}
			start, err := weekStartOf(date)
			if err != nil {
				return err
			}
			tolerance := reportTolerance
			if !cmd.Flags().Changed("tolerance") {
				if tolerance, err = service.AdherenceTolerance(sqldb); err != nil {
					return err
				}
			}
			report, err := service.WeeklyAdherence(sqldb, userID, start, tolerance)
			if err != nil {
				return err
			}
			if reportJSON {
				return printJSON(cmd.OutOrStdout(), "report", report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Week: %s to %s (tolerance %.0f%%)\n", report.WeekStart, report.WeekEnd, report.Tolerance*100)
			fmt.Fprintln(out, "DATE\tKCAL\tGOAL\tP\tC\tF\tSTATUS")
			for _, d := range report.Days {
				status := "skipped"
				if d.Evaluated {
					status = "over"
					if d.Within {
						status = "ok"
					}
				}
				c := d.Status.Consumed
				fmt.Fprintf(out, "%s\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n", d.Date, c.Kcal, d.Status.Goal.Kcal, c.Protein, c.Carbs, c.Fat, status)
			}
			fmt.Fprintf(out, "Within goal: %d/%d evaluated day(s), %d skipped\n", report.WithinDays, report.EvaluatedDays, report.SkippedDays)
			a := report.AvgConsumed
			fmt.Fprintf(out, "Average: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", a.Kcal, a.Protein, a.Carbs, a.Fat)
			if ci := report.Checkin; ci != nil && ci.WeightKg != nil {
				fmt.Fprintf(out, "Check-in weight: %.1f kg\n", *ci.WeightKg)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportWeekCmd)

	reportWeekCmd.Flags().StringVar(&reportWeek, "week", "", "Any date in the week YYYY-MM-DD (default this week)")
	reportWeekCmd.Flags().Float64Var(&reportTolerance, "tolerance", 0.10, "Macro tolerance between 0 and 1 (default from config)")
	reportWeekCmd.Flags().BoolVar(&reportJSON, "json", false, "Output JSON")
}
