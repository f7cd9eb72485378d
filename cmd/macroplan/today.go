package macroplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var (
	todayDate string
	todayJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show eaten macros against the day-adjusted goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			date, err := resolveDate(sqldb, todayDate)
			if err != nil {
				return err
			}
			status, err := service.DayStatus(sqldb, userID, date)
			if err != nil {
				return err
			}
			if todayJSON {
				return printJSON(cmd.OutOrStdout(), "today", status)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			if status.HasPlan {
				fmt.Fprintf(out, "Training day: %s\n", yesNo(status.TrainingDay))
				fmt.Fprintf(out, "Meals done: %d/%d\n", status.ItemsDone, status.ItemsTotal)
			} else {
				fmt.Fprintln(out, "Plan: none")
			}
			c := status.Consumed
			fmt.Fprintf(out, "Eaten: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", c.Kcal, c.Protein, c.Carbs, c.Fat)
			if !status.HasGoal {
				fmt.Fprintln(out, "Goal: not set")
				return nil
			}
			g, r, p := status.Goal, status.Remaining, status.Progress
			fmt.Fprintf(out, "Goal: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n", g.Kcal, g.Protein, g.Carbs, g.Fat)
			fmt.Fprintf(out, "Remaining: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", r.Kcal, r.Protein, r.Carbs, r.Fat)
			fmt.Fprintf(out, "Progress: kcal %.0f%% | P %.0f%% | C %.0f%% | F %.0f%%\n", p.Kcal, p.Protein, p.Carbs, p.Fat)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output JSON")
}
