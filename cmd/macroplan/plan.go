package macroplan

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/model"
	"github.com/Rruubeenn23/WebCursor/internal/planner"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan meals for a day or a week",
}

var (
	planDate     string
	planMode     string
	planTraining string
	planJSON     bool
)

var planDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Generate a meal plan and shopping list for one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			date, err := resolveDate(sqldb, planDate)
			if err != nil {
				return err
			}
			training, err := resolveTraining(sqldb, date, planTraining)
			if err != nil {
				return err
			}
			mode := planMode
			if !cmd.Flags().Changed("mode") && cfg != nil && cfg.DefaultMode != "" {
				mode = cfg.DefaultMode
			}
			store := service.NewSQLStore(sqldb)
			res, err := planner.New(store, store, store).PlanMyDay(context.Background(), planner.Request{
				UserID:      userID,
				Date:        date,
				Mode:        mode,
				TrainingDay: training,
			})
			if err != nil {
				return err
			}
			if planJSON {
				return printJSON(cmd.OutOrStdout(), "plan", res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan %s (training: %s)\n", res.Date, yesNo(res.TrainingDay))
			fmt.Fprintln(out, "TIME\tFOOD\tQTY\tUNIT\tKCAL")
			for _, it := range res.Items {
				fmt.Fprintf(out, "%s\t%s\t%g\t%s\t%.0f\n", it.Time, it.Food.Name, it.QtyUnits, it.Food.Unit, it.Food.Kcal*it.QtyUnits)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, "SHOPPING\tQTY\tUNIT")
			for _, line := range res.Shopping {
				fmt.Fprintf(out, "%s\t%g\t%s\n", line.Name, line.QtyUnits, line.Unit)
			}
			return nil
		})
	},
}

// resolveTraining honours an explicit --training flag, then an existing plan,
// then the configured training weekdays.
func resolveTraining(sqldb *sql.DB, date, flag string) (bool, error) {
	switch flag {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	case "", "auto":
	default:
		return false, fmt.Errorf("invalid --training %q (use yes, no or auto)", flag)
	}
	existing, err := service.PlanForDate(sqldb, userID, date)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return existing.TrainingDay, nil
	}
	days, err := service.TrainingDays(sqldb)
	if err != nil {
		return false, err
	}
	t, err := parseDay(date)
	if err != nil {
		return false, err
	}
	return slices.Contains(days, t.Weekday()), nil
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored plan for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			date, err := resolveDate(sqldb, planDate)
			if err != nil {
				return err
			}
			plan, err := service.PlanForDate(sqldb, userID, date)
			if err != nil {
				return err
			}
			if plan == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No plan for %s\n", date)
				return nil
			}
			if planJSON {
				return printJSON(cmd.OutOrStdout(), "plan", plan)
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		})
	},
}

func printPlan(out io.Writer, plan *model.DayPlan) {
	fmt.Fprintf(out, "Plan %s (training: %s)", plan.Date, yesNo(plan.TrainingDay))
	if plan.Notes != "" {
		fmt.Fprintf(out, " %s", plan.Notes)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "ID\tTIME\tFOOD\tQTY\tUNIT\tDONE")
	for _, it := range plan.Items {
		fmt.Fprintf(out, "%s\t%s\t%s\t%g\t%s\t%s\n", it.ID, it.Time, it.Food.Name, it.QtyUnits, it.Food.Unit, yesNo(it.Done))
	}
}

var planWeekStart string

var planWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Create day plans for a week with training/rest flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			start, err := resolveDate(sqldb, planWeekStart)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("start") {
				if start, err = weekStartOf(start); err != nil {
					return err
				}
			}
			days, err := service.TrainingDays(sqldb)
			if err != nil {
				return err
			}
			plans, err := service.GenerateWeek(sqldb, userID, start, days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tDAY\tTYPE")
			for _, p := range plans {
				t, _ := parseDay(p.Date)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.Date, t.Weekday().String()[:3], p.Notes)
			}
			return nil
		})
	},
}

var planUndo bool

var planDoneCmd = &cobra.Command{
	Use:   "done <item-id>",
	Short: "Mark a planned item as eaten",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.MarkItemDone(sqldb, args[0], !planUndo); err != nil {
				return err
			}
			state := "done"
			if planUndo {
				state = "pending"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s\n", args[0], state)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planDayCmd, planShowCmd, planWeekCmd, planDoneCmd)

	for _, c := range []*cobra.Command{planDayCmd, planShowCmd} {
		c.Flags().StringVar(&planDate, "date", "", "Date YYYY-MM-DD (default today)")
		c.Flags().BoolVar(&planJSON, "json", false, "Output JSON")
	}
	planDayCmd.Flags().StringVar(&planMode, "mode", string(planner.ModeReplace), "replace or append")
	planDayCmd.Flags().StringVar(&planTraining, "training", "auto", "yes, no or auto (use configured training days)")
	planWeekCmd.Flags().StringVar(&planWeekStart, "start", "", "First day YYYY-MM-DD (default this week's Monday)")
	planDoneCmd.Flags().BoolVar(&planUndo, "undo", false, "Mark the item as not eaten")
}
