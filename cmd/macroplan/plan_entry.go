package macroplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
	"github.com/Rruubeenn23/WebCursor/internal/planner"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var (
	entryDate    string
	entryTime    string
	entryPending bool

	entryFood string
	entryQty  float64

	quickLabel   string
	quickKcal    float64
	quickProtein float64
	quickCarbs   float64
	quickFat     float64
)

var planAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a catalog food on a day (marked eaten unless --pending)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			date, err := resolveDate(sqldb, entryDate)
			if err != nil {
				return err
			}
			id, err := service.AddFoodItem(sqldb, userID, service.AddFoodItemInput{
				Date:     date,
				Time:     entryTime,
				Food:     entryFood,
				QtyUnits: entryQty,
				Done:     !entryPending,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s x%g on %s at %s (%s)\n", entryFood, entryQty, date, entryTime, id)
			return nil
		})
	},
}

var planQuickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Log raw macros on a day without a catalog food",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			date, err := resolveDate(sqldb, entryDate)
			if err != nil {
				return err
			}
			id, err := service.AddQuickItem(sqldb, userID, service.AddQuickItemInput{
				Date:   date,
				Time:   entryTime,
				Label:  quickLabel,
				Macros: nutrition.MacroGoals{Kcal: quickKcal, Protein: quickProtein, Carbs: quickCarbs, Fat: quickFat},
				Done:   !entryPending,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added quick entry %.0f kcal on %s at %s (%s)\n", quickKcal, date, entryTime, id)
			return nil
		})
	},
}

var (
	applyDate     string
	applyMode     string
	applyTraining string
	applyJSON     bool
)

var planApplyTemplateCmd = &cobra.Command{
	Use:   "apply-template <id-or-name>",
	Short: "Fill a day from a meal template scaled to the day's kcal goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			date, err := resolveDate(sqldb, applyDate)
			if err != nil {
				return err
			}
			training, err := resolveTraining(sqldb, date, applyTraining)
			if err != nil {
				return err
			}
			res, err := service.ApplyTemplate(sqldb, userID, service.ApplyTemplateInput{
				Date:        date,
				Template:    args[0],
				TrainingDay: training,
				Mode:        applyMode,
			})
			if err != nil {
				return err
			}
			if applyJSON {
				return printJSON(cmd.OutOrStdout(), "plan", res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan %s (training: %s) target %.0f kcal, scale x%.2f\n", res.Date, yesNo(res.TrainingDay), res.TargetKcal, res.Factor)
			fmt.Fprintln(out, "TIME\tFOOD\tQTY\tUNIT\tKCAL")
			for _, it := range res.Items {
				fmt.Fprintf(out, "%s\t%s\t%g\t%s\t%.0f\n", it.Time, it.Food.Name, it.QtyUnits, it.Food.Unit, it.Food.Kcal*it.QtyUnits)
			}
			return nil
		})
	},
}

func init() {
	planCmd.AddCommand(planAddCmd, planQuickCmd, planApplyTemplateCmd)

	for _, c := range []*cobra.Command{planAddCmd, planQuickCmd} {
		c.Flags().StringVar(&entryDate, "date", "", "Date YYYY-MM-DD (default today)")
		c.Flags().StringVar(&entryTime, "time", "", "Time HH:MM")
		c.Flags().BoolVar(&entryPending, "pending", false, "Add without marking it eaten")
		_ = c.MarkFlagRequired("time")
	}
	planAddCmd.Flags().StringVar(&entryFood, "food", "", "Food id or name")
	planAddCmd.Flags().Float64Var(&entryQty, "qty", 1, "Quantity in food units")
	_ = planAddCmd.MarkFlagRequired("food")

	planQuickCmd.Flags().StringVar(&quickLabel, "label", "", "Short description")
	planQuickCmd.Flags().Float64Var(&quickKcal, "kcal", 0, "Calories")
	planQuickCmd.Flags().Float64Var(&quickProtein, "protein", 0, "Protein grams")
	planQuickCmd.Flags().Float64Var(&quickCarbs, "carbs", 0, "Carbs grams")
	planQuickCmd.Flags().Float64Var(&quickFat, "fat", 0, "Fat grams")
	_ = planQuickCmd.MarkFlagRequired("kcal")

	planApplyTemplateCmd.Flags().StringVar(&applyDate, "date", "", "Date YYYY-MM-DD (default today)")
	planApplyTemplateCmd.Flags().StringVar(&applyMode, "mode", string(planner.ModeReplace), "replace or append")
	planApplyTemplateCmd.Flags().StringVar(&applyTraining, "training", "auto", "yes, no or auto (use configured training days)")
	planApplyTemplateCmd.Flags().BoolVar(&applyJSON, "json", false, "Output JSON")
}
