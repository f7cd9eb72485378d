package macroplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily calorie and macro goals",
}

var (
	goalKcal    float64
	goalProtein float64
	goalCarbs   float64
	goalFat     float64
	goalDryRun  bool
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set daily goals manually",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := nutrition.MacroGoals{Kcal: goalKcal, Protein: goalProtein, Carbs: goalCarbs, Fat: goalFat}
		return withDB(func(sqldb *sql.DB) error {
			if _, err := service.SaveGoal(sqldb, userID, g, service.GoalSourceManual); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set goal %.0f kcal for %s\n", g.Kcal, userID)
			return nil
		})
	},
}

var goalComputeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute goals from the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.ProfileByUser(sqldb, userID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("no profile for %s (run profile set first)", userID)
			}
			var res nutrition.MacroResult
			if goalDryRun {
				res, err = nutrition.ComputeMacros(*p)
			} else {
				res, err = service.ComputeAndSaveGoal(sqldb, userID, *p)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "BMR: %.0f kcal\nTDEE: %.0f kcal\nTarget: %.0f kcal\n", res.BMR, res.TDEE, res.TargetKcal)
			fmt.Fprintf(out, "Protein: %.0fg\nCarbs: %.0fg\nFat: %.0fg\n", res.ProteinG, res.CarbsG, res.FatG)
			if !goalDryRun {
				fmt.Fprintln(out, "Saved as current goal")
			}
			return nil
		})
	},
}

var goalCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show current goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			goal, err := service.LatestGoal(sqldb, userID)
			if err != nil {
				return err
			}
			if goal == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No goal configured")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Source: %s\nCalories: %.0f\nProtein: %.1fg\nCarbs: %.1fg\nFat: %.1fg\n",
				goal.Source, goal.Goals.Kcal, goal.Goals.Protein, goal.Goals.Carbs, goal.Goals.Fat)
			return nil
		})
	},
}

var goalHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show goal history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			goals, err := service.GoalHistory(sqldb, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "CREATED\tSOURCE\tKCAL\tP\tC\tF")
			for _, g := range goals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n",
					g.CreatedAt.Format("2006-01-02 15:04"), g.Source, g.Goals.Kcal, g.Goals.Protein, g.Goals.Carbs, g.Goals.Fat)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalComputeCmd, goalCurrentCmd, goalHistoryCmd)

	goalSetCmd.Flags().Float64Var(&goalKcal, "kcal", 0, "Daily calorie target")
	goalSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein target grams")
	goalSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carbs target grams")
	goalSetCmd.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat target grams")
	_ = goalSetCmd.MarkFlagRequired("kcal")
	_ = goalSetCmd.MarkFlagRequired("protein")
	_ = goalSetCmd.MarkFlagRequired("carbs")
	_ = goalSetCmd.MarkFlagRequired("fat")

	goalComputeCmd.Flags().BoolVar(&goalDryRun, "dry-run", false, "Print the computed goal without saving it")
}
