package macroplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/planner"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food catalog used for planning",
}

var (
	foodName    string
	foodKcal    float64
	foodProtein float64
	foodCarbs   float64
	foodFat     float64
	foodUnit    string
	foodGrams   float64
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food (macros per unit)",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.CreateFoodInput{
			Name:         foodName,
			Kcal:         foodKcal,
			ProteinG:     foodProtein,
			CarbsG:       foodCarbs,
			FatG:         foodFat,
			Unit:         foodUnit,
			GramsPerUnit: foodGrams,
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateFood(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %s (%s)\n", foodName, id)
			return nil
		})
	},
}

var (
	foodListQuery string
	foodListSort  string
	foodListLimit int
)

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.ListFoods(sqldb, service.FoodFilter{
				Query:   foodListQuery,
				OrderBy: planner.SortKey(foodListSort),
				Limit:   foodListLimit,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tUNIT\tKCAL\tP\tC\tF")
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", f.ID, f.Name, f.Unit, f.Kcal, f.Protein, f.Carbs, f.Fat)
			}
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a food that no plan uses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteFood(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd, foodDeleteCmd)

	foodAddCmd.Flags().StringVar(&foodName, "name", "", "Food name")
	foodAddCmd.Flags().Float64Var(&foodKcal, "kcal", 0, "Calories per unit")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per unit")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbs grams per unit")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams per unit")
	foodAddCmd.Flags().StringVar(&foodUnit, "unit", "100g", "Unit label")
	foodAddCmd.Flags().Float64Var(&foodGrams, "grams-per-unit", 100, "Grams in one unit")
	_ = foodAddCmd.MarkFlagRequired("name")
	_ = foodAddCmd.MarkFlagRequired("kcal")

	foodListCmd.Flags().StringVar(&foodListQuery, "query", "", "Filter by name")
	foodListCmd.Flags().StringVar(&foodListSort, "sort", "", "Sort by protein, carbs or fat (default catalog order)")
	foodListCmd.Flags().IntVar(&foodListLimit, "limit", 50, "Max rows")
}
