package macroplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var (
	metricWeight   float64
	metricHeight   float64
	metricAge      int
	metricSex      string
	metricActivity string
)

// metricProfile starts from the saved profile (if any) and applies the flags
// that were set explicitly.
func metricProfile(cmd *cobra.Command, sqldb *sql.DB) (nutrition.Profile, error) {
	var p nutrition.Profile
	saved, err := service.ProfileByUser(sqldb, userID)
	if err != nil {
		return p, err
	}
	if saved != nil {
		p = *saved
	}
	flags := cmd.Flags()
	if flags.Changed("weight") {
		p.WeightKg = metricWeight
	}
	if flags.Changed("height") {
		p.HeightCm = metricHeight
	}
	if flags.Changed("age") {
		p.Age = metricAge
	}
	if flags.Changed("sex") {
		if p.Sex, err = nutrition.ParseSex(metricSex); err != nil {
			return p, err
		}
	}
	if flags.Changed("activity") {
		if p.Activity, err = nutrition.ParseActivity(metricActivity); err != nil {
			return p, err
		}
	}
	return p, nil
}

var bmiCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Calculate body mass index",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := metricProfile(cmd, sqldb)
			if err != nil {
				return err
			}
			if p.WeightKg <= 0 || p.HeightCm <= 0 {
				return fmt.Errorf("--weight and --height are required without a saved profile")
			}
			bmi := nutrition.CalculateBMI(p.WeightKg, p.HeightCm)
			fmt.Fprintf(cmd.OutOrStdout(), "BMI: %.1f (%s)\n", bmi, nutrition.BMICategory(bmi))
			return nil
		})
	},
}

var bmrCmd = &cobra.Command{
	Use:   "bmr",
	Short: "Calculate basal metabolic rate and daily energy expenditure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := metricProfile(cmd, sqldb)
			if err != nil {
				return err
			}
			if p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 || p.Sex == "" {
				return fmt.Errorf("--sex, --age, --weight and --height are required without a saved profile")
			}
			bmr := nutrition.CalculateBMR(p)
			fmt.Fprintf(cmd.OutOrStdout(), "BMR: %.0f kcal\n", bmr)
			if p.Activity == "" {
				return nil
			}
			tdee, err := nutrition.CalculateTDEE(bmr, p.Activity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "TDEE (%s): %.0f kcal\n", p.Activity, tdee)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bmiCmd, bmrCmd)

	for _, c := range []*cobra.Command{bmiCmd, bmrCmd} {
		c.Flags().Float64Var(&metricWeight, "weight", 0, "Weight in kg")
		c.Flags().Float64Var(&metricHeight, "height", 0, "Height in cm")
	}
	bmrCmd.Flags().IntVar(&metricAge, "age", 0, "Age in years")
	bmrCmd.Flags().StringVar(&metricSex, "sex", "", "male or female")
	bmrCmd.Flags().StringVar(&metricActivity, "activity", "", "Activity level for TDEE")
}
