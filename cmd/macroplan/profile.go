package macroplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the body profile used for goal computation",
}

var (
	profSex      string
	profAge      int
	profHeight   float64
	profWeight   float64
	profActivity string
	profGoal     string
	profRate     float64
)

func profileFromFlags() (nutrition.Profile, error) {
	sex, err := nutrition.ParseSex(profSex)
	if err != nil {
		return nutrition.Profile{}, err
	}
	activity, err := nutrition.ParseActivity(profActivity)
	if err != nil {
		return nutrition.Profile{}, err
	}
	goal, err := nutrition.ParseGoal(profGoal)
	if err != nil {
		return nutrition.Profile{}, err
	}
	return nutrition.Profile{
		Sex:           sex,
		Age:           profAge,
		HeightCm:      profHeight,
		WeightKg:      profWeight,
		Activity:      activity,
		Goal:          goal,
		RateKgPerWeek: profRate,
	}, nil
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileFromFlags()
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SaveProfile(sqldb, userID, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s\n", userID)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.ProfileByUser(sqldb, userID)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile saved")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sex: %s\nAge: %d\nHeight: %.1f cm\nWeight: %.1f kg\n", p.Sex, p.Age, p.HeightCm, p.WeightKg)
			fmt.Fprintf(out, "Activity: %s\nGoal: %s\nRate: %.2f kg/week\n", p.Activity, p.Goal, p.RateKgPerWeek)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().StringVar(&profSex, "sex", "", "male or female")
	profileSetCmd.Flags().IntVar(&profAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().StringVar(&profActivity, "activity", "moderate", "sedentary, light, moderate, active, very_active")
	profileSetCmd.Flags().StringVar(&profGoal, "goal", "maintain", "cut, maintain, bulk")
	profileSetCmd.Flags().Float64Var(&profRate, "rate", 0, "Weight change in kg/week (negative to lose)")
	_ = profileSetCmd.MarkFlagRequired("sex")
	_ = profileSetCmd.MarkFlagRequired("age")
	_ = profileSetCmd.MarkFlagRequired("height")
	_ = profileSetCmd.MarkFlagRequired("weight")
}
