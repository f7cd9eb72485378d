package macroplan

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record weekly body and wellbeing check-ins",
}

var (
	checkinWeek   string
	checkinWeight float64
	checkinWaist  float64
	checkinSleep  float64
	checkinHunger int
	checkinEnergy int
	checkinStress int
	checkinNotes  string
	checkinLimit  int
)

var checkinAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a check-in for a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		in := service.CheckinInput{Notes: checkinNotes}
		if flags.Changed("weight") {
			in.WeightKg = &checkinWeight
		}
		if flags.Changed("waist") {
			in.WaistCm = &checkinWaist
		}
		if flags.Changed("sleep") {
			in.SleepH = &checkinSleep
		}
		if flags.Changed("hunger") {
			in.Hunger = &checkinHunger
		}
		if flags.Changed("energy") {
			in.Energy = &checkinEnergy
		}
		if flags.Changed("stress") {
			in.Stress = &checkinStress
		}
		return withDB(func(sqldb *sql.DB) error {
			date, err := resolveDate(sqldb, checkinWeek)
			if err != nil {
				return err
			}
			if in.WeekStart, err = weekStartOf(date); err != nil {
				return err
			}
			id, err := service.CreateCheckin(sqldb, userID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added check-in %s for week %s\n", id, in.WeekStart)
			return nil
		})
	},
}

var checkinListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent check-ins",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListCheckins(sqldb, userID, checkinLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "WEEK\tWEIGHT\tWAIST\tSLEEP\tHUNGER\tENERGY\tSTRESS\tNOTES")
			for _, c := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", c.WeekStart,
					fmtFloat(c.WeightKg), fmtFloat(c.WaistCm), fmtFloat(c.SleepH),
					fmtInt(c.Hunger), fmtInt(c.Energy), fmtInt(c.Stress), c.Notes)
			}
			return nil
		})
	},
}

func fmtFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func fmtInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func init() {
	rootCmd.AddCommand(checkinCmd)
	checkinCmd.AddCommand(checkinAddCmd, checkinListCmd)

	checkinAddCmd.Flags().StringVar(&checkinWeek, "week", "", "Any date in the week YYYY-MM-DD (default this week)")
	checkinAddCmd.Flags().Float64Var(&checkinWeight, "weight", 0, "Weight in kg")
	checkinAddCmd.Flags().Float64Var(&checkinWaist, "waist", 0, "Waist in cm")
	checkinAddCmd.Flags().Float64Var(&checkinSleep, "sleep", 0, "Average sleep hours")
	checkinAddCmd.Flags().IntVar(&checkinHunger, "hunger", 0, "Hunger 1-5")
	checkinAddCmd.Flags().IntVar(&checkinEnergy, "energy", 0, "Energy 1-5")
	checkinAddCmd.Flags().IntVar(&checkinStress, "stress", 0, "Stress 1-5")
	checkinAddCmd.Flags().StringVar(&checkinNotes, "notes", "", "Free-form notes")

	checkinListCmd.Flags().IntVar(&checkinLimit, "limit", 12, "Max rows")
}
