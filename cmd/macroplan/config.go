package macroplan

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage per-database settings",
}

var (
	cfgTrainingDays string
	cfgTolerance    string
	cfgTimezone     string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			for flag, entry := range map[string]struct{ key, value string }{
				"training-days": {service.ConfigTrainingDays, cfgTrainingDays},
				"tolerance":     {service.ConfigAdherenceTolerance, cfgTolerance},
				"timezone":      {service.ConfigTimezone, cfgTimezone},
			} {
				if !cmd.Flags().Changed(flag) {
					continue
				}
				if err := service.SetConfig(sqldb, entry.key, entry.value); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			values, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, values[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgTrainingDays, "training-days", "", "Comma-separated training weekdays (e.g. mon,wed,fri)")
	configSetCmd.Flags().StringVar(&cfgTolerance, "tolerance", "", "Adherence tolerance between 0 and 1")
	configSetCmd.Flags().StringVar(&cfgTimezone, "timezone", "", "IANA timezone for this database")
}
