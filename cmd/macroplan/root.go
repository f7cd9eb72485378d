package macroplan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/app"
	"github.com/Rruubeenn23/WebCursor/internal/logging"
)

var (
	dbPath     string
	userID     string
	configPath string
	logLevel   string

	cfg *app.Config
)

var rootCmd = &cobra.Command{
	Use:   "macroplan",
	Short: "macroplan computes macro targets and plans your meals from the terminal",
	Long:  "macroplan is a local-first nutrition planner: BMI/BMR/TDEE, macro goals, day plans with shopping lists, and weekly adherence.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = app.DefaultConfigPath(); err != nil {
				return err
			}
		}
		loaded, err := app.LoadConfig(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		logging.Setup(logging.Params{
			LogFileName:   loaded.LogFile,
			LogToStderr:   loaded.LogToStderr,
			LogLevel:      loaded.LogLevel,
			LogFormatJSON: loaded.LogJSON,
		})
		cfg = loaded
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "me", "User the goals and plans belong to")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}
