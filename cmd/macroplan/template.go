package macroplan

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage meal templates that can be scaled onto a day",
}

var (
	templateName  string
	templateItems []string
)

var templateAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a meal template",
	Example: `  macroplan template add --name "Lean day" \
    --item "Chicken breast:2@08:00" --item "Rice:3@13:00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		items := make([]service.TemplateItemInput, 0, len(templateItems))
		for _, raw := range templateItems {
			it, err := parseTemplateItem(raw)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateTemplate(sqldb, userID, service.CreateTemplateInput{Name: templateName, Items: items})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %s (%s)\n", strings.TrimSpace(templateName), id)
			return nil
		})
	},
}

// parseTemplateItem reads "food:qty" with an optional "@HH:MM" time hint.
func parseTemplateItem(raw string) (service.TemplateItemInput, error) {
	var it service.TemplateItemInput
	spec := strings.TrimSpace(raw)
	if at := strings.LastIndex(spec, "@"); at >= 0 {
		it.TimeHint = strings.TrimSpace(spec[at+1:])
		spec = spec[:at]
	}
	sep := strings.LastIndex(spec, ":")
	if sep <= 0 {
		return it, fmt.Errorf("invalid --item %q (expected food:qty[@HH:MM])", raw)
	}
	qty, err := strconv.ParseFloat(strings.TrimSpace(spec[sep+1:]), 64)
	if err != nil {
		return it, fmt.Errorf("invalid quantity in --item %q", raw)
	}
	it.Food = strings.TrimSpace(spec[:sep])
	it.QtyUnits = qty
	return it, nil
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			templates, err := service.ListTemplates(sqldb, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tITEMS\tKCAL")
			for _, t := range templates {
				kcal := 0.0
				for _, it := range t.Items {
					kcal += it.Food.Kcal * it.QtyUnits
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%.0f\n", t.ID, t.Name, len(t.Items), kcal)
			}
			return nil
		})
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id-or-name>",
	Short: "Show the items of a meal template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			t, err := service.ResolveTemplate(sqldb, userID, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Template %s\n", t.Name)
			fmt.Fprintln(out, "POS\tFOOD\tQTY\tUNIT\tTIME")
			for _, it := range t.Items {
				hint := it.TimeHint
				if hint == "" {
					hint = "-"
				}
				fmt.Fprintf(out, "%d\t%s\t%g\t%s\t%s\n", it.Position, it.Food.Name, it.QtyUnits, it.Food.Unit, hint)
			}
			return nil
		})
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete a meal template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteTemplate(sqldb, userID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateAddCmd, templateListCmd, templateShowCmd, templateDeleteCmd)

	templateAddCmd.Flags().StringVar(&templateName, "name", "", "Template name")
	templateAddCmd.Flags().StringArrayVar(&templateItems, "item", nil, "Item as food:qty[@HH:MM] (repeatable)")
	_ = templateAddCmd.MarkFlagRequired("name")
	_ = templateAddCmd.MarkFlagRequired("item")
}
