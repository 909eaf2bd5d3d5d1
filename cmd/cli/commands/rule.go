package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/services"
)

// RuleCmd creates the rule command and its subcommands
func RuleCmd(app func() *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage allocation rules",
	}
	cmd.AddCommand(ruleCreateCmd(app), ruleListCmd(app), ruleToggleCmd(app), ruleDeleteCmd(app))
	return cmd
}

func ruleCreateCmd(app func() *AppContext) *cobra.Command {
	var (
		name          string
		ruleType      string
		priority      int
		conditionsStr string
		actionsStr    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an allocation rule",
		Long:  "Create a rule with JSON conditions and actions, e.g. --conditions '{\"min_duration_nights\": 7}' --actions '{\"priority_boost\": 10}'",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			var conditions, actions map[string]any
			if err := json.Unmarshal([]byte(conditionsStr), &conditions); err != nil {
				return fmt.Errorf("invalid --conditions JSON: %w", err)
			}
			if err := json.Unmarshal([]byte(actionsStr), &actions); err != nil {
				return fmt.Errorf("invalid --actions JSON: %w", err)
			}

			r, err := services.CreateRule(a.Ctx, a.Database, a.Logger, model.AllocationRule{
				Name:       name,
				Type:       model.RuleType(ruleType),
				Priority:   priority,
				Active:     true,
				Conditions: conditions,
				Actions:    actions,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created rule %q (%s)\nRule ID: %s\n", r.Name, r.Type, r.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Rule name")
	cmd.Flags().StringVarP(&ruleType, "type", "t", "", "Rule type: guest_type, duration, room_feature, occupancy, time_based, custom")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "Rule priority (higher evaluates first)")
	cmd.Flags().StringVar(&conditionsStr, "conditions", "{}", "Rule conditions as JSON")
	cmd.Flags().StringVar(&actionsStr, "actions", "{}", "Rule actions as JSON")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("type")
	return cmd
}

func ruleListCmd(app func() *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List allocation rules, highest priority first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			rs, err := services.ListRules(a.Ctx, a.Database)
			if err != nil {
				return err
			}
			if len(rs) == 0 {
				fmt.Println("No rules defined")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Name", "Type", "Priority", "Active", "Conditions", "Actions"})
			for _, r := range rs {
				conditions, _ := json.Marshal(r.Conditions)
				actions, _ := json.Marshal(r.Actions)
				t.AppendRow(table.Row{r.ID, r.Name, r.Type, r.Priority, r.Active, string(conditions), string(actions)})
			}
			t.Render()
			return nil
		},
	}
}

func ruleToggleCmd(app func() *AppContext) *cobra.Command {
	var active bool

	cmd := &cobra.Command{
		Use:   "toggle <rule-id>",
		Short: "Enable or disable a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			if err := services.ToggleRule(a.Ctx, a.Database, a.Logger, args[0], active); err != nil {
				return err
			}
			state := "disabled"
			if active {
				state = "enabled"
			}
			fmt.Printf("Rule %s %s\n", args[0], state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&active, "active", true, "Whether the rule should be active")
	return cmd
}

func ruleDeleteCmd(app func() *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <rule-id>",
		Short: "Delete a rule permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			if err := services.DeleteRule(a.Ctx, a.Database, a.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted rule %s\n", args[0])
			return nil
		},
	}
}
