package cli

import (
	"strings"
	"time"

	"github.com/omamori-labs/omamori/internal/cli/render"
	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/omamori-labs/omamori/pkg/format"
	"github.com/spf13/cobra"
)

// NewGoalCmd creates the goal command group
func NewGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage savings goals",
	}

	cmd.PersistentFlags().StringP("user", "u", "", "User id (LINE user id)")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(newGoalSetCmd(), newGoalDepositCmd(), newGoalShowCmd())
	return cmd
}

func newGoalSetCmd() *cobra.Command {
	var (
		name     string
		token    string
		decimals uint8
		target   string
		deadline string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a new savings goal, replacing the current one",
		Example: `  omamori goal set -u U123 --name "Kyoto trip" --target 500 --deadline 2026-12-24
  omamori goal set -u U123 --name "Bike" --target 30000 --token jpyc --decimals 18`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			user, _ := cmd.Flags().GetString("user")

			amount, err := format.ParseUnits(target, decimals)
			if err != nil {
				return domain.ValidationError{Field: "target", Reason: err.Error()}
			}

			params := usecase.SetSavingsGoalParams{
				UserID:   user,
				Name:     name,
				Token:    token,
				Decimals: decimals,
				Target:   amount,
			}
			if deadline != "" {
				d, err := time.ParseInLocation("2006-01-02", deadline, time.Local)
				if err != nil {
					return domain.ValidationError{Field: "deadline", Reason: "must be YYYY-MM-DD"}
				}
				// the whole deadline day counts
				d = d.Add(24*time.Hour - time.Second)
				params.Deadline = &d
			}

			status, err := app.SavingsGoals.Set(cmd.Context(), params)
			if err != nil {
				return err
			}
			return renderGoal(cmd, app.Config.JSON, false, status)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Goal name")
	cmd.Flags().StringVar(&token, "token", "usdc", "Token symbol")
	cmd.Flags().Uint8Var(&decimals, "decimals", 6, "Token decimals")
	cmd.Flags().StringVar(&target, "target", "", "Target amount in whole tokens (e.g. 500 or 12.5)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newGoalDepositCmd() *cobra.Command {
	var (
		amount string
		txHash string
	)

	cmd := &cobra.Command{
		Use:     "deposit",
		Short:   "Record a deposit towards the goal",
		Example: `  omamori goal deposit -u U123 --amount 25.5 --tx 0xabc...`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			user, _ := cmd.Flags().GetString("user")

			current, err := app.SavingsGoals.Show(cmd.Context(), user)
			if err != nil {
				return err
			}

			units, err := format.ParseUnits(amount, current.Goal.Decimals)
			if err != nil {
				return domain.ValidationError{Field: "amount", Reason: err.Error()}
			}

			status, err := app.SavingsGoals.Deposit(cmd.Context(), usecase.RecordDepositParams{
				UserID: user,
				Amount: units,
				TxHash: strings.TrimSpace(txHash),
			})
			// the process exits after rendering; let a congratulation go out first
			defer app.Notifier.Wait()
			if err != nil {
				return err
			}
			return renderGoal(cmd, app.Config.JSON, false, status)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount in whole tokens")
	cmd.Flags().StringVar(&txHash, "tx", "", "Deposit transaction hash")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newGoalShowCmd() *cobra.Command {
	var yamlOut bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show goal progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			user, _ := cmd.Flags().GetString("user")

			status, err := app.SavingsGoals.Show(cmd.Context(), user)
			if err != nil {
				return err
			}
			return renderGoal(cmd, app.Config.JSON, yamlOut, status)
		},
	}

	cmd.Flags().BoolVar(&yamlOut, "yaml", false, "Output as YAML")

	return cmd
}

func renderGoal(cmd *cobra.Command, jsonOut, yamlOut bool, status *models.GoalStatus) error {
	f, err := render.ParseOutputFormat(jsonOut, yamlOut)
	if err != nil {
		return err
	}
	return render.NewGoalRenderer(cmd.OutOrStdout(), f).Render(status)
}
