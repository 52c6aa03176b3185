package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"altscore/internal/app"
)

var incomeExpenses string

var incomeCmd = &cobra.Command{
	Use:   "income <user-id>",
	Short: "Verify a user's income and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ScoreOptions{UserID: args[0]}

		if incomeExpenses != "" {
			expenses, err := decimal.NewFromString(incomeExpenses)
			if err != nil {
				return fmt.Errorf("--expenses must be a decimal amount: %w", err)
			}
			opts.MonthlyExpenses = &expenses
		}

		return getApp().VerifyIncome(cmd.Context(), opts)
	},
}

func init() {
	incomeCmd.Flags().StringVar(&incomeExpenses, "expenses", "", "Reported total monthly expenses for affordability analysis")
}
