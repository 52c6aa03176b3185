package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"altscore/internal/app"
)

var (
	simulateMonths  int
	simulateIncome  string
	simulateAltData bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <user-id>",
	Short: "Score a synthetic transaction history through the full pipeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.SimulateOptions{
			UserID:                 args[0],
			Months:                 simulateMonths,
			IncludeAlternativeData: simulateAltData,
		}

		if simulateIncome != "" {
			monthlyIncome, err := decimal.NewFromString(simulateIncome)
			if err != nil {
				return fmt.Errorf("--monthly-income must be a decimal amount: %w", err)
			}
			opts.MonthlyIncome = monthlyIncome
		}

		return getApp().Simulate(cmd.Context(), opts)
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simulateMonths, "months", 6, "Months of synthetic history to generate")
	simulateCmd.Flags().StringVar(&simulateIncome, "monthly-income", "1500", "Synthetic monthly income amount")
	simulateCmd.Flags().BoolVar(&simulateAltData, "alternative-data", false, "Include alternative data signals")
}
