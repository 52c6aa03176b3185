package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"altscore/internal/app"
)

var (
	scorePhone      string
	scoreNationalID string
	scoreAltData    bool
	scoreExpenses   string
)

var scoreCmd = &cobra.Command{
	Use:   "score <user-id>",
	Short: "Score a single user and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ScoreOptions{
			UserID:                 args[0],
			PhoneNumber:            scorePhone,
			NationalID:             scoreNationalID,
			IncludeAlternativeData: scoreAltData,
		}

		if scoreExpenses != "" {
			expenses, err := decimal.NewFromString(scoreExpenses)
			if err != nil {
				return fmt.Errorf("--expenses must be a decimal amount: %w", err)
			}
			opts.MonthlyExpenses = &expenses
		}

		return getApp().Score(cmd.Context(), opts)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scorePhone, "phone", "", "Phone number hint for alternative data lookups")
	scoreCmd.Flags().StringVar(&scoreNationalID, "national-id", "", "National ID hint for alternative data lookups")
	scoreCmd.Flags().BoolVar(&scoreAltData, "alternative-data", false, "Include alternative data signals (requires consent)")
	scoreCmd.Flags().StringVar(&scoreExpenses, "expenses", "", "Reported total monthly expenses for affordability analysis")
}
