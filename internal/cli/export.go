package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"altscore/internal/app"
)

var (
	exportUser      string
	exportFrom      string
	exportTo        string
	exportCSVPath   string
	exportPNGPath   string
	exportMaxPoints int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's score history as CSV and/or PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			UserID:    exportUser,
			CSVPath:   exportCSVPath,
			PNGPath:   exportPNGPath,
			MaxPoints: exportMaxPoints,
		}

		if exportFrom != "" {
			from, err := parseDate(exportFrom)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			opts.From = &from
		}
		if exportTo != "" {
			to, err := parseDate(exportTo)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			opts.To = &to
		}

		return getApp().Export(cmd.Context(), opts)
	},
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func init() {
	exportCmd.Flags().StringVar(&exportUser, "user", "", "User whose score history to export")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Window start (RFC3339 or YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Window end (RFC3339 or YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "CSV output path")
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "PNG chart output path")
	exportCmd.Flags().IntVar(&exportMaxPoints, "max-points", 0, "Maximum data points to export (0 = config default)")
}
