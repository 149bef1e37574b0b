package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"stock_dashboard/internal/feature/quotes/domain/entity"
)

func newChartCmd(load loadFunc) *cobra.Command {
	var interval string

	cmd := &cobra.Command{
		Use:   "chart SYMBOL",
		Short: "Print the Plotly figure JSON of the candlestick chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := load(cmd, args[0], interval)
			if err != nil {
				return err
			}
			if v.Figure == nil {
				return errFetch
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v.Figure)
		},
	}

	cmd.Flags().StringVarP(&interval, "interval", "i", entity.DefaultInterval.String(), "1min, 5min, 15min, 30min or 60min")
	return cmd
}
