package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/presenter"
)

type loadFunc func(cmd *cobra.Command, symbol, interval string) (presenter.View, error)

func newShowCmd(load loadFunc) *cobra.Command {
	var (
		interval string
		rows     int
	)

	cmd := &cobra.Command{
		Use:   "show SYMBOL",
		Short: "Print the latest metrics and the recent data table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 {
				return fmt.Errorf("--rows must not be negative")
			}
			v, err := load(cmd, args[0], interval)
			if err != nil {
				return err
			}
			if !v.HasChart {
				return errFetch
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, v.Title)
			fmt.Fprintln(out, v.Caption)
			fmt.Fprintln(out)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, m := range v.Metrics {
				fmt.Fprintf(tw, "%s\t%s\n", m.Label, m.Value)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out)

			recent := v.Rows
			if rows < len(recent) {
				recent = recent[:rows]
			}
			fmt.Fprintln(out, "Recent Data")
			tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "Time\tOpen\tHigh\tLow\tClose\tVolume\tSMA_20\tEMA_50\t")
			for _, r := range recent {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
					r.Time, r.Open, r.High, r.Low, r.Close, r.Volume, r.SMA20, r.EMA50)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&interval, "interval", "i", entity.DefaultInterval.String(), "1min, 5min, 15min, 30min or 60min")
	cmd.Flags().IntVarP(&rows, "rows", "n", presenter.RecentRowCount, "rows of the recent data table")
	return cmd
}
