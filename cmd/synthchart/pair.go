package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"SynthChart/internal/model"
	"SynthChart/internal/report"
)

var (
	pairBase   string
	pairQuote  string
	pairPeriod string
)

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Print the synthesized chart of one pair",
	RunE:  runPair,
}

func init() {
	pairCmd.Flags().StringVarP(&pairBase, "base", "b", "sETH", "Base synth")
	pairCmd.Flags().StringVarP(&pairQuote, "quote", "q", "sBTC", "Quote synth")
	pairCmd.Flags().StringVarP(&pairPeriod, "period", "p", model.OneDay.Label, "Chart period (ONE_HOUR, FOUR_HOURS, ONE_DAY, ONE_WEEK, ONE_MONTH)")
}

func runPair(cmd *cobra.Command, _ []string) error {
	period, err := model.ParsePeriod(pairPeriod)
	if err != nil {
		return err
	}
	_, _, col, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	chart, err := col.CollectPair(ctx, model.CurrencyKey(pairBase), model.CurrencyKey(pairQuote), period)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), report.FormatPairChart(chart))
	return nil
}
