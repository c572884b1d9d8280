package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-eds-dlp/internal/verify"
)

func verifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check psi_nk(P) = psi_n([k]P) psi_k(P)^(n^2) for n in [from, to].",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, preset, pt, err := a.base()
			if err != nil {
				return err
			}
			opts := []verify.Option{verify.WithLogger(a.log)}
			if preset != nil {
				opts = append(opts, verify.WithPreset(preset))
			}
			if a.metrics != nil {
				opts = append(opts, verify.WithObserver(a.metrics))
			}
			v := verify.New(c, opts...)
			if a.metrics != nil {
				if err := a.metrics.WatchEvaluator("verify", v.Evaluator()); err != nil {
					return err
				}
			}

			report, err := v.Verify(pt, a.cfg.K, verify.Range{From: a.cfg.From, To: a.cfg.To})
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), a.cfg.Output, newReportView(report)); err != nil {
				return err
			}
			if !report.AllMatched() {
				return errors.Errorf("identity failed for %d of %d rows", len(report.Failures()), len(report.Rows))
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Int64("k", 2, "scalar k, Q = [k]P")
	flags.Int64("from", 1, "first n")
	flags.Int64("to", 10, "last n")
	return cmd
}
