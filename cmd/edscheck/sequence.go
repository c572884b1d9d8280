package main

import (
	"github.com/spf13/cobra"

	"github.com/smallyu/go-eds-dlp/internal/divpoly"
)

func sequenceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Print psi_0 .. psi_{count-1} at the base point.",
		Long: `Print the division polynomial sequence psi_0 .. psi_{count-1} evaluated at
the base point. Evaluation stops at the first index whose value is undefined
(for example an even index at a point with psi_2 = 0); the values computed
so far are printed together with the error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, pt, err := a.base()
			if err != nil {
				return err
			}
			e := divpoly.New(c, divpoly.WithLogger(a.log))
			if a.metrics != nil {
				if err := a.metrics.WatchEvaluator("sequence", e); err != nil {
					return err
				}
			}
			seq, evalErr := e.Sequence(pt, a.cfg.Count)
			if err := render(cmd.OutOrStdout(), a.cfg.Output, newSequenceView(c, pt, seq, evalErr)); err != nil {
				return err
			}
			return evalErr
		},
	}
	cmd.Flags().Int("count", 10, "number of sequence terms")
	return cmd
}
