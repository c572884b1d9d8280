package main

import (
	"math/big"

	"github.com/spf13/cobra"

	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/divpoly"
	"github.com/smallyu/go-eds-dlp/internal/verify"
)

func demoCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the worked examples.",
		Long: `Run the worked examples: the sequences of P = (0, 0), Q = [7]P = (18, 14)
and Q + P = (21, 0) on y^2 + xy + y = x^3 + x^2 + 21x over F_23, and the
identity check for P = (3, 10), k = 2 on y^2 = x^3 + x + 1 over F_23.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := runDemo(a, count)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, view)
		},
	}
	cmd.Flags().IntVar(&count, "count", 5, "number of sequence terms")
	return cmd
}

func runDemo(a *app, count int) (demoView, error) {
	var view demoView

	paper, err := curves.NewGeneral(big.NewInt(1), big.NewInt(1), big.NewInt(1), big.NewInt(21), big.NewInt(0), big.NewInt(23))
	if err != nil {
		return view, err
	}
	p := paper.PointFromInt64(0, 0)
	q, err := paper.ScalarMult(7, p)
	if err != nil {
		return view, err
	}
	qp, err := paper.Add(q, p)
	if err != nil {
		return view, err
	}

	e := divpoly.New(paper, divpoly.WithLogger(a.log))
	if a.metrics != nil {
		if err := a.metrics.WatchEvaluator("demo", e); err != nil {
			return view, err
		}
	}
	for _, pt := range []curves.Point{p, q, qp} {
		seq, err := e.Sequence(pt, count)
		view.Sequences = append(view.Sequences, newSequenceView(paper, pt, seq, err))
	}

	short, err := curves.NewShort(big.NewInt(1), big.NewInt(1), big.NewInt(23))
	if err != nil {
		return view, err
	}
	opts := []verify.Option{verify.WithLogger(a.log)}
	if a.metrics != nil {
		opts = append(opts, verify.WithObserver(a.metrics))
	}
	report, err := verify.New(short, opts...).Verify(short.PointFromInt64(3, 10), 2, verify.Range{From: 1, To: 10})
	if err != nil {
		return view, err
	}
	view.Reports = append(view.Reports, newReportView(report))
	return view, nil
}
