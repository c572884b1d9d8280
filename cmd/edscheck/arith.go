package main

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-eds-dlp/internal/config"
	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/verify"
)

func addCmd(a *app) *cobra.Command {
	var qx, qy string
	var infinity bool
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add the point (qx, qy) to the base point.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, p, err := a.base()
			if err != nil {
				return err
			}
			q := curves.Infinity()
			if !infinity {
				if q, err = (config.PointConfig{X: qx, Y: qy}).Build(c, nil); err != nil {
					return errors.Wrap(err, "second point")
				}
			}
			sum, err := c.Add(p, q)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, pointResultView{
				Curve:  c.String(),
				Op:     fmt.Sprintf("%s + %s", p, q),
				Result: newPointView(sum),
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&qx, "qx", "", "second point x")
	flags.StringVar(&qy, "qy", "", "second point y")
	flags.BoolVar(&infinity, "qinf", false, "second point is the point at infinity")
	return cmd
}

func multCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mult",
		Short: "Compute [k]P.",
		Long: `Compute [k]P. Scalars up to 65536 use repeated addition; larger ones use
double-and-add, or the preset's reference implementation when P is its
generator.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, preset, p, err := a.base()
			if err != nil {
				return err
			}
			k := a.cfg.K
			var q curves.Point
			switch {
			case k <= verify.MaxRepeatedAdd:
				q, err = c.ScalarMult(k, p)
			case preset != nil && p.Equal(preset.Generator):
				q, err = preset.Reference.ScalarBaseMult(big.NewInt(k))
			default:
				q, err = c.ScalarMultBinary(big.NewInt(k), p)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, pointResultView{
				Curve:  c.String(),
				Op:     fmt.Sprintf("[%d]%s", k, p),
				Result: newPointView(q),
			})
		},
	}
	cmd.Flags().Int64("k", 2, "scalar k")
	return cmd
}
