// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/nthprime/internal/meta"
	"github.com/staranto/nthprime/internal/prime"
)

// CrossCheck runs every finder and the dispatcher for n in 0..=upto and
// returns an error describing the first n on which they disagree.
func CrossCheck(ctx context.Context, upto uint32) error {
	for n := uint32(0); ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		naive := prime.NthNaive(n)
		caching := prime.NthWithCaching(n)
		opt := prime.NthWithCachingOpt(n)
		dispatch := prime.Nth(n)

		if naive != caching || naive != opt || naive != dispatch {
			log.WithFields(log.Fields{
				"n":        n,
				"naive":    naive,
				"caching":  caching,
				"opt":      opt,
				"dispatch": dispatch,
			}).Error("finders disagree")
			return fmt.Errorf("finders disagree at n=%d: naive=%d caching=%d opt=%d dispatch=%d",
				n, naive, caching, opt, dispatch)
		}

		if n == upto {
			return nil
		}
	}
}

// CheckCommandAction cross-checks the finders up to --upto.
func CheckCommandAction(ctx context.Context, cmd *cli.Command) error {
	upto := int64(cmd.Int("upto"))
	if upto < 0 || upto > int64(^uint32(0)) {
		return fmt.Errorf("--upto must be in 0..%d", ^uint32(0))
	}

	if err := CrossCheck(ctx, uint32(upto)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "all finders agree for n in 0..%s\n", humanize.Comma(upto))
	return nil
}

func CheckCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "cross-check the prime finders",
		UsageText: "nthprime check [--upto N]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "upto",
				Usage: "largest n to check",
				Value: 2000,
			},
		},
		Action: CheckCommandAction,
	}
}
