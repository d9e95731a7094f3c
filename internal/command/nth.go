// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/nthprime/internal/meta"
	"github.com/staranto/nthprime/internal/prime"
)

// NthResult is one row of nth output.
type NthResult struct {
	N      uint32 `json:"n"`
	Method string `json:"method"`
	Prime  uint32 `json:"prime"`
}

// NthCommandAction prints the n-th prime for every N argument.
func NthCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for nth %v", cmd.Args().Slice())

	if cmd.NArg() == 0 {
		return errors.New("at least one N is required")
	}

	method, err := prime.ParseMethod(cmd.String("method"))
	if err != nil {
		return err
	}
	fn, err := prime.Finder(method)
	if err != nil {
		return err
	}

	results := make([]NthResult, 0, cmd.NArg())
	for _, a := range cmd.Args().Slice() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := ParseN(a)
		if err != nil {
			return err
		}
		results = append(results, NthResult{
			N:      n,
			Method: method.String(),
			Prime:  fn(n),
		})
	}

	al := BuildAttrs(cmd, "prime")
	log.Debugf("attrs: %v", al)

	return Emit(cmd, results, al)
}

// ParseN parses a count, allowing thousands separators such as 10,000.
func ParseN(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.ReplaceAll(s, ",", ""), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid N %q: must be an integer in 0..%d", s, uint32(1<<32-1))
	}
	return uint32(v), nil
}

func NthCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "nth",
		Usage:     "print the n-th prime",
		UsageText: "nthprime nth [options] N [N...]",
		Flags: []cli.Flag{
			NewMethodFlag("nth", meta.Config.Source, prime.MethodAuto.String()),
		},
		Action: NthCommandAction,
		Meta:   meta,
	}).Build()
}
