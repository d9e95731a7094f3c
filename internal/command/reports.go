// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/nthprime/internal/meta"
	"github.com/staranto/nthprime/internal/reports"
)

// ReportInfo is one row of reports output.
type ReportInfo struct {
	Name  string `json:"name"`
	Saved string `json:"saved"`
	Path  string `json:"path"`
}

// ReportsCommandAction lists saved benchmark reports, purging old ones first
// when --purge is set.
func ReportsCommandAction(ctx context.Context, cmd *cli.Command) error {
	if hours := cmd.Int("purge"); hours > 0 {
		n, err := reports.Purge(int(hours))
		if err != nil {
			return err
		}
		log.Infof("purged %d reports", n)
	}

	names, err := reports.List()
	if err != nil {
		return err
	}

	infos := make([]ReportInfo, 0, len(names))
	for _, name := range names {
		e, err := reports.Read(name)
		if err != nil {
			return fmt.Errorf("failed to load report %s: %w", name, err)
		}
		infos = append(infos, ReportInfo{
			Name:  e.Name,
			Saved: e.ModTime.Format("2006-01-02 15:04:05"),
			Path:  e.Path,
		})
	}

	return Emit(cmd, infos, BuildAttrs(cmd, "name", "saved"))
}

func ReportsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "reports",
		Usage:     "list saved benchmark reports",
		UsageText: "nthprime reports [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "purge",
				Usage: "first remove reports older than this many hours",
			},
		},
		Action: ReportsCommandAction,
		Meta:   meta,
	}).Build()
}
