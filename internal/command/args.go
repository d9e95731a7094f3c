// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	"github.com/apex/log"

	"github.com/staranto/nthprime/internal/config"
)

// ExpandArgSets splices a named argument set from the config file into args,
// right after the command. The first @name argument selects <command>.name;
// without one, <command>.defaults is used if it exists. Each entry of a set
// may carry several whitespace separated args.
func ExpandArgSets(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2, len(args))
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	set := "defaults"
	explicit := false
	rest := make([]string, 0, len(args)-2)
	for _, a := range args[2:] {
		if !explicit && strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			explicit = true
			continue
		}
		rest = append(rest, a)
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil && explicit {
		log.Warnf("argument set @%s not found: %v", set, err)
	}

	expanded := preamble
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}
	expanded = append(expanded, rest...)

	log.Debugf("set=%s, args=%v", set, expanded)
	return expanded
}
