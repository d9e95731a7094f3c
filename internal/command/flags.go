// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// NewGlobalFlags builds the output flags shared by every command. ns is the
// command name, used as the config file namespace, and src the config file.
// Values resolve from the command line, then ns.<flag>, then <flag> in the
// config file.
func NewGlobalFlags(ns string, src string, formats ...string) (flags []cli.Flag) {
	if len(formats) == 0 {
		formats = []string{"text", "json", "yaml", "raw"}
	}

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, AttrsValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(src)),
				yaml.YAML("color", altsrc.StringSourcer(src)),
			),
			Value: isTerminal(),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(src)),
				yaml.YAML("output", altsrc.StringSourcer(src)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OneOfValidator(formats...))
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"sort", altsrc.StringSourcer(src)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(src)),
				yaml.YAML("titles", altsrc.StringSourcer(src)),
			),
			Value: false,
		},
	}

	return
}

// NewMethodFlag constructs the --method flag. Its value may also come from
// NTHPRIME_METHOD or ns.method in the config file.
func NewMethodFlag(ns string, src string, value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "method",
		Aliases: []string{"m"},
		Usage:   "finder to use: auto, naive, caching or opt",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTHPRIME_METHOD"),
			yaml.YAML(ns+"."+"method", altsrc.StringSourcer(src)),
		),
		Value: value,
		Validator: func(value string) error {
			return FlagValidators(value, MethodValidator)
		},
	}
}

// isTerminal reports whether stdout is a terminal; color defaults on only
// when it is.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
