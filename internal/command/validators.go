// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/staranto/nthprime/internal/attrs"
	"github.com/staranto/nthprime/internal/prime"
	"github.com/staranto/nthprime/internal/reports"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

// OneOfValidator returns a validator accepting only the given values.
func OneOfValidator(valid ...string) FlagValidatorType {
	return func(value any) error {
		for _, v := range valid {
			if v == value {
				return nil
			}
		}
		return fmt.Errorf("must be one of %v", valid)
	}
}

func MethodValidator(value any) error {
	_, err := prime.ParseMethod(value.(string))
	return err
}

// MethodsValidator checks a comma-separated list of methods.
func MethodsValidator(value any) error {
	_, err := parseMethods(value.(string))
	return err
}

func ReportNameValidator(value any) error {
	return reports.ValidName(value.(string))
}

func AttrsValidator(value any) error {
	var al attrs.AttrList
	return al.Set(value.(string))
}

// parseMethods splits a comma-separated list of method names. An empty list
// yields nil.
func parseMethods(s string) ([]prime.Method, error) {
	var methods []prime.Method
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := prime.ParseMethod(part)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}
