// Package jq applies jq expressions to command results before they are rendered.
package jq

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/itchyny/gojq"
)

// EvaluateData runs expr against data, which must be made of JSON compatible
// values (map[string]any, []any, string, float64, bool, nil).
//
// A single result is returned as-is and multiple results are collected into an
// array. A filter over an array that yields nothing returns an empty array.
func EvaluateData(expr string, data any) (any, error) {
	if expr == "" {
		return data, nil
	}

	code, err := CompileExpression(expr)
	if err != nil {
		return nil, err
	}

	_, isArray := data.([]any)
	results := []any{}
	iter := code.Run(data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var e *gojq.HaltError
			if errors.As(err, &e) && e.Value() == nil {
				break
			}
			return nil, err
		}
		results = append(results, v)
	}

	switch {
	case len(results) == 0 && isArray:
		return results, nil
	case len(results) == 0:
		return nil, nil
	case len(results) == 1:
		return results[0], nil
	}
	return results, nil
}

// CompileExpression parses and compiles expr. Parse errors point at the
// offending column.
func CompileExpression(expr string) (*gojq.Code, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		var e *gojq.ParseError
		if errors.As(err, &e) {
			str, line, column := getLineColumn(expr, e.Offset-len(e.Token))
			return nil, fmt.Errorf(
				"failed to parse jq expression (line %d, column %d)\n    %s\n    %*c  %w",
				line, column, str, column, '^', err,
			)
		}
		return nil, fmt.Errorf("failed to parse jq expression %q: %w", expr, err)
	}

	code, err := gojq.Compile(
		query,
		gojq.WithEnvironLoader(os.Environ))
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

func getLineColumn(expr string, offset int) (string, int, int) {
	for line := 1; ; line++ {
		index := strings.Index(expr, "\n")
		if index < 0 {
			return expr, line, offset + 1
		}
		if index >= offset {
			return expr[:index], line, offset + 1
		}
		expr = expr[index+1:]
		offset -= index + 1
	}
}
