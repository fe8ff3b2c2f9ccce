package jq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateData(t *testing.T) {
	issues := []any{
		map[string]any{"id": "EX1", "title": "Exchange delay", "service": "Exchange Online"},
		map[string]any{"id": "SP2", "title": "Search lag", "service": "SharePoint Online"},
	}

	tests := []struct {
		name string
		expr string
		data any
		want any
	}{
		{
			name: "empty expression returns input",
			expr: "",
			data: issues,
			want: issues,
		},
		{
			name: "single match from an array",
			expr: `.[] | select(.service == "Exchange Online")`,
			data: issues,
			want: issues[0],
		},
		{
			name: "collected array is not wrapped again",
			expr: `[.[] | select(.service == "SharePoint Online") | {id}]`,
			data: issues,
			want: []any{map[string]any{"id": "SP2"}},
		},
		{
			name: "index into an array",
			expr: `.[0]`,
			data: issues,
			want: issues[0],
		},
		{
			name: "scalar over an array",
			expr: `length`,
			data: issues,
			want: 2,
		},
		{
			name: "multiple results from an array",
			expr: `.[].id`,
			data: issues,
			want: []any{"EX1", "SP2"},
		},
		{
			name: "array filter without matches",
			expr: `.[] | select(.service == "Teams")`,
			data: issues,
			want: []any{},
		},
		{
			name: "single object result",
			expr: `{id}`,
			data: map[string]any{"id": "EX1", "title": "x"},
			want: map[string]any{"id": "EX1"},
		},
		{
			name: "multiple results from an object",
			expr: `.id, .title`,
			data: map[string]any{"id": "EX1", "title": "x"},
			want: []any{"EX1", "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateData(tt.expr, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileExpressionParseError(t *testing.T) {
	_, err := CompileExpression(".id |")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse jq expression")
}
