package jsoncolor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty array",
			input: `[]`,
			want:  "[]\n",
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  "{}\n",
		},
		{
			name:  "scalar",
			input: `"text"`,
			want:  "\"text\"\n",
		},
		{
			name:  "keeps key order",
			input: `{"title":"Page","id":1,"tags":["a","b"],"owner":null,"draft":true}`,
			want: heredoc.Doc(`
				{
				  "title": "Page",
				  "id": 1,
				  "tags": [
				    "a",
				    "b"
				  ],
				  "owner": null,
				  "draft": true
				}
			`),
		},
		{
			name:  "array of objects",
			input: `[{"id":"EX1"},{"id":"EX2","url":"https://contoso.sharepoint.com/?a=1&b=<2>"}]`,
			want: heredoc.Doc(`
				[
				  {
				    "id": "EX1"
				  },
				  {
				    "id": "EX2",
				    "url": "https://contoso.sharepoint.com/?a=1&b=<2>"
				  }
				]
			`),
		},
		{
			name:  "large numbers are kept",
			input: `{"n":12345678901234567890}`,
			want:  "{\n  \"n\": 12345678901234567890\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Format(&out, strings.NewReader(tt.input), "  ", false))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestWriteColorizes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Write(&out, strings.NewReader(`{"a":true}`), "  "))
	assert.Equal(t,
		"\x1b[1;38m{\x1b[m\n  \x1b[1;34m\"a\"\x1b[m\x1b[1;38m:\x1b[m \x1b[33mtrue\x1b[m\n\x1b[1;38m}\x1b[m\n",
		out.String())
}

func TestFormatInvalid(t *testing.T) {
	var out bytes.Buffer
	err := Format(&out, strings.NewReader(`{"a":}`), "  ", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read token")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestFormatWriteError(t *testing.T) {
	err := Format(failingWriter{}, strings.NewReader(`[1,2]`), "  ", false)
	require.EqualError(t, err, "closed")
}
