// Package jsoncolor pretty-prints JSON for the terminal, keeping the key order
// of the input.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	colorDelim  = "\x1b[1;38m" // bright white
	colorKey    = "\x1b[1;34m" // bright blue
	colorNull   = "\x1b[36m"   // cyan
	colorString = "\x1b[32m"   // green
	colorBool   = "\x1b[33m"   // yellow
	colorReset  = "\x1b[m"
)

// Write reads JSON from r and writes a colorized, indented version to w.
func Write(w io.Writer, r io.Reader, indent string) error {
	return Format(w, r, indent, true)
}

// Format reads JSON from r and writes an indented version to w. ANSI colors
// are only emitted when colorize is set.
func Format(w io.Writer, r io.Reader, indent string, colorize bool) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	p := &painter{w: w, colorize: colorize}

	var idx int
	var stack []json.Delim

	for {
		t, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}

		switch tt := t.(type) {
		case json.Delim:
			switch tt {
			case '{', '[':
				stack = append(stack, tt)
				idx = 0
				p.paint(colorDelim, tt.String())
				if dec.More() {
					p.plain("\n", strings.Repeat(indent, len(stack)))
				}
				continue
			case '}', ']':
				stack = stack[:len(stack)-1]
				idx = 0
				p.paint(colorDelim, tt.String())
			}
		default:
			b, err := marshalJSON(tt)
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}

			isKey := len(stack) > 0 && stack[len(stack)-1] == '{' && idx%2 == 0
			idx++

			p.paint(valueColor(tt, isKey), string(b))
			if isKey {
				p.paint(colorDelim, ":")
				p.plain(" ")
				continue
			}
		}

		switch {
		case dec.More():
			p.paint(colorDelim, ",")
			p.plain("\n", strings.Repeat(indent, len(stack)))
		case len(stack) > 0:
			p.plain("\n", strings.Repeat(indent, len(stack)-1))
		default:
			p.plain("\n")
		}
		if p.err != nil {
			return p.err
		}
	}

	return p.err
}

func valueColor(t json.Token, isKey bool) string {
	if isKey {
		return colorKey
	}
	switch t.(type) {
	case nil:
		return colorNull
	case string:
		return colorString
	case bool:
		return colorBool
	}
	return ""
}

// painter writes to w and remembers the first write error.
type painter struct {
	w        io.Writer
	colorize bool
	err      error
}

func (p *painter) plain(s ...string) {
	for _, v := range s {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, v)
	}
}

func (p *painter) paint(color, s string) {
	if !p.colorize || color == "" {
		p.plain(s)
		return
	}
	p.plain(color, s, colorReset)
}

// marshalJSON works like json.Marshal, but with HTML-escaping disabled.
func marshalJSON(v any) ([]byte, error) {
	buf := bytes.Buffer{}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
