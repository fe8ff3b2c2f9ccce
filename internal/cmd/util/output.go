package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/jq"
	"github.com/tmeckel/m365-cli/internal/jsoncolor"
	"github.com/tmeckel/m365-cli/internal/printer"
)

// Output formats selectable with the persistent --output flag.
const (
	OutputJSON     = "json"
	OutputText     = "text"
	OutputCSV      = "csv"
	OutputMarkdown = "md"
)

var OutputFormats = []string{OutputJSON, OutputText, OutputCSV, OutputMarkdown}

type JSONFlagError struct {
	error
}

type Exporter interface {
	Format() string
	Fields() []string
	Write(io *iostreams.IOStreams, data any) error
}

// AddOutputFlags registers the --json and --jq flags on cmd and sets
// exportTarget before the command runs. fields lists the properties that can
// be selected with --json. defaultProps are the properties shown in text output
// when nothing was selected.
func AddOutputFlags(cmd *cobra.Command, exportTarget *Exporter, fields []string, defaultProps []string) {
	f := cmd.Flags()
	f.StringSlice("json", nil, "Output the specified `fields`. Prefix a field with '-' to exclude it, use '*' for all fields.")
	f.StringP("jq", "q", "", "Filter the result using a jq `expression`")
	f.String("query", "", "Alias for --jq")

	_ = cmd.RegisterFlagCompletionFunc("json", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var results []string
		var prefix string
		if idx := strings.LastIndexByte(toComplete, ','); idx >= 0 {
			prefix = toComplete[:idx+1]
			toComplete = toComplete[idx+1:]
		}
		toComplete = strings.ToLower(toComplete)
		for _, f := range fields {
			if strings.HasPrefix(strings.ToLower(f), toComplete) {
				results = append(results, prefix+f)
			}
		}
		sort.Strings(results)
		return results, cobra.ShellCompDirectiveNoSpace
	})

	oldPreRun := cmd.PreRunE
	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		if oldPreRun != nil {
			if err := oldPreRun(c, args); err != nil {
				return err
			}
		}
		export, err := checkOutputFlags(c)
		if err != nil {
			return err
		}
		if export.fields != nil {
			resolved, err := resolveJSONSelection(export.fields, fields)
			if err != nil {
				return err
			}
			export.fields = resolved
		}
		export.defaultProps = defaultProps
		*exportTarget = export
		return nil
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, e error) error {
		if cmd.HasParent() {
			return cmd.Parent().FlagErrorFunc()(c, e)
		}
		return e
	})

	if len(fields) == 0 {
		return
	}

	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations["help:json-fields"] = strings.Join(fields, ",")
}

const jsonSelectAllSentinel = "*"

func resolveJSONSelection(raw []string, allowed []string) ([]string, error) {
	if len(allowed) == 0 {
		return nil, JSONFlagError{fmt.Errorf("no JSON fields are defined for this command")}
	}

	result := slices.Clone(allowed)
	haveExplicitInclude := false

	allowedSet := hashset.New()
	for _, a := range allowed {
		allowedSet.Add(a)
	}

	for _, item := range raw {
		if item == "" || item == jsonSelectAllSentinel {
			// an empty entry or sentinel means "use defaults"
			continue
		}

		remove := false
		if strings.HasPrefix(item, "-") {
			remove = true
			item = strings.TrimPrefix(item, "-")
		}
		if item == "" {
			return nil, JSONFlagError{fmt.Errorf("invalid JSON field selector \"-\"")}
		}
		if !allowedSet.Contains(item) {
			sorted := slices.Clone(allowed)
			sort.Strings(sorted)
			return nil, JSONFlagError{fmt.Errorf("unknown JSON field: %q\navailable fields:\n  %s", item, strings.Join(sorted, "\n  "))}
		}

		if remove {
			if idx := slices.Index(result, item); idx >= 0 {
				result = slices.Delete(result, idx, idx+1)
			}
			continue
		}

		if !haveExplicitInclude {
			result = result[:0]
			haveExplicitInclude = true
		}

		if !slices.Contains(result, item) {
			result = append(result, item)
		}
	}

	if len(result) == 0 {
		return nil, JSONFlagError{fmt.Errorf("no JSON fields selected; all columns were excluded")}
	}

	return result, nil
}

func checkOutputFlags(cmd *cobra.Command) (*exporter, error) {
	f := cmd.Flags()
	e := &exporter{
		format: OutputJSON,
		title:  cmd.CommandPath(),
		now:    time.Now,
	}
	if of := f.Lookup("output"); of != nil && of.Value.String() != "" {
		e.format = of.Value.String()
	}

	jqFlag := f.Lookup("jq")
	queryFlag := f.Lookup("query")
	if jqFlag.Changed && queryFlag.Changed {
		return nil, FlagErrorf("specify only one of `--jq` or `--query`")
	}
	e.filter = jqFlag.Value.String()
	if queryFlag.Changed {
		e.filter = queryFlag.Value.String()
	}

	if jsonFlag := f.Lookup("json"); jsonFlag.Changed {
		e.fields = jsonFlag.Value.(pflag.SliceValue).GetSlice()
		if e.fields == nil {
			e.fields = []string{}
		}
	}
	return e, nil
}

// NewExporter returns an Exporter for format that shows the given default
// properties in text output.
func NewExporter(format string, defaultProps ...string) Exporter {
	return &exporter{
		format:       format,
		defaultProps: defaultProps,
		now:          time.Now,
	}
}

type exporter struct {
	format       string
	fields       []string // only output properties named in this slice
	defaultProps []string // properties used by text output when no fields were selected
	filter       string   // jq expression
	title        string   // markdown document title
	now          func() time.Time
}

func (e *exporter) Format() string {
	return e.format
}

func (e *exporter) Fields() []string {
	return e.fields
}

// Write serializes data into the selected output format. Key order of objects
// in data is kept, so raw API responses render with the properties in the
// order the service returned them. On a terminal the output goes through the
// configured pager.
func (e *exporter) Write(ios *iostreams.IOStreams, data any) error {
	raw, err := marshalJSON(data)
	if err != nil {
		return err
	}

	if len(e.fields) > 0 {
		raw = selectFields(gjson.ParseBytes(raw), e.fields)
	}

	if e.filter != "" {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		v, err = jq.EvaluateData(e.filter, v)
		if err != nil {
			return err
		}
		if raw, err = marshalJSON(v); err != nil {
			return err
		}
	}

	if err := ios.StartPager(); err != nil {
		fmt.Fprintf(ios.ErrOut, "failed to start pager: %v\n", err)
	}
	defer ios.StopPager()

	switch e.format {
	case OutputJSON, "":
		return jsoncolor.Format(ios.Out, bytes.NewReader(raw), "  ", ios.ColorEnabled())
	case OutputText, OutputCSV, OutputMarkdown:
		return e.render(ios, gjson.ParseBytes(raw))
	}
	return printer.NewUnsupportedPrinterError(e.format)
}

func (e *exporter) render(ios *iostreams.IOStreams, result gjson.Result) error {
	var rows []*orderedObject
	switch {
	case result.IsArray():
		items := result.Array()
		if len(items) == 0 {
			return nil
		}
		if !items[0].IsObject() {
			return writeLines(ios, items)
		}
		for _, item := range items {
			rows = append(rows, newOrderedObject(item))
		}
	case result.IsObject():
		rows = []*orderedObject{newOrderedObject(result)}
	default:
		return writeLines(ios, []gjson.Result{result})
	}

	single := !result.IsArray()
	columns := e.columns(rows, single)

	var (
		p   printer.Printer
		err error
	)
	switch {
	case e.format == OutputCSV:
		p, err = printer.NewCSVPrinter(ios.Out)
	case e.format == OutputMarkdown:
		p, err = printer.NewMarkdownPrinter(ios.Out, e.title, e.now())
	case single:
		p, err = printer.NewListPrinter(ios.Out)
	default:
		p, err = newTablePrinter(ios)
	}
	if err != nil {
		return err
	}

	p.AddColumns(columns...)
	for _, row := range rows {
		for _, c := range columns {
			p.AddField(cellValue(row.get(c)))
		}
		p.EndRow()
	}
	return p.Render()
}

// columns picks the properties to render: the --json selection, else the
// default properties for tables, else every property. Objects and arrays are
// left out of tables unless selected explicitly.
func (e *exporter) columns(rows []*orderedObject, single bool) []string {
	if len(e.fields) > 0 {
		return e.fields
	}
	table := e.format == OutputText && !single
	if table && e.filter == "" && len(e.defaultProps) > 0 {
		return e.defaultProps
	}

	var columns []string
	seen := hashset.New()
	for _, row := range rows {
		for _, k := range row.keys {
			if seen.Contains(k) {
				continue
			}
			if table && (row.values[k].IsObject() || row.values[k].IsArray()) {
				continue
			}
			seen.Add(k)
			columns = append(columns, k)
		}
	}
	return columns
}

func writeLines(ios *iostreams.IOStreams, values []gjson.Result) error {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(cellValue(v))
		sb.WriteByte('\n')
	}
	_, err := ios.Out.Write([]byte(sb.String()))
	return err
}

func cellValue(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.Null:
		return ""
	}
	return v.Raw
}

type orderedObject struct {
	keys   []string
	values map[string]gjson.Result
}

func newOrderedObject(r gjson.Result) *orderedObject {
	o := &orderedObject{values: map[string]gjson.Result{}}
	r.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, ok := o.values[k]; !ok {
			o.keys = append(o.keys, k)
		}
		o.values[k] = value
		return true
	})
	return o
}

// get looks up key, falling back to a case-insensitive match.
func (o *orderedObject) get(key string) gjson.Result {
	if v, ok := o.values[key]; ok {
		return v
	}
	for _, k := range o.keys {
		if strings.EqualFold(k, key) {
			return o.values[k]
		}
	}
	return gjson.Result{}
}

// selectFields reduces every object in r to the given fields, in the given order.
func selectFields(r gjson.Result, fields []string) []byte {
	var buf bytes.Buffer
	writeObject := func(obj gjson.Result) {
		o := newOrderedObject(obj)
		buf.WriteByte('{')
		n := 0
		for _, f := range fields {
			v := o.get(f)
			if !v.Exists() {
				continue
			}
			if n > 0 {
				buf.WriteByte(',')
			}
			k, _ := json.Marshal(f)
			buf.Write(k)
			buf.WriteByte(':')
			buf.WriteString(v.Raw)
			n++
		}
		buf.WriteByte('}')
	}

	switch {
	case r.IsArray():
		buf.WriteByte('[')
		for i, item := range r.Array() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if item.IsObject() {
				writeObject(item)
			} else {
				buf.WriteString(item.Raw)
			}
		}
		buf.WriteByte(']')
	case r.IsObject():
		writeObject(r)
	default:
		buf.WriteString(r.Raw)
	}
	return buf.Bytes()
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

func newTablePrinter(ios *iostreams.IOStreams) (printer.TablePrinter, error) {
	maxWidth := 80
	isTTY := ios.IsStdoutTTY()
	if isTTY {
		maxWidth = ios.TerminalWidth()
	}
	pt, err := printer.NewTablePrinter(ios.Out, isTTY, maxWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create new table printer: %w", err)
	}
	return pt, nil
}
