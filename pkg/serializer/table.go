package serializer

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// column is one table column backed by a (possibly nested) struct field.
type column struct {
	name      string
	index     []int
	omitEmpty bool
}

// renderTable renders a struct, or a slice of structs of one type, as a
// reStructuredText-style grid with one row per element. Nested structs are
// flattened into their leaf fields. Column names come from the `table` tag,
// then the `json` tag, then the field name. Columns tagged omitempty are
// dropped when empty in every row.
func renderTable(data any) (string, error) {
	v := reflect.ValueOf(data)
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return emptyTable, nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return emptyTable, nil
	}

	var rows []reflect.Value
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			rows = append(rows, v.Index(i))
		}
	} else {
		rows = []reflect.Value{v}
	}

	rowType, err := tableRowType(v, rows)
	if err != nil {
		return "", err
	}
	if rowType == nil {
		return emptyTable, nil
	}

	if rowType.Kind() != reflect.Struct {
		cells := make([][]string, len(rows))
		for i, r := range rows {
			cells[i] = []string{formatCell(r)}
		}
		return formatGrid([]string{"value"}, cells), nil
	}

	cols := structColumns(rowType, nil)
	if len(cols) == 0 {
		return "", fmt.Errorf("type %s has no exported fields", rowType)
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		r = indirect(r)
		if r.IsValid() && r.Type() != rowType {
			return "", fmt.Errorf("table rows must share one type, got %s and %s", rowType, r.Type())
		}
		cells[i] = make([]string, len(cols))
		for j, c := range cols {
			if !r.IsValid() {
				continue
			}
			f, err := r.FieldByIndexErr(c.index)
			if err != nil {
				continue
			}
			cells[i][j] = formatCell(f)
		}
	}

	headers, cells := dropEmptyColumns(cols, cells)
	return formatGrid(headers, cells), nil
}

// tableRowType determines the element type of the table. For slices of
// interfaces the dynamic type of the first non-nil element is used.
func tableRowType(v reflect.Value, rows []reflect.Value) (reflect.Type, error) {
	var t reflect.Type
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		t = v.Type().Elem()
	} else {
		t = v.Type()
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Interface {
		return t, nil
	}
	for _, r := range rows {
		if d := indirect(r); d.IsValid() {
			return d.Type(), nil
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return nil, fmt.Errorf("cannot tabulate %d nil rows", len(rows))
}

var timeType = reflect.TypeOf(time.Time{})

func structColumns(t reflect.Type, prefix []int) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, omitEmpty, skip := columnName(f)
		if skip {
			continue
		}

		index := append(append([]int{}, prefix...), i)

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft != timeType {
			cols = append(cols, structColumns(ft, index)...)
			continue
		}

		cols = append(cols, column{name: name, index: index, omitEmpty: omitEmpty})
	}
	return cols
}

func columnName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	if tag, ok := f.Tag.Lookup("table"); ok {
		if tag == "-" {
			return "", false, true
		}
		name, opts, _ := strings.Cut(tag, ",")
		omitEmpty = strings.Contains(opts, "omitempty")
		if name != "" {
			return name, omitEmpty, false
		}
	}
	if tag, ok := f.Tag.Lookup("json"); ok {
		if tag == "-" {
			return "", false, true
		}
		jname, opts, _ := strings.Cut(tag, ",")
		omitEmpty = omitEmpty || strings.Contains(opts, "omitempty")
		if jname != "" {
			return jname, omitEmpty, false
		}
	}
	return f.Name, omitEmpty, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func formatCell(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return ""
	}
	var s string
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		s = string(v.Bytes())
	} else {
		s = fmt.Sprint(v.Interface())
	}
	s = strings.ReplaceAll(s, "\r", `\r`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func dropEmptyColumns(cols []column, cells [][]string) ([]string, [][]string) {
	keep := make([]bool, len(cols))
	for j, c := range cols {
		if !c.omitEmpty {
			keep[j] = true
			continue
		}
		for _, row := range cells {
			if row[j] != "" {
				keep[j] = true
				break
			}
		}
	}

	var headers []string
	for j, c := range cols {
		if keep[j] {
			headers = append(headers, c.name)
		}
	}
	out := make([][]string, len(cells))
	for i, row := range cells {
		for j, cell := range row {
			if keep[j] {
				out[i] = append(out[i], cell)
			}
		}
	}
	return headers, out
}

// formatGrid lays out headers and rows as:
//
//	===== =====
//	 key   value
//	===== =====
//	 /a    1
//	===== =====
func formatGrid(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for j, h := range headers {
		widths[j] = displayWidth(h)
	}
	for _, row := range rows {
		for j, cell := range row {
			if n := displayWidth(cell); n > widths[j] {
				widths[j] = n
			}
		}
	}

	border := make([]string, len(widths))
	for j, w := range widths {
		border[j] = strings.Repeat("=", w+2)
	}
	borderLine := strings.Join(border, " ")

	line := func(cells []string) string {
		parts := make([]string, len(widths))
		for j, w := range widths {
			cell := ""
			if j < len(cells) {
				cell = cells[j]
			}
			parts[j] = " " + cell + strings.Repeat(" ", w-displayWidth(cell)) + " "
		}
		return strings.TrimRight(strings.Join(parts, " "), " ")
	}

	var b strings.Builder
	b.WriteString(borderLine + "\n")
	b.WriteString(line(headers) + "\n")
	b.WriteString(borderLine + "\n")
	for _, row := range rows {
		b.WriteString(line(row) + "\n")
	}
	b.WriteString(borderLine)
	return b.String()
}

// displayWidth is the number of terminal columns s occupies. Wide and
// fullwidth East Asian runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
