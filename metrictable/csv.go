package metrictable

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"
)

// WriteCSV writes the table with a header row of column keys and the row key
// in an unnamed leading column. Fields are quoted only when they hold a comma,
// a double quote or a line break, so leading spaces are written bare.
func (t *Table) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, "")
	header = append(header, t.Columns...)
	writeRecord(bw, header)

	for i, r := range t.Rows {
		line := make([]string, 0, len(t.Values[i])+1)
		line = append(line, r)
		line = append(line, t.Values[i]...)
		writeRecord(bw, line)
	}

	return pfx.Err(bw.Flush())
}

// writeRecord writes one CSV line. Errors surface on Flush.
func writeRecord(bw *bufio.Writer, fields []string) {
	// A lone empty field is quoted so the line does not read back as blank.
	if len(fields) == 1 && fields[0] == "" {
		bw.WriteString("\"\"\n")
		return
	}

	for i, f := range fields {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(quoteMinimal(f))
	}
	bw.WriteByte('\n')
}

func quoteMinimal(field string) string {
	if !strings.ContainsAny(field, ",\"\r\n") {
		return field
	}

	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// LongRow is one cell of a sample-by-metric table in tidy form.
type LongRow struct {
	SampleID     string     `csv:"sample_id"`
	Metric       string     `csv:"metric"`
	Value        string     `csv:"value"`
	NumericValue null.Float `csv:"numeric_value"`
}

// Long flattens a sample-by-metric table (rows are samples) into one LongRow
// per cell, in row then column order.
func (t *Table) Long() []*LongRow {
	out := make([]*LongRow, 0, len(t.Rows)*len(t.Columns))
	for i, sample := range t.Rows {
		for j, metric := range t.Columns {
			out = append(out, &LongRow{
				SampleID:     sample,
				Metric:       metric,
				Value:        t.Values[i][j],
				NumericValue: ParseNumeric(t.Values[i][j]),
			})
		}
	}

	return out
}

// WriteLong writes the Long form of the table as CSV with a header.
func (t *Table) WriteLong(w io.Writer) error {
	rows := t.Long()
	return pfx.Err(gocsv.Marshal(&rows, w))
}

// ParseNumeric interprets a NanoStats value as a number. Thousands separators
// are accepted. Values that are not a plain number are null.
func ParseNumeric(value string) null.Float {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return null.Float{}
	}

	return null.FloatFrom(f)
}
