package metrictable

import (
	"bytes"
	"strings"
	"testing"
)

func sampleTable() *Table {
	tab := New("Mean read length", "Number of reads", "Read length N50")
	tab.Append("A", "8,393.2", "1000.0", "n/a")
	tab.Append("B", "9000", "2000.0", "12")
	return tab
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		",Mean read length,Number of reads,Read length N50",
		`A,"8,393.2",1000.0,n/a`,
		"B,9000,2000.0,12",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestParseNumeric(t *testing.T) {
	if v := ParseNumeric("8,393.2"); !v.Valid || v.Float64 != 8393.2 {
		t.Errorf("got %+v", v)
	}
	if v := ParseNumeric(" 12 "); !v.Valid || v.Float64 != 12 {
		t.Errorf("got %+v", v)
	}
	if v := ParseNumeric("1000 (100.0%) 5.2Mb"); v.Valid {
		t.Errorf("expected null, got %+v", v)
	}
}

func TestLong(t *testing.T) {
	rows := sampleTable().Long()
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	if rows[0].SampleID != "A" || rows[0].Metric != "Mean read length" || rows[0].NumericValue.Float64 != 8393.2 {
		t.Errorf("first row %+v", rows[0])
	}
	if rows[2].NumericValue.Valid {
		t.Errorf("n/a should be null: %+v", rows[2])
	}
	if rows[3].SampleID != "B" {
		t.Errorf("rows are not in sample order: %+v", rows[3])
	}
}

func TestWriteLong(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().WriteLong(&buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header plus 6 rows, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "sample_id,metric,value,numeric_value" {
		t.Errorf("header %q", lines[0])
	}
	if lines[1] != `A,Mean read length,"8,393.2",8393.2` {
		t.Errorf("first row %q", lines[1])
	}
	if lines[3] != "A,Read length N50,n/a," {
		t.Errorf("null row %q", lines[3])
	}
}

func TestWriteCSVQuoting(t *testing.T) {
	tab := New(" Mean read length", `say "hi"`, "two\nlines")
	tab.Append(" A", " 1", "2", "3")

	var buf bytes.Buffer
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	want := ", Mean read length,\"say \"\"hi\"\"\",\"two\nlines\"\n A, 1,2,3\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := New().WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\"\"\n" {
		t.Errorf("got %q", buf.String())
	}
}
