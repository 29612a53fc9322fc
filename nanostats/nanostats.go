// Package nanostats reads the general summary block of a NanoPlot/NanoStat
// "NanoStats.txt" report.
package nanostats

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/nanoqc"
	"github.com/carbocation/nanoqc/metrictable"
	"github.com/carbocation/pfx"
)

const (
	// Suffix is what NanoPlot appends to the sample name of a stats file.
	Suffix = "NanoStats.txt"

	// HeaderLines precede the metric block.
	HeaderLines = 1

	// MetricLines is the size of the metric block.
	MetricLines = 12
)

var (
	ErrShortFile     = errors.New("statistics file is too short")
	ErrMalformedLine = errors.New("metric line has no name: value separator")
)

// separator is a colon followed by one or more whitespace characters.
var separator = regexp.MustCompile(`:\s+`)

// SampleName derives the sample identifier from a stats file path by
// stripping suffix from its base name. If the base name does not end with
// suffix it is returned unchanged.
func SampleName(filePath, suffix string) string {
	base := filepath.Base(filePath)
	if nanoqc.IsGoogleStoragePath(filePath) {
		base = path.Base(filePath)
	}

	return strings.TrimSuffix(base, suffix)
}

// SplitMetric splits a line at the first separator into name and value. A
// line without a separator is all name, with an empty value, and ok is false.
func SplitMetric(line string) (name, value string, ok bool) {
	loc := separator.FindStringIndex(line)
	if loc == nil {
		return line, "", false
	}

	return line[:loc[0]], line[loc[1]:], true
}

// Parse reads a stats file from r. The first line is skipped and the following
// MetricLines non-blank lines are parsed. The result has one column, named
// sample, and one row per metric in file order. Lines without a separator,
// like the quality cutoff banner of a NanoStats report, become rows with an
// empty value.
func Parse(r io.Reader, sample string) (*metrictable.Table, error) {
	return parse(r, sample, false)
}

// ParseStrict is Parse, but a line without a separator is ErrMalformedLine.
func ParseStrict(r io.Reader, sample string) (*metrictable.Table, error) {
	return parse(r, sample, true)
}

func parse(r io.Reader, sample string, strict bool) (*metrictable.Table, error) {
	scanner := bufio.NewScanner(r)
	table := metrictable.New(sample)

	line := 0
	for scanner.Scan() {
		line++
		if line <= HeaderLines {
			continue
		}

		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		name, value, ok := SplitMetric(text)
		if !ok && strict {
			return nil, fmt.Errorf("line %d: %w: %q", line, ErrMalformedLine, text)
		}
		if err := table.Append(name, value); err != nil {
			return nil, pfx.Err(err)
		}

		if table.Len() == MetricLines {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	if table.Len() < MetricLines {
		return nil, fmt.Errorf("%w: found %d metric lines, need %d", ErrShortFile, table.Len(), MetricLines)
	}

	return table, nil
}

// ParseFile opens a local or gs:// stats file, decompressing it if needed, and
// parses it under the sample name derived with SampleName. If strict is set it
// parses like ParseStrict.
func ParseFile(ctx context.Context, filePath, suffix string, strict bool, client *storage.Client) (*metrictable.Table, error) {
	f, err := nanoqc.OpenMaybeCompressed(ctx, filePath, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := parse(f, SampleName(filePath, suffix), strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	return table, nil
}
