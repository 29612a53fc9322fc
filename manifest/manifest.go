// Package manifest reads lists of input paths, one per line.
package manifest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/nanoqc"
	"github.com/carbocation/pfx"
)

// Read returns the whitespace-trimmed, non-blank lines of r in order.
func Read(r io.Reader) ([]string, error) {
	out := make([]string, 0)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p := strings.TrimSpace(scanner.Text())
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// ReadFile reads a manifest from a local or gs:// path.
func ReadFile(ctx context.Context, path string, client *storage.Client) ([]string, error) {
	f, err := nanoqc.MaybeOpenFromGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	paths, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return paths, nil
}
