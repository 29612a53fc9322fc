// Package summary merges per-sample NanoStats reports listed in a manifest
// into one sample-by-metric table.
package summary

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/nanoqc"
	"github.com/carbocation/nanoqc/manifest"
	"github.com/carbocation/nanoqc/metrictable"
	"github.com/carbocation/nanoqc/nanostats"
	"github.com/carbocation/pfx"
)

// DefaultOutputName is where the summary goes unless HonorOutput is set.
const DefaultOutputName = "QC_Summary.csv"

// DefaultRequestedOutput is the value of the -o flag when not given.
const DefaultRequestedOutput = "summary_output.txt"

// Options configures Build and names the output file.
type Options struct {
	// ManifestPath lists one stats file per line.
	ManifestPath string

	// Suffix is stripped from each stats file's base name to get the sample
	// name. Empty means nanostats.Suffix.
	Suffix string

	// Strict turns metric-set mismatches into errors instead of dropping the
	// rows that are not shared by every sample, and rejects metric lines
	// without a name: value separator.
	Strict bool

	// Output is the requested output path. It is only used if HonorOutput is
	// set; otherwise DefaultOutputName is written.
	Output      string
	HonorOutput bool

	// StorageClient is used for gs:// paths. If nil, a client with default
	// credentials is created the first time one is needed.
	StorageClient *storage.Client

	Verbose bool
}

// OutputPath returns the file the summary will be written to.
func (o Options) OutputPath() string {
	if o.HonorOutput && o.Output != "" {
		return o.Output
	}

	return DefaultOutputName
}

func (o Options) suffix() string {
	if o.Suffix == "" {
		return nanostats.Suffix
	}

	return o.Suffix
}

// Build reads the manifest and every stats file it lists and returns the
// sample-by-metric table: one row per sample in manifest order, one column
// per metric shared by all samples in the first sample's order.
func Build(ctx context.Context, opts Options) (*metrictable.Table, error) {
	client := opts.StorageClient
	defer func() {
		if client != nil && opts.StorageClient == nil {
			client.Close()
		}
	}()

	var err error
	if client, err = ensureClient(ctx, client, opts.ManifestPath); err != nil {
		return nil, err
	}

	paths, err := manifest.ReadFile(ctx, opts.ManifestPath, client)
	if err != nil {
		return nil, err
	}

	if client, err = ensureClient(ctx, client, paths...); err != nil {
		return nil, err
	}

	tables := make([]*metrictable.Table, 0, len(paths))
	for _, p := range paths {
		if opts.Verbose {
			log.Println("Reading", p)
		}

		t, err := nanostats.ParseFile(ctx, p, opts.suffix(), opts.Strict, client)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	return Merge(tables, opts.Strict)
}

func ensureClient(ctx context.Context, client *storage.Client, paths ...string) (*storage.Client, error) {
	if client != nil || !nanoqc.AnyGoogleStoragePath(paths...) {
		return client, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to google storage: %w", err)
	}

	return client, nil
}

// Merge folds per-sample metric columns into one metric-by-sample table and
// pivots it so that samples are rows.
func Merge(tables []*metrictable.Table, strict bool) (*metrictable.Table, error) {
	merged, err := metrictable.Fold(tables, strict)
	if err != nil {
		return nil, err
	}

	if len(tables) > 0 && merged.Len() < tables[0].Len() {
		log.Printf("Dropped %d of %d metrics that were not shared by every sample\n", tables[0].Len()-merged.Len(), tables[0].Len())
	}

	return merged.Transpose(), nil
}

// WriteFile serializes the table as CSV into path. The file is only created
// once the full table has been encoded.
func WriteFile(table *metrictable.Table, path string) error {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		return err
	}

	return pfx.Err(os.WriteFile(path, buf.Bytes(), 0644))
}

// WriteLongFile writes the tidy form of the table into path.
func WriteLongFile(table *metrictable.Table, path string) error {
	var buf bytes.Buffer
	if err := table.WriteLong(&buf); err != nil {
		return err
	}

	return pfx.Err(os.WriteFile(path, buf.Bytes(), 0644))
}
