// nanoplotsummary combines the NanoStats.txt reports that NanoPlot emits for
// each sample into one CSV with one row per sample and one column per metric.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/carbocation/nanoqc/compileinfoprint"
	"github.com/carbocation/nanoqc/metrictable"
	"github.com/carbocation/nanoqc/nanostats"
	"github.com/carbocation/nanoqc/summary"
)

func main() {
	var opts summary.Options
	var longOutput, bqTable string
	var describe bool

	flag.StringVar(&opts.ManifestPath, "input", "", "Path to file containing a list of paths to NanoPlot 'NanoStats' output, one per line. Paths may be local or gs://.")
	flag.StringVar(&opts.ManifestPath, "i", "", "Shorthand for -input.")
	flag.StringVar(&opts.Output, "output", summary.DefaultRequestedOutput, "Name of output file. Only used together with -honor-output; otherwise "+summary.DefaultOutputName+" is written.")
	flag.StringVar(&opts.Output, "o", summary.DefaultRequestedOutput, "Shorthand for -output.")
	flag.BoolVar(&opts.HonorOutput, "honor-output", false, "Write the summary to -output instead of "+summary.DefaultOutputName+".")
	flag.BoolVar(&opts.Strict, "strict", false, "Fail if the stats files do not all carry the same metrics, instead of dropping the metrics that are not shared, or if a metric line has no 'name: value' separator.")
	flag.StringVar(&opts.Suffix, "suffix", nanostats.Suffix, "Suffix stripped from each stats file name to get the sample name.")
	flag.BoolVar(&opts.Verbose, "verbose", false, "Log each file as it is read.")
	flag.StringVar(&longOutput, "long", "", "(Optional) Also write a long-format CSV (sample_id, metric, value, numeric_value) to this path.")
	flag.BoolVar(&describe, "describe", false, "Log per-metric summary statistics across samples.")
	flag.StringVar(&bqTable, "bigquery", "", "(Optional) project.dataset.table to append the long-format summary to.")
	flag.Parse()

	if opts.ManifestPath == "" {
		fmt.Fprintln(os.Stderr, "Please provide -input")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var bq *WrappedBigQuery
	if bqTable != "" {
		var err error
		if bq, err = ParseBigQueryTable(bqTable); err != nil {
			log.Fatalln(err)
		}
	}

	ctx := context.Background()

	table, err := summary.Build(ctx, opts)
	if err != nil {
		log.Fatalln(err)
	}

	if err := summary.WriteFile(table, opts.OutputPath()); err != nil {
		log.Fatalln(err)
	}
	if opts.Verbose {
		log.Printf("Wrote %d samples x %d metrics to %s\n", len(table.Rows), len(table.Columns), opts.OutputPath())
	}

	if longOutput != "" {
		if err := summary.WriteLongFile(table, longOutput); err != nil {
			log.Fatalln(err)
		}
	}

	if describe {
		if err := logDescription(table); err != nil {
			log.Fatalln(err)
		}
	}

	if bq != nil {
		if err := LoadLong(ctx, bq, table); err != nil {
			log.Fatalln(err)
		}
	}
}

func logDescription(table *metrictable.Table) error {
	summaries, err := table.Describe()
	if err != nil {
		return err
	}

	log.Println("Metric\tN\tMean\tMedian\tSD\tMin\tMax")
	for _, s := range summaries {
		log.Printf("%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n", s.Metric, s.N, s.Mean, s.Median, s.SD, s.Min, s.Max)
	}

	return nil
}
