package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/nanoqc/metrictable"
	"github.com/carbocation/pfx"
)

type WrappedBigQuery struct {
	Context  context.Context
	Client   *bigquery.Client
	Project  string
	Database string
	Table    string
}

// ParseBigQueryTable splits a project.dataset.table reference.
func ParseBigQueryTable(ref string) (*WrappedBigQuery, error) {
	parts := strings.Split(ref, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected project.dataset.table, got %q", ref)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("expected project.dataset.table, got %q", ref)
		}
	}

	return &WrappedBigQuery{
		Project:  parts[0],
		Database: parts[1],
		Table:    parts[2],
	}, nil
}

// LongSchema is the BigQuery layout of metrictable.LongRow.
var LongSchema = bigquery.Schema{
	{Name: "sample_id", Type: bigquery.StringFieldType, Required: true},
	{Name: "metric", Type: bigquery.StringFieldType, Required: true},
	{Name: "value", Type: bigquery.StringFieldType},
	{Name: "numeric_value", Type: bigquery.FloatFieldType},
}

// LoadLong appends the long form of table to the configured BigQuery table.
func LoadLong(ctx context.Context, BQ *WrappedBigQuery, table *metrictable.Table) error {
	var err error

	BQ.Context = ctx
	BQ.Client, err = bigquery.NewClient(BQ.Context, BQ.Project)
	if err != nil {
		return fmt.Errorf("connecting to BigQuery: %v", err)
	}
	defer BQ.Client.Close()

	var buf bytes.Buffer
	if err := table.WriteLong(&buf); err != nil {
		return err
	}

	src := bigquery.NewReaderSource(&buf)
	src.SourceFormat = bigquery.CSV
	src.SkipLeadingRows = 1
	src.Schema = LongSchema

	loader := BQ.Client.Dataset(BQ.Database).Table(BQ.Table).LoaderFrom(src)
	loader.WriteDisposition = bigquery.WriteAppend
	loader.CreateDisposition = bigquery.CreateIfNeeded

	job, err := loader.Run(BQ.Context)
	if err != nil {
		return pfx.Err(err)
	}

	log.Printf("Loading %d rows into %s.%s.%s (job %s)\n", len(table.Rows)*len(table.Columns), BQ.Project, BQ.Database, BQ.Table, job.ID())

	status, err := job.Wait(BQ.Context)
	if err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(status.Err())
}
