// p3-get reads a tab-delimited stream on standard input and appends data
// columns retrieved for the key column of each row.
//
//	p3-all genome --attr genome_id | p3-get feature --col genome.genome_id \
//	    --key genome_id --attr patric_id,product
//
// By default all keys are fetched in a single batched query. --nobatch issues
// one exact-match query per input row instead, and --flat drops the input
// rows entirely, fetching the key list in chunks with no correlation.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/SEEDtk/p3-core/internal/cli"
	"github.com/SEEDtk/p3-core/internal/domain"
	"github.com/SEEDtk/p3-core/internal/fetch"
	"github.com/SEEDtk/p3-core/internal/query"
	"github.com/SEEDtk/p3-core/internal/registry"
	"github.com/SEEDtk/p3-core/internal/tabio"
)

func main() {
	fs := pflag.NewFlagSet("p3-get", pflag.ExitOnError)
	opts := cli.RegisterDataFlags(fs)
	col := fs.String("col", "0", "input key column (name or 1-based index; 0 means the last column)")
	keyField := fs.String("key", "", "object field matched against the key column (default: the object's ID field)")
	noBatch := fs.Bool("nobatch", false, "issue one exact-match query per input row")
	flat := fs.Bool("flat", false, "fetch the key list without correlating input rows")
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: p3-get [flags] <object>\nknown objects: %v\n", registry.Names())
		os.Exit(2)
	}

	obj, err := registry.Lookup(fs.Arg(0))
	if err != nil {
		log.Fatalf("p3-get: %v", err)
	}
	field := *keyField
	if field == "" {
		field = obj.IDField
	}

	client, tr, err := opts.Connect()
	if err != nil {
		log.Fatalf("p3-get: %v", err)
	}

	sel, err := query.Select(obj, opts.Attrs, opts.SelectOptions(), tr, client)
	if err != nil {
		log.Fatalf("p3-get: %v", err)
	}
	filters, err := query.BuildFilter(opts.Constraints, tr)
	if err != nil {
		log.Fatalf("p3-get: %v", err)
	}

	in, err := tabio.NewReader(os.Stdin)
	if err != nil {
		log.Fatalf("p3-get: %v", err)
	}
	keyIdx, err := in.FindColumn(*col)
	if err != nil {
		log.Fatalf("p3-get: %v", err)
	}
	couplets, err := in.ReadCouplets(keyIdx)
	if err != nil {
		log.Fatalf("p3-get: %v", err)
	}

	req := fetch.Request{
		Object:  obj,
		Columns: sel.Columns,
		Fields:  sel.Fields,
		Filters: filters,
	}
	engine := fetch.New(client, tr)
	ctx := context.Background()

	var rows []domain.OutputRow
	var headers []string
	switch {
	case *flat:
		keys := make([]string, 0, len(couplets))
		for _, c := range couplets {
			if c.Key != "" {
				keys = append(keys, c.Key)
			}
		}
		headers = sel.Headers
		rows, err = engine.FetchDataKeyed(ctx, req, keys, field)
	case *noBatch:
		headers = append(in.Headers, sel.Headers...)
		rows, err = engine.FetchData(ctx, req, couplets, field)
	default:
		headers = append(in.Headers, sel.Headers...)
		rows, err = engine.FetchDataBatch(ctx, req, couplets, field)
	}
	if err != nil {
		log.Fatalf("p3-get: %v", err)
	}

	w := opts.NewWriter()
	if err := w.WriteHeaders(headers); err != nil {
		log.Fatalf("p3-get: %v", err)
	}
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			log.Fatalf("p3-get: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		log.Fatalf("p3-get: %v", err)
	}
}
