// p3-all lists or counts all records of a logical object that satisfy the
// given constraints.
//
//	p3-all genome --eq genome_status,Complete --attr genome_id,genome_name
//	p3-all feature --count --eq feature_type,CDS
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/SEEDtk/p3-core/internal/cli"
	"github.com/SEEDtk/p3-core/internal/fetch"
	"github.com/SEEDtk/p3-core/internal/query"
	"github.com/SEEDtk/p3-core/internal/registry"
)

func main() {
	fs := pflag.NewFlagSet("p3-all", pflag.ExitOnError)
	opts := cli.RegisterDataFlags(fs)
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: p3-all [flags] <object>\nknown objects: %v\n", registry.Names())
		os.Exit(2)
	}

	obj, err := registry.Lookup(fs.Arg(0))
	if err != nil {
		log.Fatalf("p3-all: %v", err)
	}

	client, tr, err := opts.Connect()
	if err != nil {
		log.Fatalf("p3-all: %v", err)
	}

	sel, err := query.Select(obj, opts.Attrs, opts.SelectOptions(), tr, client)
	if err != nil {
		log.Fatalf("p3-all: %v", err)
	}
	filters, err := query.BuildFilter(opts.Constraints, tr)
	if err != nil {
		log.Fatalf("p3-all: %v", err)
	}

	engine := fetch.New(client, tr)
	rows, err := engine.FetchData(context.Background(), fetch.Request{
		Object:  obj,
		Columns: sel.Columns,
		Fields:  sel.Fields,
		Filters: filters,
	}, nil, "")
	if err != nil {
		log.Fatalf("p3-all: %v", err)
	}

	w := opts.NewWriter()
	if err := w.WriteHeaders(sel.Headers); err != nil {
		log.Fatalf("p3-all: %v", err)
	}
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			log.Fatalf("p3-all: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		log.Fatalf("p3-all: %v", err)
	}
}
