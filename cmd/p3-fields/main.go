// p3-fields lists the fields available on a logical object: the physical
// schema reported by the remote service, merged with the registry's derived
// and related column names.
//
//	p3-fields feature
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/SEEDtk/p3-core/internal/cli"
	"github.com/SEEDtk/p3-core/internal/domain"
	"github.com/SEEDtk/p3-core/internal/registry"
)

func main() {
	fs := pflag.NewFlagSet("p3-fields", pflag.ExitOnError)
	opts := cli.RegisterDataFlags(fs)
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: p3-fields [flags] <object>\nknown objects: %v\n", registry.Names())
		os.Exit(2)
	}

	obj, err := registry.Lookup(fs.Arg(0))
	if err != nil {
		log.Fatalf("p3-fields: %v", err)
	}

	client, _, err := opts.Connect()
	if err != nil {
		log.Fatalf("p3-fields: %v", err)
	}

	fields, err := client.Schema(context.Background(), obj.Table)
	if err != nil {
		log.Fatalf("p3-fields: %v", err)
	}

	w := opts.NewWriter()
	if err := w.WriteHeaders([]string{"field", "kind", "multi"}); err != nil {
		log.Fatalf("p3-fields: %v", err)
	}
	for _, f := range fields {
		if err := w.WriteRow(domain.OutputRow{f.Name, f.Type, flag(f.Multi)}); err != nil {
			log.Fatalf("p3-fields: %v", err)
		}
	}
	for _, name := range sortedKeys(obj.Derived) {
		if err := w.WriteRow(domain.OutputRow{name, "derived", flag(obj.DerivedMulti(name))}); err != nil {
			log.Fatalf("p3-fields: %v", err)
		}
	}
	for _, name := range sortedKeys(obj.Related) {
		if err := w.WriteRow(domain.OutputRow{name, "related", flag(obj.Related[name].Multi)}); err != nil {
			log.Fatalf("p3-fields: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		log.Fatalf("p3-fields: %v", err)
	}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
