// Package cli declares the option flags shared by the command-line tools and
// wires parsed options to the transport, view, and output writer.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/SEEDtk/p3-core/internal/config"
	"github.com/SEEDtk/p3-core/internal/domain"
	"github.com/SEEDtk/p3-core/internal/query"
	"github.com/SEEDtk/p3-core/internal/tabio"
	"github.com/SEEDtk/p3-core/internal/transport"
	"github.com/SEEDtk/p3-core/internal/view"
)

// DataOptions holds the options common to every data-retrieval tool.
type DataOptions struct {
	Constraints query.Constraints
	Attrs       []string
	Count       bool
	KeyOnly     bool
	Limit       int
	XLSX        string
	ConfigDir   string
}

// RegisterDataFlags declares the shared flags on fs and returns the structure
// they populate.
func RegisterDataFlags(fs *pflag.FlagSet) *DataOptions {
	o := &DataOptions{}
	fs.StringArrayVar(&o.Constraints.Eq, "eq", nil, "equality constraint of the form field,value (may repeat)")
	fs.StringArrayVar(&o.Constraints.Lt, "lt", nil, "less-than constraint of the form field,value (may repeat)")
	fs.StringArrayVar(&o.Constraints.Le, "le", nil, "less-or-equal constraint of the form field,value (may repeat)")
	fs.StringArrayVar(&o.Constraints.Gt, "gt", nil, "greater-than constraint of the form field,value (may repeat)")
	fs.StringArrayVar(&o.Constraints.Ge, "ge", nil, "greater-or-equal constraint of the form field,value (may repeat)")
	fs.StringArrayVar(&o.Constraints.Ne, "ne", nil, "inequality constraint of the form field,value (may repeat)")
	fs.StringArrayVar(&o.Constraints.In, "in", nil, "set-membership constraint of the form field,v1,v2,... (may repeat)")
	fs.StringArrayVar(&o.Constraints.Required, "required", nil, "field that must have a value (may repeat)")
	fs.StringVar(&o.Constraints.Keyword, "keyword", "", "free-text keyword constraint")
	fs.StringArrayVarP(&o.Attrs, "attr", "a", nil, "output attribute name (may repeat; comma lists allowed)")
	fs.BoolVar(&o.Count, "count", false, "output a record count instead of data")
	fs.BoolVar(&o.KeyOnly, "keyonly", false, "default the output to the object's key field only")
	fs.IntVar(&o.Limit, "limit", 0, "cap the number of records returned per query")
	fs.StringVar(&o.XLSX, "xlsx", "", "write results to the named xlsx workbook instead of standard output")
	fs.StringVar(&o.ConfigDir, "config", ".", "directory searched for p3.yaml")
	return o
}

// SelectOptions converts the parsed flags into field-selection options.
func (o *DataOptions) SelectOptions() query.SelectOptions {
	return query.SelectOptions{
		Count:  o.Count,
		IDOnly: o.KeyOnly,
		Limit:  o.Limit,
	}
}

// Connect builds the transport client and field-name view from the loaded
// configuration.
func (o *DataOptions) Connect() (*transport.Client, domain.Translator, error) {
	cfg, err := config.Load(o.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	client, err := transport.NewClient(cfg.URL,
		transport.WithToken(cfg.Token),
		transport.WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, nil, err
	}
	var tr domain.Translator = view.Identity{}
	if len(cfg.Aliases) > 0 {
		tr = view.NewAliasView(cfg.Aliases)
	}
	return client, tr, nil
}

// NewWriter picks the output writer the flags asked for.
func (o *DataOptions) NewWriter() tabio.RowWriter {
	if o.XLSX != "" {
		return tabio.NewXLSXWriter(o.XLSX)
	}
	return tabio.NewTabWriter(os.Stdout)
}
