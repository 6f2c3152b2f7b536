// Package view translates between caller-facing field names and the physical
// names used by the remote service. A view is chosen once per invocation;
// names the view does not know pass through unchanged.
package view

// Identity is the default view: every name is its own internal form.
type Identity struct{}

func (Identity) ToInternal(name string) string { return name }

func (Identity) ToInternalList(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

func (Identity) ToExternalList(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// AliasView maps friendly external names onto internal physical names using a
// fixed table, typically loaded from configuration.
type AliasView struct {
	toInternal map[string]string
	toExternal map[string]string
}

// NewAliasView builds a view from an external-name to internal-name table.
func NewAliasView(aliases map[string]string) *AliasView {
	v := &AliasView{
		toInternal: make(map[string]string, len(aliases)),
		toExternal: make(map[string]string, len(aliases)),
	}
	for ext, internal := range aliases {
		v.toInternal[ext] = internal
		v.toExternal[internal] = ext
	}
	return v
}

func (v *AliasView) ToInternal(name string) string {
	if internal, ok := v.toInternal[name]; ok {
		return internal
	}
	return name
}

func (v *AliasView) ToInternalList(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = v.ToInternal(name)
	}
	return out
}

func (v *AliasView) ToExternalList(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		if ext, ok := v.toExternal[name]; ok {
			out[i] = ext
		} else {
			out[i] = name
		}
	}
	return out
}
