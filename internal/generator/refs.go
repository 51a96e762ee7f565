package generator

import (
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
)

const definitionsPrefix = "#/definitions/"

// RefsLookup indexes the schema definitions of a spec by reference string
// (for example "#/definitions/Pet")
type RefsLookup map[string]*base.SchemaProxy

// BuildRefsLookup indexes every entry of a definitions object
func BuildRefsLookup(definitions *v2.Definitions) RefsLookup {
	refs := RefsLookup{}
	if definitions == nil || definitions.Definitions == nil {
		return refs
	}
	for pair := definitions.Definitions.First(); pair != nil; pair = pair.Next() {
		refs[definitionsPrefix+pair.Key()] = pair.Value()
	}
	return refs
}

// Resolve returns the definition registered for a reference
func (r RefsLookup) Resolve(ref string) (*base.SchemaProxy, bool) {
	proxy, ok := r[ref]
	return proxy, ok && proxy != nil
}
