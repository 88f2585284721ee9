package spec

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// schemaSource constrains the shape of a ServiceSet document. Value rules
// that need the objective normalizer live in Spec.Validate.
const schemaSource = `
#ServiceSet: {
	apiVersion!: "budgetlab.dev/v1"
	kind!:       "ServiceSet"
	metadata!: {
		name!:    string & != ""
		labels?:  {[string]: string}
		runbook?: string
	}
	window?: {
		days?: int & >0
	}
	services!: [...#Service]
}

#Service: {
	name!:        string & =~"^[a-z0-9][a-z0-9_.-]*$"
	objective!:   number | string
	usedMinutes?: number & >=0
	events?:      int & >=1
}
`

// ValidateSchema checks raw YAML against the embedded CUE definition.
func ValidateSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#ServiceSet"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build %s: %w", filename, err)
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
