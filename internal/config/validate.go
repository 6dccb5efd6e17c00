package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var scenarioSchema string

// ValidateSchema checks raw YAML scenario bytes against the embedded
// CUE schema. The filename is only used in error positions.
func ValidateSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	file, err := yaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("cannot parse scenario YAML: %w", err)
	}
	configVal := ctx.BuildFile(file)
	if configVal.Err() != nil {
		return fmt.Errorf("cannot build scenario value: %w", configVal.Err())
	}

	schemaVal := ctx.CompileString(scenarioSchema)
	if schemaVal.Err() != nil {
		return fmt.Errorf("invalid scenario schema: %w", schemaVal.Err())
	}

	unified := configVal.Unify(schemaVal)
	if unified.Err() != nil {
		return fmt.Errorf("scenario schema mismatch: %w", unified.Err())
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("scenario validation failed: %w", err)
	}
	return nil
}
