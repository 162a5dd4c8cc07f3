package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed faction.schema.json
var factionSchemaJSON []byte

const factionSchemaURL = "faction.schema.json"

func compileFactionSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(factionSchemaURL, bytes.NewReader(factionSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add faction schema: %w", err)
	}
	schema, err := compiler.Compile(factionSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile faction schema: %w", err)
	}
	return schema, nil
}

// schemaIssues flattens a validation error into "location: message" parts.
func schemaIssues(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	var parts []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			loc := node.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			parts = append(parts, fmt.Sprintf("%s: %s", loc, node.Message))
			return
		}
		for _, c := range node.Causes {
			walk(c)
		}
	}
	walk(verr)
	return strings.Join(parts, "; ")
}
