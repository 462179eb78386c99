// Package schema provides JSON schema validation for ccenv configuration files.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	schemafs "github.com/ccenv/ccenv/schema"
)

var (
	familiesSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		familiesData, err := schemafs.FS.ReadFile("families.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read families schema: %w", err)
			return
		}

		familiesDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(familiesData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal families schema: %w", err)
			return
		}

		if err := compiler.AddResource("families.schema.json", familiesDoc); err != nil {
			compileErr = fmt.Errorf("add families schema resource: %w", err)
			return
		}

		familiesSchema, err = compiler.Compile("families.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile families schema: %w", err)
		}
	})

	return compileErr
}

// ValidateFamilies validates YAML family-configuration data against the
// families schema. The YAML document is round-tripped through JSON so the
// validator sees the exact value shapes it was written for.
func ValidateFamilies(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalize configuration: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("normalize configuration: %w", err)
	}

	if err := familiesSchema.Validate(doc); err != nil {
		return fmt.Errorf("families validation failed: %w", err)
	}

	return nil
}
