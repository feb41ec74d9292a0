package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema checks raw YAML config against the embedded JSON schema.
// Unknown keys and sections of a wrong shape are reported, values are checked by validate.
func VerifyAgainstEmbeddedSchema(raw []byte) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		return nil // empty file, all defaults
	}

	defs, _ := schema["$defs"].(map[string]any)
	return verifyNode("", doc, schema, defs)
}

// verifyNode walks value along the schema node, resolving local $ref
func verifyNode(path string, val any, node, defs map[string]any) error {
	node = resolveRef(node, defs)
	if val == nil {
		return nil
	}

	switch typ, _ := node["type"].(string); typ {
	case "object":
		obj, ok := val.(map[string]any)
		if !ok {
			return fmt.Errorf("%s must be an object", displayPath(path))
		}
		props, _ := node["properties"].(map[string]any)
		additional, _ := node["additionalProperties"].(map[string]any)
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub, known := props[k].(map[string]any)
			if !known {
				if additional == nil {
					return fmt.Errorf("unknown key %s", joinPath(path, k))
				}
				sub = additional
			}
			if err := verifyNode(joinPath(path, k), obj[k], sub, defs); err != nil {
				return err
			}
		}
	case "array":
		arr, ok := val.([]any)
		if !ok {
			return fmt.Errorf("%s must be a list", displayPath(path))
		}
		items, _ := node["items"].(map[string]any)
		for i, v := range arr {
			if items == nil {
				break
			}
			if err := verifyNode(fmt.Sprintf("%s[%d]", path, i), v, items, defs); err != nil {
				return err
			}
		}
	case "boolean":
		if _, ok := val.(bool); !ok {
			return fmt.Errorf("%s must be true or false", displayPath(path))
		}
	}
	return nil
}

func resolveRef(node, defs map[string]any) map[string]any {
	for range 8 { // refs chain depth limit
		ref, ok := node["$ref"].(string)
		if !ok {
			return node
		}
		target, ok := defs[strings.TrimPrefix(ref, "#/$defs/")].(map[string]any)
		if !ok {
			return node
		}
		node = target
	}
	return node
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "config"
	}
	return path
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
