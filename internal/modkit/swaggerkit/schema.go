package swaggerkit

// Small builders for SpecMutator implementations

// Child returns m[key] as a map, creating it when absent
func Child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// Object is an object schema with the given properties
func Object(props map[string]any, required ...string) map[string]any {
	o := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		o["required"] = required
	}
	return o
}

// Ref points at a schema under components
func Ref(name string) map[string]any { return map[string]any{"$ref": "#/components/schemas/" + name} }

// Type is a scalar schema such as "string" or "integer"
func Type(name string) map[string]any { return map[string]any{"type": name} }

// ArrayOf is an array schema of items
func ArrayOf(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

// OK is a 200 response with a JSON body of the named schema
func OK(schema string) map[string]any {
	return map[string]any{
		"description": "OK",
		"content":     map[string]any{"application/json": map[string]any{"schema": Ref(schema)}},
	}
}

// Operation describes one endpoint; body is the request schema name or empty
func Operation(tag, summary, body, out string) map[string]any {
	op := map[string]any{
		"summary":   summary,
		"tags":      []any{tag},
		"responses": map[string]any{"200": OK(out)},
	}
	if body != "" {
		op["requestBody"] = map[string]any{
			"required": true,
			"content":  map[string]any{"application/json": map[string]any{"schema": Ref(body)}},
		}
	}
	return op
}
