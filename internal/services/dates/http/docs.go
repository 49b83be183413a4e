package http

import sk "datefmt/internal/modkit/swaggerkit"

// Spec adds the dates paths and schemas to an OpenAPI document
// it only assigns keys so running it twice is harmless
func Spec(spec map[string]any) {
	paths := sk.Child(spec, "paths")
	schemas := sk.Child(sk.Child(spec, "components"), "schemas")
	str, boolean := sk.Type("string"), sk.Type("boolean")

	values := sk.ArrayOf(str)
	values["minItems"], values["maxItems"] = 1, 500
	schemas["ClassifyInput"] = sk.Object(map[string]any{"values": values}, "values")
	schemas["ClassifyOutput"] = sk.Object(map[string]any{
		"rows": sk.ArrayOf(sk.Object(map[string]any{
			"value":           str,
			"looks_like_date": boolean,
			"is_date":         boolean,
		})),
	})
	schemas["FormatInput"] = sk.Object(map[string]any{
		"date":          map[string]any{"description": "date string, number, array of those, or null"},
		"format_string": str,
		"from_now":      boolean,
		"difference":    str,
		"locale":        str,
	}, "date")
	schemas["ResolveInput"] = sk.Object(map[string]any{
		"value": map[string]any{"description": "value handed to the resolver as the source field"},
		"args":  map[string]any{"type": "object", "additionalProperties": true},
	})
	schemas["Result"] = sk.Object(map[string]any{
		"result": map[string]any{"description": "formatted string, number, array or null"},
	})
	schemas["LayoutsOutput"] = sk.Object(map[string]any{
		"templates": sk.ArrayOf(str),
		"pattern":   str,
		"lengths":   sk.ArrayOf(sk.Type("integer")),
		"locales":   sk.ArrayOf(str),
	})

	paths["/dates/classify"] = map[string]any{"post": sk.Operation("dates", "Classify values as dates", "ClassifyInput", "ClassifyOutput")}
	paths["/dates/format"] = map[string]any{"post": sk.Operation("dates", "Format, describe or diff a date", "FormatInput", "Result")}
	paths["/dates/resolve"] = map[string]any{"post": sk.Operation("dates", "Run the date resolver over a value", "ResolveInput", "Result")}
	paths["/dates/layouts"] = map[string]any{"get": sk.Operation("dates", "Accepted layouts and compiled pattern", "", "LayoutsOutput")}
}
