package http

import sk "datefmt/internal/modkit/swaggerkit"

// Spec adds the meta endpoints to an OpenAPI document
func Spec(spec map[string]any) {
	paths := sk.Child(spec, "paths")
	schemas := sk.Child(sk.Child(spec, "components"), "schemas")
	str := sk.Type("string")

	schemas["HealthResponse"] = sk.Object(map[string]any{
		"ok": sk.Type("boolean"), "service": str, "started": str, "now": str,
	})
	schemas["ReadyResponse"] = sk.Object(map[string]any{
		"status": str,
		"driver": str,
		"now":    str,
		"checks": sk.ArrayOf(sk.Object(map[string]any{"name": str, "status": str, "error": str})),
	})
	schemas["BuildInfo"] = sk.Object(map[string]any{
		"service": str, "version": str, "commit": str, "date": str,
	})
	schemas["ServiceResponse"] = sk.Object(map[string]any{
		"name": str, "started": str, "uptime": sk.Type("integer"),
	})

	paths["/meta/health"] = map[string]any{"get": sk.Operation("meta", "Liveness", "", "HealthResponse")}
	paths["/meta/ready"] = map[string]any{"get": sk.Operation("meta", "Readiness with dependency checks", "", "ReadyResponse")}
	paths["/meta/version"] = map[string]any{"get": sk.Operation("meta", "Build info", "", "BuildInfo")}
	paths["/meta/service"] = map[string]any{"get": sk.Operation("meta", "Service name and uptime", "", "ServiceResponse")}
}
