// internal/server/handlers/docs.go

package handlers

import (
	_ "embed"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// OpenAPIPath is where the API description is served
const OpenAPIPath = "/api/docs/openapi.json"

//go:embed openapi.json
var openAPIDoc []byte

// OpenAPI serves the API description document
func OpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPIDoc)
}

// SwaggerUI serves the interactive API explorer for the document
func SwaggerUI() http.HandlerFunc {
	return httpSwagger.Handler(
		httpSwagger.URL(OpenAPIPath),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	)
}
