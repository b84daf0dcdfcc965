// Package swaggerkit mounts the swagger UI and serves the OpenAPI document
package swaggerkit

import (
	"net/http"

	phttp "lawsearch/internal/platform/net/http"
	"lawsearch/internal/services/api/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options control the docs mount
type Options struct {
	Enabled     bool
	TitleSuffix string
}

// Mount the Swagger UI and JSON spec if enabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(o.TitleSuffix))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
