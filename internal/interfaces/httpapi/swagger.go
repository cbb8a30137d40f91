package httpapi

import (
	_ "embed"
	"net/http"
	"strings"
)

//go:embed openapi.yaml
var openAPISpec []byte

const docsTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Athletes API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>SwaggerUIBundle({ url: '{{SPEC_URL}}', dom_id: '#swagger-ui' });</script>
</body>
</html>`

var docsPage = []byte(strings.ReplaceAll(docsTemplate, "{{SPEC_URL}}", "/openapi.yaml"))

// OpenAPI serves the embedded API description.
func (h *Handler) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	serveStatic(w, "application/yaml; charset=utf-8", openAPISpec)
}

// SwaggerUI serves a Swagger UI shell pointed at /openapi.yaml.
func (h *Handler) SwaggerUI(w http.ResponseWriter, _ *http.Request) {
	serveStatic(w, "text/html; charset=utf-8", docsPage)
}

func serveStatic(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(body)
}
