// Package docs embeds the OpenAPI description and the Swagger UI page.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte

//go:embed swagger.html
var SwaggerUIPage []byte
