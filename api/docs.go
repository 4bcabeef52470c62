package api

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed openapi.yaml
var openAPIDocument []byte

const redocPage = `<!DOCTYPE html>
<html>
<head>
  <title>Common APIs Hub</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
  <redoc spec-url="/openapi.yaml"></redoc>
  <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`

func (s *Server) docsPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(redocPage))
}

func (s *Server) openAPISpec(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", openAPIDocument)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"time":             s.now().UTC().Format(time.RFC3339),
		"datasets":         s.data.Counts(),
		"timezones":        s.timezones.Len(),
		"shortener_driver": s.shortener.Driver(),
	})
}
