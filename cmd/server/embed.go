//go:build embed
// +build embed

package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"mortgage/internal/config"

	"github.com/gin-gonic/gin"
)

//go:embed web
var webFS embed.FS

// setupStaticFiles configures templates and static assets from the embedded web directory
func setupStaticFiles(router *gin.Engine, _ config.ServerConfig) {
	log.Println("📦 Using embedded templates and assets")

	tmpl, err := template.ParseFS(webFS, "web/*.html")
	if err != nil {
		log.Fatalf("Failed to parse embedded templates: %v", err)
	}
	router.SetHTMLTemplate(tmpl)

	staticFS, err := fs.Sub(webFS, "web/static")
	if err != nil {
		log.Fatalf("Failed to get static subdirectory: %v", err)
	}
	router.StaticFS("/static", http.FS(staticFS))

	router.NoRoute(notFound)
}

func notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}
