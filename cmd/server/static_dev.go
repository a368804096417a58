//go:build !embed
// +build !embed

package main

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"mortgage/internal/config"

	"github.com/gin-gonic/gin"
)

// setupStaticFiles configures templates and static assets for development (no embedding)
func setupStaticFiles(router *gin.Engine, cfg config.ServerConfig) {
	log.Println("🔧 Using local filesystem for templates (development mode)")
	log.Printf("   Templates loaded from %s", cfg.TemplateDir)

	router.LoadHTMLGlob(filepath.Join(cfg.TemplateDir, "*.html"))
	router.Static("/static", filepath.Join(cfg.TemplateDir, "static"))

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.Redirect(http.StatusFound, "/")
	})
}
