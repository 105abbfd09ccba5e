package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vrickster/vault/internal/middleware"
)

func main() {
	InitializeLogger()
	InitializeConfig()
	InitializeStorage()
	InitializeServices()
	defer blobStore.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(Logger))
	r.Use(middleware.Gzip())
	r.Use(middleware.CORS())

	handler.RegisterRoutes(r)
	registerStatic(r, Config.StaticDir)

	Logger.Infof("[App] starting HTTP server on port %s", Config.Port)
	log.Fatal(http.ListenAndServe(":"+Config.Port, r))
}

// registerStatic serves the front end with an index.html fallback so
// client-side routes resolve. API and proxy paths are never swallowed.
func registerStatic(r *gin.Engine, dir string) {
	if _, err := os.Stat(dir); err != nil {
		Logger.Warnf("[App] static dir %s unavailable, serving API only: %v", dir, err)
		return
	}

	r.Static("/assets", filepath.Join(dir, "assets"))
	r.StaticFile("/", filepath.Join(dir, "index.html"))

	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/proxy/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		file := filepath.Join(dir, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}
