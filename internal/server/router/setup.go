package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abiwaumi/tablewater/internal/config"
)

// NewSetup builds the engine served when required backend configuration is
// missing. Every path answers 503 with setup instructions; the application
// never runs degraded.
func NewSetup(cfgErr *config.ConfigurationError) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	handler := func(c *gin.Context) {
		if strings.Contains(c.GetHeader("Accept"), "text/html") {
			c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", []byte(setupPage(cfgErr)))
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "configuration required",
			"missing": cfgErr.Missing,
			"steps": []string{
				"Provision a MongoDB database (e.g. a free Atlas cluster).",
				"Create a .env file in the project root.",
				"Set the variables listed under 'missing'.",
				"Restart the server.",
			},
		})
	}

	r.NoRoute(handler)
	r.GET("/", handler)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "setup required"})
	})

	return r
}

func setupPage(cfgErr *config.ConfigurationError) string {
	var vars strings.Builder
	for _, name := range cfgErr.Missing {
		fmt.Fprintf(&vars, "<li><code>%s</code></li>", name)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Configuration Required</title></head>
<body>
<h1>Backend configuration required</h1>
<p>The application cannot connect to its backend. The following environment
variables are missing:</p>
<ul>%s</ul>
<h2>Setup steps</h2>
<ol>
<li>Provision a MongoDB database (e.g. a free Atlas cluster).</li>
<li>Create a <code>.env</code> file in the project root with the variables above.</li>
<li>Restart the server.</li>
</ol>
</body>
</html>`, vars.String())
}
