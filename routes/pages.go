package routes

import (
	"net/http"

	"port-inspection-analytics/internal/config"

	"github.com/gin-gonic/gin"
)

// SetupPageRoutes serves the single dashboard page. All interactivity happens
// client-side against the JSON API.
func SetupPageRoutes(router *gin.Engine, cfg *config.Config) {
	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "dashboard.html", gin.H{
			"Title":       "Port Authority Inspection Analytics Dashboard",
			"TopNDefault": cfg.TopNDefault,
		})
	})
}
