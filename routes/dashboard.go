package routes

import (
	"net/http"
	"strconv"
	"time"

	"port-inspection-analytics/internal/config"
	"port-inspection-analytics/internal/dataset"
	"port-inspection-analytics/internal/telemetry"
	"port-inspection-analytics/services"
	"port-inspection-analytics/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// SetupDashboardRoutes wires the dashboard API. Every handler re-runs the
// pipeline from the memoized tables; nothing is persisted between requests.
func SetupDashboardRoutes(router *gin.Engine, cfg *config.Config, store *dataset.Store, metrics *telemetry.Metrics) {
	api := router.Group("/api/v1")

	api.GET("/authorities", listAuthorities(store))
	api.GET("/vessels", listVessels(store))
	api.GET("/focus", getFocus(cfg, store))
	api.GET("/shipcheck", shipCheck(store, metrics))
	api.GET("/export", exportCSV(store, metrics))
	api.POST("/cache/refresh", refreshCache(store))
}

func listAuthorities(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, err := store.Authority()
		if err != nil {
			utils.RespondWithServiceUnavailable(c, "Failed to load authority data", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"authorities": services.Authorities(table.Records),
		})
	}
}

func listVessels(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ships, err := store.Ships()
		if err != nil {
			utils.RespondWithServiceUnavailable(c, "Failed to load ship data", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"vessels": services.Vessels(ships),
		})
	}
}

func getFocus(cfg *config.Config, store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authority := c.Query("authority")
		if authority == "" {
			utils.RespondWithBadRequest(c, "authority query parameter is required", nil)
			return
		}

		table, err := store.Authority()
		if err != nil {
			utils.RespondWithServiceUnavailable(c, "Failed to load authority data", gin.H{"error": err.Error()})
			return
		}

		topN, err := strconv.Atoi(c.DefaultQuery("top_n", strconv.Itoa(cfg.TopNDefault)))
		if err != nil {
			topN = cfg.TopNDefault
		}
		topN = services.ClampTopN(topN)

		filtered := services.FilterByAuthority(table.Records, authority)
		if table.HasDate {
			from, to := parseDateRange(c)
			filtered = services.FilterByDateRange(filtered, from, to)
		}

		search := c.Query("search")
		tableRows := services.SearchPhrases(filtered, search)

		payload := gin.H{
			"authority":  authority,
			"top_n":      topN,
			"chart":      services.TopByScore(filtered, topN),
			"word_cloud": services.WordCloud(filtered),
			"summary":    services.Summarize(filtered, table.Records),
			"table":      tableRows,
			"search":     search,
			"has_date":   table.HasDate,
		}

		if table.HasDate {
			min, max := services.DateBounds(table.Records)
			if !min.IsZero() {
				payload["date_min"] = min.Format(dateLayout)
				payload["date_max"] = max.Format(dateLayout)
			}
		}

		if len(tableRows) == 0 {
			payload["message"] = "No phrases match the current filters."
		}

		c.JSON(http.StatusOK, payload)
	}
}

func shipCheck(store *dataset.Store, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		authority := c.Query("authority")
		vessel := c.Query("vessel")
		if authority == "" || vessel == "" {
			utils.RespondWithBadRequest(c, "authority and vessel query parameters are required", nil)
			return
		}

		table, err := store.Authority()
		if err != nil {
			utils.RespondWithServiceUnavailable(c, "Failed to load authority data", gin.H{"error": err.Error()})
			return
		}

		ships, err := store.Ships()
		if err != nil {
			utils.RespondWithServiceUnavailable(c, "Failed to load ship data", gin.H{"error": err.Error()})
			return
		}

		portPhrases := services.FilterByAuthority(table.Records, authority)
		result := services.CheckShip(ships, portPhrases, vessel)

		if metrics != nil {
			metrics.RecordKeywordExtraction(len(result.Keywords))
		}

		message := "No major overlaps found with this port's inspection priorities."
		if result.NoRelevantDeficiencies {
			message = "No relevant deficiencies found."
		} else if result.AttentionRequired {
			message = "This port inspects areas related to past issues on this ship. Please double-check before arrival."
		}

		c.JSON(http.StatusOK, gin.H{
			"authority": authority,
			"result":    result,
			"message":   message,
		})
	}
}

func exportCSV(store *dataset.Store, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		authority := c.Query("authority")
		if authority == "" {
			utils.RespondWithBadRequest(c, "authority query parameter is required", nil)
			return
		}

		table, err := store.Authority()
		if err != nil {
			utils.RespondWithServiceUnavailable(c, "Failed to load authority data", gin.H{"error": err.Error()})
			return
		}

		filtered := services.FilterByAuthority(table.Records, authority)
		if table.HasDate {
			from, to := parseDateRange(c)
			filtered = services.FilterByDateRange(filtered, from, to)
		}
		filtered = services.SearchPhrases(filtered, c.Query("search"))

		data, err := services.ExportCSV(filtered, table.HasDate)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to generate CSV export", gin.H{"error": err.Error()})
			return
		}

		if metrics != nil {
			metrics.RecordExport(authority, len(filtered))
		}

		filename := services.ExportFilename(authority, time.Now())
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "text/csv", data)
	}
}

func refreshCache(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Invalidate()
		c.JSON(http.StatusOK, gin.H{
			"message": "Dataset cache cleared. Workbooks will be re-read on next access.",
		})
	}
}

func parseDateRange(c *gin.Context) (from, to time.Time) {
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			from = t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			to = t
		}
	}
	return from, to
}
