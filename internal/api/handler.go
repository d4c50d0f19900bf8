package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmartens/go-logistics/internal/broadcast"
	"github.com/jmartens/go-logistics/internal/models"
	"github.com/jmartens/go-logistics/internal/provider"
	"github.com/jmartens/go-logistics/internal/recommend"
	"github.com/jmartens/go-logistics/internal/repository"
)

type Handler struct {
	store       repository.Store
	providers   provider.Service
	engine      *recommend.Engine
	broadcaster *broadcast.Broadcaster
}

func NewHandler(store repository.Store, providers provider.Service, engine *recommend.Engine, broadcaster *broadcast.Broadcaster) *Handler {
	return &Handler{
		store:       store,
		providers:   providers,
		engine:      engine,
		broadcaster: broadcaster,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	api.GET("/facilities", h.getFacilities)
	api.GET("/facilities/:id", h.getFacility)
	api.GET("/facilities/:id/metrics", h.getFacilityMetrics)
	api.GET("/facilities/:id/alerts", h.getFacilityAlerts)
	api.GET("/alerts", h.getAlerts)
	api.GET("/alerts/stream", h.streamAlerts)
	api.POST("/alerts/:id/resolve", h.resolveAlert)
	api.GET("/messages", h.getMessages)
	api.POST("/messages", h.createMessage)
	api.GET("/weather/:location", h.getWeather)
	api.GET("/traffic/:route_id", h.getTraffic)
	api.GET("/earthquake-alerts", h.getQuakes)
	api.GET("/recommendations", h.getRecommendations)
	api.GET("/system-status", h.getSystemStatus)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func limitParam(c *gin.Context, def int) int {
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			return lim
		}
	}
	return def
}

func (h *Handler) getFacilities(c *gin.Context) {
	facilities, err := h.store.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch facilities"})
		return
	}
	c.JSON(http.StatusOK, facilities)
}

func (h *Handler) getFacility(c *gin.Context) {
	facility, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "facility not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch facility"})
		return
	}
	c.JSON(http.StatusOK, facility)
}

func (h *Handler) getFacilityMetrics(c *gin.Context) {
	metrics, err := h.store.ListMetrics(c.Request.Context(), c.Param("id"), limitParam(c, 24))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) getFacilityAlerts(c *gin.Context) {
	alerts, err := h.store.ListFacilityAlerts(c.Request.Context(), c.Param("id"), limitParam(c, 10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *Handler) getAlerts(c *gin.Context) {
	alerts, err := h.store.ListActiveAlerts(c.Request.Context(), limitParam(c, 10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *Handler) resolveAlert(c *gin.Context) {
	if err := h.store.ResolveAlert(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve alert"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) getMessages(c *gin.Context) {
	messages, err := h.store.ListRecentMessages(c.Request.Context(), limitParam(c, 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

type createMessageRequest struct {
	FromFacilityID string `json:"from_facility_id"`
	ToFacilityID   string `json:"to_facility_id"`
	Body           string `json:"message"`
	Priority       string `json:"priority"`
}

func (h *Handler) createMessage(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.FromFacilityID == "" || req.ToFacilityID == "" || req.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from_facility_id, to_facility_id and message are required"})
		return
	}
	if req.FromFacilityID == req.ToFacilityID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sender and recipient must differ"})
		return
	}

	msg := models.NewMessage(req.FromFacilityID, req.ToFacilityID, req.Body, models.MessagePriority(req.Priority))
	if err := h.store.InsertMessage(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) getWeather(c *gin.Context) {
	report, err := h.providers.Weather(c.Request.Context(), c.Param("location"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  "weather data unavailable",
			"status": "fallback",
		})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) getTraffic(c *gin.Context) {
	report, err := h.providers.Traffic(c.Request.Context(), c.Param("route_id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  "traffic data unavailable",
			"status": "fallback",
		})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) getQuakes(c *gin.Context) {
	quakes, err := h.providers.Quakes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  "earthquake data unavailable",
			"status": "fallback",
		})
		return
	}
	c.JSON(http.StatusOK, quakes)
}

func (h *Handler) getRecommendations(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Recommendations(c.Request.Context()))
}

func (h *Handler) getSystemStatus(c *gin.Context) {
	ctx := c.Request.Context()

	status := gin.H{
		"status":   "operational",
		"api_mode": string(h.providers.Mode()),
		"time":     time.Now().UTC().Format(time.RFC3339),
	}

	services := gin.H{}

	if err := h.store.Ping(ctx); err != nil {
		status["status"] = "degraded"
		services["database"] = "unreachable"
	} else {
		services["database"] = "connected"
		if facilities, err := h.store.ListActive(ctx); err == nil {
			status["facility_count"] = len(facilities)
		}
		if routes, err := h.store.ListActiveRoutes(ctx); err == nil {
			status["route_count"] = len(routes)
		}
	}

	if _, err := h.providers.Weather(ctx, "Chicago"); err != nil {
		status["status"] = "degraded"
		services["weather"] = "unavailable"
	} else {
		services["weather"] = "operational"
	}

	if _, err := h.providers.Traffic(ctx, "I-80-Chicago-Denver"); err != nil {
		status["status"] = "degraded"
		services["traffic"] = "unavailable"
	} else {
		services["traffic"] = "operational"
	}

	status["services"] = services
	c.JSON(http.StatusOK, status)
}

// streamAlerts pushes broadcast alerts to the client as server-sent events
// until the client disconnects.
func (h *Handler) streamAlerts(c *gin.Context) {
	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case alert, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("alert", alert)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
