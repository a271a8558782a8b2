package api

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nvieira/go-asteroid-watch/internal/engine"
	"github.com/nvieira/go-asteroid-watch/internal/lookup"
	"github.com/nvieira/go-asteroid-watch/internal/models"
	"github.com/nvieira/go-asteroid-watch/internal/observability"
	"github.com/nvieira/go-asteroid-watch/internal/repository"
	"github.com/nvieira/go-asteroid-watch/internal/stream"
)

// severityBroadcastFloor: assessments at this tier or above go to stream
// subscribers.
var severityBroadcastFloor = engine.SeveritySevere

type Handler struct {
	engine      *engine.Engine
	repo        repository.AssessmentRepository
	broadcaster *stream.Broadcaster
	places      lookup.Source
	metrics     *observability.Metrics

	// defaultTimeToImpactHours is assumed when a request does not carry a
	// lead time.
	defaultTimeToImpactHours float64
}

func NewHandler(
	eng *engine.Engine,
	repo repository.AssessmentRepository,
	broadcaster *stream.Broadcaster,
	places lookup.Source,
	metrics *observability.Metrics,
	defaultTimeToImpactHours float64,
) *Handler {
	return &Handler{
		engine:                   eng,
		repo:                     repo,
		broadcaster:              broadcaster,
		places:                   places,
		metrics:                  metrics,
		defaultTimeToImpactHours: defaultTimeToImpactHours,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/v1/assessments", h.createAssessment)
	r.GET("/api/v1/assessments", h.listAssessments)
	r.GET("/api/v1/assessments/:id", h.getAssessment)
	r.GET("/api/v1/assessments/:id/zones", h.getImpactZones)
	r.POST("/api/v1/deflection", h.runDeflection)
	r.GET("/api/v1/stream", h.streamAssessments)
	r.GET("/health", h.health)
}

type assessmentRequest struct {
	DiameterM         float64  `json:"diameter_m"`
	VelocityKMS       float64  `json:"velocity_kms"`
	ImpactAngleDeg    float64  `json:"impact_angle_deg"`
	Composition       string   `json:"composition"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	TimeToImpactHours *float64 `json:"time_to_impact_hours"`
}

type assessmentResponse struct {
	ID         string                   `json:"id"`
	Place      string                   `json:"place"`
	Assessment *engine.ImpactAssessment `json:"assessment"`
}

func (h *Handler) createAssessment(c *gin.Context) {
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	params := engine.ImpactParameters{
		DiameterM:      req.DiameterM,
		VelocityKMS:    req.VelocityKMS,
		ImpactAngleDeg: req.ImpactAngleDeg,
		Composition:    engine.Composition(req.Composition),
	}
	loc := engine.GeoLocation{Latitude: req.Latitude, Longitude: req.Longitude}

	timeToImpact := h.defaultTimeToImpactHours
	if req.TimeToImpactHours != nil {
		timeToImpact = *req.TimeToImpactHours
	}

	place := h.places.Lookup(loc)

	start := time.Now()
	result, err := h.engine.Compute(params, loc, engine.ComputeOptions{
		PopulationDensityPerKm2: place.PopulationDensityPerKm2,
		TimeToImpactHours:       timeToImpact,
	})
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			h.metrics.ValidationErrors.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assessment failed"})
		return
	}
	h.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	h.metrics.AssessmentsComputed.WithLabelValues("api", string(result.Severity)).Inc()

	record, err := models.FromAssessment("api", place.Name, result, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store assessment"})
		return
	}
	if err := h.repo.Add(c.Request.Context(), record); err != nil {
		slog.Error("error persisting assessment", "id", record.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store assessment"})
		return
	}

	if h.broadcaster != nil && record.SeverityRank >= severityBroadcastFloor.Rank() {
		h.broadcaster.Broadcast(record)
	}

	c.JSON(http.StatusCreated, assessmentResponse{
		ID:         record.ID,
		Place:      place.Name,
		Assessment: result,
	})
}

func (h *Handler) listAssessments(c *gin.Context) {
	filter := repository.Filter{
		Limit: 20, // Default to 20 assessments if limit param not supplied
	}

	if s := c.Query("severity"); s != "" {
		if sev, ok := engine.ParseSeverity(s); ok {
			filter.Severity = &sev
		}
	}
	if s := c.Query("min_severity"); s != "" {
		if sev, ok := engine.ParseSeverity(s); ok {
			filter.MinSeverity = &sev
		}
	}
	if y := c.Query("min_yield"); y != "" {
		if yield, err := strconv.ParseFloat(y, 64); err == nil {
			filter.MinYieldTons = &yield
		}
	}
	if s := c.Query("since"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			filter.Since = &t
		}
	}
	if s := c.Query("source"); s != "" {
		filter.Source = &s
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}

	assessments, err := h.repo.ListAssessments(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch assessments",
		})
		return
	}

	fc := toGeoJSON(assessments)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) getAssessment(c *gin.Context) {
	record, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch assessment"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		return
	}

	full, err := record.FullAssessment()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored assessment is unreadable"})
		return
	}

	c.JSON(http.StatusOK, assessmentResponse{
		ID:         record.ID,
		Place:      record.Name,
		Assessment: full,
	})
}

func (h *Handler) getImpactZones(c *gin.Context) {
	record, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch assessment"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		return
	}

	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, toZoneGeoJSON(record))
}

type deflectionRequest struct {
	AsteroidMassKg      float64 `json:"asteroid_mass_kg"`
	AsteroidVelocityMPS float64 `json:"asteroid_velocity_mps"`
	ImpactorMassKg      float64 `json:"impactor_mass_kg"`
	ImpactorVelocityMPS float64 `json:"impactor_velocity_mps"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
}

type deflectionResponse struct {
	Interception   engine.Interception      `json:"interception"`
	ResidualImpact *engine.ImpactAssessment `json:"residual_impact,omitempty"`
}

// runDeflection models a kinetic-impactor mission against a custom asteroid
// and, when the body is not fully deflected, assesses the residual impact at
// the target point.
func (h *Handler) runDeflection(c *gin.Context) {
	var req deflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.AsteroidMassKg <= 0 || req.AsteroidVelocityMPS <= 0 || req.ImpactorMassKg <= 0 || req.ImpactorVelocityMPS <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "masses and velocities must be positive"})
		return
	}

	interception := engine.Intercept(
		req.AsteroidMassKg, req.AsteroidVelocityMPS,
		req.ImpactorMassKg, req.ImpactorVelocityMPS,
	)

	resp := deflectionResponse{Interception: interception}

	if interception.Outcome != engine.DeflectionDeflected {
		// Diameter back-estimated from mass assuming rocky density.
		diameterM := math.Cbrt(6 * req.AsteroidMassKg / (math.Pi * 3000))

		loc := engine.GeoLocation{Latitude: req.Latitude, Longitude: req.Longitude}
		place := h.places.Lookup(loc)

		result, err := h.engine.Compute(engine.ImpactParameters{
			DiameterM:   diameterM,
			VelocityKMS: math.Abs(interception.FinalVelocityMPS) / 1000,
			Composition: engine.CompositionRocky,
		}, loc, engine.ComputeOptions{
			PopulationDensityPerKm2: place.PopulationDensityPerKm2,
		})
		if err != nil {
			var verr *engine.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "residual assessment failed"})
			return
		}
		h.metrics.AssessmentsComputed.WithLabelValues("deflection", string(result.Severity)).Inc()
		resp.ResidualImpact = result
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
