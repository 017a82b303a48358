package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	contentService   services.ContentServiceInterface
	logger           *zap.Logger
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, contentService services.ContentServiceInterface, logger *zap.Logger) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		contentService:   contentService,
		logger:           logger,
	}
}

// Generate godoc
// @Summary Generate a multi-city itinerary
// @Description Always returns an itinerary; source tells which tier produced it (primary, per_city, template)
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.TripParams true "Trip parameters"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/generate [post]
func (i *ItineraryController) Generate(c *gin.Context) {
	var req request_models.TripParams
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := i.itineraryService.Generate(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Itinerary generated successfully")
}

type streamOutcome struct {
	result *response_models.ItineraryResult
	err    error
}

// GenerateStream godoc
// @Summary Generate an itinerary with progress events
// @Description Server-sent events: "progress" events while generating, then one "result" (or "error") event
// @Tags Itineraries
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.TripParams true "Trip parameters"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/generate/stream [post]
func (i *ItineraryController) GenerateStream(c *gin.Context) {
	var req request_models.TripParams
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	// bad input gets the JSON error envelope, not a stream
	if _, err := services.PlanTrip(req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	progress := make(chan response_models.ProgressEvent)
	done := make(chan streamOutcome, 1)
	go func() {
		result, err := i.itineraryService.GenerateWithProgress(c.Request.Context(), req, progress)
		done <- streamOutcome{result: result, err: err}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		if ev, ok := <-progress; ok {
			c.SSEvent("progress", ev)
			return true
		}

		out := <-done
		if out.err != nil {
			i.logger.Warn("itinerary stream failed", zap.String("trace_id", c.GetString("trace_id")), zap.Error(out.err))
			c.SSEvent("error", gin.H{"message": "Unable to generate itinerary"})
			return false
		}
		c.SSEvent("result", out.result)
		return false
	})
}

// GenerateContent godoc
// @Summary Free-text travel content
// @Description kind is visa, currency or recommendations; a canned fallback is returned when generation fails
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param kind path string true "visa | currency | recommendations"
// @Param request body request_models.ContentRequest true "Content request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /content/{kind} [post]
func (i *ItineraryController) GenerateContent(c *gin.Context) {
	var req request_models.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	content, err := i.contentService.Generate(c.Request.Context(), c.Param("kind"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, content, "Content generated successfully")
}
