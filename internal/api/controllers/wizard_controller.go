package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"voyago/internal/models/request_models"
	"voyago/internal/services"
	"voyago/pkg/middleware"
	"voyago/pkg/utils"
)

type WizardController struct {
	wizardService services.WizardServiceInterface
}

func NewWizardController(wizardService services.WizardServiceInterface) *WizardController {
	return &WizardController{
		wizardService: wizardService,
	}
}

func (w *WizardController) respond(c *gin.Context, op func(userID string) (any, error), message string) {
	view, err := op(c.GetString(middleware.UserIDKey))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, message)
}

// GetWizard godoc
// @Summary Current wizard state
// @Description Stage, collected answers, whether the stage is complete and the remaining generation quota
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard [get]
func (w *WizardController) GetWizard(c *gin.Context) {
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.Get(c.Request.Context(), userID)
	}, "Wizard state fetched")
}

// UpdatePersona godoc
// @Summary Save the persona seed
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body request_models.PersonaRequest true "Persona"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard/persona [put]
func (w *WizardController) UpdatePersona(c *gin.Context) {
	var req request_models.PersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.UpdatePersona(c.Request.Context(), userID, req)
	}, "Persona saved")
}

// UpdateQuestionnaire godoc
// @Summary Save the questionnaire answers
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body request_models.QuestionnaireRequest true "Answers"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard/questions [put]
func (w *WizardController) UpdateQuestionnaire(c *gin.Context) {
	var req request_models.QuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.UpdateQuestionnaire(c.Request.Context(), userID, req)
	}, "Answers saved")
}

// UpdateDates godoc
// @Summary Save destination and travel dates
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body request_models.DatesRequest true "Destination and dates"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard/dates [put]
func (w *WizardController) UpdateDates(c *gin.Context) {
	var req request_models.DatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.UpdateDates(c.Request.Context(), userID, req)
	}, "Dates saved")
}

// Advance godoc
// @Summary Move to the next stage
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard/advance [post]
func (w *WizardController) Advance(c *gin.Context) {
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.Advance(c.Request.Context(), userID)
	}, "Moved to the next step")
}

// Back godoc
// @Summary Move to the previous stage
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard/back [post]
func (w *WizardController) Back(c *gin.Context) {
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.Back(c.Request.Context(), userID)
	}, "Moved to the previous step")
}

// GenerateImage godoc
// @Summary Generate the persona portrait
// @Description Counts against the hourly image quota even when generation fails
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard/image [post]
func (w *WizardController) GenerateImage(c *gin.Context) {
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.GenerateImage(c.Request.Context(), userID)
	}, "Portrait generated")
}

// GenerateItinerary godoc
// @Summary Generate the wizard itinerary
// @Description Counts against the daily itinerary quota
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard/itinerary [post]
func (w *WizardController) GenerateItinerary(c *gin.Context) {
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.GenerateItinerary(c.Request.Context(), userID)
	}, "Itinerary generated")
}

// UpdateItineraryItem godoc
// @Summary Toggle or rename an item of the wizard itinerary
// @Tags Wizard
// @Accept json
// @Produce json
// @Param itemId path string true "Itinerary item ID"
// @Param request body request_models.UpdateItemRequest false "Item changes"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard/itinerary/items/{itemId} [patch]
func (w *WizardController) UpdateItineraryItem(c *gin.Context) {
	var req request_models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.UpdateItineraryItem(c.Request.Context(), userID, c.Param("itemId"), req)
	}, "Itinerary item updated")
}

// Reset godoc
// @Summary Start the wizard over
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wizard/reset [post]
func (w *WizardController) Reset(c *gin.Context) {
	w.respond(c, func(userID string) (any, error) {
		return w.wizardService.Reset(c.Request.Context(), userID)
	}, "Wizard reset")
}
