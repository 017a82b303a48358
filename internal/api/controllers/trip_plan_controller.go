package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"voyago/internal/models/request_models"
	"voyago/internal/services"
	"voyago/pkg/middleware"
	"voyago/pkg/utils"
)

type TripPlanController struct {
	tripPlanService services.TripPlanServiceInterface
}

func NewTripPlanController(tripPlanService services.TripPlanServiceInterface) *TripPlanController {
	return &TripPlanController{
		tripPlanService: tripPlanService,
	}
}

// ListTrips godoc
// @Summary List saved trip plans
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [get]
func (t *TripPlanController) ListTrips(c *gin.Context) {
	plans, err := t.tripPlanService.List(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Trip plans fetched successfully")
}

// SaveTrip godoc
// @Summary Save a trip plan
// @Description At least one city is required; the itinerary is stored as given
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.SaveTripPlanRequest true "Trip plan"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripPlanController) SaveTrip(c *gin.Context) {
	var req request_models.SaveTripPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := t.tripPlanService.Save(c.Request.Context(), c.GetString(middleware.UserIDKey), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithCode(c, http.StatusCreated, plan, "Trip plan saved successfully")
}

// GetTrip godoc
// @Summary Get one trip plan
// @Tags Trips
// @Produce json
// @Param id path string true "Trip plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [get]
func (t *TripPlanController) GetTrip(c *gin.Context) {
	plan, err := t.tripPlanService.Get(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Trip plan fetched successfully")
}

// DeleteTrip godoc
// @Summary Delete a trip plan
// @Tags Trips
// @Produce json
// @Param id path string true "Trip plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [delete]
func (t *TripPlanController) DeleteTrip(c *gin.Context) {
	if err := t.tripPlanService.Delete(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip plan deleted successfully")
}

// UpdateItem godoc
// @Summary Toggle or rename one itinerary item
// @Description An empty body toggles done
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip plan ID"
// @Param itemId path string true "Itinerary item ID"
// @Param request body request_models.UpdateItemRequest false "Item changes"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/items/{itemId} [patch]
func (t *TripPlanController) UpdateItem(c *gin.Context) {
	var req request_models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := t.tripPlanService.UpdateItem(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id"), c.Param("itemId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Itinerary item updated")
}

// ExportPDF godoc
// @Summary Download a trip plan as PDF
// @Tags Trips
// @Produce application/pdf
// @Param id path string true "Trip plan ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/pdf [get]
func (t *TripPlanController) ExportPDF(c *gin.Context) {
	data, filename, err := t.tripPlanService.ExportPDF(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
