package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"voyago/internal/models/request_models"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

type SearchController struct {
	searchService services.SearchServiceInterface
}

func NewSearchController(searchService services.SearchServiceInterface) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// SearchFlights godoc
// @Summary Search flights
// @Description Live offers when a provider answers, otherwise estimated sample fares (source=estimated)
// @Tags Search
// @Accept json
// @Produce json
// @Param request body request_models.FlightSearchRequest true "Flight search"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /search/flights [post]
func (s *SearchController) SearchFlights(c *gin.Context) {
	var req request_models.FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := s.searchService.SearchFlights(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, result.Notice)
}

// SearchHotels godoc
// @Summary Search hotels
// @Tags Search
// @Accept json
// @Produce json
// @Param request body request_models.HotelSearchRequest true "Hotel search"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /search/hotels [post]
func (s *SearchController) SearchHotels(c *gin.Context) {
	var req request_models.HotelSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := s.searchService.SearchHotels(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, result.Notice)
}

// SearchTrip godoc
// @Summary Search flights and hotels together
// @Tags Search
// @Accept json
// @Produce json
// @Param request body request_models.TripSearchRequest true "Combined search"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /search/trip [post]
func (s *SearchController) SearchTrip(c *gin.Context) {
	var req request_models.TripSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := s.searchService.SearchTrip(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Search completed")
}
