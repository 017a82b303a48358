package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"voyago/internal/models/request_models"
	"voyago/internal/services"
	"voyago/pkg/middleware"
	"voyago/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface) *BookingController {
	return &BookingController{
		bookingService: bookingService,
	}
}

// ListBookings godoc
// @Summary List my bookings
// @Description Flights and hotels, newest first
// @Tags Bookings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings [get]
func (b *BookingController) ListBookings(c *gin.Context) {
	list, err := b.bookingService.Load(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Bookings fetched successfully")
}

// BookFlight godoc
// @Summary Book a flight
// @Description Stores the booking and returns the refreshed booking list
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.BookFlightRequest true "Flight booking"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/flights [post]
func (b *BookingController) BookFlight(c *gin.Context) {
	var req request_models.BookFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	list, err := b.bookingService.BookFlight(c.Request.Context(), c.GetString(middleware.UserIDKey), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithCode(c, http.StatusCreated, list, "Flight booked successfully")
}

// BookHotel godoc
// @Summary Book a hotel
// @Description Total price is nights x rate x rooms, computed server side
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.BookHotelRequest true "Hotel booking"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/hotels [post]
func (b *BookingController) BookHotel(c *gin.Context) {
	var req request_models.BookHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	list, err := b.bookingService.BookHotel(c.Request.Context(), c.GetString(middleware.UserIDKey), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithCode(c, http.StatusCreated, list, "Hotel booked successfully")
}

// DeleteBooking godoc
// @Summary Delete a booking
// @Tags Bookings
// @Produce json
// @Param kind path string true "flights or hotels"
// @Param id path string true "Booking ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/{kind}/{id} [delete]
func (b *BookingController) DeleteBooking(c *gin.Context) {
	list, err := b.bookingService.Delete(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("kind"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Booking deleted successfully")
}
