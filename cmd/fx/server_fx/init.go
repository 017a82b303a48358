package server_fx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"voyago/internal/api/controllers"
	"voyago/internal/config"
	"voyago/pkg/middleware"
	"voyago/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(ProvideRouter),
	fx.Invoke(StartServer),
)

type Controllers struct {
	fx.In

	Account   *controllers.AccountController
	Search    *controllers.SearchController
	Booking   *controllers.BookingController
	Itinerary *controllers.ItineraryController
	TripPlan  *controllers.TripPlanController
	Wizard    *controllers.WizardController
	Dashboard *controllers.DashboardController
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(cfg *config.Config, tokens *utils.TokenIssuer, ctrl Controllers) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	r.Use(middleware.TraceIDMiddleware())

	throttle := middleware.NewThrottle(cfg.ThrottlePerMinute, cfg.ThrottleBurst)
	RegisterRoutes(r, middleware.JWTAuthMiddleware(tokens), throttle.Middleware(), ctrl)

	return r
}

func RegisterRoutes(r *gin.Engine, auth, throttle gin.HandlerFunc, ctrl Controllers) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})

	accounts := r.Group("/accounts")
	accounts.POST("/register", ctrl.Account.Register)
	accounts.POST("/login", ctrl.Account.Login)

	authed := r.Group("/", auth)

	profile := authed.Group("/profile")
	profile.GET("", ctrl.Account.GetProfile)
	profile.PUT("", ctrl.Account.UpdateProfile)
	profile.POST("/avatar", ctrl.Account.UploadAvatar)

	search := authed.Group("/search")
	search.POST("/flights", ctrl.Search.SearchFlights)
	search.POST("/hotels", ctrl.Search.SearchHotels)
	search.POST("/trip", ctrl.Search.SearchTrip)

	bookings := authed.Group("/bookings")
	bookings.GET("", ctrl.Booking.ListBookings)
	bookings.POST("/flights", ctrl.Booking.BookFlight)
	bookings.POST("/hotels", ctrl.Booking.BookHotel)
	bookings.DELETE("/:kind/:id", ctrl.Booking.DeleteBooking)

	itineraries := authed.Group("/itineraries", throttle)
	itineraries.POST("/generate", ctrl.Itinerary.Generate)
	itineraries.POST("/generate/stream", ctrl.Itinerary.GenerateStream)

	authed.POST("/content/:kind", throttle, ctrl.Itinerary.GenerateContent)

	trips := authed.Group("/trips")
	trips.GET("", ctrl.TripPlan.ListTrips)
	trips.POST("", ctrl.TripPlan.SaveTrip)
	trips.GET("/:id", ctrl.TripPlan.GetTrip)
	trips.DELETE("/:id", ctrl.TripPlan.DeleteTrip)
	trips.PATCH("/:id/items/:itemId", ctrl.TripPlan.UpdateItem)
	trips.GET("/:id/pdf", ctrl.TripPlan.ExportPDF)

	wizard := authed.Group("/wizard")
	wizard.GET("", ctrl.Wizard.GetWizard)
	wizard.PUT("/persona", ctrl.Wizard.UpdatePersona)
	wizard.PUT("/questions", ctrl.Wizard.UpdateQuestionnaire)
	wizard.PUT("/dates", ctrl.Wizard.UpdateDates)
	wizard.POST("/advance", ctrl.Wizard.Advance)
	wizard.POST("/back", ctrl.Wizard.Back)
	wizard.POST("/image", throttle, ctrl.Wizard.GenerateImage)
	wizard.POST("/itinerary", throttle, ctrl.Wizard.GenerateItinerary)
	wizard.PATCH("/itinerary/items/:itemId", ctrl.Wizard.UpdateItineraryItem)
	wizard.POST("/reset", ctrl.Wizard.Reset)

	authed.GET("/dashboard", ctrl.Dashboard.GetDashboard)
}
