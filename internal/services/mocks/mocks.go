// Package mocks holds testify mocks of the service interfaces for controller tests.
package mocks

import "voyago/internal/services"

var (
	_ services.AccountServiceInterface   = (*MockAccountService)(nil)
	_ services.SearchServiceInterface    = (*MockSearchService)(nil)
	_ services.BookingServiceInterface   = (*MockBookingService)(nil)
	_ services.ItineraryServiceInterface = (*MockItineraryService)(nil)
	_ services.ContentServiceInterface   = (*MockContentService)(nil)
	_ services.TripPlanServiceInterface  = (*MockTripPlanService)(nil)
	_ services.WizardServiceInterface    = (*MockWizardService)(nil)
)
