package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/pkg/utils"
)

func TestComputeHotelTotal(t *testing.T) {
	tests := []struct {
		name       string
		in, out    string
		rate       float64
		rooms      int
		wantNights int
		wantTotal  float64
		wantErr    error
	}{
		{"three nights one room", "2025-02-15", "2025-02-18", 120, 1, 3, 360, nil},
		{"two rooms", "2025-02-15", "2025-02-17", 99.99, 2, 2, 399.96, nil},
		{"zero rooms counts as one", "2025-02-15", "2025-02-16", 80, 0, 1, 80, nil},
		{"same day", "2025-02-15", "2025-02-15", 80, 1, 0, 0, utils.ErrInvalidInput},
		{"reversed", "2025-02-18", "2025-02-15", 80, 1, 0, 0, utils.ErrInvalidInput},
		{"bad date", "15-02-2025", "2025-02-18", 80, 1, 0, 0, utils.ErrInvalidInput},
		{"negative rate", "2025-02-15", "2025-02-16", -1, 1, 0, 0, utils.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nights, total, err := ComputeHotelTotal(tt.in, tt.out, tt.rate, tt.rooms)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNights, nights)
			assert.InDelta(t, tt.wantTotal, total, 0.001)

			// same inputs, same answer
			n2, t2, err := ComputeHotelTotal(tt.in, tt.out, tt.rate, tt.rooms)
			require.NoError(t, err)
			assert.Equal(t, nights, n2)
			assert.Equal(t, total, t2)
		})
	}
}

func validFlight() request_models.BookFlightRequest {
	return request_models.BookFlightRequest{
		FlightNumber:  "af 217",
		DepartureCity: "Mumbai",
		ArrivalCity:   "Paris",
		DepartureDate: "2025-02-15",
		DepartureTime: "22:3.606127428290847",
		ArrivalTime:   "2025-02-16T04:35:00",
		Price:         642.5,
		Passengers:    2,
	}
}

func validHotel() request_models.BookHotelRequest {
	return request_models.BookHotelRequest{
		HotelName:     "Hotel Lutetia",
		Address:       "45 Boulevard Raspail",
		City:          "Paris",
		CheckIn:       "2025-02-16",
		CheckOut:      "2025-02-19",
		Rooms:         2,
		PricePerNight: 210,
		Guests:        3,
	}
}

func TestBookingService_RequiresUser(t *testing.T) {
	svc := NewBookingService(&fakeBookingRepo{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Load(ctx, "")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
	_, err = svc.BookFlight(ctx, "", validFlight())
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
	_, err = svc.BookHotel(ctx, "not-a-uuid", validHotel())
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
	_, err = svc.Delete(ctx, "", "flight", uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}

func TestBookingService_BookFlightNormalises(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := NewBookingService(repo, nil, nil)
	user := uuid.NewString()

	list, err := svc.BookFlight(context.Background(), user, validFlight())
	require.NoError(t, err)
	require.Len(t, list.Flights, 1)

	got := list.Flights[0]
	assert.Equal(t, "AF 217", got.FlightNumber)
	assert.Equal(t, "Air France", got.Airline)
	assert.Equal(t, "22:03", got.DepartureTime)
	assert.Equal(t, "04:35", got.ArrivalTime)
	assert.Equal(t, db_models.BookingConfirmed, got.Status)
	assert.Empty(t, list.Hotels)
}

func TestBookingService_UnknownAirlineDefault(t *testing.T) {
	svc := NewBookingService(&fakeBookingRepo{}, nil, nil)
	req := validFlight()
	req.FlightNumber = "ZZ9"

	list, err := svc.BookFlight(context.Background(), uuid.NewString(), req)
	require.NoError(t, err)
	assert.Equal(t, UnknownAirline, list.Flights[0].Airline)
}

func TestBookingService_BookHotelComputesTotal(t *testing.T) {
	svc := NewBookingService(&fakeBookingRepo{}, nil, nil)

	list, err := svc.BookHotel(context.Background(), uuid.NewString(), validHotel())
	require.NoError(t, err)
	require.Len(t, list.Hotels, 1)
	assert.InDelta(t, 1260.0, list.Hotels[0].TotalPrice, 0.001)
	assert.Equal(t, "Standard", list.Hotels[0].RoomType)
}

func TestBookingService_ListMatchesStoreAfterEveryMutation(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := NewBookingService(repo, nil, nil)
	ctx := context.Background()
	user := uuid.New()
	other := uuid.New()

	stored := func() (int, int) {
		var f, h int
		for _, b := range repo.flights {
			if b.UserID == user {
				f++
			}
		}
		for _, b := range repo.hotels {
			if b.UserID == user {
				h++
			}
		}
		return f, h
	}

	_, err := svc.BookFlight(ctx, other.String(), validFlight())
	require.NoError(t, err)

	list, err := svc.BookFlight(ctx, user.String(), validFlight())
	require.NoError(t, err)
	f, h := stored()
	assert.Len(t, list.Flights, f)
	assert.Len(t, list.Hotels, h)

	second := validFlight()
	second.FlightNumber = "LH 757"
	list, err = svc.BookFlight(ctx, user.String(), second)
	require.NoError(t, err)
	require.Len(t, list.Flights, 2)
	assert.Equal(t, "LH 757", list.Flights[0].FlightNumber, "newest first")

	list, err = svc.BookHotel(ctx, user.String(), validHotel())
	require.NoError(t, err)
	f, h = stored()
	assert.Len(t, list.Flights, f)
	assert.Len(t, list.Hotels, h)

	list, err = svc.Delete(ctx, user.String(), "flights", list.Flights[1].ID.String())
	require.NoError(t, err)
	f, h = stored()
	assert.Len(t, list.Flights, f)
	assert.Len(t, list.Hotels, h)
	assert.Equal(t, 1, f)

	// a failed mutation leaves the store untouched
	repo.failOn = "create"
	_, err = svc.BookHotel(ctx, user.String(), validHotel())
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
	repo.failOn = ""
	list, err = svc.Load(ctx, user.String())
	require.NoError(t, err)
	assert.Len(t, list.Hotels, 1)
}

func TestBookingService_Delete(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := NewBookingService(repo, nil, nil)
	ctx := context.Background()
	owner := uuid.NewString()

	list, err := svc.BookHotel(ctx, owner, validHotel())
	require.NoError(t, err)
	id := list.Hotels[0].ID.String()

	_, err = svc.Delete(ctx, uuid.NewString(), "hotel", id)
	assert.ErrorIs(t, err, utils.ErrBookingNotFound, "other users cannot delete it")

	_, err = svc.Delete(ctx, owner, "car", id)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.Delete(ctx, owner, "hotel", "nope")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	list, err = svc.Delete(ctx, owner, "hotel", id)
	require.NoError(t, err)
	assert.Empty(t, list.Hotels)

	_, err = svc.Delete(ctx, owner, "hotel", id)
	assert.ErrorIs(t, err, utils.ErrBookingNotFound)
}

func TestBookingService_Validation(t *testing.T) {
	svc := NewBookingService(&fakeBookingRepo{}, nil, nil)
	ctx := context.Background()
	user := uuid.NewString()

	noNumber := validFlight()
	noNumber.FlightNumber = " "
	_, err := svc.BookFlight(ctx, user, noNumber)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	badDate := validFlight()
	badDate.DepartureDate = "tomorrow"
	_, err = svc.BookFlight(ctx, user, badDate)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	sameDay := validHotel()
	sameDay.CheckOut = sameDay.CheckIn
	_, err = svc.BookHotel(ctx, user, sameDay)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	rating := 7.5
	badRating := validHotel()
	badRating.Rating = &rating
	_, err = svc.BookHotel(ctx, user, badRating)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
