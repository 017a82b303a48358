package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/internal/models/db_models"
)

type sentMail struct {
	to, subject, html, text string
}

type mailOutbox struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (o *mailOutbox) send(to, subject, htmlBody, textBody string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, sentMail{to: to, subject: subject, html: htmlBody, text: textBody})
	return o.err
}

func newMailFixture(t *testing.T) (*smtpNotifier, *mailOutbox, uuid.UUID) {
	t.Helper()
	accounts := newFakeAccountRepo()
	account := &db_models.Account{Email: "ana@example.com", DisplayName: "Ana"}
	require.NoError(t, accounts.Insert(context.Background(), account))

	n, ok := NewBookingNotifier(SMTPConfig{
		Host:       "smtp.example.test",
		Port:       587,
		From:       "trips@example.test",
		AppName:    "Voyago",
		AppBaseURL: "https://app.example.test/",
	}, accounts, nil).(*smtpNotifier)
	require.True(t, ok)

	outbox := &mailOutbox{}
	n.send = outbox.send
	return n, outbox, account.ID
}

func TestBookingNotifier_Disabled(t *testing.T) {
	n := NewBookingNotifier(SMTPConfig{}, newFakeAccountRepo(), nil)
	assert.IsType(t, noopNotifier{}, n)
}

func TestBookingNotifier_FlightBooked(t *testing.T) {
	n, outbox, userID := newMailFixture(t)

	n.FlightBooked(context.Background(), db_models.FlightBooking{
		UserID:        userID,
		FlightNumber:  "AF217",
		Airline:       "Air France",
		DepartureCity: "Mumbai",
		ArrivalCity:   "Paris",
		DepartureDate: "2025-03-01",
		DepartureTime: "01:35",
		ArrivalTime:   "07:40",
		Price:         1024.8,
		Passengers:    2,
	})

	require.Len(t, outbox.sent, 1)
	mail := outbox.sent[0]
	assert.Equal(t, "ana@example.com", mail.to)
	assert.Equal(t, "Flight AF217 confirmed", mail.subject)

	assert.Contains(t, mail.text, "Flight AF217 confirmed")
	assert.Contains(t, mail.text, "Air France, Mumbai to Paris")
	assert.Contains(t, mail.text, "Departs 2025-03-01 at 01:35, arrives 07:40")
	assert.Contains(t, mail.text, "2 passenger(s), total 1024.80")
	assert.Contains(t, mail.text, "Your bookings: https://app.example.test/bookings")

	assert.Contains(t, mail.html, "<h1>Flight AF217 confirmed</h1>")
	assert.Contains(t, mail.html, `href="https://app.example.test/bookings"`)
	assert.Contains(t, mail.html, "Voyago")
}

func TestBookingNotifier_HotelBooked(t *testing.T) {
	n, outbox, userID := newMailFixture(t)

	n.HotelBooked(context.Background(), db_models.HotelBooking{
		UserID:     userID,
		HotelName:  "Hôtel <Le> Marais",
		Address:    "12 Rue des Archives",
		City:       "Paris",
		CheckIn:    "2025-03-01",
		CheckOut:   "2025-03-04",
		RoomType:   "Double",
		Rooms:      1,
		TotalPrice: 660,
	})

	require.Len(t, outbox.sent, 1)
	mail := outbox.sent[0]
	assert.Equal(t, "Hôtel <Le> Marais confirmed", mail.subject)
	assert.Contains(t, mail.text, "12 Rue des Archives, Paris")
	assert.Contains(t, mail.text, "Check-in 2025-03-01, check-out 2025-03-04")
	assert.Contains(t, mail.text, "1 room(s), Double, total 660.00")

	assert.Contains(t, mail.html, "Hôtel &lt;Le&gt; Marais confirmed")
	assert.NotContains(t, mail.html, "<Le>")
}

func TestBookingNotifier_FailuresStayQuiet(t *testing.T) {
	n, outbox, userID := newMailFixture(t)
	outbox.err = errors.New("421 service not available")

	assert.NotPanics(t, func() {
		n.FlightBooked(context.Background(), db_models.FlightBooking{UserID: userID, FlightNumber: "AF217"})
	})
	assert.Len(t, outbox.sent, 1, "delivery is attempted once and the error is only logged")

	assert.NotPanics(t, func() {
		n.HotelBooked(context.Background(), db_models.HotelBooking{UserID: uuid.New(), HotelName: "Ghost"})
		n.HotelBooked(context.Background(), db_models.HotelBooking{HotelName: "Anonymous"})
	})
	assert.Len(t, outbox.sent, 1, "bookings without a known recipient are skipped")
}

func TestBookingNotifier_BuildMessage(t *testing.T) {
	n, _, _ := newMailFixture(t)
	n.cfg.FromName = "Voyago Trips"

	msg := string(n.buildMessage("ana@example.com", "Flight AF217 confirmed", "<p>html</p>", "plain"))

	assert.Contains(t, msg, "From: ")
	assert.Contains(t, msg, "<trips@example.test>")
	assert.Contains(t, msg, "To: ana@example.com\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/alternative;")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n\r\nplain")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8\r\n\r\n<p>html</p>")
	assert.True(t, strings.HasSuffix(msg, "--\r\n"))
}
