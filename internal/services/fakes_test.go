package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"voyago/internal/models/db_models"
)

var errStoreDown = errors.New("connection refused")

type fakeBookingRepo struct {
	mu      sync.Mutex
	flights []db_models.FlightBooking
	hotels  []db_models.HotelBooking
	failOn  string
	clock   int64
}

func (r *fakeBookingRepo) tick() int64 {
	r.clock++
	return r.clock
}

func (r *fakeBookingRepo) ListFlightsByUser(_ context.Context, userID uuid.UUID) ([]db_models.FlightBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "list" {
		return nil, errStoreDown
	}
	var out []db_models.FlightBooking
	for _, f := range slices.Backward(r.flights) {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListHotelsByUser(_ context.Context, userID uuid.UUID) ([]db_models.HotelBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "list" {
		return nil, errStoreDown
	}
	var out []db_models.HotelBooking
	for _, h := range slices.Backward(r.hotels) {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CreateFlight(_ context.Context, b *db_models.FlightBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "create" {
		return errStoreDown
	}
	b.ID = uuid.New()
	b.CreatedAt = r.tick()
	r.flights = append(r.flights, *b)
	return nil
}

func (r *fakeBookingRepo) CreateHotel(_ context.Context, b *db_models.HotelBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "create" {
		return errStoreDown
	}
	b.ID = uuid.New()
	b.CreatedAt = r.tick()
	r.hotels = append(r.hotels, *b)
	return nil
}

func (r *fakeBookingRepo) DeleteFlight(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "delete" {
		return false, errStoreDown
	}
	n := len(r.flights)
	r.flights = slices.DeleteFunc(r.flights, func(f db_models.FlightBooking) bool {
		return f.ID == id && f.UserID == userID
	})
	return len(r.flights) < n, nil
}

func (r *fakeBookingRepo) DeleteHotel(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "delete" {
		return false, errStoreDown
	}
	n := len(r.hotels)
	r.hotels = slices.DeleteFunc(r.hotels, func(h db_models.HotelBooking) bool {
		return h.ID == id && h.UserID == userID
	})
	return len(r.hotels) < n, nil
}

type fakeTripPlanRepo struct {
	mu      sync.Mutex
	plans   []db_models.TripPlan
	creates int
}

func (r *fakeTripPlanRepo) Create(_ context.Context, plan *db_models.TripPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	plan.ID = uuid.New()
	plan.CreatedAt = int64(len(r.plans) + 1)
	r.plans = append(r.plans, *plan)
	return nil
}

func (r *fakeTripPlanRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]db_models.TripPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.TripPlan
	for _, p := range slices.Backward(r.plans) {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTripPlanRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*db_models.TripPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.ID == id && p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeTripPlanRepo) UpdateItinerary(_ context.Context, userID, id uuid.UUID, itinerary datatypes.JSON) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.plans {
		if r.plans[i].ID == id && r.plans[i].UserID == userID {
			r.plans[i].Itinerary = itinerary
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *fakeTripPlanRepo) Delete(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.plans)
	r.plans = slices.DeleteFunc(r.plans, func(p db_models.TripPlan) bool {
		return p.ID == id && p.UserID == userID
	})
	return len(r.plans) < n, nil
}

type fakeWizardRepo struct {
	mu     sync.Mutex
	states map[uuid.UUID]db_models.WizardState
}

func newFakeWizardRepo() *fakeWizardRepo {
	return &fakeWizardRepo{states: map[uuid.UUID]db_models.WizardState{}}
}

func (r *fakeWizardRepo) Get(_ context.Context, userID uuid.UUID) (*db_models.WizardState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeWizardRepo) Save(_ context.Context, state *db_models.WizardState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.UserID] = *state
	return nil
}

type fakeQuotaRepo struct {
	mu   sync.Mutex
	rows map[string]db_models.GenerationQuota
}

func newFakeQuotaRepo() *fakeQuotaRepo {
	return &fakeQuotaRepo{rows: map[string]db_models.GenerationQuota{}}
}

func (r *fakeQuotaRepo) Get(_ context.Context, userID uuid.UUID, kind string) (*db_models.GenerationQuota, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.rows[userID.String()+kind]
	if !ok {
		q = db_models.GenerationQuota{UserID: userID, Kind: kind}
	}
	return &q, nil
}

func (r *fakeQuotaRepo) Consume(_ context.Context, userID uuid.UUID, kind string, apply func(q *db_models.GenerationQuota) error) (*db_models.GenerationQuota, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.rows[userID.String()+kind]
	if !ok {
		q = db_models.GenerationQuota{UserID: userID, Kind: kind}
	}
	if err := apply(&q); err != nil {
		return nil, err
	}
	r.rows[userID.String()+kind] = q
	return &q, nil
}

// stubGenerator answers from canned replies keyed by a prompt substring.
type stubGenerator struct {
	mu      sync.Mutex
	replies map[string]string
	fail    map[string]bool
	calls   []string
	image   []byte
}

func (g *stubGenerator) respond(prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, prompt)
	for key, failing := range g.fail {
		if failing && containsFold(prompt, key) {
			return "", errors.New("model overloaded")
		}
	}
	for key, reply := range g.replies {
		if containsFold(prompt, key) {
			return reply, nil
		}
	}
	return "", errors.New("no canned reply")
}

func (g *stubGenerator) GenerateJSON(_ context.Context, prompt string) (string, error) {
	return g.respond(prompt)
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	return g.respond(prompt)
}

func (g *stubGenerator) GenerateImage(_ context.Context, _ string) ([]byte, error) {
	if g.image == nil {
		return nil, errors.New("no image")
	}
	return g.image, nil
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeObjectStore) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = contentType
	return "https://storage.example.test/bucket/" + key, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*db_models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[uuid.UUID]*db_models.Account{}}
}

func (r *fakeAccountRepo) Insert(_ context.Context, a *db_models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.New()
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) UpdateDisplayName(_ context.Context, id uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[id].DisplayName = name
	return nil
}

func (r *fakeAccountRepo) UpdateAvatarURL(_ context.Context, id uuid.UUID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[id].AvatarURL = url
	return nil
}
