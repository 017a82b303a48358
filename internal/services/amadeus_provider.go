package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"
	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

const amadeusProviderName = "amadeus"

type AmadeusConfig struct {
	ClientID     string
	ClientSecret string
	// "test" (default) or "production"
	Env string
	// BaseURL overrides Env, used in tests
	BaseURL string
}

// AmadeusProvider talks to the Amadeus self-service APIs with an OAuth2
// client-credentials token that is refreshed shortly before expiry.
type AmadeusProvider struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
	logger       *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewAmadeusProvider(cfg AmadeusConfig, logger *zap.Logger) *AmadeusProvider {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://test.api.amadeus.com"
		if cfg.Env == "production" {
			baseURL = "https://api.amadeus.com"
		}
	}

	return &AmadeusProvider{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

func (c *AmadeusProvider) Name() string { return amadeusProviderName }

func (c *AmadeusProvider) refreshToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", utils.NewProviderError(amadeusProviderName, 0, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", utils.NewProviderError(amadeusProviderName, resp.StatusCode, fmt.Errorf("token request failed: %s", truncate(string(body), 200)))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.AccessToken == "" {
		return "", utils.NewProviderError(amadeusProviderName, resp.StatusCode, fmt.Errorf("unreadable token response"))
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	c.logger.Debug("amadeus token refreshed", zap.Int("expires_in", result.ExpiresIn))
	return result.AccessToken, nil
}

func (c *AmadeusProvider) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		return c.refreshToken(ctx)
	}
	return token, nil
}

func (c *AmadeusProvider) doRequest(ctx context.Context, path string) ([]byte, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, utils.NewProviderError(amadeusProviderName, 0, fmt.Errorf("not configured"))
	}

	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, utils.NewProviderError(amadeusProviderName, 0, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, utils.NewProviderError(amadeusProviderName, resp.StatusCode, fmt.Errorf("%s", truncate(string(respBody), 200)))
	}
	return respBody, nil
}

// amadeusEnvelope keeps every record raw. Each one is decoded on its own so
// a single oddly typed field only degrades that record.
type amadeusEnvelope struct {
	Data         []json.RawMessage `json:"data"`
	Dictionaries json.RawMessage   `json:"dictionaries"`
}

func decodeAmadeusEnvelope(data []byte, what string) (amadeusEnvelope, error) {
	var env amadeusEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, utils.NewProviderError(amadeusProviderName, http.StatusOK, fmt.Errorf("parse %s: %w", what, err))
	}
	return env, nil
}

// decodeRecord returns an empty record for anything that is not a JSON object.
func decodeRecord(raw json.RawMessage) map[string]any {
	var rec map[string]any
	if err := json.Unmarshal(raw, &rec); err != nil || rec == nil {
		return map[string]any{}
	}
	return rec
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func stringsOf(v any) []string {
	var out []string
	for _, item := range asSlice(v) {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func (c *AmadeusProvider) SearchFlights(ctx context.Context, q FlightQuery) ([]response_models.FlightResult, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.FromCode)
	params.Set("destinationLocationCode", q.ToCode)
	params.Set("departureDate", q.DepartureDate)
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	params.Set("adults", fmt.Sprintf("%d", max(1, q.Passengers)))
	params.Set("max", "10")
	params.Set("currencyCode", defaultCurrency)

	body, err := c.doRequest(ctx, "/v2/shopping/flight-offers?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return parseAmadeusFlightOffers(body, q)
}

func parseAmadeusFlightOffers(data []byte, q FlightQuery) ([]response_models.FlightResult, error) {
	env, err := decodeAmadeusEnvelope(data, "flight offers")
	if err != nil {
		return nil, err
	}
	carriers := asMap(decodeRecord(env.Dictionaries)["carriers"])

	flights := make([]response_models.FlightResult, 0, len(env.Data))
	for i, raw := range env.Data {
		offer := decodeRecord(raw)
		rec := map[string]any{
			"id":       firstString(offer, "id"),
			"currency": firstString(offer, "price.currency"),
		}
		if price, ok := lookup(offer, "price.grandTotal"); ok {
			rec["price"] = price
		} else if price, ok := lookup(offer, "price.total"); ok {
			rec["price"] = price
		}

		if itineraries := asSlice(offer["itineraries"]); len(itineraries) > 0 {
			outbound := asMap(itineraries[0])
			rec["duration"] = formatISODuration(firstString(outbound, "duration"))
			if segs := asSlice(outbound["segments"]); len(segs) > 0 {
				first, last := asMap(segs[0]), asMap(segs[len(segs)-1])
				carrier := firstString(first, "carrierCode")
				if carrier != "" {
					rec["airline_code"] = carrier
					rec["flight_number"] = carrier + firstString(first, "number")
					if name, ok := carriers[carrier].(string); ok {
						rec["airline"] = titleCase(name)
					}
				}
				rec["departure_time"] = firstString(first, "departure.at")
				rec["departure_date"] = firstString(first, "departure.at")
				rec["arrival_time"] = firstString(last, "arrival.at")
				rec["departure_airport"] = firstString(first, "departure.iataCode")
				rec["arrival_airport"] = firstString(last, "arrival.iataCode")
				rec["stops"] = float64(len(segs) - 1)
			}
		}
		if _, ok := rec["airline_code"]; !ok {
			if codes := stringsOf(offer["validatingAirlineCodes"]); len(codes) > 0 {
				rec["airline_code"] = codes[0]
			}
		}

		flights = append(flights, NormalizeFlightRecord(rec, q, amadeusProviderName, i))
	}
	return flights, nil
}

func (c *AmadeusProvider) SearchHotels(ctx context.Context, q HotelQuery) ([]response_models.HotelResult, error) {
	hotelIDs, err := c.hotelIDsByCity(ctx, airportToCity(q.CityCode))
	if err != nil {
		return nil, err
	}
	if len(hotelIDs) == 0 {
		return nil, nil
	}
	// keep the offers call small, the test tier rate-limits aggressively
	if len(hotelIDs) > 20 {
		hotelIDs = hotelIDs[:20]
	}

	params := url.Values{}
	params.Set("hotelIds", strings.Join(hotelIDs, ","))
	params.Set("checkInDate", q.CheckIn)
	params.Set("checkOutDate", q.CheckOut)
	params.Set("adults", fmt.Sprintf("%d", max(1, q.Guests)))
	params.Set("roomQuantity", fmt.Sprintf("%d", max(1, q.Rooms)))
	params.Set("currency", defaultCurrency)
	params.Set("bestRateOnly", "true")

	body, err := c.doRequest(ctx, "/v3/shopping/hotel-offers?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return parseAmadeusHotelOffers(body, q)
}

func (c *AmadeusProvider) hotelIDsByCity(ctx context.Context, cityCode string) ([]string, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)
	params.Set("radius", "5")
	params.Set("radiusUnit", "KM")
	params.Set("hotelSource", "ALL")

	body, err := c.doRequest(ctx, "/v1/reference-data/locations/hotels/by-city?"+params.Encode())
	if err != nil {
		return nil, err
	}

	env, err := decodeAmadeusEnvelope(body, "hotel list")
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(env.Data))
	for _, raw := range env.Data {
		if id := firstString(decodeRecord(raw), "hotelId"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseAmadeusHotelOffers(data []byte, q HotelQuery) ([]response_models.HotelResult, error) {
	env, err := decodeAmadeusEnvelope(data, "hotel offers")
	if err != nil {
		return nil, err
	}

	nights := 1
	if in, err := utils.ParseDate(q.CheckIn); err == nil {
		if out, err := utils.ParseDate(q.CheckOut); err == nil {
			nights = max(1, utils.NightsBetween(in, out))
		}
	}

	hotels := make([]response_models.HotelResult, 0, len(env.Data))
	for i, raw := range env.Data {
		item := decodeRecord(raw)
		if available, ok := item["available"].(bool); ok && !available {
			continue
		}
		offers, hasOffers := item["offers"]
		if hasOffers && len(asSlice(offers)) == 0 {
			continue
		}
		offer := map[string]any{}
		if list := asSlice(offers); len(list) > 0 {
			offer = asMap(list[0])
		}

		rec := map[string]any{
			"id":       firstString(item, "hotel.hotelId"),
			"name":     titleCase(firstString(item, "hotel.name")),
			"city":     titleCase(firstString(item, "hotel.address.cityName")),
			"address":  strings.Join(stringsOf(asMap(asMap(item["hotel"])["address"])["lines"]), ", "),
			"currency": firstString(offer, "price.currency"),
		}
		if rating, ok := lookup(item, "hotel.rating"); ok {
			rec["rating"] = rating
		}
		// offer totals cover the whole stay
		if total, ok := lookup(offer, "price.total"); ok {
			if amount, ok := parsePrice(total); ok {
				rec["price_per_night"] = amount / float64(nights)
			}
		}

		hotels = append(hotels, NormalizeHotelRecord(rec, q, amadeusProviderName, i))
	}
	return hotels, nil
}

// formatISODuration turns PT5H30M into "5h 30m".
func formatISODuration(iso string) string {
	iso = strings.TrimPrefix(iso, "PT")
	if iso == "" {
		return ""
	}
	var parts []string
	if h := strings.Index(iso, "H"); h >= 0 {
		parts = append(parts, iso[:h]+"h")
		iso = iso[h+1:]
	}
	if m := strings.Index(iso, "M"); m >= 0 {
		parts = append(parts, iso[:m]+"m")
	}
	return strings.Join(parts, " ")
}

// airportToCity maps airport codes to the metropolitan codes hotel search expects.
func airportToCity(airport string) string {
	mapping := map[string]string{
		"LHR": "LON", "LGW": "LON", "STN": "LON", "LTN": "LON",
		"CDG": "PAR", "ORY": "PAR",
		"JFK": "NYC", "LGA": "NYC", "EWR": "NYC",
		"BER": "BER", "SXF": "BER",
		"FCO": "ROM", "CIA": "ROM",
		"NRT": "TYO", "HND": "TYO",
		"BOM": "BOM", "DEL": "DEL",
	}
	if city, ok := mapping[airport]; ok {
		return city
	}
	return airport
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
