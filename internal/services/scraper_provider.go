package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

const scraperProviderName = "scraper"

// ScraperProvider reads a scraping/proxy endpoint whose listings come back in
// several shapes. It requires IATA codes for flights.
type ScraperProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewScraperProvider(baseURL, apiKey string) *ScraperProvider {
	return &ScraperProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 25 * time.Second},
	}
}

func (s *ScraperProvider) Name() string { return scraperProviderName }

func (s *ScraperProvider) SearchFlights(ctx context.Context, q FlightQuery) ([]response_models.FlightResult, error) {
	params := url.Values{}
	params.Set("from", q.FromCode)
	params.Set("to", q.ToCode)
	params.Set("date", q.DepartureDate)
	params.Set("adults", strconv.Itoa(max(1, q.Passengers)))
	if q.ReturnDate != "" {
		params.Set("return_date", q.ReturnDate)
	}

	records, err := s.fetch(ctx, "/flights", params, "flights")
	if err != nil {
		return nil, err
	}

	flights := make([]response_models.FlightResult, 0, len(records))
	for i, raw := range records {
		rec, _ := raw.(map[string]any)
		flights = append(flights, NormalizeFlightRecord(rec, q, scraperProviderName, i))
	}
	return flights, nil
}

func (s *ScraperProvider) SearchHotels(ctx context.Context, q HotelQuery) ([]response_models.HotelResult, error) {
	params := url.Values{}
	params.Set("city", q.City)
	params.Set("checkin", q.CheckIn)
	params.Set("checkout", q.CheckOut)
	params.Set("adults", strconv.Itoa(max(1, q.Guests)))
	params.Set("rooms", strconv.Itoa(max(1, q.Rooms)))

	records, err := s.fetch(ctx, "/hotels", params, "hotels")
	if err != nil {
		return nil, err
	}

	hotels := make([]response_models.HotelResult, 0, len(records))
	for i, raw := range records {
		rec, _ := raw.(map[string]any)
		hotels = append(hotels, NormalizeHotelRecord(rec, q, scraperProviderName, i))
	}
	return hotels, nil
}

func (s *ScraperProvider) fetch(ctx context.Context, path string, params url.Values, listKey string) ([]any, error) {
	if s.baseURL == "" {
		return nil, utils.NewProviderError(scraperProviderName, 0, fmt.Errorf("not configured"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, utils.NewProviderError(scraperProviderName, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, utils.NewProviderError(scraperProviderName, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, utils.NewProviderError(scraperProviderName, resp.StatusCode, fmt.Errorf("%s", truncate(string(body), 200)))
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, utils.NewProviderError(scraperProviderName, resp.StatusCode, fmt.Errorf("unparseable payload: %w", err))
	}

	records, ok := extractRecords(payload, listKey)
	if !ok {
		return nil, utils.NewProviderError(scraperProviderName, resp.StatusCode, fmt.Errorf("payload has no listing array"))
	}
	return records, nil
}

// extractRecords finds the listing array in the payload shapes seen so far:
// a bare array, or an object wrapping it under data/results/<kind>/items,
// possibly one level deeper (data.flights).
func extractRecords(payload any, listKey string) ([]any, bool) {
	switch t := payload.(type) {
	case []any:
		return t, true
	case map[string]any:
		for _, key := range []string{listKey, "data", "results", "items", "listings"} {
			v, ok := t[key]
			if !ok {
				continue
			}
			if arr, ok := v.([]any); ok {
				return arr, true
			}
			if inner, ok := v.(map[string]any); ok {
				if arr, ok := extractRecords(inner, listKey); ok {
					return arr, true
				}
			}
		}
	}
	return nil, false
}
