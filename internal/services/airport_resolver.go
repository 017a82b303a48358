package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
)

type AirportCodeResolver interface {
	// Resolve turns a free-text city into a 3-letter IATA code.
	Resolve(ctx context.Context, city string) (string, error)
}

var (
	iataCodePattern  = regexp.MustCompile(`\b[A-Z]{3}\b`)
	explicitIATACode = regexp.MustCompile(`^[A-Z]{3}$`)
)

var knownAirports = map[string]string{
	"mumbai":        "BOM",
	"bombay":        "BOM",
	"delhi":         "DEL",
	"new delhi":     "DEL",
	"bangalore":     "BLR",
	"bengaluru":     "BLR",
	"chennai":       "MAA",
	"kolkata":       "CCU",
	"hyderabad":     "HYD",
	"goa":           "GOI",
	"paris":         "CDG",
	"london":        "LHR",
	"new york":      "JFK",
	"dubai":         "DXB",
	"singapore":     "SIN",
	"bangkok":       "BKK",
	"tokyo":         "HND",
	"istanbul":      "IST",
	"frankfurt":     "FRA",
	"berlin":        "BER",
	"amsterdam":     "AMS",
	"rome":          "FCO",
	"madrid":        "MAD",
	"barcelona":     "BCN",
	"los angeles":   "LAX",
	"san francisco": "SFO",
	"sydney":        "SYD",
	"tashkent":      "TAS",
}

type airportCodeResolver struct {
	generator utils.ContentGenerator
	cache     memcache.Store
	ttl       time.Duration
	logger    *zap.Logger
}

func NewAirportCodeResolver(generator utils.ContentGenerator, cache memcache.Store, ttl time.Duration, logger *zap.Logger) AirportCodeResolver {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &airportCodeResolver{generator: generator, cache: cache, ttl: ttl, logger: logger}
}

func (r *airportCodeResolver) Resolve(ctx context.Context, city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", fmt.Errorf("%w: empty city", utils.ErrAirportUnresolved)
	}
	if explicitIATACode.MatchString(city) {
		return city, nil
	}

	key := strings.ToLower(city)
	if code, ok := knownAirports[key]; ok {
		return code, nil
	}
	if code, ok := r.cache.Get(key); ok {
		return code, nil
	}
	if r.generator == nil {
		return "", fmt.Errorf("%w: %s", utils.ErrAirportUnresolved, city)
	}

	prompt := fmt.Sprintf("What is the 3-letter IATA code of the main international airport serving %q? "+
		"Reply with the code only, in uppercase.", city)
	answer, err := r.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", utils.ErrAirportUnresolved, city, err)
	}

	code := parseIATAAnswer(answer)
	if code == "" {
		r.logger.Warn("airport code answer rejected", zap.String("city", city), zap.String("answer", truncate(answer, 80)))
		return "", fmt.Errorf("%w: %s", utils.ErrAirportUnresolved, city)
	}

	r.cache.Set(key, code, r.ttl)
	return code, nil
}

// parseIATAAnswer accepts a bare code in any case, otherwise the first
// all-caps 3-letter word of a sentence.
func parseIATAAnswer(answer string) string {
	answer = strings.Trim(strings.TrimSpace(answer), ".\"'`")
	if up := strings.ToUpper(answer); explicitIATACode.MatchString(up) {
		return up
	}
	return iataCodePattern.FindString(answer)
}

// fallbackCode is used for sample data when resolution failed.
func fallbackCode(city string) string {
	city = strings.TrimSpace(city)
	if explicitIATACode.MatchString(city) {
		return city
	}
	if code, ok := knownAirports[strings.ToLower(city)]; ok {
		return code
	}

	letters := make([]rune, 0, 3)
	for _, r := range strings.ToUpper(city) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
			if len(letters) == 3 {
				return string(letters)
			}
		}
	}
	return "XXX"
}
