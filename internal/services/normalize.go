package services

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"voyago/pkg/utils"
)

const (
	UnknownAirline  = "Unknown Airline"
	UnknownCity     = "Unknown City"
	UnknownHotel    = "Unnamed Hotel"
	defaultCurrency = "USD"
)

// lookup resolves a dotted path ("price.total") inside a decoded JSON object.
func lookup(rec map[string]any, path string) (any, bool) {
	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// firstString returns the first candidate that holds a non-empty scalar.
func firstString(rec map[string]any, candidates ...string) string {
	for _, c := range candidates {
		v, ok := lookup(rec, c)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64:
			if !math.IsNaN(t) && !math.IsInf(t, 0) {
				return strconv.FormatFloat(t, 'f', -1, 64)
			}
		case bool:
			continue
		}
	}
	return ""
}

func firstNumber(rec map[string]any, candidates ...string) (float64, bool) {
	for _, c := range candidates {
		v, ok := lookup(rec, c)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			if !math.IsNaN(t) && !math.IsInf(t, 0) {
				return t, true
			}
		case string:
			if n, ok := parseNumeric(t); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// firstPrice accepts plain numbers, numeric strings, currency strings and
// nested {"amount": ...} objects. Missing, negative or unreadable prices are 0.
func firstPrice(rec map[string]any, candidates ...string) float64 {
	for _, c := range candidates {
		v, ok := lookup(rec, c)
		if !ok {
			continue
		}
		if p, ok := parsePrice(v); ok {
			return p
		}
	}
	return 0
}

func parsePrice(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case int:
		n = float64(t)
	case string:
		var ok bool
		if n, ok = parseNumeric(t); !ok {
			return 0, false
		}
	case map[string]any:
		for _, k := range []string{"amount", "value", "total", "grandTotal", "raw"} {
			if inner, ok := t[k]; ok {
				return parsePrice(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, true
	}
	return math.Round(n*100) / 100, true
}

var numericChars = regexp.MustCompile(`[^0-9.,\-]`)

// parseNumeric reads "1234.5", "€1,234.50", "1.234,50 EUR", "USD 99".
func parseNumeric(s string) (float64, bool) {
	s = numericChars.ReplaceAllString(strings.TrimSpace(s), "")
	if s == "" || s == "-" {
		return 0, false
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// a single comma followed by exactly two digits is a decimal separator
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 == 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var airlineNames = map[string]string{
	"AI": "Air India",
	"6E": "IndiGo",
	"UK": "Vistara",
	"SG": "SpiceJet",
	"TK": "Turkish Airlines",
	"LH": "Lufthansa",
	"AF": "Air France",
	"BA": "British Airways",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"PC": "Pegasus Airlines",
	"FR": "Ryanair",
	"U2": "EasyJet",
	"W6": "Wizz Air",
	"FZ": "FlyDubai",
	"HY": "Uzbekistan Airways",
	"UA": "United Airlines",
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"KL": "KLM",
	"IB": "Iberia",
	"AZ": "ITA Airways",
	"OS": "Austrian Airlines",
	"LX": "Swiss International Air Lines",
	"SQ": "Singapore Airlines",
	"CX": "Cathay Pacific",
	"NH": "ANA",
	"JL": "Japan Airlines",
	"EY": "Etihad Airways",
	"SV": "Saudi Arabian Airlines",
	"MS": "EgyptAir",
	"ET": "Ethiopian Airlines",
	"KQ": "Kenya Airways",
	"SA": "South African Airways",
}

var flightNumberPrefix = regexp.MustCompile(`^([A-Z0-9]{2})\s?-?\d{1,4}[A-Z]?$`)

// resolveAirline prefers the code table, then an explicit name, then the
// placeholder. The returned code may be empty.
func resolveAirline(code, name, flightNumber string) (string, string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		if m := flightNumberPrefix.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(flightNumber))); m != nil {
			code = m[1]
		}
	}

	if n, ok := airlineNames[code]; ok {
		return n, code
	}
	if name = strings.TrimSpace(name); name != "" {
		return name, code
	}
	return UnknownAirline, code
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

// BuildFlightSearchURL is used when an upstream record has no deep link.
// It points at a search page, not a guaranteed bookable fare.
func BuildFlightSearchURL(from, to, departureDate string, adults int) string {
	if adults < 1 {
		adults = 1
	}

	path := fmt.Sprintf("https://www.skyscanner.net/transport/flights/%s/%s/",
		url.PathEscape(strings.ToLower(strings.TrimSpace(from))),
		url.PathEscape(strings.ToLower(strings.TrimSpace(to))))
	if d, err := utils.ParseDate(departureDate); err == nil {
		path += d.Format("060102") + "/"
	}

	q := url.Values{}
	q.Set("adults", strconv.Itoa(adults))
	q.Set("cabinclass", "economy")
	q.Set("rtn", "0")
	return path + "?" + q.Encode()
}

func BuildHotelSearchURL(city, checkIn, checkOut string, guests int) string {
	if guests < 1 {
		guests = 1
	}

	q := url.Values{}
	q.Set("ss", strings.TrimSpace(city))
	q.Set("checkin", checkIn)
	q.Set("checkout", checkOut)
	q.Set("group_adults", strconv.Itoa(guests))
	q.Set("no_rooms", "1")
	return "https://www.booking.com/searchresults.html?" + q.Encode()
}
