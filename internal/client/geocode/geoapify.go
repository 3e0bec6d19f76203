// Package geocode resolves free-text place queries to coordinates via the
// Geoapify geocoding API, and provides the debouncer that paces
// autocomplete lookups while the user is typing.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
	"github.com/odysseyhq/odyssey-cli/internal/logging"
)

// DefaultBaseURL is the Geoapify geocoding API root.
const DefaultBaseURL = "https://api.geoapify.com/v1/geocode"

// MinQueryLen gates autocomplete: shorter queries return no suggestions
// without a network call.
const MinQueryLen = 3

const maxSuggestions = 5

var (
	// ErrNoAPIKey means the client was built without a Geoapify key.
	ErrNoAPIKey = errors.New("geocode: api key not configured")
	// ErrNoMatch means the query resolved to nothing.
	ErrNoMatch = errors.New("geocode: no match for query")
)

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Name      string
	Latitude  float64
	Longitude float64
	Country   string
	City      string
}

// Client calls the Geoapify geocoding endpoints.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     logging.Logger
}

// NewClient builds a geocoding client. baseURL may be empty to use
// DefaultBaseURL; a zero timeout falls back to 10 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration, log logging.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "geocode"),
	}
}

// feature mirrors the subset of the Geoapify GeoJSON response we read.
type feature struct {
	Properties struct {
		Name      string `json:"name"`
		City      string `json:"city"`
		Town      string `json:"town"`
		Village   string `json:"village"`
		Country   string `json:"country"`
		Formatted string `json:"formatted"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
}

type featureCollection struct {
	Features []feature `json:"features"`
}

// Suggest returns up to five deduplicated autocomplete candidates for the
// query. Queries shorter than MinQueryLen yield no candidates and no call.
func (c *Client) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLen {
		return nil, nil
	}
	fc, err := c.fetch(ctx, "/autocomplete", query, 8)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []Suggestion
	for _, f := range fc.Features {
		p := f.Properties
		key := p.Name + "|" + p.City + "|" + p.Country
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		lat, lon, ok := coords(f)
		if !ok {
			continue
		}
		out = append(out, Suggestion{
			Name:      cleanName(f, query),
			Latitude:  lat,
			Longitude: lon,
			Country:   p.Country,
			City:      firstNonEmpty(p.City, p.Town, p.Village),
		})
		if len(out) >= maxSuggestions {
			break
		}
	}
	return out, nil
}

// Resolve forward-geocodes a place name to its best match.
func (c *Client) Resolve(ctx context.Context, place string) (*models.Location, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, ErrNoMatch
	}
	fc, err := c.fetch(ctx, "/search", place, 1)
	if err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, ErrNoMatch
	}

	f := fc.Features[0]
	lat, lon, ok := coords(f)
	if !ok {
		return nil, ErrNoMatch
	}
	name := f.Properties.Formatted
	if name == "" {
		name = place
	}
	return &models.Location{
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		Country:   f.Properties.Country,
		City:      firstNonEmpty(f.Properties.City, f.Properties.Town, f.Properties.Village),
		Place:     name,
	}, nil
}

func (c *Client) fetch(ctx context.Context, endpoint, text string, limit int) (*featureCollection, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("text", text)
	q.Set("limit", fmt.Sprint(limit))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn(ctx, "geocoder rejected request", "status", resp.StatusCode)
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("geocode: decode response: %w", err)
	}
	return &fc, nil
}

func coords(f feature) (lat, lon float64, ok bool) {
	if len(f.Geometry.Coordinates) < 2 {
		return 0, 0, false
	}
	// GeoJSON order is [lon, lat]
	return f.Geometry.Coordinates[1], f.Geometry.Coordinates[0], true
}

var (
	postalCodeRe  = regexp.MustCompile(`,?\s*\d{5,}`)
	doubleCommaRe = regexp.MustCompile(`,\s*,`)
)

// cleanName composes a short display name from the richest fields
// available, falling back to a postal-code-stripped formatted address.
func cleanName(f feature, query string) string {
	p := f.Properties
	city := firstNonEmpty(p.City, p.Town, p.Village)
	switch {
	case p.Name != "" && city != "" && p.Country != "":
		return p.Name + ", " + city + ", " + p.Country
	case city != "" && p.Country != "":
		return city + ", " + p.Country
	case p.Name != "" && p.Country != "":
		return p.Name + ", " + p.Country
	case p.Formatted != "":
		s := postalCodeRe.ReplaceAllString(p.Formatted, "")
		s = doubleCommaRe.ReplaceAllString(s, ",")
		return strings.TrimSpace(s)
	case p.Name != "":
		return p.Name
	default:
		return query
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
