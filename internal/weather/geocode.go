package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/infra/fetch"
)

// UnknownLocation is shown when no place name field is present.
const UnknownLocation = "Unknown location"

type geocodingResponse struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
	LocalityInfo         struct {
		Administrative []struct {
			Name  string `json:"name"`
			Order int    `json:"order"`
		} `json:"administrative"`
	} `json:"localityInfo"`
}

// ReverseGeocoder resolves a place name from coordinates (BigDataCloud).
type ReverseGeocoder struct {
	endpoint *fetch.Endpoint
	language string
}

// NewReverseGeocoder creates a reverse geocoder answering in the given language.
func NewReverseGeocoder(rawURL, language string, f *fetch.Fetcher, retry fetch.RetryConfig) *ReverseGeocoder {
	ep := fetch.NewEndpoint("Geocoding", rawURL, f, retry).
		WithHeader("Accept", "application/json")
	return &ReverseGeocoder{endpoint: ep, language: language}
}

// Endpoint exposes the underlying endpoint for health reporting.
func (g *ReverseGeocoder) Endpoint() *fetch.Endpoint { return g.endpoint }

// CityName returns the most specific place name available.
func (g *ReverseGeocoder) CityName(ctx context.Context, coords domain.Coordinates) (string, error) {
	query := url.Values{
		"latitude":         {formatCoord(coords.Latitude)},
		"longitude":        {formatCoord(coords.Longitude)},
		"localityLanguage": {g.language},
	}

	var resp geocodingResponse
	if err := g.endpoint.GetJSON(ctx, query, &resp); err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	return resp.placeName(), nil
}

// placeName walks the fields from most to least specific: city, locality,
// administrative area of order 6, then order 4, then the subdivision.
func (r geocodingResponse) placeName() string {
	if r.City != "" {
		return r.City
	}
	if r.Locality != "" {
		return r.Locality
	}
	if name := r.administrative(6); name != "" {
		return name
	}
	if name := r.administrative(4); name != "" {
		return name
	}
	if r.PrincipalSubdivision != "" {
		return r.PrincipalSubdivision
	}
	return UnknownLocation
}

func (r geocodingResponse) administrative(order int) string {
	for _, a := range r.LocalityInfo.Administrative {
		if a.Order == order {
			return a.Name
		}
	}
	return ""
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
