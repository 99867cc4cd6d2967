// Package omdb implements the metadata lookup client for the OMDb
// HTTP API. Every failure mode (missing API key, network error,
// malformed response, or a genuine "not found") collapses into a
// single absent outcome. Callers must not be able to distinguish
// "service down" from "no such movie": the fallback behavior is
// identical either way, so the client never returns an error.
package omdb

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

// notAvailable is the sentinel OMDb uses for fields it has no data for.
const notAvailable = "N/A"

// maxSearchHits caps the number of search results returned to callers.
const maxSearchHits = 10

// Result holds normalized metadata for a single movie.
type Result struct {
	Title     string
	Director  string
	Year      int
	Rating    float64
	PosterURL string
	ImdbID    string
}

// SearchHit is one lightweight entry from a multi-result search.
// Year is kept as the service displays it (e.g. "2010", "2019–2022").
type SearchHit struct {
	Title     string `json:"title"`
	Year      string `json:"year"`
	ImdbID    string `json:"imdb_id"`
	PosterURL string `json:"poster_url,omitempty"`
}

// Client queries the OMDb API. The zero value is not usable; use New.
// HTTPClient may be swapped out before first use, which tests rely on
// to inject a fake transport.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a Client for the given API key. An empty key produces a
// client whose lookups always report absent; startup does not fail so
// the rest of the service stays usable without a configured key.
func New(apiKey string) *Client {
	return &Client{
		APIKey:     strings.TrimSpace(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// payload mirrors the OMDb single-result response body. Numeric
// fields arrive as strings and may carry the "N/A" sentinel.
type payload struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// searchPayload mirrors the OMDb multi-result response body.
type searchPayload struct {
	Search []struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		ImdbID string `json:"imdbID"`
		Poster string `json:"Poster"`
	} `json:"Search"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// LookupByTitle queries OMDb for an exact/best title match restricted
// to the movie media type. The second return value is false when no
// usable result exists for any reason.
func (c *Client) LookupByTitle(ctx context.Context, title string) (Result, bool) {
	return c.lookup(ctx, map[string]string{"t": title, "type": "movie"})
}

// LookupByID queries OMDb by its own identifier (e.g. "tt1375666").
// Used when a caller picked a specific candidate from search results.
func (c *Client) LookupByID(ctx context.Context, externalID string) (Result, bool) {
	return c.lookup(ctx, map[string]string{"i": externalID})
}

// Search issues a multi-result movie query and returns up to ten hits
// in service-provided order. Any failure yields an empty slice.
func (c *Client) Search(ctx context.Context, query string) []SearchHit {
	hits := []SearchHit{}
	if c.APIKey == "" || strings.TrimSpace(query) == "" {
		return hits
	}
	req, err := c.buildRequest(ctx, map[string]string{"s": query, "type": "movie"})
	if err != nil {
		return hits
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("omdb: search request failed: %v", err)
		return hits
	}
	defer resp.Body.Close()
	var body searchPayload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("omdb: search decode failed: %v", err)
		return hits
	}
	if body.Response != "True" {
		return hits
	}
	for _, e := range body.Search {
		if len(hits) == maxSearchHits {
			break
		}
		hit := SearchHit{Title: e.Title, Year: e.Year, ImdbID: e.ImdbID}
		if e.Poster != "" && e.Poster != notAvailable {
			hit.PosterURL = e.Poster
		}
		hits = append(hits, hit)
	}
	return hits
}

func (c *Client) lookup(ctx context.Context, params map[string]string) (Result, bool) {
	if c.APIKey == "" {
		return Result{}, false
	}
	req, err := c.buildRequest(ctx, params)
	if err != nil {
		return Result{}, false
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("omdb: lookup request failed: %v", err)
		return Result{}, false
	}
	defer resp.Body.Close()
	var body payload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("omdb: lookup decode failed: %v", err)
		return Result{}, false
	}
	if body.Response != "True" || body.Title == "" {
		return Result{}, false
	}
	res := Result{
		Title:    body.Title,
		Director: body.Director,
		Year:     ParseYear(body.Year),
		Rating:   ParseRating(body.ImdbRating),
		ImdbID:   body.ImdbID,
	}
	if body.Director == "" || body.Director == notAvailable {
		res.Director = "Unknown"
	}
	if body.Poster != "" && body.Poster != notAvailable {
		res.PosterURL = body.Poster
	}
	return res, true
}

// buildRequest constructs a GET request with the API key and the
// given query parameters applied. Empty values are skipped.
func (c *Client) buildRequest(ctx context.Context, params map[string]string) (*http.Request, error) {
	values := url.Values{}
	for k, v := range params {
		if strings.TrimSpace(v) == "" {
			continue
		}
		values.Set(k, v)
	}
	values.Set("apikey", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = values.Encode()
	return req, nil
}

// ParseYear converts a year string to an int. Only an all-digit
// string is accepted; anything else (empty, "N/A", "TBD", ranges
// like "2019–2022") yields 0.
func ParseYear(value string) int {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseRating converts a rating string to a float. The "N/A"
// sentinel, empty strings and unparsable values yield 0.
func ParseRating(value string) float64 {
	s := strings.TrimSpace(value)
	if s == "" || s == notAvailable {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
