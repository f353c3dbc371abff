package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"golang.org/x/time/rate"
)

const (
	baseURL      = "https://api.themoviedb.org/3"
	imageBaseURL = "https://image.tmdb.org/t/p/original"

	// TMDB serves listing endpoints 20 entries per page.
	PageSize = 20

	// Minimum backdrop width considered a usable still.
	minStillWidth = 1920
)

// Client is a simple client for interacting with TMDB's API
type Client struct {
	HTTPClient *http.Client
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a new instance of Client with a timeout and a
// client-side rate limiter of four requests per second.
func NewClient(apiKey string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
	}
}

// Genre represents the JSON structure of a TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie represents the JSON structure of a TMDB movie listing entry
type Movie struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	GenreIDs      []int   `json:"genre_ids"`
}

// Backdrop represents the JSON structure of a TMDB movie backdrop image
type Backdrop struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	VoteAverage float64 `json:"vote_average"`
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	return c.HTTPClient.Do(req)
}

// Genres fetches the movie genre mapping (id to name) from TMDB
func (c *Client) Genres(ctx context.Context) (map[int]string, error) {
	url := fmt.Sprintf("%s/genre/movie/list?api_key=%s&language=en-US", baseURL, c.apiKey)
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch genres: received status code %d", resp.StatusCode)
	}

	var body struct {
		Genres []Genre `json:"genres"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode genres response: %v", err)
	}

	genres := make(map[int]string, len(body.Genres))
	for _, g := range body.Genres {
		genres[g.ID] = g.Name
	}

	return genres, nil
}

// TopRated fetches one page of TMDB's top rated movie listing.
// A true second return value means the request was rate-limited.
func (c *Client) TopRated(ctx context.Context, page int) ([]Movie, bool, error) {
	url := fmt.Sprintf("%s/movie/top_rated?api_key=%s&language=en-US&page=%d", baseURL, c.apiKey, page)
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch top rated movies: %v", err)
	}
	defer resp.Body.Close()

	// Handle rate-limiting scenario
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("failed to fetch top rated movies: received status code %d", resp.StatusCode)
	}

	var body struct {
		Results []Movie `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("failed to decode top rated response: %v", err)
	}

	return body.Results, false, nil
}

// MovieImages fetches backdrop stills for a movie. Backdrops narrower than
// 1920px are dropped when enough high resolution ones exist, the rest are
// ordered by vote average, and at most max backdrops are returned.
func (c *Client) MovieImages(ctx context.Context, movieID int, max int) ([]Backdrop, error) {
	url := fmt.Sprintf("%s/movie/%d/images?api_key=%s&include_image_language=en,null", baseURL, movieID, c.apiKey)
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch images for movie %d: %v", movieID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch images for movie %d: received status code %d", movieID, resp.StatusCode)
	}

	var body struct {
		Backdrops []Backdrop `json:"backdrops"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode images response: %v", err)
	}

	var stills []Backdrop
	for _, b := range body.Backdrops {
		if b.Width >= minStillWidth {
			stills = append(stills, b)
		}
	}
	if len(stills) == 0 {
		stills = body.Backdrops
	}

	sort.SliceStable(stills, func(i, j int) bool {
		return stills[i].VoteAverage > stills[j].VoteAverage
	})

	if len(stills) > max {
		stills = stills[:max]
	}

	return stills, nil
}

// DownloadImage fetches the original-size image behind a TMDB file path
func (c *Client) DownloadImage(ctx context.Context, filePath string) ([]byte, error) {
	url := imageBaseURL + filePath
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image %s: %v", filePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image %s: received status code %d", filePath, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %v", filePath, err)
	}

	return data, nil
}
