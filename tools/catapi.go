package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultCatAPIURL is the public image search endpoint.
const DefaultCatAPIURL = "https://api.thecatapi.com/v1/images/search"

type CatImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CatAPI picks random decorative images.
type CatAPI struct {
	client *http.Client
	url    string
}

func NewCatAPI(client *http.Client) *CatAPI {
	return &CatAPI{
		client: client,
		url:    DefaultCatAPIURL,
	}
}

// WithURL points the client at a different search endpoint.
func (c *CatAPI) WithURL(url string) *CatAPI {
	c.url = url
	return c
}

// RandomImageURL returns the URL of the first search result.
func (c *CatAPI) RandomImageURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: image search: %v", ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: image search returned %s", ErrFetchFailure, resp.Status)
	}

	var images []CatImage
	if err := json.NewDecoder(resp.Body).Decode(&images); err != nil {
		return "", fmt.Errorf("%w: failed to decode image search: %v", ErrFetchFailure, err)
	}
	if len(images) == 0 || images[0].URL == "" {
		return "", fmt.Errorf("%w: image search returned no images", ErrFetchFailure)
	}
	return images[0].URL, nil
}
