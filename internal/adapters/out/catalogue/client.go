// Package catalogue is the HTTP client for the partner catalogue service,
// which owns food place records. Only the pickup location is read here.
package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

const defaultRequestTimeout = 5 * time.Second

// Client implements ports.FoodPlaceDirectory against the catalogue API.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.FoodPlaceDirectory = (*Client)(nil)

// NewClient creates a catalogue client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL must not be empty")
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

type foodPlaceResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GetLocation resolves a food place's pickup location. An unknown food
// place comes back as an ObjectNotFoundError.
func (c *Client) GetLocation(ctx context.Context, foodPlaceID kernel.UUID) (kernel.Location, error) {
	if err := foodPlaceID.Validate(); err != nil {
		return kernel.Location{}, err
	}

	url := c.baseURL + "/v1/food-places/" + foodPlaceID.String()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return kernel.Location{}, err
	}

	response, err := c.http.Do(request)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("catalogue request: %w", err)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode == http.StatusNotFound {
		return kernel.Location{}, errs.NewObjectNotFoundError("foodPlaceId", foodPlaceID.String())
	}
	if response.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return kernel.Location{}, fmt.Errorf("catalogue responded %d: %s", response.StatusCode, detail)
	}

	var place foodPlaceResponse
	if err := json.NewDecoder(response.Body).Decode(&place); err != nil {
		return kernel.Location{}, fmt.Errorf("decode response: %w", err)
	}
	return kernel.NewLocation(place.Latitude, place.Longitude)
}
