package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"foodcart-service/internal/geo"
)

// ErrUnresolvable wraps every lookup failure: transport errors, non-2xx
// statuses, empty result sets and malformed positions.
var ErrUnresolvable = errors.New("address unresolvable")

type Geocoder interface {
	Resolve(ctx context.Context, address string) (geo.Coordinates, error)
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// YandexClient talks to the Yandex geocoder HTTP API.
type YandexClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewYandexClient(cfg Config) *YandexClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YandexClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type yandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

func (c *YandexClient) Resolve(ctx context.Context, address string) (geo.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return geo.Coordinates{}, fmt.Errorf("%w: empty address", ErrUnresolvable)
	}

	q := url.Values{}
	q.Set("geocode", address)
	q.Set("apikey", c.apiKey)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: build request: %v", ErrUnresolvable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: %v", ErrUnresolvable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return geo.Coordinates{}, fmt.Errorf("%w: geocoder status %d", ErrUnresolvable, resp.StatusCode)
	}

	var body yandexResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: decode: %v", ErrUnresolvable, err)
	}

	members := body.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return geo.Coordinates{}, fmt.Errorf("%w: no results for %q", ErrUnresolvable, address)
	}

	// первый результат самый релевантный
	return ParsePosition(members[0].GeoObject.Point.Pos)
}

// ParsePosition parses a "<lon> <lat>" pair.
func ParsePosition(pos string) (geo.Coordinates, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return geo.Coordinates{}, fmt.Errorf("%w: malformed position %q", ErrUnresolvable, pos)
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: longitude %q", ErrUnresolvable, parts[0])
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: latitude %q", ErrUnresolvable, parts[1])
	}
	c := geo.Coordinates{Lon: lon, Lat: lat}
	if !c.Valid() {
		return geo.Coordinates{}, fmt.Errorf("%w: position out of range %q", ErrUnresolvable, pos)
	}
	return c, nil
}
