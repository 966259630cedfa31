package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const metersPerMile = 1609.344

// MatrixClient queries the Google Distance Matrix API for one-way distance
// and travel time. Responses are cached per origin/destination pair and
// requests are rate limited.
type MatrixClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Limiter *rate.Limiter

	mu    sync.Mutex
	cache map[string]Result
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

func (m *MatrixClient) Distance(ctx context.Context, origin, destination string) (Result, error) {
	key := origin + "|" + destination
	m.mu.Lock()
	if m.Client == nil {
		m.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if m.BaseURL == "" {
		m.BaseURL = "https://maps.googleapis.com"
	}
	if m.Limiter == nil {
		m.Limiter = rate.NewLimiter(rate.Every(time.Second), 1)
	}
	if m.cache == nil {
		m.cache = map[string]Result{}
	}
	if cached, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return cached, nil
	}
	m.mu.Unlock()

	if err := m.Limiter.Wait(ctx); err != nil {
		return Result{}, err
	}

	params := url.Values{}
	params.Set("origins", origin)
	params.Set("destinations", destination)
	params.Set("units", "imperial")
	params.Set("key", m.APIKey)
	endpoint := m.BaseURL + "/maps/api/distancematrix/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := m.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("distance matrix http error: %s", resp.Status)
	}

	var body matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, err
	}
	result, err := parseMatrixResponse(body)
	if err != nil {
		return Result{}, err
	}

	m.mu.Lock()
	m.cache[key] = result
	m.mu.Unlock()

	return result, nil
}

func parseMatrixResponse(body matrixResponse) (Result, error) {
	if body.Status != "OK" {
		return Result{}, fmt.Errorf("distance matrix status: %s", body.Status)
	}
	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return Result{}, ErrNoRoute
	}
	el := body.Rows[0].Elements[0]
	if el.Status != "OK" {
		return Result{}, fmt.Errorf("distance matrix element status: %s", el.Status)
	}
	return Result{
		Miles:   el.Distance.Value / metersPerMile,
		Minutes: el.Duration.Value / 60,
	}, nil
}
