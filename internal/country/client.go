package country

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Country is one entry of the external country list.
type Country struct {
	CommonName string `json:"commonName"`
	Code       string `json:"code"`
}

// apiCountry mirrors the restcountries response shape.
type apiCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	CCA3 string `json:"cca3"`
}

// Client fetches the country list with a single bounded GET.
type Client struct {
	url     string
	timeout time.Duration
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{url: url, timeout: timeout}
}

// Fetch returns the countries sorted by common name.
func (c *Client) Fetch(ctx context.Context) ([]Country, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload []apiCountry
	agent := fiber.Get(c.url).Timeout(c.timeout)
	status, _, errs := agent.Struct(&payload)
	if len(errs) > 0 {
		return nil, fmt.Errorf("fetch countries: %w", errors.Join(errs...))
	}
	if status != fiber.StatusOK {
		return nil, fmt.Errorf("fetch countries: unexpected status %d", status)
	}

	countries := make([]Country, 0, len(payload))
	for _, p := range payload {
		name := strings.TrimSpace(p.Name.Common)
		if name == "" {
			continue
		}
		countries = append(countries, Country{CommonName: name, Code: p.CCA3})
	}
	sort.Slice(countries, func(i, j int) bool {
		return countries[i].CommonName < countries[j].CommonName
	})
	return countries, nil
}
