package country

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultOption is always offered first, whatever the fetch outcome.
const DefaultOption = "Nepal"

const (
	StatusLoading = "loading"
	StatusLoaded  = "loaded"
	StatusFailed  = "failed"
)

const (
	MessageLoading = "Loading countries..."
	MessageFailed  = "Failed to fetch countries"
)

type Fetcher interface {
	Fetch(ctx context.Context) ([]Country, error)
}

// Snapshot is the catalog state as the country selector renders it.
type Snapshot struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Countries []Country `json:"countries"`
	Options   []string  `json:"options"`
}

// Catalog holds the result of the one-shot country fetch.
type Catalog struct {
	mu        sync.RWMutex
	fetcher   Fetcher
	once      sync.Once
	status    string
	countries []Country
}

func NewCatalog(fetcher Fetcher) *Catalog {
	return &Catalog{fetcher: fetcher, status: StatusLoading}
}

// Load fetches the list once. Later calls do nothing, a failure is final.
func (c *Catalog) Load(ctx context.Context) {
	c.once.Do(func() {
		countries, err := c.fetcher.Fetch(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.status = StatusFailed
			slog.Error("country list unavailable", "error", err)
			return
		}
		c.status = StatusLoaded
		c.countries = countries
		slog.Info("country list loaded", "count", len(countries))
	})
}

func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Status:    c.status,
		Countries: append([]Country(nil), c.countries...),
		Options:   c.options(),
	}
	switch c.status {
	case StatusLoading:
		s.Message = MessageLoading
	case StatusFailed:
		s.Message = MessageFailed
	}
	return s
}

// Options lists the selectable country names, DefaultOption first.
func (c *Catalog) Options() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.options()
}

func (c *Catalog) options() []string {
	out := make([]string, 0, len(c.countries)+1)
	out = append(out, DefaultOption)
	for _, country := range c.countries {
		if country.CommonName == DefaultOption {
			continue
		}
		out = append(out, country.CommonName)
	}
	return out
}
