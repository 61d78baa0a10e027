package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"exchange-latency/internal/models"
)

// ErrInvalidCatalog is returned when reference data fails validation
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog holds the static endpoint and region reference tables.
// It is read-only after construction.
type Catalog struct {
	endpoints []models.Endpoint
	regions   []models.CloudRegion
	byID      map[string]int
}

type file struct {
	Exchanges []models.Endpoint    `yaml:"exchanges"`
	Regions   []models.CloudRegion `yaml:"regions"`
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(exchanges, regions)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// New validates and indexes the given tables
func New(endpoints []models.Endpoint, cloudRegions []models.CloudRegion) (*Catalog, error) {
	c := &Catalog{
		endpoints: append([]models.Endpoint(nil), endpoints...),
		regions:   append([]models.CloudRegion(nil), cloudRegions...),
		byID:      make(map[string]int, len(endpoints)),
	}

	for i, e := range c.endpoints {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: exchange %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate exchange id %q", ErrInvalidCatalog, e.ID)
		}
		if !e.Provider.Valid() {
			return nil, fmt.Errorf("%w: exchange %q has unknown provider %q", ErrInvalidCatalog, e.ID, e.Provider)
		}
		if !e.Coordinates.Valid() {
			return nil, fmt.Errorf("%w: exchange %q coordinates out of range", ErrInvalidCatalog, e.ID)
		}
		c.byID[e.ID] = i
	}

	seen := make(map[string]struct{}, len(c.regions))
	for _, r := range c.regions {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate region id %q", ErrInvalidCatalog, r.ID)
		}
		if !r.Provider.Valid() {
			return nil, fmt.Errorf("%w: region %q has unknown provider %q", ErrInvalidCatalog, r.ID, r.Provider)
		}
		if !r.Coordinates.Valid() {
			return nil, fmt.Errorf("%w: region %q coordinates out of range", ErrInvalidCatalog, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	return c, nil
}

// Load reads a YAML catalog file. Missing sections fall back to the
// built-in tables.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if len(f.Exchanges) == 0 {
		f.Exchanges = exchanges
	}
	if len(f.Regions) == 0 {
		f.Regions = regions
	}

	return New(f.Exchanges, f.Regions)
}

// Endpoints returns a copy of the endpoint table
func (c *Catalog) Endpoints() []models.Endpoint {
	return append([]models.Endpoint(nil), c.endpoints...)
}

// Regions returns a copy of the region table
func (c *Catalog) Regions() []models.CloudRegion {
	return append([]models.CloudRegion(nil), c.regions...)
}

// RegionsFor returns regions owned by provider, or all regions when provider is empty
func (c *Catalog) RegionsFor(provider models.Provider) []models.CloudRegion {
	if provider == "" {
		return c.Regions()
	}
	var out []models.CloudRegion
	for _, r := range c.regions {
		if r.Provider == provider {
			out = append(out, r)
		}
	}
	return out
}

// Endpoint looks up an endpoint by id
func (c *Catalog) Endpoint(id string) (models.Endpoint, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Endpoint{}, false
	}
	return c.endpoints[i], true
}

// Names returns the distinct exchange names in table order
func (c *Catalog) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range c.endpoints {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}
	return names
}

// exportDocument is the downloadable snapshot format
type exportDocument struct {
	Exchanges []models.Endpoint `json:"exchanges"`
	Timestamp string            `json:"timestamp"`
}

// Export writes the endpoint table as an indented JSON document
func Export(w io.Writer, endpoints []models.Endpoint, now time.Time) error {
	if endpoints == nil {
		endpoints = []models.Endpoint{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportDocument{
		Exchanges: endpoints,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	})
}
