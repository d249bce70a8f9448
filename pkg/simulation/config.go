package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Margin is the minimum distance kept between a boid and any arena edge.
const Margin = 1.0

var (
	// ErrInvalidConfig is wrapped by every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnknownConfigFormat is returned for config files that are neither JSON nor TOML.
	ErrUnknownConfigFormat = errors.New("unknown config file format")
)

//go:embed config.schema.json
var configSchemaJSON string

var configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaJSON)

type Config struct {
	// World Dimensions, may be updated by the renderer at runtime (see Simulation.SetBounds)
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Population, the leader included
	NumBoids int `json:"numBoids"`

	// Physics
	MaxSpeed float64 `json:"maxSpeed"`
	MaxForce float64 `json:"maxForce"`

	// Neighbor radii
	SeparationRadius float64 `json:"separationRadius"`
	AlignmentRadius  float64 `json:"alignmentRadius"`
	CohesionRadius   float64 `json:"cohesionRadius"`

	// Rule weights
	SeparationWeight float64 `json:"separationWeight"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:            80,
		Height:           24,
		NumBoids:         25,
		MaxSpeed:         1.5,
		MaxForce:         0.08,
		SeparationRadius: 3.0,
		AlignmentRadius:  5.0,
		CohesionRadius:   5.0,
		SeparationWeight: 2.0,
		AlignmentWeight:  1.2,
		CohesionWeight:   1.0,
	}
}

// ConfigForArea sizes the arena and the population for a terminal of the given size.
// The canvas takes 75% of the width; roughly one boid per 125 cells, between 15 and 100.
func ConfigForArea(termWidth, termHeight int) *Config {
	width := math.Max(float64(termWidth)*0.75, 20)
	height := math.Max(float64(termHeight), 10)

	area := width * height
	numBoids := int(clamp(area*0.008, 15, 100))

	// denser flocks get a wider personal space
	density := float64(numBoids) / area
	multiplier := clamp(density*1000, 0.5, 2.0)

	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.NumBoids = numBoids
	cfg.SeparationRadius = 3.0 * multiplier
	return cfg
}

// validSide rejects NaN, infinities and arenas too small to hold the wall margin.
func validSide(v float64) bool {
	return v >= 2*Margin && !math.IsInf(v, 0)
}

// Validate checks the numeric ranges the simulation relies on.
func (c *Config) Validate() error {
	switch {
	case !validSide(c.Width) || !validSide(c.Height):
		return fmt.Errorf("%w: arena %.1fx%.1f must be finite and at least %.0fx%.0f", ErrInvalidConfig, c.Width, c.Height, 2*Margin, 2*Margin)
	case c.NumBoids < 0:
		return fmt.Errorf("%w: numBoids %d is negative", ErrInvalidConfig, c.NumBoids)
	case !(c.MaxSpeed > 0):
		return fmt.Errorf("%w: maxSpeed must be positive, got %v", ErrInvalidConfig, c.MaxSpeed)
	case !(c.MaxForce >= 0):
		return fmt.Errorf("%w: maxForce must not be negative, got %v", ErrInvalidConfig, c.MaxForce)
	case !(c.SeparationRadius >= 0) || !(c.AlignmentRadius >= 0) || !(c.CohesionRadius >= 0):
		return fmt.Errorf("%w: neighbor radii must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Merge overlays a partial JSON document on a copy of c and validates the result.
func (c Config) Merge(partial []byte) (*Config, error) {
	if err := json.Unmarshal(partial, &c); err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadConfig loads a JSON or TOML file, validates it against the embedded schema
// and overlays it on DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	return loadConfig(configFile, configSchema)
}

// LoadConfigWithSchema is LoadConfig with an external JSON schema file.
func LoadConfigWithSchema(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return loadConfig(configFile, sch)
}

func loadConfig(configFile string, sch *jsonschema.Schema) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	// Both formats are normalized to JSON so the schema and the struct tags are shared.
	doc, err := toJSON(configFile, b)
	if err != nil {
		return nil, err
	}

	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg, err := DefaultConfig().Merge(doc)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", configFile, err)
	}
	return cfg, nil
}

func toJSON(configFile string, b []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".json":
		return b, nil
	case ".toml":
		var m map[string]interface{}
		if _, err := toml.Decode(string(b), &m); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		out, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to convert config toml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConfigFormat, filepath.Ext(configFile))
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
