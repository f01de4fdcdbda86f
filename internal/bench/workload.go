package bench

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// KeyKind selects how workload keys are generated.
type KeyKind string

const (
	KeyInt          KeyKind = "int"
	KeyUUID         KeyKind = "uuid"
	KeyAlphanumeric KeyKind = "alphanumeric"
)

// Workload describes one benchmark run against a fresh map.
type Workload struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Keys     int     `yaml:"keys"`
	KeyKind  KeyKind `yaml:"key_kind"`

	// KeySize applies to alphanumeric keys only.
	KeySize   int `yaml:"key_size"`
	ValueSize int `yaml:"value_size"`

	// EraseFraction of the inserted keys is erased after the lookups.
	EraseFraction float64 `yaml:"erase_fraction"`

	Capacity     int `yaml:"capacity"`
	GrowthFactor int `yaml:"growth_factor"`

	// ProgressInterval is the number of insertions between progress log
	// lines. Zero disables progress logging.
	ProgressInterval int `yaml:"progress_interval"`
}

// Config is the top level of a workload file.
type Config struct {
	Workloads []Workload `yaml:"workloads"`
}

// DefaultConfig mirrors the scale benchmarks: ten thousand integer keys,
// a hundred thousand UUID keys with string values, and a million keys.
func DefaultConfig() Config {
	return Config{Workloads: []Workload{
		{
			Name:             "TenThousandKeys",
			Category:         "scale",
			Keys:             10_000,
			KeyKind:          KeyInt,
			ValueSize:        8,
			ProgressInterval: 1_000,
		},
		{
			Name:             "UUIDKeys",
			Category:         "scale",
			Keys:             100_000,
			KeyKind:          KeyUUID,
			ValueSize:        100,
			EraseFraction:    0.1,
			ProgressInterval: 10_000,
		},
		{
			Name:             "MillionKeys",
			Category:         "scale",
			Keys:             1_000_000,
			KeyKind:          KeyInt,
			ValueSize:        8,
			ProgressInterval: 100_000,
		},
	}}
}

// ParseConfig decodes and validates a YAML workload file.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrap(err, "failed to parse workload config")
	}
	for i := range c.Workloads {
		if err := c.Workloads[i].validate(); err != nil {
			return c, errors.Wrapf(err, "workload %d", i)
		}
	}
	return c, nil
}

// LoadConfig reads a workload file from disk.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read workload config")
	}
	return ParseConfig(data)
}

func (w *Workload) validate() error {
	if w.Name == "" {
		return errors.New("name is required")
	}
	if w.Keys <= 0 {
		return errors.Errorf("%s: keys must be positive", w.Name)
	}
	switch w.KeyKind {
	case "":
		w.KeyKind = KeyInt
	case KeyInt, KeyUUID:
	case KeyAlphanumeric:
		if w.KeySize <= 0 {
			w.KeySize = 16
		}
		distinct := 1
		for i := 0; i < w.KeySize && distinct < w.Keys; i++ {
			distinct *= len(alphanumeric)
		}
		if distinct < w.Keys {
			return errors.Errorf("%s: key size %d cannot produce %d distinct keys", w.Name, w.KeySize, w.Keys)
		}
	default:
		return errors.Errorf("%s: unknown key kind %q", w.Name, w.KeyKind)
	}
	if w.ValueSize < 0 {
		return errors.Errorf("%s: value size must not be negative", w.Name)
	}
	if w.EraseFraction < 0 || w.EraseFraction > 1 {
		return errors.Errorf("%s: erase fraction must be within [0, 1]", w.Name)
	}
	if w.GrowthFactor != 0 && w.GrowthFactor < 2 {
		return errors.Errorf("%s: growth factor must be at least 2", w.Name)
	}
	if w.Category == "" {
		w.Category = "custom"
	}
	return nil
}
