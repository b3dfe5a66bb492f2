package footprint

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// SetPrimary backs every user-facing total: dashboard, footprint endpoint, leaderboards.
	SetPrimary = "primary"
	// SetPrimaryGas23 is the same model with the 2.3 kg/m³ gas constant.
	SetPrimaryGas23 = "primary-gas-2.3"
	// SetInsights is used only when building CO2 insights; it counts water.
	SetInsights = "insights"
)

//go:embed factors.yaml
var factorsYAML []byte

// FactorSet is a named set of per-unit emission factors in kg CO2e.
type FactorSet struct {
	Name         string  `yaml:"-" json:"name"`
	Description  string  `yaml:"description" json:"description"`
	Electricity  float64 `yaml:"electricity" json:"electricity"`
	Gas          float64 `yaml:"gas" json:"gas"`
	Water        float64 `yaml:"water" json:"water"`
	IncludeWater bool    `yaml:"include_water" json:"include_water"`
}

type catalogFile struct {
	Version int                  `yaml:"version"`
	Sets    map[string]FactorSet `yaml:"sets"`
}

var (
	catalogOnce sync.Once
	catalog     map[string]FactorSet
	catalogErr  error
)

func loadCatalog() (map[string]FactorSet, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = parseCatalog(factorsYAML)
	})
	return catalog, catalogErr
}

func parseCatalog(raw []byte) (map[string]FactorSet, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse emission factors: %w", err)
	}
	if len(f.Sets) == 0 {
		return nil, fmt.Errorf("emission factors: no sets defined")
	}
	out := make(map[string]FactorSet, len(f.Sets))
	for name, set := range f.Sets {
		set.Name = name
		if !set.IncludeWater {
			set.Water = 0
		}
		out[name] = set
	}
	return out, nil
}

// Lookup returns the named factor set.
func Lookup(name string) (FactorSet, error) {
	sets, err := loadCatalog()
	if err != nil {
		return FactorSet{}, err
	}
	set, ok := sets[name]
	if !ok {
		return FactorSet{}, fmt.Errorf("unknown emission factor set %q (have %v)", name, Names())
	}
	return set, nil
}

// MustLookup is Lookup for names fixed at compile time.
func MustLookup(name string) FactorSet {
	set, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return set
}

// Primary and Insights are the two sets the core pipeline depends on.
func Primary() FactorSet  { return MustLookup(SetPrimary) }
func Insights() FactorSet { return MustLookup(SetInsights) }

// Names lists the configured set names in sorted order.
func Names() []string {
	sets, err := loadCatalog()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(sets))
	for n := range sets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
