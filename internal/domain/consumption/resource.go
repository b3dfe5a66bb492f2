package consumption

import (
	"fmt"
	"strings"
)

// Resource is one of the tracked utilities.
type Resource string

const (
	Electricity Resource = "electricity"
	Water       Resource = "water"
	Gas         Resource = "gas"
)

// Resources lists every tracked utility in display order.
var Resources = []Resource{Electricity, Water, Gas}

func ParseResource(raw string) (Resource, error) {
	r := Resource(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case Electricity, Water, Gas:
		return r, nil
	}
	return "", fmt.Errorf("unknown resource type %q", raw)
}

// Unit is the billing unit the quantity is recorded in.
func (r Resource) Unit() string {
	if r == Electricity {
		return "kWh"
	}
	return "m³"
}
