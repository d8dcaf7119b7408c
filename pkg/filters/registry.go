package filters

import (
	"github.com/Tsahi-Elkayam/replaylist/pkg/models"
	"github.com/Tsahi-Elkayam/replaylist/pkg/types"
)

// Spec describes one filter type: what it selects, which flags it needs and
// how its filter is built
type Spec struct {
	Type        types.FilterType `json:"type" yaml:"type"`
	Description string           `json:"description" yaml:"description"`
	Required    []string         `json:"required,omitempty" yaml:"required,omitempty"`
	Optional    []string         `json:"optional,omitempty" yaml:"optional,omitempty"`

	build func(types.FilterOptions) models.Filter
}

var specs = map[types.FilterType]Spec{
	types.FilterPersonProperty: {
		Type:        types.FilterPersonProperty,
		Description: "Sessions of persons with a property value, or with the property set",
		Required:    []string{"property-key"},
		Optional:    []string{"property-value", "is-set"},
		build:       buildPersonProperty,
	},
	types.FilterEvent: {
		Type:        types.FilterEvent,
		Description: "Sessions containing an event, optionally with a matching event property",
		Required:    []string{"event-name"},
		Optional:    []string{"event-property-key", "event-property-value"},
		build:       buildEvent,
	},
	types.FilterURL: {
		Type:        types.FilterURL,
		Description: "Sessions with a pageview whose URL contains a substring",
		Required:    []string{"url"},
		build:       buildURL,
	},
	types.FilterRageClicks: {
		Type:        types.FilterRageClicks,
		Description: "Sessions with rage clicks",
		build:       buildRageClicks,
	},
	types.FilterConsoleErrors: {
		Type:        types.FilterConsoleErrors,
		Description: "Sessions with console errors",
		build:       buildConsoleErrors,
	},
	types.FilterMobile: {
		Type:        types.FilterMobile,
		Description: "Sessions recorded on mobile devices",
		build:       buildMobile,
	},
}

// Lookup returns the spec for a filter type
func Lookup(ft types.FilterType) (Spec, bool) {
	spec, ok := specs[ft]
	return spec, ok
}

// All returns every filter spec in display order
func All() []Spec {
	all := make([]Spec, 0, len(types.FilterTypes))
	for _, ft := range types.FilterTypes {
		all = append(all, specs[ft])
	}
	return all
}
