package models

// FilterKind is the PostHog entity a filter applies to
type FilterKind string

const (
	KindEvents    FilterKind = "events"
	KindEvent     FilterKind = "event"
	KindPerson    FilterKind = "person"
	KindLogEntry  FilterKind = "log_entry"
	KindRecording FilterKind = "recording"
)

// Operator defines how a filter value is compared
type Operator string

const (
	OperatorExact     Operator = "exact"
	OperatorIsSet     Operator = "is_set"
	OperatorIContains Operator = "icontains"
	OperatorGT        Operator = "gt"
)

// GroupAND is the only group type the playlist filters use
const GroupAND = "AND"

// Well-known PostHog event ids and property keys
const (
	EventPageview  = "$pageview"
	EventRageClick = "$rageclick"

	PropertyHost       = "$host"
	PropertyCurrentURL = "$current_url"
)

// FilterGroup is the outer AND group of a recording filter:
// {"type":"AND","values":[{"type":"AND","values":[...filters]}]}
type FilterGroup struct {
	Type   string        `json:"type" yaml:"type"`
	Values []FilterBlock `json:"values" yaml:"values"`
}

// FilterBlock is the inner AND group holding the actual filters
type FilterBlock struct {
	Type   string   `json:"type" yaml:"type"`
	Values []Filter `json:"values" yaml:"values"`
}

// Filter is a single recording filter. Event filters use ID/Name/Order/Properties,
// property filters (person, log_entry, recording) use Key/Value/Operator.
type Filter struct {
	ID         string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string           `json:"name,omitempty" yaml:"name,omitempty"`
	Key        string           `json:"key,omitempty" yaml:"key,omitempty"`
	Type       FilterKind       `json:"type" yaml:"type"`
	Order      *int             `json:"order,omitempty" yaml:"order,omitempty"`
	Value      interface{}      `json:"value,omitempty" yaml:"value,omitempty"`
	Operator   Operator         `json:"operator,omitempty" yaml:"operator,omitempty"`
	Properties []PropertyFilter `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// PropertyFilter matches a property of the enclosing event or recording.
// Value is always serialized, a nil value is sent as null.
type PropertyFilter struct {
	Key      string      `json:"key" yaml:"key"`
	Type     FilterKind  `json:"type" yaml:"type"`
	Value    interface{} `json:"value" yaml:"value"`
	Operator Operator    `json:"operator" yaml:"operator"`
}

// NewFilterGroup wraps filters in the two-level AND structure
func NewFilterGroup(filters []Filter) FilterGroup {
	if filters == nil {
		filters = []Filter{}
	}
	return FilterGroup{
		Type: GroupAND,
		Values: []FilterBlock{
			{Type: GroupAND, Values: filters},
		},
	}
}

// Filters returns the flat filter list of the group
func (g FilterGroup) Filters() []Filter {
	var filters []Filter
	for _, block := range g.Values {
		filters = append(filters, block.Values...)
	}
	return filters
}
