package types

import (
	"fmt"
	"strings"
)

// FilterType selects which recording filter a playlist is built around
type FilterType string

const (
	FilterPersonProperty FilterType = "person_property"
	FilterEvent          FilterType = "event"
	FilterURL            FilterType = "url"
	FilterRageClicks     FilterType = "rage_clicks"
	FilterConsoleErrors  FilterType = "console_errors"
	FilterMobile         FilterType = "mobile"
)

// FilterTypes lists every supported filter type in display order
var FilterTypes = []FilterType{
	FilterPersonProperty,
	FilterEvent,
	FilterURL,
	FilterRageClicks,
	FilterConsoleErrors,
	FilterMobile,
}

// ParseFilterType converts a string into a known FilterType
func ParseFilterType(s string) (FilterType, error) {
	for _, ft := range FilterTypes {
		if string(ft) == s {
			return ft, nil
		}
	}
	return "", fmt.Errorf("invalid filter type %q (choose from %s)", s, FilterTypeNames())
}

// FilterTypeNames returns the supported filter types as a comma-separated list
func FilterTypeNames() string {
	names := make([]string, len(FilterTypes))
	for i, ft := range FilterTypes {
		names[i] = string(ft)
	}
	return strings.Join(names, ", ")
}

// String implements pflag.Value
func (f *FilterType) String() string {
	return string(*f)
}

// Set implements pflag.Value, rejecting anything outside the enumeration
func (f *FilterType) Set(value string) error {
	ft, err := ParseFilterType(value)
	if err != nil {
		return err
	}
	*f = ft
	return nil
}

// Type implements pflag.Value
func (f *FilterType) Type() string {
	return "filterType"
}

// FilterOptions holds the parsed filter criteria for one playlist
type FilterOptions struct {
	Type FilterType `json:"filter_type" yaml:"filter_type"`
	// Host restricts recordings to pageviews on this site (www. variant included)
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// person_property
	PropertyKey   string `json:"property_key,omitempty" yaml:"property_key,omitempty"`
	PropertyValue string `json:"property_value,omitempty" yaml:"property_value,omitempty"`
	IsSet         bool   `json:"is_set,omitempty" yaml:"is_set,omitempty"`

	// event
	EventName          string `json:"event_name,omitempty" yaml:"event_name,omitempty"`
	EventPropertyKey   string `json:"event_property_key,omitempty" yaml:"event_property_key,omitempty"`
	EventPropertyValue string `json:"event_property_value,omitempty" yaml:"event_property_value,omitempty"`

	// url
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// CreateOptions holds everything the create command needs after flags,
// environment and config file have been merged.
//
// The validate tags carry the per-filter-type required companions; the flag
// tags name the command-line flag reported back to the user.
type CreateOptions struct {
	APIKey      string `flag:"api-key" validate:"required_unless=DryRun true"`
	ProjectID   string `flag:"project-id" validate:"required_unless=DryRun true"`
	PostHogHost string `flag:"posthog-host" validate:"required"`
	Name        string `flag:"name" validate:"required"`
	Description string `flag:"description"`

	FilterType  FilterType `flag:"filter-type" validate:"required,oneof=person_property event url rage_clicks console_errors mobile"`
	PropertyKey string     `flag:"property-key" validate:"required_if=FilterType person_property"`
	EventName   string     `flag:"event-name" validate:"required_if=FilterType event"`
	URL         string     `flag:"url" validate:"required_if=FilterType url"`

	PropertyValue      string `flag:"property-value"`
	IsSet              bool   `flag:"is-set"`
	EventPropertyKey   string `flag:"event-property-key"`
	EventPropertyValue string `flag:"event-property-value"`
	Host               string `flag:"host"`

	DateFrom           string `flag:"date-from"`
	FilterTestAccounts bool   `flag:"filter-test-accounts"`

	Output string `flag:"output" validate:"oneof=text json yaml"`
	DryRun bool   `flag:"dry-run"`
}

// Filters extracts the filter criteria from the create options
func (o *CreateOptions) Filters() FilterOptions {
	return FilterOptions{
		Type:               o.FilterType,
		Host:               o.Host,
		PropertyKey:        o.PropertyKey,
		PropertyValue:      o.PropertyValue,
		IsSet:              o.IsSet,
		EventName:          o.EventName,
		EventPropertyKey:   o.EventPropertyKey,
		EventPropertyValue: o.EventPropertyValue,
		URL:                o.URL,
	}
}
