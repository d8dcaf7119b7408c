// Package filters turns parsed filter options into the PostHog recording
// filter group that a session replay playlist is saved with.
package filters

import (
	"strings"

	"github.com/Tsahi-Elkayam/replaylist/pkg/models"
	"github.com/Tsahi-Elkayam/replaylist/pkg/types"
)

// BuildFilterGroup maps filter options to a filter group. It has no side
// effects and does not validate: required fields are checked before it runs.
func BuildFilterGroup(opts types.FilterOptions) models.FilterGroup {
	filters := make([]models.Filter, 0, 2)

	if opts.Host != "" {
		filters = append(filters, hostFilter(opts.Host))
	}

	if spec, ok := Lookup(opts.Type); ok {
		filters = append(filters, spec.build(opts))
	}

	return models.NewFilterGroup(filters)
}

// hostFilter matches pageviews on host and its www. variant
func hostFilter(host string) models.Filter {
	hosts := []string{host}
	if !strings.HasPrefix(host, "www.") {
		hosts = append(hosts, "www."+host)
	}

	return pageviewFilter(models.PropertyFilter{
		Key:      models.PropertyHost,
		Type:     models.KindEvent,
		Value:    hosts,
		Operator: models.OperatorExact,
	})
}

func pageviewFilter(property models.PropertyFilter) models.Filter {
	return models.Filter{
		ID:         models.EventPageview,
		Name:       models.EventPageview,
		Type:       models.KindEvents,
		Properties: []models.PropertyFilter{property},
	}
}

func buildPersonProperty(opts types.FilterOptions) models.Filter {
	if opts.IsSet {
		return models.Filter{
			Key:      opts.PropertyKey,
			Type:     models.KindPerson,
			Operator: models.OperatorIsSet,
			Value:    string(models.OperatorIsSet),
		}
	}

	values := []string{}
	if opts.PropertyValue != "" {
		values = append(values, opts.PropertyValue)
	}
	return models.Filter{
		Key:      opts.PropertyKey,
		Type:     models.KindPerson,
		Operator: models.OperatorExact,
		Value:    values,
	}
}

func buildEvent(opts types.FilterOptions) models.Filter {
	filter := models.Filter{
		ID:    opts.EventName,
		Name:  opts.EventName,
		Type:  models.KindEvents,
		Order: firstOrder(),
	}

	if opts.EventPropertyKey != "" {
		// an omitted value is sent as null
		var value interface{}
		if opts.EventPropertyValue != "" {
			value = opts.EventPropertyValue
		}
		filter.Properties = []models.PropertyFilter{
			{
				Key:      opts.EventPropertyKey,
				Type:     models.KindEvent,
				Value:    value,
				Operator: models.OperatorExact,
			},
		}
	}

	return filter
}

func buildURL(opts types.FilterOptions) models.Filter {
	return pageviewFilter(models.PropertyFilter{
		Key:      models.PropertyCurrentURL,
		Type:     models.KindEvent,
		Value:    opts.URL,
		Operator: models.OperatorIContains,
	})
}

func buildRageClicks(types.FilterOptions) models.Filter {
	return models.Filter{
		ID:    models.EventRageClick,
		Type:  models.KindEvents,
		Order: firstOrder(),
	}
}

func buildConsoleErrors(types.FilterOptions) models.Filter {
	return models.Filter{
		Key:      "level",
		Type:     models.KindLogEntry,
		Value:    []string{"error"},
		Operator: models.OperatorExact,
	}
}

func buildMobile(types.FilterOptions) models.Filter {
	return models.Filter{
		Key:      "snapshot_source",
		Type:     models.KindRecording,
		Value:    []string{"mobile"},
		Operator: models.OperatorExact,
	}
}

func firstOrder() *int {
	order := 0
	return &order
}
