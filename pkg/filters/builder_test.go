package filters

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsahi-Elkayam/replaylist/pkg/models"
	"github.com/Tsahi-Elkayam/replaylist/pkg/types"
)

func marshalGroup(t *testing.T, group models.FilterGroup) string {
	t.Helper()
	data, err := json.Marshal(group)
	require.NoError(t, err)
	return string(data)
}

func TestBuildFilterGroupRageClicksWithHost(t *testing.T) {
	group := BuildFilterGroup(types.FilterOptions{
		Type: types.FilterRageClicks,
		Host: "thelai.com",
	})

	want := `{
		"type": "AND",
		"values": [{
			"type": "AND",
			"values": [
				{
					"id": "$pageview",
					"name": "$pageview",
					"type": "events",
					"properties": [
						{"key": "$host", "type": "event", "value": ["thelai.com", "www.thelai.com"], "operator": "exact"}
					]
				},
				{"id": "$rageclick", "type": "events", "order": 0}
			]
		}]
	}`

	assert.JSONEq(t, want, marshalGroup(t, group))
}

func TestBuildFilterGroupURLWithoutHost(t *testing.T) {
	group := BuildFilterGroup(types.FilterOptions{
		Type: types.FilterURL,
		URL:  "/checkout",
	})

	want := `{
		"type": "AND",
		"values": [{
			"type": "AND",
			"values": [{
				"id": "$pageview",
				"name": "$pageview",
				"type": "events",
				"properties": [
					{"key": "$current_url", "type": "event", "value": "/checkout", "operator": "icontains"}
				]
			}]
		}]
	}`

	assert.JSONEq(t, want, marshalGroup(t, group))
	assert.Len(t, group.Filters(), 1)
}

func TestBuildFilterGroupPerType(t *testing.T) {
	tests := []struct {
		name string
		opts types.FilterOptions
		want string
	}{
		{
			name: "person property is set",
			opts: types.FilterOptions{Type: types.FilterPersonProperty, PropertyKey: "li_fat_id", IsSet: true},
			want: `{"key": "li_fat_id", "type": "person", "operator": "is_set", "value": "is_set"}`,
		},
		{
			name: "person property is set ignores value",
			opts: types.FilterOptions{Type: types.FilterPersonProperty, PropertyKey: "plan", PropertyValue: "pro", IsSet: true},
			want: `{"key": "plan", "type": "person", "operator": "is_set", "value": "is_set"}`,
		},
		{
			name: "person property exact value",
			opts: types.FilterOptions{Type: types.FilterPersonProperty, PropertyKey: "plan", PropertyValue: "pro"},
			want: `{"key": "plan", "type": "person", "operator": "exact", "value": ["pro"]}`,
		},
		{
			name: "person property without value",
			opts: types.FilterOptions{Type: types.FilterPersonProperty, PropertyKey: "plan"},
			want: `{"key": "plan", "type": "person", "operator": "exact", "value": []}`,
		},
		{
			name: "event without property",
			opts: types.FilterOptions{Type: types.FilterEvent, EventName: "signup"},
			want: `{"id": "signup", "name": "signup", "type": "events", "order": 0}`,
		},
		{
			name: "event with property",
			opts: types.FilterOptions{Type: types.FilterEvent, EventName: "purchase", EventPropertyKey: "plan", EventPropertyValue: "pro"},
			want: `{
				"id": "purchase", "name": "purchase", "type": "events", "order": 0,
				"properties": [{"key": "plan", "type": "event", "value": "pro", "operator": "exact"}]
			}`,
		},
		{
			name: "event with property key only",
			opts: types.FilterOptions{Type: types.FilterEvent, EventName: "purchase", EventPropertyKey: "plan"},
			want: `{
				"id": "purchase", "name": "purchase", "type": "events", "order": 0,
				"properties": [{"key": "plan", "type": "event", "value": null, "operator": "exact"}]
			}`,
		},
		{
			name: "event property value without key",
			opts: types.FilterOptions{Type: types.FilterEvent, EventName: "purchase", EventPropertyValue: "pro"},
			want: `{"id": "purchase", "name": "purchase", "type": "events", "order": 0}`,
		},
		{
			name: "rage clicks",
			opts: types.FilterOptions{Type: types.FilterRageClicks},
			want: `{"id": "$rageclick", "type": "events", "order": 0}`,
		},
		{
			name: "console errors",
			opts: types.FilterOptions{Type: types.FilterConsoleErrors},
			want: `{"key": "level", "type": "log_entry", "value": ["error"], "operator": "exact"}`,
		},
		{
			name: "mobile",
			opts: types.FilterOptions{Type: types.FilterMobile},
			want: `{"key": "snapshot_source", "type": "recording", "value": ["mobile"], "operator": "exact"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := BuildFilterGroup(tt.opts)

			filters := group.Filters()
			require.Len(t, filters, 1)

			data, err := json.Marshal(filters[0])
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestBuildFilterGroupHostFilterFirst(t *testing.T) {
	tests := []struct {
		name      string
		host      string
		wantHosts []string
	}{
		{name: "bare host", host: "thelai.com", wantHosts: []string{"thelai.com", "www.thelai.com"}},
		{name: "www host", host: "www.thelai.com", wantHosts: []string{"www.thelai.com"}},
		{name: "subdomain", host: "app.thelai.com", wantHosts: []string{"app.thelai.com", "www.app.thelai.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, ft := range types.FilterTypes {
				group := BuildFilterGroup(types.FilterOptions{
					Type:        ft,
					Host:        tt.host,
					PropertyKey: "k",
					EventName:   "e",
					URL:         "/u",
				})

				filters := group.Filters()
				require.Len(t, filters, 2, ft)

				host := filters[0]
				assert.Equal(t, models.EventPageview, host.ID)
				require.Len(t, host.Properties, 1)
				assert.Equal(t, models.PropertyHost, host.Properties[0].Key)
				assert.Equal(t, models.OperatorExact, host.Properties[0].Operator)
				assert.Equal(t, tt.wantHosts, host.Properties[0].Value)
			}
		})
	}
}

func TestBuildFilterGroupAlwaysTwoLevels(t *testing.T) {
	group := BuildFilterGroup(types.FilterOptions{})

	assert.Equal(t, models.GroupAND, group.Type)
	require.Len(t, group.Values, 1)
	assert.Equal(t, models.GroupAND, group.Values[0].Type)
	assert.Empty(t, group.Values[0].Values)
	assert.JSONEq(t, `{"type":"AND","values":[{"type":"AND","values":[]}]}`, marshalGroup(t, group))
}

func TestAllSpecsHaveBuilders(t *testing.T) {
	all := All()
	require.Len(t, all, len(types.FilterTypes))

	for i, spec := range all {
		assert.Equal(t, types.FilterTypes[i], spec.Type)
		assert.NotEmpty(t, spec.Description)
		assert.NotNil(t, spec.build, spec.Type)
	}

	_, ok := Lookup(types.FilterType("sessions"))
	assert.False(t, ok)
}
