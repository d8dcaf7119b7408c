package models

// Playlist ordering and fixed filter settings
const (
	PlaylistTypeFilters = "filters"
	OrderStartTime      = "start_time"
	DirectionDesc       = "DESC"
	DefaultDateFrom     = "-30d"

	// MinActiveSeconds drops recordings with five seconds of activity or less
	MinActiveSeconds = 5
)

// PlaylistPayload is the body of a create session recording playlist request
type PlaylistPayload struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Type        string          `json:"type" yaml:"type"`
	Filters     PlaylistFilters `json:"filters" yaml:"filters"`
}

// PlaylistFilters holds the recording query saved with the playlist
type PlaylistFilters struct {
	Order              string           `json:"order" yaml:"order"`
	DateFrom           string           `json:"date_from" yaml:"date_from"`
	Duration           []PropertyFilter `json:"duration" yaml:"duration"`
	FilterGroup        FilterGroup      `json:"filter_group" yaml:"filter_group"`
	OrderDirection     string           `json:"order_direction" yaml:"order_direction"`
	FilterTestAccounts bool             `json:"filter_test_accounts" yaml:"filter_test_accounts"`
}

// PlaylistResult is the playlist as returned by the API. URL is filled in locally.
type PlaylistResult struct {
	ID          int64  `json:"id" yaml:"id"`
	ShortID     string `json:"short_id" yaml:"short_id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ActiveSecondsFilter is the fixed minimum duration filter sent with every playlist
func ActiveSecondsFilter() []PropertyFilter {
	return []PropertyFilter{
		{
			Key:      "active_seconds",
			Type:     KindRecording,
			Value:    MinActiveSeconds,
			Operator: OperatorGT,
		},
	}
}
