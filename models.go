package boltdriver

import "encoding/json"

// Payload types for the driver-data endpoints. Fields cover what the
// official app reads; anything the backend adds on top stays available in
// the raw JSON members.

// DriverState is the polling state of the driver.
type DriverState struct {
	DriverStatus    string          `json:"driver_status"`
	OrderState      string          `json:"order_state,omitempty"`
	ActiveOrderID   int64           `json:"active_order_id,omitempty"`
	PollIntervalSec int             `json:"poll_interval_sec"`
	Orders          json.RawMessage `json:"orders,omitempty"`
}

// HomeScreen is the app landing screen layout and counters.
type HomeScreen struct {
	Greeting  string          `json:"greeting,omitempty"`
	ScoreText string          `json:"score_text,omitempty"`
	Items     json.RawMessage `json:"items,omitempty"`
	Banners   json.RawMessage `json:"banners,omitempty"`
}

// WorkingTimeInfo reports the driver's tracked working time.
type WorkingTimeInfo struct {
	WorkedTodaySeconds int64  `json:"worked_today_seconds"`
	LimitSeconds       int64  `json:"limit_seconds"`
	RestRequired       bool   `json:"rest_required"`
	NextRestAt         int64  `json:"next_rest_at,omitempty"`
	Disclaimer         string `json:"disclaimer,omitempty"`
}

// DispatchPreferences holds the driver's order-dispatch settings.
type DispatchPreferences struct {
	AutoAccept       bool   `json:"auto_accept"`
	MaxDistanceKm    int    `json:"max_distance_km,omitempty"`
	AcceptCategories string `json:"accept_categories,omitempty"`
}

// MapsConfigs describes the tile and provider configuration for the map.
type MapsConfigs struct {
	TileBaseURL  string          `json:"tile_base_url,omitempty"`
	Provider     string          `json:"provider,omitempty"`
	CollectionID string          `json:"collection_id,omitempty"`
	Extra        json.RawMessage `json:"extra,omitempty"`
}

// MapTiles is one tile collection fetch.
type MapTiles struct {
	CollectionID string          `json:"collection_id"`
	Tiles        json.RawMessage `json:"tiles,omitempty"`
	TTLSeconds   int             `json:"ttl_seconds,omitempty"`
}

// NavBarBadges carries the badge counters of the app navigation bar. The
// cheapest authenticated endpoint, which is why token validation uses it.
type NavBarBadges struct {
	Earnings int `json:"earnings,omitempty"`
	Activity int `json:"activity,omitempty"`
	News     int `json:"news,omitempty"`
	Support  int `json:"support,omitempty"`
}

// EmergencyAssistProvider names the emergency assistance contact for the
// driver's region.
type EmergencyAssistProvider struct {
	Provider    string `json:"provider"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// OtherActiveDrivers lists nearby online drivers.
type OtherActiveDrivers struct {
	Drivers []ActiveDriver `json:"list"`
}

// ActiveDriver is one nearby driver position.
type ActiveDriver struct {
	ID        int64   `json:"id"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Bearing   float64 `json:"bearing,omitempty"`
}

// ScheduledRideRequests lists upcoming scheduled rides offered to the
// driver.
type ScheduledRideRequests struct {
	Rides []ScheduledRide `json:"list"`
}

// ScheduledRide is one scheduled ride offer.
type ScheduledRide struct {
	ID            int64  `json:"id"`
	PickupAddress string `json:"pickup_address"`
	DropAddress   string `json:"drop_address,omitempty"`
	ScheduledFor  int64  `json:"scheduled_for"`
	PriceText     string `json:"price_text,omitempty"`
}

// ActivityRides lists the rides on the activity screen.
type ActivityRides struct {
	Rides json.RawMessage `json:"list,omitempty"`
}

// OrderHistory is one page of finished orders.
type OrderHistory struct {
	Orders     []OrderSummary `json:"list"`
	TotalCount int            `json:"total_count,omitempty"`
}

// OrderSummary is one row of the order history.
type OrderSummary struct {
	OrderHandle string `json:"order_handle"`
	CreatedAt   int64  `json:"created"`
	State       string `json:"state"`
	PriceText   string `json:"price_text,omitempty"`
	Address     string `json:"address,omitempty"`
}

// OrderDetails is the full record of one order.
type OrderDetails struct {
	OrderHandle string          `json:"order_handle"`
	State       string          `json:"state"`
	PriceText   string          `json:"price_text,omitempty"`
	Route       json.RawMessage `json:"route,omitempty"`
	Payment     json.RawMessage `json:"payment,omitempty"`
}

// EarningsLandingScreen is the earnings overview.
type EarningsLandingScreen struct {
	PeriodText string          `json:"period_text,omitempty"`
	TotalText  string          `json:"total_text,omitempty"`
	Items      json.RawMessage `json:"items,omitempty"`
}

// EarningsChart is the per-period earnings breakdown.
type EarningsChart struct {
	Period string          `json:"period"`
	Bars   json.RawMessage `json:"bars,omitempty"`
}

// HelpDetails is the help/support screen content.
type HelpDetails struct {
	Sections json.RawMessage `json:"sections,omitempty"`
}

// NewsList is the list of in-app news items.
type NewsList struct {
	Items []NewsSummary `json:"list"`
}

// NewsSummary is one news list row.
type NewsSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"created"`
	Unread    bool   `json:"unread,omitempty"`
}

// NewsItem is one full news article.
type NewsItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}
