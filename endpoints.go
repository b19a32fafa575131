package boltdriver

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/boltdriver/boltdriver-go/types"
)

// Data-endpoint wrappers. Each is one independent, stateless call against
// the driver-data host with the cached token attached: no retries, no
// pagination assembly, no caching.

// GetDriverState returns the driver's current polling state.
func (c *Client) GetDriverState(ctx context.Context, gps types.GPSInfo) (*DriverState, error) {
	return fetch[DriverState](ctx, c, http.MethodGet, "/getDriverState", gps, nil)
}

// GetHomeScreen returns the app landing screen content.
func (c *Client) GetHomeScreen(ctx context.Context, gps types.GPSInfo) (*HomeScreen, error) {
	return fetch[HomeScreen](ctx, c, http.MethodGet, "/getHomeScreenData", gps, nil)
}

// GetWorkingTimeInfo returns the driver's tracked working time.
func (c *Client) GetWorkingTimeInfo(ctx context.Context, gps types.GPSInfo) (*WorkingTimeInfo, error) {
	return fetch[WorkingTimeInfo](ctx, c, http.MethodGet, "/getWorkingTimeInfo", gps, nil)
}

// GetDispatchPreferences returns the driver's order-dispatch settings.
func (c *Client) GetDispatchPreferences(ctx context.Context, gps types.GPSInfo) (*DispatchPreferences, error) {
	return fetch[DispatchPreferences](ctx, c, http.MethodGet, "/getDispatchPreferences", gps, nil)
}

// GetMapsConfigs returns the map provider and tile configuration.
func (c *Client) GetMapsConfigs(ctx context.Context, gps types.GPSInfo) (*MapsConfigs, error) {
	return fetch[MapsConfigs](ctx, c, http.MethodGet, "/getMapsConfigs", gps, nil)
}

// GetMapTiles returns one map tile collection.
func (c *Client) GetMapTiles(ctx context.Context, gps types.GPSInfo, collectionID string) (*MapTiles, error) {
	extra := url.Values{"collection_id": []string{collectionID}}
	return fetch[MapTiles](ctx, c, http.MethodGet, "/getMapTiles", gps, extra)
}

// GetNavBarBadges returns the navigation bar badge counters.
func (c *Client) GetNavBarBadges(ctx context.Context, gps types.GPSInfo) (*NavBarBadges, error) {
	return fetch[NavBarBadges](ctx, c, http.MethodGet, "/getNavBarBadges", gps, nil)
}

// GetEmergencyAssistProvider returns the regional emergency assistance
// contact.
func (c *Client) GetEmergencyAssistProvider(ctx context.Context, gps types.GPSInfo) (*EmergencyAssistProvider, error) {
	return fetch[EmergencyAssistProvider](ctx, c, http.MethodGet, "/getEmergencyAssistProvider", gps, nil)
}

// GetOtherActiveDrivers returns nearby online drivers.
func (c *Client) GetOtherActiveDrivers(ctx context.Context, gps types.GPSInfo) (*OtherActiveDrivers, error) {
	return fetch[OtherActiveDrivers](ctx, c, http.MethodGet, "/getOtherActiveDrivers", gps, nil)
}

// GetScheduledRideRequests returns upcoming scheduled ride offers.
func (c *Client) GetScheduledRideRequests(ctx context.Context, gps types.GPSInfo) (*ScheduledRideRequests, error) {
	return fetch[ScheduledRideRequests](ctx, c, http.MethodGet, "/getScheduledRideRequests", gps, nil)
}

// GetActivityRides returns the activity screen rides.
func (c *Client) GetActivityRides(ctx context.Context, gps types.GPSInfo) (*ActivityRides, error) {
	return fetch[ActivityRides](ctx, c, http.MethodGet, "/getActivityRides", gps, nil)
}

// GetOrderHistory returns one page of finished orders.
func (c *Client) GetOrderHistory(ctx context.Context, gps types.GPSInfo, limit, offset int) (*OrderHistory, error) {
	extra := url.Values{
		"limit":  []string{strconv.Itoa(limit)},
		"offset": []string{strconv.Itoa(offset)},
	}
	return fetch[OrderHistory](ctx, c, http.MethodGet, "/getOrderHistory", gps, extra)
}

// GetOrderDetails returns the full record of one order.
func (c *Client) GetOrderDetails(ctx context.Context, gps types.GPSInfo, orderHandle string) (*OrderDetails, error) {
	extra := url.Values{"order_handle": []string{orderHandle}}
	return fetch[OrderDetails](ctx, c, http.MethodGet, "/getOrderDetails", gps, extra)
}

// GetEarningsLandingScreen returns the earnings overview.
func (c *Client) GetEarningsLandingScreen(ctx context.Context, gps types.GPSInfo) (*EarningsLandingScreen, error) {
	return fetch[EarningsLandingScreen](ctx, c, http.MethodGet, "/getEarningLandingScreen", gps, nil)
}

// GetEarningsChart returns the earnings breakdown for a period
// ("day", "week", "month").
func (c *Client) GetEarningsChart(ctx context.Context, gps types.GPSInfo, period string) (*EarningsChart, error) {
	extra := url.Values{"period": []string{period}}
	return fetch[EarningsChart](ctx, c, http.MethodGet, "/getEarningsChart", gps, extra)
}

// GetHelpDetails returns the help screen content.
func (c *Client) GetHelpDetails(ctx context.Context, gps types.GPSInfo) (*HelpDetails, error) {
	return fetch[HelpDetails](ctx, c, http.MethodGet, "/getHelpDetails", gps, nil)
}

// GetNewsList returns the in-app news list.
func (c *Client) GetNewsList(ctx context.Context, gps types.GPSInfo) (*NewsList, error) {
	return fetch[NewsList](ctx, c, http.MethodGet, "/getNewsList", gps, nil)
}

// GetNewsItem returns one full news article.
func (c *Client) GetNewsItem(ctx context.Context, gps types.GPSInfo, id int64) (*NewsItem, error) {
	extra := url.Values{"id": []string{strconv.FormatInt(id, 10)}}
	return fetch[NewsItem](ctx, c, http.MethodGet, "/getNewsItem", gps, extra)
}
