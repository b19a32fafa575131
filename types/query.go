package types

import (
	"net/url"
	"strconv"
)

// ApplyQuery adds the device identity parameters every request carries.
func (d DeviceInfo) ApplyQuery(v url.Values) {
	v.Set("deviceId", d.DeviceUID)
	v.Set("deviceType", d.DeviceType)
	v.Set("device_name", d.DeviceName)
	v.Set("device_os_version", d.DeviceOSVersion)
	v.Set("version", d.AppVersion)
}

// ApplyQuery adds the brand and locale parameters every request carries.
func (a AuthConfig) ApplyQuery(v url.Values) {
	v.Set("brand", a.Brand)
	v.Set("country", a.Country)
	v.Set("language", a.Language)
	v.Set("theme", a.Theme)
}

// ApplyQuery adds the gps_* parameters data endpoints carry.
func (g GPSInfo) ApplyQuery(v url.Values) {
	v.Set("gps_lat", strconv.FormatFloat(g.Latitude, 'f', -1, 64))
	v.Set("gps_lng", strconv.FormatFloat(g.Longitude, 'f', -1, 64))
	v.Set("gps_accuracy_meters", strconv.FormatFloat(g.Accuracy, 'f', -1, 64))
	v.Set("gps_bearing", strconv.FormatFloat(g.Bearing, 'f', -1, 64))
	v.Set("gps_speed", strconv.FormatFloat(g.Speed, 'f', -1, 64))
	v.Set("gps_timestamp", strconv.FormatInt(g.Timestamp, 10))
	v.Set("gps_age", strconv.FormatInt(g.Age, 10))
	v.Set("gps_adjusted_bearing", strconv.FormatFloat(g.AdjustedBearing, 'f', -1, 64))
	v.Set("gps_speed_accuracy", strconv.FormatFloat(g.SpeedAccuracy, 'f', -1, 64))
}
