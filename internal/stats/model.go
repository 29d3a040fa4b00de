// File: internal/stats/model.go
package stats

// PlatformStats is a point-in-time snapshot of platform-wide counts shown
// on the admin dashboard. Counts are read independently and are not a
// consistent snapshot across tables.
type PlatformStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalListings int64 `json:"total_listings"`
	TotalOrders   int64 `json:"total_orders"`
	OpenDisputes  int64 `json:"open_disputes"`
}
