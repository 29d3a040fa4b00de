package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    ListingStatus
		to      ListingStatus
		allowed bool
	}{
		{"active to inactive", StatusActive, StatusInactive, true},
		{"active to sold", StatusActive, StatusSold, true},
		{"inactive to active", StatusInactive, StatusActive, true},
		{"inactive to sold", StatusInactive, StatusSold, true},
		{"sold to active", StatusSold, StatusActive, false},
		{"sold to inactive", StatusSold, StatusInactive, false},
		{"sold to sold", StatusSold, StatusSold, false},
		{"unknown status", ListingStatus("archived"), StatusActive, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestListingStatus_Toggled(t *testing.T) {
	assert.Equal(t, StatusInactive, StatusActive.Toggled())
	assert.Equal(t, StatusActive, StatusInactive.Toggled())
	// Sold has no toggle counterpart.
	assert.Equal(t, StatusSold, StatusSold.Toggled())
}

func TestListing_NormalizedPrice(t *testing.T) {
	legacy := 25.50

	t.Run("price column wins when set", func(t *testing.T) {
		l := &Listing{Price: 99.99, LegacyPrice: &legacy}
		assert.Equal(t, 99.99, l.NormalizedPrice())
	})

	t.Run("falls back to legacy column", func(t *testing.T) {
		l := &Listing{Price: 0, LegacyPrice: &legacy}
		assert.Equal(t, 25.50, l.NormalizedPrice())
	})

	t.Run("zero when neither is set", func(t *testing.T) {
		l := &Listing{Price: 0, LegacyPrice: nil}
		assert.Equal(t, 0.0, l.NormalizedPrice())
	})

	t.Run("zero legacy value does not count", func(t *testing.T) {
		zero := 0.0
		l := &Listing{Price: 0, LegacyPrice: &zero}
		assert.Equal(t, 0.0, l.NormalizedPrice())
	})
}

func TestToListingResponse_UsesNormalizedPrice(t *testing.T) {
	legacy := 12.00
	l := &Listing{Title: "Old record", Price: 0, LegacyPrice: &legacy, Status: StatusActive}

	resp := ToListingResponse(l)
	assert.Equal(t, 12.00, resp.Price)
}

func TestToAdminListingSummary_UsesNormalizedPrice(t *testing.T) {
	legacy := 8.75
	l := &Listing{Title: "Old record", SellerName: "Maya", Price: 0, LegacyPrice: &legacy, Status: StatusInactive}

	row := ToAdminListingSummary(l)
	assert.Equal(t, 8.75, row.Price)
	assert.Equal(t, "Maya", row.SellerName)
	assert.Equal(t, StatusInactive, row.Status)
}
