package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/slots/all", nil)
	opts := ParseQueryOptions(r, "date")

	if opts.Page != 1 || opts.Limit != 10 {
		t.Errorf("defaults = page %d limit %d, want 1/10", opts.Page, opts.Limit)
	}
	if opts.SortField != "date" || opts.SortOrder != 1 {
		t.Errorf("defaults = sort %s/%d, want date/1", opts.SortField, opts.SortOrder)
	}
	if opts.Skip() != 0 {
		t.Errorf("Skip = %d, want 0", opts.Skip())
	}
}

func TestParseQueryOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/bookings/owner?page=3&limit=25&sortBy=time&order=desc", nil)
	opts := ParseQueryOptions(r, "date")

	if opts.Page != 3 || opts.Limit != 25 {
		t.Errorf("parsed = page %d limit %d, want 3/25", opts.Page, opts.Limit)
	}
	if opts.SortField != "time" || opts.SortOrder != -1 {
		t.Errorf("parsed = sort %s/%d, want time/-1", opts.SortField, opts.SortOrder)
	}
	if opts.Skip() != 50 {
		t.Errorf("Skip = %d, want 50", opts.Skip())
	}

	// slot listing uses the sortField/sortDirection names
	r = httptest.NewRequest("GET", "/api/slots/all?sortField=time&sortDirection=desc", nil)
	opts = ParseQueryOptions(r, "date")
	if opts.SortField != "time" || opts.SortOrder != -1 {
		t.Errorf("alt names = sort %s/%d, want time/-1", opts.SortField, opts.SortOrder)
	}
}
