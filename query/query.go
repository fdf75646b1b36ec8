// Package query shapes fetched ride lists entirely client-side: search,
// status and fare filters, stable sorting and pagination. It never talks to
// the network; inputs are whatever the last fetch returned.
package query

import (
	"sort"
	"strings"

	"github.com/swiftcab/swiftcab-go/domain"
)

// SortField selects the ride attribute lists are ordered by.
type SortField string

const (
	SortByRequestedAt SortField = "requestedAt"
	SortByFare        SortField = "fare"
)

// SortDirection orders a sorted list ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// DefaultPageSize is used when Params.PageSize is unset.
const DefaultPageSize = 10

// Params describes one shaped view over a ride list. Zero values mean
// "no constraint".
type Params struct {
	Search  string            // case-insensitive substring over pickup and destination
	Status  domain.RideStatus // empty matches all statuses
	MinFare *float64
	MaxFare *float64
	SortBy  SortField
	Dir     SortDirection
	Page    int // 1-based; values < 1 mean first page
	Size    int
}

// Page is one page of a shaped ride list.
type Page struct {
	Rides     []domain.Ride
	Total     int // rides matching the filters, across all pages
	Page      int
	PageCount int
}

// Apply filters, sorts and paginates rides. The input slice is not
// modified. Filters are pure predicates, so their application order never
// changes the result.
func Apply(rides []domain.Ride, p Params) Page {
	matched := make([]domain.Ride, 0, len(rides))
	for _, r := range rides {
		if matches(r, p) {
			matched = append(matched, r)
		}
	}

	sortRides(matched, p)

	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	pageCount := (len(matched) + size - 1) / size
	start := (page - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	return Page{
		Rides:     matched[start:end],
		Total:     len(matched),
		Page:      page,
		PageCount: pageCount,
	}
}

func matches(r domain.Ride, p Params) bool {
	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		if !strings.Contains(strings.ToLower(r.Pickup), needle) &&
			!strings.Contains(strings.ToLower(r.Destination), needle) {
			return false
		}
	}
	if p.Status != "" && r.Status != p.Status {
		return false
	}
	if p.MinFare != nil && r.Fare < *p.MinFare {
		return false
	}
	if p.MaxFare != nil && r.Fare > *p.MaxFare {
		return false
	}
	return true
}

func sortRides(rides []domain.Ride, p Params) {
	field := p.SortBy
	if field == "" {
		field = SortByRequestedAt
	}
	desc := p.Dir == Descending || p.Dir == "" && field == SortByRequestedAt

	sort.SliceStable(rides, func(i, j int) bool {
		var less bool
		switch field {
		case SortByFare:
			less = rides[i].Fare < rides[j].Fare
		default:
			less = rides[i].RequestedAt.Before(rides[j].RequestedAt)
		}
		if desc {
			return !less && !equalField(rides[i], rides[j], field)
		}
		return less
	})
}

func equalField(a, b domain.Ride, field SortField) bool {
	if field == SortByFare {
		return a.Fare == b.Fare
	}
	return a.RequestedAt.Equal(b.RequestedAt)
}
