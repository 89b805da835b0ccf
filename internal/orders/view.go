// Package orders derives the order-history views rendered to shoppers
// and admins. Everything here is a pure function over a fetched listing;
// nothing is cached or indexed.
package orders

import (
	"strings"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
)

// FilterAll passes every record unfiltered.
const FilterAll = "all"

// FilterOrders returns the records whose status case-insensitively
// matches the filter, preserving input order. "all" returns everything;
// a filter outside the known status set yields an empty result.
func FilterOrders(records []models.OrderRecord, filter string) []models.OrderRecord {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" || filter == FilterAll {
		out := make([]models.OrderRecord, len(records))
		copy(out, records)
		return out
	}

	out := []models.OrderRecord{}
	if !models.IsKnownStatus(models.OrderStatus(filter)) {
		return out
	}

	for _, rec := range records {
		if strings.EqualFold(string(rec.Status), filter) {
			out = append(out, rec)
		}
	}
	return out
}

// CountByStatus groups a listing into per-status counts for display.
// Recomputed from the full collection on every render.
func CountByStatus(records []models.OrderRecord) map[models.OrderStatus]int {
	counts := make(map[models.OrderStatus]int, len(models.KnownStatuses))
	for _, rec := range records {
		status := models.OrderStatus(strings.ToLower(string(rec.Status)))
		if models.IsKnownStatus(status) {
			counts[status]++
		}
	}
	return counts
}

// Summary is the admin dashboard roll-up over a full listing.
type Summary struct {
	TotalOrders  int                        `json:"totalOrders"`
	TotalRevenue float64                    `json:"totalRevenue"`
	ByStatus     map[models.OrderStatus]int `json:"byStatus"`
}

// Summarize computes the order count, revenue and status breakdown.
func Summarize(records []models.OrderRecord) Summary {
	s := Summary{
		TotalOrders: len(records),
		ByStatus:    CountByStatus(records),
	}
	for _, rec := range records {
		s.TotalRevenue += rec.Total
	}
	return s
}
