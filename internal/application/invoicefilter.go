package application

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

// fallbackDateLayouts are tried when a date is not a dd-mm-yyyy triple.
var fallbackDateLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	"02/01/2006",
	"2/1/2006",
}

// FilterInvoices narrows invoices by the given filters. Stages run in a fixed
// order, each on the previous stage's result: client set, free-text search,
// exact type, year-month. The input slice is never modified and relative
// order is preserved. Malformed criteria never fail the call.
func FilterInvoices(invoices []model.Invoice, filters model.InvoiceFilters) []model.Invoice {
	filtered := invoices

	if len(filters.OnlyFromClient) > 0 {
		clients := make(map[string]struct{}, len(filters.OnlyFromClient))
		for _, c := range filters.OnlyFromClient {
			clients[c] = struct{}{}
		}
		filtered = keepInvoices(filtered, func(inv model.Invoice) bool {
			_, ok := clients[inv.Client]
			return ok
		})
	}

	if query := strings.ToLower(strings.TrimSpace(filters.SearchQuery)); query != "" {
		filtered = keepInvoices(filtered, func(inv model.Invoice) bool {
			return strings.Contains(strings.ToLower(inv.Number), query) ||
				strings.Contains(strings.ToLower(inv.Client), query) ||
				strings.Contains(strings.ToLower(inv.Description), query)
		})
	}

	if filters.TypeFilter != "" {
		filtered = keepInvoices(filtered, func(inv model.Invoice) bool {
			return inv.Type == filters.TypeFilter
		})
	}

	if year, month, ok := resolveDateFilter(filters); ok {
		filtered = keepInvoices(filtered, func(inv model.Invoice) bool {
			date, ok := ParseInvoiceDate(inv.Date)
			if !ok {
				return false
			}
			return date.Year() == year && int(date.Month()) == month
		})
	}

	out := make([]model.Invoice, len(filtered))
	copy(out, filtered)
	return out
}

// AvailableTypes returns the distinct non-empty invoice types, sorted. When
// onlyFromClient is non-empty only those clients' invoices are considered.
func AvailableTypes(invoices []model.Invoice, onlyFromClient []string) []string {
	seen := make(map[string]struct{})
	types := []string{}

	for _, inv := range invoices {
		if len(onlyFromClient) > 0 && !slices.Contains(onlyFromClient, inv.Client) {
			continue
		}
		if inv.Type == "" {
			continue
		}
		if _, ok := seen[inv.Type]; ok {
			continue
		}
		seen[inv.Type] = struct{}{}
		types = append(types, inv.Type)
	}

	slices.Sort(types)
	return types
}

// ParseInvoiceDate parses the backend's dd-mm-yyyy dates. Out-of-range day or
// month values roll over the way the calendar does (32-01-2024 is 1 Feb).
// Anything that is not a numeric triple with a four-digit year is retried
// against a few generic layouts; ok is false when both strategies fail.
// Slashed dates are read day-first (15/03/2024 is 15 March), matching the
// backend's own day-month-year order rather than the US month-first reading.
func ParseInvoiceDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if parts := strings.Split(s, "-"); len(parts) == 3 && len(parts[2]) == 4 {
		day, dayErr := strconv.Atoi(parts[0])
		month, monthErr := strconv.Atoi(parts[1])
		year, yearErr := strconv.Atoi(parts[2])
		if dayErr == nil && monthErr == nil && yearErr == nil {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateFilter parses a "YYYY-MM" selector. ok is false unless both parts
// are numeric and the month is 1-12.
func ParseDateFilter(token string) (year, month int, ok bool) {
	parts := strings.Split(strings.TrimSpace(token), "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if !validYearMonth(year, month) {
		return 0, 0, false
	}
	return year, month, true
}

// resolveDateFilter picks the combined token when present, else the separate
// fields. A malformed selector disables the date stage.
func resolveDateFilter(filters model.InvoiceFilters) (year, month int, ok bool) {
	if strings.TrimSpace(filters.DateFilter) != "" {
		return ParseDateFilter(filters.DateFilter)
	}
	if !validYearMonth(filters.Year, filters.Month) {
		return 0, 0, false
	}
	return filters.Year, filters.Month, true
}

func validYearMonth(year, month int) bool {
	return year > 0 && month >= 1 && month <= 12
}

func keepInvoices(in []model.Invoice, keep func(model.Invoice) bool) []model.Invoice {
	out := make([]model.Invoice, 0, len(in))
	for _, inv := range in {
		if keep(inv) {
			out = append(out, inv)
		}
	}
	return out
}
