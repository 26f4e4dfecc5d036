package leave

import (
	"sort"
	"strings"
)

// Balance aggregation. Two used-hours definitions coexist: the employee
// dashboard counts settled (approved) consumption only, while the HR review
// queue also reserves outstanding pending hours against balance. Do not
// unify these without product sign-off; both figures are load-bearing in
// their respective views.

// ApprovedHours sums TotalHours over requests whose status equals
// "approved", case-insensitively. Feeds the employee dashboard.
func ApprovedHours(requests []Request) int {
	total := 0
	for _, r := range requests {
		if strings.EqualFold(r.Status, StatusApproved) {
			total += r.TotalHours
		}
	}
	return total
}

// CommittedHours sums TotalHours over pending and approved requests.
// Feeds the HR review queue's remaining column.
func CommittedHours(requests []Request) int {
	total := 0
	for _, r := range requests {
		if IsPending(r.Status) || strings.EqualFold(r.Status, StatusApproved) {
			total += r.TotalHours
		}
	}
	return total
}

// CommittedHoursByEmployee groups the HR-side exposure per employee.
func CommittedHoursByEmployee(requests []Request) map[string]int {
	byEmployee := make(map[string]int)
	for _, r := range requests {
		if IsPending(r.Status) || strings.EqualFold(r.Status, StatusApproved) {
			byEmployee[r.EmployeeID.String()] += r.TotalHours
		}
	}
	return byEmployee
}

// RemainingBalance may go negative when a user is over-allocated; nothing
// clamps at the aggregate level.
func RemainingBalance(allotment, usedHours int) int {
	return allotment - usedHours
}

// PreviewBalance clamps the hypothetical post-submission balance at zero
// for display. Stored state is never clamped.
func PreviewBalance(remaining, requestedHours int) int {
	if updated := remaining - requestedHours; updated > 0 {
		return updated
	}
	return 0
}

func IsPending(status string) bool {
	return strings.EqualFold(status, StatusPending)
}

// SplitByPending partitions requests into pending and resolved buckets.
// Anything not case-insensitively equal to "pending" (approved, denied, or
// an unexpected status value) lands in resolved rather than being dropped.
func SplitByPending(requests []Request) (pending, resolved []Request) {
	for _, r := range requests {
		if IsPending(r.Status) {
			pending = append(pending, r)
		} else {
			resolved = append(resolved, r)
		}
	}
	return pending, resolved
}

// SortByStartDateDesc orders requests most recent first, keeping the
// original collection order for equal start dates.
func SortByStartDateDesc(requests []Request) []Request {
	sorted := make([]Request, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})
	return sorted
}
