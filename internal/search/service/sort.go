package service

import (
	"sort"
	"strings"

	"leadscout_backend/internal/search/domain"
	"leadscout_backend/internal/search/transport"
)

// sortLeads orders the batch in place. Name compares case-insensitively;
// the numeric fields sort with missing values last regardless of direction.
func sortLeads(leads []domain.Lead, field transport.SortField, dir string) {
	if field == "" {
		return
	}
	desc := dir == transport.SortDirDesc

	sort.SliceStable(leads, func(i, j int) bool {
		a, b := leads[i], leads[j]

		if field == transport.SortByName {
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an == bn {
				return false
			}
			if desc {
				return an > bn
			}
			return an < bn
		}

		av, aok := numericKey(a, field)
		bv, bok := numericKey(b, field)
		if aok != bok {
			return aok
		}
		if !aok || av == bv {
			return false
		}
		if desc {
			return av > bv
		}
		return av < bv
	})
}

func numericKey(lead domain.Lead, field transport.SortField) (float64, bool) {
	switch field {
	case transport.SortByRating:
		if lead.Rating != nil {
			return *lead.Rating, true
		}
	case transport.SortByDistance:
		if lead.Distance != nil {
			return *lead.Distance, true
		}
	case transport.SortByReviews:
		if lead.UserRatingsTotal != nil {
			return float64(*lead.UserRatingsTotal), true
		}
	}
	return 0, false
}
