package timeline

import (
	"time"

	"github.com/hoozter/lendpile/internal/loan"
)

// Verdict is the structured result of schedule validation. Rejections carry a
// reason and are never reported as errors; the caller decides whether to block
// the save.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidatePayment rejects a scheduled payment rule whose concrete dates
// collide with an existing scheduled rule's dates. Pass excludeIndex >= 0 when
// editing a rule so it is not compared against itself; one-time rules never
// conflict with anything.
func (e *Engine) ValidatePayment(ln *loan.Loan, candidate loan.Payment, excludeIndex int) Verdict {
	if candidate.Type == loan.OneTime {
		return Verdict{Valid: true}
	}

	candidateDates := e.PaymentDates(candidate)
	for i, existing := range ln.Payments {
		if excludeIndex >= 0 && i == excludeIndex {
			continue
		}
		if existing.Type == loan.OneTime {
			continue
		}
		if overlaps(e.PaymentDates(existing), candidateDates) {
			return Verdict{
				Valid:  false,
				Reason: "payment dates overlap with an existing scheduled payment",
			}
		}
	}
	return Verdict{Valid: true}
}

func overlaps(a, b []time.Time) bool {
	seen := make(map[time.Time]struct{}, len(a))
	for _, t := range a {
		seen[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := seen[t]; ok {
			return true
		}
	}
	return false
}
