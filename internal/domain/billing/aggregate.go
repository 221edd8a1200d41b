package billing

import (
	"github.com/dentalink/clinic/internal/domain/catalog"
	"github.com/dentalink/clinic/internal/domain/chart"
	"github.com/dentalink/clinic/internal/domain/plan"
)

// TotalCost values every treatment across all sessions regardless of
// status: the full-plan valuation.
func TotalCost(sessions []plan.Session, cat *catalog.Catalog) float64 {
	var total float64
	for _, s := range sessions {
		total += SessionCost(s, cat)
	}
	return total
}

// SessionCost values one session's treatments regardless of status.
func SessionCost(s plan.Session, cat *catalog.Catalog) float64 {
	var total float64
	for _, t := range s.Treatments {
		total += cat.Price(t.TreatmentID)
	}
	return total
}

// StatusSubtotal values the subset of a session's treatments in the given
// status; session cards show the proposed and completed splits separately.
func StatusSubtotal(s plan.Session, cat *catalog.Catalog, status chart.TreatmentStatus) float64 {
	var total float64
	for _, t := range s.Treatments {
		if t.Status == status {
			total += cat.Price(t.TreatmentID)
		}
	}
	return total
}

// billedTotal applies the policy: planned bills everything, completed only
// finished work.
func billedTotal(sessions []plan.Session, cat *catalog.Catalog, policy Policy) float64 {
	if policy == PolicyBillCompleted {
		var total float64
		for _, s := range sessions {
			total += StatusSubtotal(s, cat, chart.StatusCompleted)
		}
		return total
	}
	return TotalCost(sessions, cat)
}

// Balance is the billed total minus everything the patient has paid.
func Balance(sessions []plan.Session, payments []Payment, cat *catalog.Catalog, policy Policy) float64 {
	return billedTotal(sessions, cat, policy) - paidTotal(payments)
}

func paidTotal(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// BuildStatement assembles the statement view for printing and export.
func BuildStatement(sessions []plan.Session, payments []Payment, cat *catalog.Catalog, policy Policy) *Statement {
	st := &Statement{Policy: policy}
	for _, s := range sessions {
		st.Sessions = append(st.Sessions, SessionTotal{
			SessionID:     s.ID,
			Name:          s.Name,
			Total:         SessionCost(s, cat),
			Proposed:      StatusSubtotal(s, cat, chart.StatusProposed),
			Completed:     StatusSubtotal(s, cat, chart.StatusCompleted),
			TreatmentRows: len(s.Treatments),
		})
	}
	st.Total = billedTotal(sessions, cat, policy)
	st.Paid = paidTotal(payments)
	st.Balance = st.Total - st.Paid
	return st
}
