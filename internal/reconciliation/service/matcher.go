package service

import (
	"sort"
	"time"

	"github.com/smallbiznis/khata/internal/reconciliation/domain"
)

const day = 24 * time.Hour

// Reconcile proposes, for each transaction, the first candidate in the given
// order whose kind fits the direction and whose amount and date fall inside
// the tolerances. Transactions without a candidate are omitted. Neither input
// is modified.
func Reconcile(transactions []domain.BankTransaction, candidates []domain.LedgerEntry) []domain.MatchProposal {
	proposals := make([]domain.MatchProposal, 0, len(transactions))
	for _, tx := range transactions {
		kind, confidence, ok := expectation(tx.Direction)
		if !ok {
			continue
		}
		for _, entry := range candidates {
			if entry.Kind != kind || !withinTolerance(tx, entry) {
				continue
			}
			proposals = append(proposals, domain.MatchProposal{
				Transaction: tx,
				Entry:       entry,
				Confidence:  confidence,
			})
			break
		}
	}
	return proposals
}

// ReconcileClosest ranks every in-tolerance pair by date distance and assigns
// greedily, so an entry is proposed for at most one transaction. Proposals
// follow transaction order.
func ReconcileClosest(transactions []domain.BankTransaction, candidates []domain.LedgerEntry) []domain.MatchProposal {
	type pair struct {
		tx, entry int
		distance  time.Duration
	}

	var pairs []pair
	for i, tx := range transactions {
		kind, _, ok := expectation(tx.Direction)
		if !ok {
			continue
		}
		for j, entry := range candidates {
			if entry.Kind != kind || !withinTolerance(tx, entry) {
				continue
			}
			pairs = append(pairs, pair{tx: i, entry: j, distance: absDuration(tx.OccurredAt.Sub(entry.OccurredAt))})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		if pairs[a].distance != pairs[b].distance {
			return pairs[a].distance < pairs[b].distance
		}
		if pairs[a].tx != pairs[b].tx {
			return pairs[a].tx < pairs[b].tx
		}
		return pairs[a].entry < pairs[b].entry
	})

	assigned := make(map[int]int, len(transactions))
	claimed := make(map[int]bool, len(candidates))
	for _, p := range pairs {
		if _, done := assigned[p.tx]; done || claimed[p.entry] {
			continue
		}
		assigned[p.tx] = p.entry
		claimed[p.entry] = true
	}

	proposals := make([]domain.MatchProposal, 0, len(assigned))
	for i, tx := range transactions {
		j, ok := assigned[i]
		if !ok {
			continue
		}
		_, confidence, _ := expectation(tx.Direction)
		proposals = append(proposals, domain.MatchProposal{
			Transaction: tx,
			Entry:       candidates[j],
			Confidence:  confidence,
		})
	}
	return proposals
}

// Unmatched returns the transactions that have no proposal, in input order.
func Unmatched(transactions []domain.BankTransaction, proposals []domain.MatchProposal) []domain.BankTransaction {
	matched := make(map[string]int, len(proposals))
	for _, p := range proposals {
		matched[p.Transaction.ID]++
	}

	out := make([]domain.BankTransaction, 0, len(transactions))
	for _, tx := range transactions {
		if matched[tx.ID] > 0 {
			matched[tx.ID]--
			continue
		}
		out = append(out, tx)
	}
	return out
}

func expectation(direction domain.Direction) (domain.EntryKind, float64, bool) {
	switch direction {
	case domain.DirectionCredit:
		return domain.EntryKindSale, domain.ConfidenceSale, true
	case domain.DirectionDebit:
		return domain.EntryKindExpense, domain.ConfidenceExpense, true
	default:
		return "", 0, false
	}
}

func withinTolerance(tx domain.BankTransaction, entry domain.LedgerEntry) bool {
	if !entry.Amount.Sub(tx.Amount).Abs().LessThan(domain.AmountTolerance) {
		return false
	}
	return absDuration(tx.OccurredAt.Sub(entry.OccurredAt)) < domain.DayWindow*day
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
