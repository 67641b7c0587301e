// Package reconciler partitions bank entries and ledger transactions into
// matched pairs and unmatched remainders, and checks statement balances.
//
// Matching runs two greedy first-fit passes:
//  1. Exact: a bank entry's trimmed end-to-end reference equals a ledger
//     row's trimmed invoice, first unmatched row in ledger order wins.
//  2. Tolerance: among the remainders with the same direction, the first
//     ledger row within the amount and date window wins.
//
// Neither pass revisits a consumed transaction and no global optimisation is
// attempted, so the result depends only on input order.
package reconciler

import (
	"strings"

	"fjacquet/camt-recon/internal/models"
)

// RuleExact labels matches made by the exact pass
const RuleExact = "E2E=Invoice"

// state tracks consumption by slice position
type state struct {
	bank         []models.BankTransaction
	internal     []models.InternalTransaction
	bankUsed     []bool
	internalUsed []bool
}

func (s *state) consume(bi, ii int, rule string) models.MatchRecord {
	s.bankUsed[bi] = true
	s.internalUsed[ii] = true
	return models.MatchRecord{Bank: s.bank[bi], Internal: s.internal[ii], Rule: rule}
}

// Reconcile computes the partition of bank and internal under tol.
// It is pure: inputs are not modified and equal inputs give equal results.
func Reconcile(bank []models.BankTransaction, internal []models.InternalTransaction, tol Tolerance) models.Partition {
	s := &state{
		bank:         bank,
		internal:     internal,
		bankUsed:     make([]bool, len(bank)),
		internalUsed: make([]bool, len(internal)),
	}

	matched := exactPass(s)
	matched = append(matched, tolerancePass(s, tol)...)

	partition := models.Partition{
		Matched:      matched,
		BankOnly:     make([]models.BankTransaction, 0),
		InternalOnly: make([]models.InternalTransaction, 0),
	}
	for i, tx := range bank {
		if !s.bankUsed[i] {
			partition.BankOnly = append(partition.BankOnly, tx)
		}
	}
	for i, tx := range internal {
		if !s.internalUsed[i] {
			partition.InternalOnly = append(partition.InternalOnly, tx)
		}
	}
	return partition
}

func exactPass(s *state) []models.MatchRecord {
	byInvoice := make(map[string][]int)
	for i, tx := range s.internal {
		key := strings.TrimSpace(tx.Invoice)
		byInvoice[key] = append(byInvoice[key], i)
	}

	matched := make([]models.MatchRecord, 0)
	for bi, tx := range s.bank {
		key := strings.TrimSpace(tx.EndToEndID)
		if key == "" {
			continue
		}
		for _, ii := range byInvoice[key] {
			if !s.internalUsed[ii] {
				matched = append(matched, s.consume(bi, ii, RuleExact))
				break
			}
		}
	}
	return matched
}

func tolerancePass(s *state, tol Tolerance) []models.MatchRecord {
	buckets := make(map[models.Direction][]int)
	for i, tx := range s.internal {
		if !s.internalUsed[i] {
			buckets[tx.Direction] = append(buckets[tx.Direction], i)
		}
	}

	rule := tol.Rule()
	var matched []models.MatchRecord
	for bi, tx := range s.bank {
		if s.bankUsed[bi] {
			continue
		}
		for _, ii := range buckets[tx.Direction] {
			if !s.internalUsed[ii] && tol.Accepts(tx, s.internal[ii]) {
				matched = append(matched, s.consume(bi, ii, rule))
				break
			}
		}
	}
	return matched
}
