// Package cutin resolves special attack eligibility and composes trigger
// rates into probability ledgers.
package cutin

import (
	"cmp"
	"encoding/json"
	"slices"
)

// RateMap is an ordered ledger of outcome probabilities plus the unassigned
// complement.
//
// Invariant: sum of rates + Complement() == 1 and every rate >= 0.
type RateMap[T comparable] struct {
	keys  []T
	rates map[T]float64
	total float64
}

// NewRateMap returns an empty ledger with complement 1.
func NewRateMap[T comparable]() *RateMap[T] {
	return &RateMap[T]{rates: make(map[T]float64)}
}

// Add assigns rate to k, accumulating onto any rate k already holds. The
// rate is clamped to the remaining complement.
func (m *RateMap[T]) Add(k T, rate float64) {
	rate = min(max(rate, 0), m.Complement())
	if _, ok := m.rates[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.rates[k] += rate
	m.total += rate
}

// Get returns the rate assigned to k.
func (m *RateMap[T]) Get(k T) float64 { return m.rates[k] }

// Has reports whether k was assigned.
func (m *RateMap[T]) Has(k T) bool {
	_, ok := m.rates[k]
	return ok
}

// Keys returns the assigned outcomes in insertion order.
func (m *RateMap[T]) Keys() []T { return slices.Clone(m.keys) }

// Len returns the number of assigned outcomes.
func (m *RateMap[T]) Len() int { return len(m.keys) }

// Total returns the sum of every assigned rate.
func (m *RateMap[T]) Total() float64 { return m.total }

// Complement returns 1 minus Total.
func (m *RateMap[T]) Complement() float64 { return max(1-m.total, 0) }

// Scale returns a new ledger with every rate multiplied by f.
//
// Precondition: 0 <= f <= 1.
func (m *RateMap[T]) Scale(f float64) *RateMap[T] {
	out := NewRateMap[T]()
	for _, k := range m.keys {
		out.Add(k, m.rates[k]*f)
	}
	return out
}

// Entry is one outcome of a RateMap.
type Entry[T comparable] struct {
	Type T       `json:"type"`
	Rate float64 `json:"rate"`
}

// Entries returns the assigned outcomes in insertion order.
func (m *RateMap[T]) Entries() []Entry[T] {
	out := make([]Entry[T], 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry[T]{Type: k, Rate: m.rates[k]})
	}
	return out
}

// MarshalJSON encodes the ledger as its entries plus the complement.
func (m *RateMap[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Entries    []Entry[T] `json:"entries"`
		Complement float64    `json:"complement"`
	}{m.Entries(), m.Complement()})
}

// Candidate is an eligible outcome with its individual trigger rate.
type Candidate[T comparable] struct {
	Type     T
	Priority int
	Rate     float64
}

// IndividualRate returns min(term / baseRate, 1), or 0 for a non-positive
// base rate.
func IndividualRate(term, baseRate float64) float64 {
	if baseRate <= 0 {
		return 0
	}
	return min(max(term/baseRate, 0), 1)
}

// Compose assigns rates by sequential complement composition: candidates
// are visited by ascending priority, ties in input order, and each receives
// complement * individual rate.
//
// Postcondition: result.Total() + result.Complement() == 1.
func Compose[T comparable](cands []Candidate[T]) *RateMap[T] {
	ordered := slices.Clone(cands)
	slices.SortStableFunc(ordered, func(a, b Candidate[T]) int { return cmp.Compare(a.Priority, b.Priority) })
	m := NewRateMap[T]()
	for _, c := range ordered {
		m.Add(c.Type, m.Complement()*min(max(c.Rate, 0), 1))
	}
	return m
}

// ComposeFleet combines independent per-ship ledgers. Types are ranked by
// their ordering; a higher type preempts every lower one. Processing from
// the highest type down,
//
//	fleet(k) = [1 - Π_s(1 - Σ_{j>=k} r_s(j))] - Σ_{j>k} fleet(j)
//
// Postcondition: result.Total() == 1 - Π_s(1 - ships[s].Total()).
func ComposeFleet[T cmp.Ordered](ships []*RateMap[T]) *RateMap[T] {
	var types []T
	for _, s := range ships {
		for _, k := range s.keys {
			if !slices.Contains(types, k) {
				types = append(types, k)
			}
		}
	}
	slices.SortFunc(types, func(a, b T) int { return cmp.Compare(b, a) })

	out := NewRateMap[T]()
	for _, k := range types {
		miss := 1.0
		for _, s := range ships {
			atLeast := 0.0
			for _, j := range s.keys {
				if j >= k {
					atLeast += s.rates[j]
				}
			}
			miss *= 1 - atLeast
		}
		out.Add(k, (1-miss)-out.Total())
	}
	return out
}
