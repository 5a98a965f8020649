package memory

import (
	"sync"
	"time"

	"seqlab/api/models/records"
)

/*
	Session-scoped in-memory store for parsed artifacts.

	Everything lives for at most one session : entries are
	timestamped on save and the janitor sweeps the expired
	ones out. Stored values are treated as immutable once
	saved ; nothing here mutates them after the fact.
*/
type Repository struct {
	mux sync.RWMutex

	sequenceRecords map[string]*records.SequenceRecord
	sequenceOrder   []string
	variantSets     map[string]*records.VariantSet
	variantSetOrder []string
	comparisons     map[string]*records.VariantComparison
	comparisonOrder []string
}

func NewRepository() *Repository {
	return &Repository{
		sequenceRecords: map[string]*records.SequenceRecord{},
		variantSets:     map[string]*records.VariantSet{},
		comparisons:     map[string]*records.VariantComparison{},
	}
}

func (r *Repository) SaveSequenceRecord(record *records.SequenceRecord) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if _, exists := r.sequenceRecords[record.Id]; !exists {
		r.sequenceOrder = append(r.sequenceOrder, record.Id)
	}
	r.sequenceRecords[record.Id] = record
}

func (r *Repository) GetSequenceRecord(id string) (*records.SequenceRecord, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	record, found := r.sequenceRecords[id]
	return record, found
}

// ListSequenceRecords returns the stored records in insertion order
func (r *Repository) ListSequenceRecords() []records.SequenceRecord {
	r.mux.RLock()
	defer r.mux.RUnlock()

	all := make([]records.SequenceRecord, 0, len(r.sequenceOrder))
	for _, id := range r.sequenceOrder {
		all = append(all, *r.sequenceRecords[id])
	}
	return all
}

func (r *Repository) SaveVariantSet(set *records.VariantSet) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if _, exists := r.variantSets[set.Id]; !exists {
		r.variantSetOrder = append(r.variantSetOrder, set.Id)
	}
	r.variantSets[set.Id] = set
}

func (r *Repository) GetVariantSet(id string) (*records.VariantSet, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	set, found := r.variantSets[id]
	return set, found
}

func (r *Repository) ListVariantSets() []records.VariantSet {
	r.mux.RLock()
	defer r.mux.RUnlock()

	all := make([]records.VariantSet, 0, len(r.variantSetOrder))
	for _, id := range r.variantSetOrder {
		all = append(all, *r.variantSets[id])
	}
	return all
}

func (r *Repository) SaveComparison(comparison *records.VariantComparison) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if _, exists := r.comparisons[comparison.Id]; !exists {
		r.comparisonOrder = append(r.comparisonOrder, comparison.Id)
	}
	r.comparisons[comparison.Id] = comparison
}

func (r *Repository) GetComparison(id string) (*records.VariantComparison, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	comparison, found := r.comparisons[id]
	return comparison, found
}

func (r *Repository) ListComparisons() []records.VariantComparison {
	r.mux.RLock()
	defer r.mux.RUnlock()

	all := make([]records.VariantComparison, 0, len(r.comparisonOrder))
	for _, id := range r.comparisonOrder {
		all = append(all, *r.comparisons[id])
	}
	return all
}

// SweepOlderThan evicts every entry created before the cutoff and
// reports how many were removed
func (r *Repository) SweepOlderThan(cutoff time.Time) int {
	r.mux.Lock()
	defer r.mux.Unlock()

	evicted := 0

	keptSequences := r.sequenceOrder[:0]
	for _, id := range r.sequenceOrder {
		if r.sequenceRecords[id].CreatedTime.Before(cutoff) {
			delete(r.sequenceRecords, id)
			evicted++
		} else {
			keptSequences = append(keptSequences, id)
		}
	}
	r.sequenceOrder = keptSequences

	keptSets := r.variantSetOrder[:0]
	for _, id := range r.variantSetOrder {
		if r.variantSets[id].CreatedTime.Before(cutoff) {
			delete(r.variantSets, id)
			evicted++
		} else {
			keptSets = append(keptSets, id)
		}
	}
	r.variantSetOrder = keptSets

	keptComparisons := r.comparisonOrder[:0]
	for _, id := range r.comparisonOrder {
		if r.comparisons[id].CreatedTime.Before(cutoff) {
			delete(r.comparisons, id)
			evicted++
		} else {
			keptComparisons = append(keptComparisons, id)
		}
	}
	r.comparisonOrder = keptComparisons

	return evicted
}
