package overviewService

import (
	"fmt"
	"sync"

	"seqlab/api/repositories/memory"
)

// GetSequencesOverview aggregates distributions over everything the
// session currently holds, each aggregation fanned out on its own
// goroutine
func GetSequencesOverview(repo *memory.Repository) map[string]interface{} {
	resultsMap := map[string]interface{}{}
	resultsMux := sync.RWMutex{}

	sequences := repo.ListSequenceRecords()
	variantSets := repo.ListVariantSets()

	var wg sync.WaitGroup
	setResult := func(key string, value interface{}) {
		resultsMux.Lock()
		resultsMap[key] = value
		resultsMux.Unlock()
	}

	// distribution of sequence formats
	wg.Add(1)
	go func() {
		defer wg.Done()

		formatCounts := map[string]interface{}{}
		counts := map[string]int{}
		for _, record := range sequences {
			counts[string(record.Format)]++
		}
		for key, count := range counts {
			formatCounts[key] = count
		}
		setResult("formats", formatCounts)
	}()

	// distribution of GC content, bucketed per 25%
	wg.Add(1)
	go func() {
		defer wg.Done()

		gcBuckets := map[string]int{}
		for _, record := range sequences {
			if record.Stats == nil {
				continue
			}
			bucketFloor := int(record.Stats.GcPercent) / 25 * 25
			if bucketFloor == 100 {
				bucketFloor = 75
			}
			gcBuckets[fmt.Sprintf("%d-%d%%", bucketFloor, bucketFloor+25)]++
		}
		setResult("gcContent", gcBuckets)
	}()

	// total base and record counts
	wg.Add(1)
	go func() {
		defer wg.Done()

		totalBases := 0
		for _, record := range sequences {
			totalBases += len(record.Sequence)
		}
		setResult("sequenceCount", len(sequences))
		setResult("totalBases", totalBases)
	}()

	// variant side counts
	wg.Add(1)
	go func() {
		defer wg.Done()

		totalVariants := 0
		for _, set := range variantSets {
			totalVariants += len(set.Variants)
		}
		setResult("variantSetCount", len(variantSets))
		setResult("totalVariants", totalVariants)
	}()

	wg.Wait()

	return resultsMap
}
