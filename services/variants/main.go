package variantsService

import (
	"strconv"
	"strings"
	"time"

	"seqlab/api/models"
	"seqlab/api/models/records"

	"github.com/google/uuid"
)

var requiredCsvColumns = []string{"chrom", "pos", "ref", "alt"}

// ParseVariantCSV turns delimited text into a variant set. The header
// row is matched by name (order-independent) for the required columns
// chrom, pos, ref and alt ; data rows are split on commas naively, so
// quoted fields containing commas are not supported.
func ParseVariantCSV(text string, fileName string) (*records.VariantSet, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	if len(lines) < 2 {
		return nil, models.NewFormatError(
			"invalid variant CSV '%s': expected a header row and at least one data row", fileName)
	}

	// locate the required columns by name
	headerFields := strings.Split(lines[0], ",")
	columnIndexes := map[string]int{}
	for i, field := range headerFields {
		columnIndexes[strings.ToLower(strings.TrimSpace(field))] = i
	}

	var missingColumns []string
	maxRequiredIndex := 0
	for _, required := range requiredCsvColumns {
		index, found := columnIndexes[required]
		if !found {
			missingColumns = append(missingColumns, required)
			continue
		}
		if index > maxRequiredIndex {
			maxRequiredIndex = index
		}
	}
	if len(missingColumns) > 0 {
		return nil, models.NewFormatError(
			"invalid variant CSV '%s': missing required column(s): %s",
			fileName, strings.Join(missingColumns, ", "))
	}

	var variants []records.Variant
	for lineNumber, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		for i, field := range fields {
			fields[i] = strings.TrimSpace(field)
		}

		if len(fields) <= maxRequiredIndex {
			return nil, models.NewFormatError(
				"invalid variant CSV '%s': row %d has %d column(s), expected at least %d",
				fileName, lineNumber+2, len(fields), maxRequiredIndex+1)
		}

		pos, conversionErr := strconv.Atoi(fields[columnIndexes["pos"]])
		if conversionErr != nil {
			return nil, models.NewFormatError(
				"invalid variant CSV '%s': row %d has non-numeric pos '%s'",
				fileName, lineNumber+2, fields[columnIndexes["pos"]])
		}

		variants = append(variants, records.Variant{
			Chrom: fields[columnIndexes["chrom"]],
			Pos:   pos,
			Ref:   strings.ToUpper(fields[columnIndexes["ref"]]),
			Alt:   strings.ToUpper(fields[columnIndexes["alt"]]),
		})
	}

	if len(variants) == 0 {
		return nil, models.NewFormatError("invalid variant CSV '%s': no data rows found", fileName)
	}

	return &records.VariantSet{
		Id:          uuid.NewString(),
		FileName:    fileName,
		Variants:    variants,
		CreatedTime: time.Now(),
	}, nil
}

// CompareVariants classifies two variant collections into shared /
// unique-to-A / unique-to-B buckets by the (chrom, pos, ref, alt)
// key. Each side is deduplicated by key with last-wins semantics :
// when a key occurs twice in an input, only the last variant carrying
// it survives into the buckets, though the summary still reports the
// original undeduplicated totals.
func CompareVariants(variantsA []records.Variant, variantsB []records.Variant) *records.VariantComparison {
	keyOrderA, byKeyA := dedupeByKey(variantsA)
	keyOrderB, byKeyB := dedupeByKey(variantsB)

	shared := []records.Variant{}
	uniqueToA := []records.Variant{}
	uniqueToB := []records.Variant{}

	for _, key := range keyOrderA {
		if _, inB := byKeyB[key]; inB {
			shared = append(shared, byKeyA[key])
		} else {
			uniqueToA = append(uniqueToA, byKeyA[key])
		}
	}
	for _, key := range keyOrderB {
		if _, inA := byKeyA[key]; !inA {
			uniqueToB = append(uniqueToB, byKeyB[key])
		}
	}

	return &records.VariantComparison{
		Id:        uuid.NewString(),
		Shared:    shared,
		UniqueToA: uniqueToA,
		UniqueToB: uniqueToB,
		Summary: records.ComparisonSummary{
			Shared:    len(shared),
			UniqueToA: len(uniqueToA),
			UniqueToB: len(uniqueToB),
			TotalA:    len(variantsA),
			TotalB:    len(variantsB),
		},
		CreatedTime: time.Now(),
	}
}

// dedupeByKey returns the distinct keys in first-encounter order and
// a key lookup holding the last variant seen for each key
func dedupeByKey(variants []records.Variant) ([]string, map[string]records.Variant) {
	var keyOrder []string
	byKey := map[string]records.Variant{}

	for _, variant := range variants {
		key := variant.Key()
		if _, seen := byKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = variant
	}

	return keyOrder, byKey
}
