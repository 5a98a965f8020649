package sequencesService

import (
	"strings"
	"time"

	"seqlab/api/models"
	"seqlab/api/models/constants/format"
	"seqlab/api/models/records"
	"seqlab/api/utils"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// permitted FASTA nucleotide codes, canonical bases plus
// the IUPAC ambiguity codes
const iupacNucleotideCodes = "ATCGNRYSWKMBDHV"

const fastaLineWidth = 60

// splitNonEmptyLines trims each line (dropping any trailing '\r')
// and filters the blank ones out
func splitNonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ParseFasta turns raw FASTA text into a single sequence record.
// Only the first record is retained ; a second '>' header truncates
// parsing and the remaining records are silently dropped.
func ParseFasta(text string, fileName string) (*records.SequenceRecord, error) {
	lines := splitNonEmptyLines(text)

	if len(lines) == 0 || !strings.HasPrefix(lines[0], ">") {
		return nil, models.NewFormatError("invalid FASTA file '%s': first line must start with '>'", fileName)
	}

	header := strings.TrimSpace(strings.TrimPrefix(lines[0], ">"))

	var sequenceBuilder strings.Builder
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, ">") {
			// single-sequence semantics
			break
		}
		sequenceBuilder.WriteString(line)
	}

	sequence := strings.ToUpper(sequenceBuilder.String())
	if len(sequence) == 0 {
		return nil, models.NewFormatError("invalid FASTA file '%s': no sequence data found", fileName)
	}

	for i := 0; i < len(sequence); i++ {
		if !strings.ContainsRune(iupacNucleotideCodes, rune(sequence[i])) {
			return nil, models.NewFormatError(
				"invalid FASTA file '%s': illegal character '%c' at sequence position %d",
				fileName, sequence[i], i+1)
		}
	}

	return &records.SequenceRecord{
		Id:          uuid.NewString(),
		FileName:    fileName,
		Format:      format.Fasta,
		Header:      header,
		Sequence:    sequence,
		CreatedTime: time.Now(),
	}, nil
}

// ParseFastq turns raw FASTQ text into a single sequence record.
// All 4-line records are concatenated in encounter order, both the
// sequence lines and their Phred+33 decoded quality lines ; the
// header is taken from the first record only.
func ParseFastq(text string, fileName string) (*records.SequenceRecord, error) {
	lines := splitNonEmptyLines(text)

	if len(lines) < 4 {
		return nil, models.NewFormatError(
			"invalid FASTQ file '%s': expected at least 4 lines, got %d", fileName, len(lines))
	}

	var sequenceBuilder strings.Builder
	var qualities []int

	for i := 0; i < len(lines); i += 4 {
		if !strings.HasPrefix(lines[i], "@") {
			return nil, models.NewFormatError(
				"invalid FASTQ file '%s': record header at line %d must start with '@'", fileName, i+1)
		}
		if i+3 >= len(lines) {
			return nil, models.NewFormatError(
				"invalid FASTQ file '%s': truncated record at line %d", fileName, i+1)
		}

		sequenceLine := lines[i+1]
		if !strings.HasPrefix(lines[i+2], "+") {
			return nil, models.NewFormatError(
				"invalid FASTQ file '%s': separator at line %d must start with '+'", fileName, i+3)
		}
		qualityLine := lines[i+3]

		if len(qualityLine) != len(sequenceLine) {
			return nil, models.NewFormatError(
				"invalid FASTQ file '%s': quality length %d does not match sequence length %d for record at line %d",
				fileName, len(qualityLine), len(sequenceLine), i+1)
		}

		sequenceBuilder.WriteString(strings.ToUpper(sequenceLine))
		for j := 0; j < len(qualityLine); j++ {
			// Phred+33
			qualities = append(qualities, int(qualityLine[j])-33)
		}
	}

	sequence := sequenceBuilder.String()
	if len(sequence) == 0 {
		return nil, models.NewFormatError("invalid FASTQ file '%s': no sequence data found", fileName)
	}

	return &records.SequenceRecord{
		Id:          uuid.NewString(),
		FileName:    fileName,
		Format:      format.Fastq,
		Header:      strings.TrimSpace(strings.TrimPrefix(lines[0], "@")),
		Sequence:    sequence,
		Qualities:   qualities,
		CreatedTime: time.Now(),
	}, nil
}

// ComputeStats runs a single linear pass over the record's sequence,
// bucketing each character into A/T/C/G/N counts. Anything that is
// not exactly A, T, C or G (ambiguity codes included) counts as N.
func ComputeStats(record *records.SequenceRecord) *records.SequenceStats {
	sequence := record.Sequence
	stats := &records.SequenceStats{Length: len(sequence)}

	for i := 0; i < len(sequence); i++ {
		switch sequence[i] {
		case 'A':
			stats.BaseCounts.A++
		case 'T':
			stats.BaseCounts.T++
		case 'C':
			stats.BaseCounts.C++
		case 'G':
			stats.BaseCounts.G++
		default:
			stats.BaseCounts.N++
		}
	}

	if stats.Length > 0 {
		stats.GcPercent = utils.Round2(float64(stats.BaseCounts.G+stats.BaseCounts.C) / float64(stats.Length) * 100)
		stats.NPercent = utils.Round2(float64(stats.BaseCounts.N) / float64(stats.Length) * 100)
	}

	if record.Format == format.Fastq && len(record.Qualities) > 0 {
		qualityValues := make([]float64, len(record.Qualities))
		for i, q := range record.Qualities {
			qualityValues[i] = float64(q)
		}
		stats.MeanQuality = utils.Round2(stat.Mean(qualityValues, nil))
		// the raw flattened series, in read order
		stats.PerPositionQuality = record.Qualities
	}

	return stats
}

// FindMotif performs a case-insensitive literal substring search and
// reports every occurrence, overlapping ones included : after a match
// at index i the next search resumes at i+1, so motif "AA" inside
// "AAA" yields two matches. Positions are 1-based ; contexts are cut
// from the original-case sequence.
func FindMotif(sequence string, motif string) []records.MotifMatch {
	matches := []records.MotifMatch{}
	if len(sequence) == 0 || len(motif) == 0 {
		return matches
	}

	upperSequence := strings.ToUpper(sequence)
	upperMotif := strings.ToUpper(motif)

	offset := 0
	for {
		i := strings.Index(upperSequence[offset:], upperMotif)
		if i < 0 {
			break
		}
		i += offset

		contextStart := i - 10
		if contextStart < 0 {
			contextStart = 0
		}
		contextEnd := i + len(motif) + 10
		if contextEnd > len(sequence) {
			contextEnd = len(sequence)
		}

		matches = append(matches, records.MotifMatch{
			Position: i + 1,
			Context:  sequence[contextStart:contextEnd],
		})

		offset = i + 1
	}

	return matches
}

// ComputeGCWindows emits the GC percentage of every windowSize-wide
// window of the sequence, sliding one base at a time. The GC count of
// the first window is taken by direct counting ; every later window
// is derived from the previous one by adjusting for the single base
// leaving on the left and the single base entering on the right,
// which keeps the whole series O(n) instead of O(n * windowSize).
func ComputeGCWindows(sequence string, windowSize int) ([]records.GCWindow, error) {
	if windowSize <= 0 {
		return nil, models.NewValidationError("windowSize must be greater than 0, got %d", windowSize)
	}
	if windowSize > len(sequence) {
		return nil, models.NewValidationError(
			"windowSize %d exceeds sequence length %d", windowSize, len(sequence))
	}

	upperSequence := strings.ToUpper(sequence)
	isGC := func(base byte) bool {
		return base == 'G' || base == 'C'
	}

	gcCount := 0
	for i := 0; i < windowSize; i++ {
		if isGC(upperSequence[i]) {
			gcCount++
		}
	}

	windows := make([]records.GCWindow, 0, len(upperSequence)-windowSize+1)
	windows = append(windows, records.GCWindow{
		WindowStart: 0,
		WindowEnd:   windowSize,
		GcPercent:   utils.Round2(float64(gcCount) / float64(windowSize) * 100),
	})

	for start := 1; start <= len(upperSequence)-windowSize; start++ {
		if isGC(upperSequence[start-1]) {
			gcCount--
		}
		if isGC(upperSequence[start+windowSize-1]) {
			gcCount++
		}
		windows = append(windows, records.GCWindow{
			WindowStart: start,
			WindowEnd:   start + windowSize,
			GcPercent:   utils.Round2(float64(gcCount) / float64(windowSize) * 100),
		})
	}

	return windows, nil
}

// SerializeFasta renders a record back out as FASTA text, with the
// sequence wrapped at 60 columns
func SerializeFasta(record *records.SequenceRecord) string {
	var builder strings.Builder
	builder.WriteString(">")
	builder.WriteString(record.Header)
	builder.WriteString("\n")

	sequence := record.Sequence
	for start := 0; start < len(sequence); start += fastaLineWidth {
		end := start + fastaLineWidth
		if end > len(sequence) {
			end = len(sequence)
		}
		builder.WriteString(sequence[start:end])
		builder.WriteString("\n")
	}

	return builder.String()
}
