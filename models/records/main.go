package records

import (
	"fmt"
	"time"

	c "seqlab/api/models/constants"
)

type SequenceRecord struct {
	Id       string           `json:"id"`
	FileName string           `json:"fileName"`
	Format   c.SequenceFormat `json:"format"`
	Header   string           `json:"header"`
	Sequence string           `json:"sequence"`

	// Phred+33 decoded scores, FASTQ only ;
	// same length as Sequence
	Qualities []int `json:"qualities,omitempty"`

	Stats *SequenceStats `json:"stats,omitempty"`

	CreatedTime time.Time `json:"createdTime"`
}

type SequenceStats struct {
	Length     int        `json:"length"`
	GcPercent  float64    `json:"gcPercent"`
	NPercent   float64    `json:"nPercent"`
	BaseCounts BaseCounts `json:"baseCounts"`

	// FASTQ only
	MeanQuality float64 `json:"meanQuality,omitempty"`
	// the raw flattened quality series in read order ;
	// NOT a per-column average across reads
	PerPositionQuality []int `json:"perPositionQuality,omitempty"`
}

// every character that is not exactly A, T, C or G
// (ambiguity codes included) lands in the N bucket
type BaseCounts struct {
	A int `json:"A"`
	T int `json:"T"`
	C int `json:"C"`
	G int `json:"G"`
	N int `json:"N"`
}

type MotifMatch struct {
	// 1-based start offset in the original sequence
	Position int `json:"position"`
	// up to 10 characters of original-case sequence on
	// either side of the match, clipped at the boundaries
	Context string `json:"context"`
}

type GCWindow struct {
	WindowStart int     `json:"windowStart"` // 0-based, inclusive
	WindowEnd   int     `json:"windowEnd"`   // 0-based, exclusive
	GcPercent   float64 `json:"gcPercent"`
}

type Variant struct {
	Chrom string `json:"chrom" mapstructure:"chrom"`
	Pos   int    `json:"pos" mapstructure:"pos"`
	Ref   string `json:"ref" mapstructure:"ref"`
	Alt   string `json:"alt" mapstructure:"alt"`
}

// Key joins the identifying tuple into a single comparable token ;
// two variants are equal iff their keys are equal
func (v Variant) Key() string {
	return fmt.Sprintf("%s:%d:%s:%s", v.Chrom, v.Pos, v.Ref, v.Alt)
}

type VariantSet struct {
	Id       string    `json:"id"`
	FileName string    `json:"fileName"`
	Variants []Variant `json:"variants"`

	CreatedTime time.Time `json:"createdTime"`
}

type VariantComparison struct {
	Id     string `json:"id"`
	SetIdA string `json:"setIdA"`
	SetIdB string `json:"setIdB"`

	Shared    []Variant `json:"shared"`
	UniqueToA []Variant `json:"uniqueToA"`
	UniqueToB []Variant `json:"uniqueToB"`

	Summary ComparisonSummary `json:"summary"`

	CreatedTime time.Time `json:"createdTime"`
}

type ComparisonSummary struct {
	Shared    int `json:"shared"`
	UniqueToA int `json:"uniqueToA"`
	UniqueToB int `json:"uniqueToB"`
	TotalA    int `json:"totalA"`
	TotalB    int `json:"totalB"`
}
