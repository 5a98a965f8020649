package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout SeqLab and it's
	associated services.
*/
type SequenceFormat string
type ComparisonBucket string

var ValidComparisonBuckets = []string{"shared", "uniqueToA", "uniqueToB"}
