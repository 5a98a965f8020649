package format

import (
	"path/filepath"
	"strings"

	"seqlab/api/models/constants"
)

const (
	Unknown constants.SequenceFormat = "Unknown"

	Fasta constants.SequenceFormat = "FASTA"
	Fastq constants.SequenceFormat = "FASTQ"
)

func CastToSequenceFormat(text string) constants.SequenceFormat {
	switch strings.ToLower(text) {
	case "fasta":
		return Fasta
	case "fastq":
		return Fastq
	default:
		return Unknown
	}
}

func IsKnownSequenceFormat(text string) bool {
	// attempt to cast to sequenceFormat and
	// return if unknown format
	return CastToSequenceFormat(text) != Unknown
}

// DetectFromFileName keys the parser dispatch on the
// normalized file extension of the uploaded file
func DetectFromFileName(fileName string) constants.SequenceFormat {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch ext {
	case "fasta", "fa", "fna":
		return Fasta
	case "fastq", "fq":
		return Fastq
	default:
		return Unknown
	}
}
