package dtos

import (
	"time"

	"seqlab/api/models/records"
)

type SequenceGetResponse struct {
	Status  int                      `json:"status"`
	Message string                   `json:"message"`
	Results []records.SequenceRecord `json:"results"`
}

type MotifSearchResponse struct {
	Status     int                  `json:"status"`
	Message    string               `json:"message"`
	SequenceId string               `json:"sequenceId"`
	Motif      string               `json:"motif"`
	Count      int                  `json:"count"`
	Results    []records.MotifMatch `json:"results"`
}

type GCWindowsResponse struct {
	Status     int                `json:"status"`
	Message    string             `json:"message"`
	SequenceId string             `json:"sequenceId"`
	WindowSize int                `json:"windowSize"`
	Count      int                `json:"count"`
	Results    []records.GCWindow `json:"results"`
}

type VariantSetGetResponse struct {
	Status  int                  `json:"status"`
	Message string               `json:"message"`
	Results []records.VariantSet `json:"results"`
}

type VariantComparisonResponse struct {
	Status  int                         `json:"status"`
	Message string                      `json:"message"`
	Results []records.VariantComparison `json:"results"`
}

type CsvExportResponse struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	FileName string `json:"fileName"`
	RowCount int    `json:"rowCount"`
}

// -- --

type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}

type GeneralError struct {
	Message string `json:"message"`
}
