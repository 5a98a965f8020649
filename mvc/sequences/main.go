package sequences

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"seqlab/api/models/constants/format"
	"seqlab/api/models/dtos"
	dtoErrors "seqlab/api/models/dtos/errors"
	"seqlab/api/models/records"
	"seqlab/api/mvc"
	overviewService "seqlab/api/services/overview"
	sequencesService "seqlab/api/services/sequences"

	"github.com/Jeffail/gabs"
	"github.com/labstack/echo"
)

func SequencesIngest(c echo.Context) error {
	fmt.Printf("[%s] - SequencesIngest hit!\n", time.Now())
	cfg, repo := mvc.RetrieveCommonElements(c)

	// pull fileName and text out of the JSON payload
	bodyBytes, readErr := io.ReadAll(c.Request().Body)
	if readErr != nil {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest("Unable to read request body!"))
	}
	jsonParsed, jsonErr := gabs.ParseJSON(bodyBytes)
	if jsonErr != nil {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest("Invalid JSON payload!"))
	}

	fileName, fileNameOk := jsonParsed.Path("fileName").Data().(string)
	if !fileNameOk || fileName == "" {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest("Missing 'fileName' in payload!"))
	}
	text, textOk := jsonParsed.Path("text").Data().(string)
	if !textOk || text == "" {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest("Missing 'text' in payload!"))
	}

	// dispatch on the optional format override, else on the
	// uploaded file's extension
	sequenceFormat := format.DetectFromFileName(fileName)
	if formatQP := c.QueryParam("format"); formatQP != "" {
		sequenceFormat = format.CastToSequenceFormat(formatQP)
	}

	var record *records.SequenceRecord
	var parseErr error

	switch sequenceFormat {
	case format.Fasta:
		if exceedsMbLimit(len(text), cfg.Api.MaxFastaSizeMb) {
			return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest(
				fmt.Sprintf("FASTA upload exceeds the configured %d MB limit!", cfg.Api.MaxFastaSizeMb)))
		}
		record, parseErr = sequencesService.ParseFasta(text, fileName)
	case format.Fastq:
		if exceedsMbLimit(len(text), cfg.Api.MaxFastqSizeMb) {
			return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest(
				fmt.Sprintf("FASTQ upload exceeds the configured %d MB limit!", cfg.Api.MaxFastqSizeMb)))
		}
		record, parseErr = sequencesService.ParseFastq(text, fileName)
	default:
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest(
			fmt.Sprintf("Unable to determine sequence format from file name '%s' -- provide a 'format' query parameter!", fileName)))
	}

	if parseErr != nil {
		return mvc.RespondWithError(c, parseErr)
	}

	// stats are attached after parsing, not part of the parse itself
	record.Stats = sequencesService.ComputeStats(record)
	repo.SaveSequenceRecord(record)

	return c.JSON(http.StatusOK, dtos.SequenceGetResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: []records.SequenceRecord{*record},
	})
}

func GetAllSequences(c echo.Context) error {
	fmt.Printf("[%s] - GetAllSequences hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	return c.JSON(http.StatusOK, dtos.SequenceGetResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: repo.ListSequenceRecords(),
	})
}

func SequenceGetById(c echo.Context) error {
	fmt.Printf("[%s] - SequenceGetById hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	record, found := repo.GetSequenceRecord(c.Param("id"))
	if !found {
		return c.JSON(http.StatusNotFound, dtoErrors.CreateSimpleNotFound(
			fmt.Sprintf("No sequence record with id '%s' in this session", c.Param("id"))))
	}

	return c.JSON(http.StatusOK, dtos.SequenceGetResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: []records.SequenceRecord{*record},
	})
}

func SequencesMotifSearch(c echo.Context) error {
	fmt.Printf("[%s] - SequencesMotifSearch hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	record, found := repo.GetSequenceRecord(c.Param("id"))
	if !found {
		return c.JSON(http.StatusNotFound, dtoErrors.CreateSimpleNotFound(
			fmt.Sprintf("No sequence record with id '%s' in this session", c.Param("id"))))
	}

	// non-emptiness already mandated by middleware
	motif := c.QueryParam("motif")
	matches := sequencesService.FindMotif(record.Sequence, motif)

	return c.JSON(http.StatusOK, dtos.MotifSearchResponse{
		Status:     http.StatusOK,
		Message:    "Success",
		SequenceId: record.Id,
		Motif:      motif,
		Count:      len(matches),
		Results:    matches,
	})
}

func SequencesGCWindows(c echo.Context) error {
	fmt.Printf("[%s] - SequencesGCWindows hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	record, found := repo.GetSequenceRecord(c.Param("id"))
	if !found {
		return c.JSON(http.StatusNotFound, dtoErrors.CreateSimpleNotFound(
			fmt.Sprintf("No sequence record with id '%s' in this session", c.Param("id"))))
	}

	// integer-ness and positivity already mandated by middleware
	windowSize, _ := strconv.Atoi(c.QueryParam("windowSize"))

	windows, err := sequencesService.ComputeGCWindows(record.Sequence, windowSize)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusOK, dtos.GCWindowsResponse{
		Status:     http.StatusOK,
		Message:    "Success",
		SequenceId: record.Id,
		WindowSize: windowSize,
		Count:      len(windows),
		Results:    windows,
	})
}

func GetSequencesOverview(c echo.Context) error {
	fmt.Printf("[%s] - GetSequencesOverview hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	return c.JSON(http.StatusOK, overviewService.GetSequencesOverview(repo))
}

func SequenceExportFasta(c echo.Context) error {
	fmt.Printf("[%s] - SequenceExportFasta hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	record, found := repo.GetSequenceRecord(c.Param("id"))
	if !found {
		return c.JSON(http.StatusNotFound, dtoErrors.CreateSimpleNotFound(
			fmt.Sprintf("No sequence record with id '%s' in this session", c.Param("id"))))
	}

	fastaText := sequencesService.SerializeFasta(record)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", record.FileName))
	return c.Blob(http.StatusOK, "text/x-fasta; charset=utf-8", []byte(fastaText))
}

func exceedsMbLimit(byteCount int, limitMb int) bool {
	return byteCount > limitMb*1024*1024
}
