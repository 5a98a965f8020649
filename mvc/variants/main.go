package variants

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"seqlab/api/models/constants"
	"seqlab/api/models/dtos"
	dtoErrors "seqlab/api/models/dtos/errors"
	"seqlab/api/models/records"
	"seqlab/api/mvc"
	exportService "seqlab/api/services/export"
	variantsService "seqlab/api/services/variants"
	"seqlab/api/utils"

	"github.com/Jeffail/gabs"
	"github.com/labstack/echo"
)

func VariantsIngest(c echo.Context) error {
	fmt.Printf("[%s] - VariantsIngest hit!\n", time.Now())
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

	if len(text) > cfg.Api.MaxVariantCsvSizeMb*1024*1024 {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest(
			fmt.Sprintf("Variant CSV upload exceeds the configured %d MB limit!", cfg.Api.MaxVariantCsvSizeMb)))
	}

	set, parseErr := variantsService.ParseVariantCSV(text, fileName)
	if parseErr != nil {
		return mvc.RespondWithError(c, parseErr)
	}

	repo.SaveVariantSet(set)

	return c.JSON(http.StatusOK, dtos.VariantSetGetResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: []records.VariantSet{*set},
	})
}

func GetAllVariantSets(c echo.Context) error {
	fmt.Printf("[%s] - GetAllVariantSets hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	return c.JSON(http.StatusOK, dtos.VariantSetGetResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: repo.ListVariantSets(),
	})
}

func VariantSetGetById(c echo.Context) error {
	fmt.Printf("[%s] - VariantSetGetById hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	set, found := repo.GetVariantSet(c.Param("id"))
	if !found {
		return c.JSON(http.StatusNotFound, dtoErrors.CreateSimpleNotFound(
			fmt.Sprintf("No variant set with id '%s' in this session", c.Param("id"))))
	}

	return c.JSON(http.StatusOK, dtos.VariantSetGetResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: []records.VariantSet{*set},
	})
}

func VariantsCompare(c echo.Context) error {
	fmt.Printf("[%s] - VariantsCompare hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	setIdA := c.QueryParam("setIdA")
	setIdB := c.QueryParam("setIdB")
	if setIdA == "" || setIdB == "" {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest(
			"Both 'setIdA' and 'setIdB' query parameters are required for a comparison!"))
	}

	setA, foundA := repo.GetVariantSet(setIdA)
	if !foundA {
		return c.JSON(http.StatusNotFound, dtoErrors.CreateSimpleNotFound(
			fmt.Sprintf("No variant set with id '%s' in this session", setIdA)))
	}
	setB, foundB := repo.GetVariantSet(setIdB)
	if !foundB {
		return c.JSON(http.StatusNotFound, dtoErrors.CreateSimpleNotFound(
			fmt.Sprintf("No variant set with id '%s' in this session", setIdB)))
	}

	comparison := variantsService.CompareVariants(setA.Variants, setB.Variants)
	comparison.SetIdA = setA.Id
	comparison.SetIdB = setB.Id
	repo.SaveComparison(comparison)

	return c.JSON(http.StatusOK, dtos.VariantComparisonResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: []records.VariantComparison{*comparison},
	})
}

func ComparisonGetById(c echo.Context) error {
	fmt.Printf("[%s] - ComparisonGetById hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	comparison, found := repo.GetComparison(c.Param("id"))
	if !found {
		return c.JSON(http.StatusNotFound, dtoErrors.CreateSimpleNotFound(
			fmt.Sprintf("No comparison with id '%s' in this session", c.Param("id"))))
	}

	return c.JSON(http.StatusOK, dtos.VariantComparisonResponse{
		Status:  http.StatusOK,
		Message: "Success",
		Results: []records.VariantComparison{*comparison},
	})
}

func ComparisonExportCsv(c echo.Context) error {
	fmt.Printf("[%s] - ComparisonExportCsv hit!\n", time.Now())
	_, repo := mvc.RetrieveCommonElements(c)

	comparison, found := repo.GetComparison(c.Param("id"))
	if !found {
		return c.JSON(http.StatusNotFound, dtoErrors.CreateSimpleNotFound(
			fmt.Sprintf("No comparison with id '%s' in this session", c.Param("id"))))
	}

	bucket := c.QueryParam("bucket")
	if !utils.StringInSlice(bucket, constants.ValidComparisonBuckets) {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest(
			fmt.Sprintf("Invalid bucket: '%s' -- Must be one of the following: %s", bucket, constants.ValidComparisonBuckets)))
	}

	var bucketVariants []records.Variant
	switch bucket {
	case "shared":
		bucketVariants = comparison.Shared
	case "uniqueToA":
		bucketVariants = comparison.UniqueToA
	case "uniqueToB":
		bucketVariants = comparison.UniqueToB
	}

	rows, columns := exportService.VariantRows(bucketVariants)
	csvText, hasRows := exportService.BuildCSV(rows, columns)
	if !hasRows {
		// empty bucket : warn and no-op rather than hand out an empty file
		return c.JSON(http.StatusOK, dtos.CsvExportResponse{
			Status:   http.StatusOK,
			Message:  fmt.Sprintf("Nothing to export: bucket '%s' is empty", bucket),
			RowCount: 0,
		})
	}

	exportFileName := fmt.Sprintf("comparison_%s.csv", bucket)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", exportFileName))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}
