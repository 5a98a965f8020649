package export

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"seqlab/api/models/dtos"
	dtoErrors "seqlab/api/models/dtos/errors"
	exportService "seqlab/api/services/export"

	"github.com/labstack/echo"
)

type csvExportRequest struct {
	FileName string            `json:"filename"`
	Rows     []json.RawMessage `json:"rows"`
}

// ExportCsv renders arbitrary tabular rows as a CSV attachment. The
// header row mirrors the first row object's literal key order in the
// request body, which is why rows are kept raw until after that order
// has been recovered.
func ExportCsv(c echo.Context) error {
	fmt.Printf("[%s] - ExportCsv hit!\n", time.Now())

	decoder := json.NewDecoder(c.Request().Body)
	var request csvExportRequest
	if err := decoder.Decode(&request); err != nil {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest("Invalid JSON payload!"))
	}

	if len(request.Rows) == 0 {
		// not an error : log a warning and no-op
		return c.JSON(http.StatusOK, dtos.CsvExportResponse{
			Status:   http.StatusOK,
			Message:  "Nothing to export: no rows provided",
			FileName: request.FileName,
			RowCount: 0,
		})
	}

	columns, columnsErr := exportService.FirstRowColumns(request.Rows[0])
	if columnsErr != nil {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest(
			fmt.Sprintf("Unable to read columns from the first row: %v", columnsErr)))
	}

	rows := make([]map[string]interface{}, 0, len(request.Rows))
	for i, rawRow := range request.Rows {
		var row map[string]interface{}
		if err := json.Unmarshal(rawRow, &row); err != nil {
			return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest(
				fmt.Sprintf("Row %d is not a JSON object", i+1)))
		}
		rows = append(rows, row)
	}

	csvText, hasRows := exportService.BuildCSV(rows, columns)
	if !hasRows {
		return c.JSON(http.StatusOK, dtos.CsvExportResponse{
			Status:   http.StatusOK,
			Message:  "Nothing to export: no rows provided",
			FileName: request.FileName,
			RowCount: 0,
		})
	}

	exportFileName := request.FileName
	if exportFileName == "" {
		exportFileName = "export.csv"
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", exportFileName))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}
