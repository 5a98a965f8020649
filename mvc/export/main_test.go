package export

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seqlab/api/contexts"
	"seqlab/api/models"
	"seqlab/api/models/dtos"
	"seqlab/api/repositories/memory"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

func setUpEcho(method string, path string, body string) (*contexts.SeqLabContext, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	gc := &contexts.SeqLabContext{
		Context:    c,
		Config:     &models.Config{},
		Repository: memory.NewRepository(),
	}
	return gc, rec
}

func TestExportCsv(t *testing.T) {
	t.Run("should mirror the first row's key order in the header", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/export/csv",
			`{"filename":"out.csv","rows":[{"pos":100,"chrom":"chr1","alt":"G","ref":"A"},{"pos":200,"chrom":"chr2","alt":"T","ref":"C"}]}`)

		assert.NoError(t, ExportCsv(gc))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "out.csv")
		assert.Equal(t, "pos,chrom,alt,ref\n100,chr1,G,A\n200,chr2,T,C", rec.Body.String())
	})

	t.Run("should quote awkward fields", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/export/csv",
			`{"filename":"notes.csv","rows":[{"name":"a,b","note":"say \"hi\""}]}`)

		assert.NoError(t, ExportCsv(gc))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "name,note\n\"a,b\",\"say \"\"hi\"\"\"", rec.Body.String())
	})

	t.Run("should no-op on empty rows", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/export/csv", `{"filename":"out.csv","rows":[]}`)

		assert.NoError(t, ExportCsv(gc))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response dtos.CsvExportResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, 0, response.RowCount)
		assert.Contains(t, response.Message, "Nothing to export")
	})

	t.Run("should 400 on a non-object row", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/export/csv", `{"filename":"out.csv","rows":[42]}`)

		assert.NoError(t, ExportCsv(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should 400 on a malformed payload", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/export/csv", `{"rows": not-json`)

		assert.NoError(t, ExportCsv(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
