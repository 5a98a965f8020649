package variants

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seqlab/api/contexts"
	"seqlab/api/models"
	"seqlab/api/models/dtos"
	"seqlab/api/models/records"
	"seqlab/api/repositories/memory"
	variantsService "seqlab/api/services/variants"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"

	. "github.com/ahmetb/go-linq"
)

func testConfig() *models.Config {
	cfg := &models.Config{}
	cfg.Api.MaxVariantCsvSizeMb = 5
	return cfg
}

func setUpEcho(cfg *models.Config, repo *memory.Repository, method string, path string, body string) (*contexts.SeqLabContext, *httptest.ResponseRecorder) {
	e := echo.New()
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	gc := &contexts.SeqLabContext{
		Context:    c,
		Config:     cfg,
		Repository: repo,
	}
	return gc, rec
}

func storedSet(t *testing.T, repo *memory.Repository, csvText string) *records.VariantSet {
	set, err := variantsService.ParseVariantCSV(csvText, "stored.csv")
	assert.NoError(t, err)
	repo.SaveVariantSet(set)
	return set
}

func TestVariantsIngest(t *testing.T) {
	t.Run("should ingest a variant CSV upload", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodPost, "/variants/ingestion/run",
			`{"fileName":"calls.csv","text":"chrom,pos,ref,alt\nchr1,100,A,G\nchr1,200,C,T"}`)

		assert.NoError(t, VariantsIngest(gc))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response dtos.VariantSetGetResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Len(t, response.Results, 1)
		assert.Len(t, response.Results[0].Variants, 2)

		_, found := repo.GetVariantSet(response.Results[0].Id)
		assert.True(t, found)
	})

	t.Run("should reject a CSV with missing columns", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodPost, "/variants/ingestion/run",
			`{"fileName":"calls.csv","text":"chrom,pos\nchr1,100"}`)

		assert.NoError(t, VariantsIngest(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestVariantsCompare(t *testing.T) {
	t.Run("self-comparison via the endpoint shares everything", func(t *testing.T) {
		repo := memory.NewRepository()
		set := storedSet(t, repo, "chrom,pos,ref,alt\nchr1,100,A,G\nchr1,200,C,T")

		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet,
			"/variants/comparison/run?setIdA="+set.Id+"&setIdB="+set.Id, "")

		assert.NoError(t, VariantsCompare(gc))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response dtos.VariantComparisonResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Len(t, response.Results, 1)

		comparison := response.Results[0]
		assert.Equal(t, 2, comparison.Summary.Shared)
		assert.Equal(t, 0, comparison.Summary.UniqueToA)
		assert.Equal(t, 0, comparison.Summary.UniqueToB)

		sharedOnChr1 := From(comparison.Shared).
			WhereT(func(v records.Variant) bool { return v.Chrom == "chr1" }).
			Count()
		assert.Equal(t, 2, sharedOnChr1)

		_, found := repo.GetComparison(comparison.Id)
		assert.True(t, found)
	})

	t.Run("should 400 without both set ids", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet, "/variants/comparison/run?setIdA=a", "")

		assert.NoError(t, VariantsCompare(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should 404 on an unknown set id", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet,
			"/variants/comparison/run?setIdA=missing&setIdB=alsomissing", "")

		assert.NoError(t, VariantsCompare(gc))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestComparisonExportCsv(t *testing.T) {
	runComparison := func(t *testing.T, repo *memory.Repository) *records.VariantComparison {
		setA := storedSet(t, repo, "chrom,pos,ref,alt\nchr1,100,A,G\nchr2,5,G,A")
		setB := storedSet(t, repo, "chrom,pos,ref,alt\nchr1,100,A,G")

		comparison := variantsService.CompareVariants(setA.Variants, setB.Variants)
		comparison.SetIdA = setA.Id
		comparison.SetIdB = setB.Id
		repo.SaveComparison(comparison)
		return comparison
	}

	t.Run("should serve a bucket as a CSV attachment", func(t *testing.T) {
		repo := memory.NewRepository()
		comparison := runComparison(t, repo)

		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet,
			"/variants/comparison/"+comparison.Id+"/export?bucket=shared", "")
		gc.SetParamNames("id")
		gc.SetParamValues(comparison.Id)

		assert.NoError(t, ComparisonExportCsv(gc))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
		assert.Equal(t, "chrom,pos,ref,alt\nchr1,100,A,G", rec.Body.String())
	})

	t.Run("should no-op on an empty bucket", func(t *testing.T) {
		repo := memory.NewRepository()
		comparison := runComparison(t, repo)

		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet,
			"/variants/comparison/"+comparison.Id+"/export?bucket=uniqueToB", "")
		gc.SetParamNames("id")
		gc.SetParamValues(comparison.Id)

		assert.NoError(t, ComparisonExportCsv(gc))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response dtos.CsvExportResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, 0, response.RowCount)
		assert.Contains(t, response.Message, "Nothing to export")
	})

	t.Run("should 400 on an unknown bucket", func(t *testing.T) {
		repo := memory.NewRepository()
		comparison := runComparison(t, repo)

		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet,
			"/variants/comparison/"+comparison.Id+"/export?bucket=everything", "")
		gc.SetParamNames("id")
		gc.SetParamValues(comparison.Id)

		assert.NoError(t, ComparisonExportCsv(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
