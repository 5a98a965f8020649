package sequences

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seqlab/api/contexts"
	"seqlab/api/models"
	"seqlab/api/models/constants/format"
	"seqlab/api/models/dtos"
	"seqlab/api/repositories/memory"
	sequencesService "seqlab/api/services/sequences"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

func testConfig() *models.Config {
	cfg := &models.Config{}
	cfg.Api.MaxFastaSizeMb = 5
	cfg.Api.MaxFastqSizeMb = 5
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

func getSequenceResponse(t *testing.T, rec *httptest.ResponseRecorder) dtos.SequenceGetResponse {
	var response dtos.SequenceGetResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestSequencesIngest(t *testing.T) {
	t.Run("should ingest a FASTA upload and attach stats", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodPost, "/sequences/ingestion/run",
			`{"fileName":"demo.fasta","text":">seq1\nATCGATCG"}`)

		assert.NoError(t, SequencesIngest(gc))
		assert.Equal(t, http.StatusOK, rec.Code)

		response := getSequenceResponse(t, rec)
		assert.Len(t, response.Results, 1)

		record := response.Results[0]
		assert.Equal(t, format.Fasta, record.Format)
		assert.Equal(t, "seq1", record.Header)
		assert.Equal(t, "ATCGATCG", record.Sequence)
		assert.NotNil(t, record.Stats)
		assert.Equal(t, 50.0, record.Stats.GcPercent)

		_, found := repo.GetSequenceRecord(record.Id)
		assert.True(t, found)
	})

	t.Run("should ingest a FASTQ upload by extension", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodPost, "/sequences/ingestion/run",
			`{"fileName":"reads.fastq","text":"@r1\nACGT\n+\nIIII"}`)

		assert.NoError(t, SequencesIngest(gc))
		assert.Equal(t, http.StatusOK, rec.Code)

		response := getSequenceResponse(t, rec)
		record := response.Results[0]
		assert.Equal(t, format.Fastq, record.Format)
		assert.Equal(t, []int{40, 40, 40, 40}, record.Qualities)
		assert.Equal(t, 40.0, record.Stats.MeanQuality)
	})

	t.Run("should honor the format query parameter override", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodPost, "/sequences/ingestion/run?format=fasta",
			`{"fileName":"sequence.txt","text":">seq1\nATCG"}`)

		assert.NoError(t, SequencesIngest(gc))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should reject an undetectable format", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodPost, "/sequences/ingestion/run",
			`{"fileName":"sequence.txt","text":">seq1\nATCG"}`)

		assert.NoError(t, SequencesIngest(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a malformed FASTA body", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodPost, "/sequences/ingestion/run",
			`{"fileName":"bad.fasta","text":"ATCG"}`)

		assert.NoError(t, SequencesIngest(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject an upload over the configured size cap", func(t *testing.T) {
		cfg := testConfig()
		cfg.Api.MaxFastaSizeMb = 0

		repo := memory.NewRepository()
		gc, rec := setUpEcho(cfg, repo, http.MethodPost, "/sequences/ingestion/run",
			`{"fileName":"big.fasta","text":">seq1\nATCG"}`)

		assert.NoError(t, SequencesIngest(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a payload missing its text", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodPost, "/sequences/ingestion/run",
			`{"fileName":"demo.fasta"}`)

		assert.NoError(t, SequencesIngest(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSequenceGetById(t *testing.T) {
	t.Run("should 404 on an unknown id", func(t *testing.T) {
		repo := memory.NewRepository()
		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet, "/sequences/nope", "")
		gc.SetParamNames("id")
		gc.SetParamValues("nope")

		assert.NoError(t, SequenceGetById(gc))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSequencesMotifSearch(t *testing.T) {
	t.Run("should report overlapping matches for a stored record", func(t *testing.T) {
		repo := memory.NewRepository()
		record, err := sequencesService.ParseFasta(">seq\nAAAT", "seq.fasta")
		assert.NoError(t, err)
		repo.SaveSequenceRecord(record)

		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet,
			"/sequences/"+record.Id+"/motif/search?motif=AA", "")
		gc.SetParamNames("id")
		gc.SetParamValues(record.Id)

		assert.NoError(t, SequencesMotifSearch(gc))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response dtos.MotifSearchResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Count)
		assert.Equal(t, 1, response.Results[0].Position)
		assert.Equal(t, 2, response.Results[1].Position)
	})
}

func TestSequencesGCWindows(t *testing.T) {
	t.Run("should emit the full window series", func(t *testing.T) {
		repo := memory.NewRepository()
		record, err := sequencesService.ParseFasta(">seq\nGCGCATAT", "seq.fasta")
		assert.NoError(t, err)
		repo.SaveSequenceRecord(record)

		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet,
			"/sequences/"+record.Id+"/gc/windows?windowSize=4", "")
		gc.SetParamNames("id")
		gc.SetParamValues(record.Id)

		assert.NoError(t, SequencesGCWindows(gc))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response dtos.GCWindowsResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, 5, response.Count)
		assert.Equal(t, 100.0, response.Results[0].GcPercent)
		assert.Equal(t, 0.0, response.Results[4].GcPercent)
	})

	t.Run("should 400 when the window exceeds the sequence", func(t *testing.T) {
		repo := memory.NewRepository()
		record, err := sequencesService.ParseFasta(">seq\nATCG", "seq.fasta")
		assert.NoError(t, err)
		repo.SaveSequenceRecord(record)

		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet,
			"/sequences/"+record.Id+"/gc/windows?windowSize=99", "")
		gc.SetParamNames("id")
		gc.SetParamValues(record.Id)

		assert.NoError(t, SequencesGCWindows(gc))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSequenceExportFasta(t *testing.T) {
	t.Run("should serve the record as an attachment", func(t *testing.T) {
		repo := memory.NewRepository()
		record, err := sequencesService.ParseFasta(">seq1\nATCGATCG", "demo.fasta")
		assert.NoError(t, err)
		repo.SaveSequenceRecord(record)

		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet,
			"/sequences/"+record.Id+"/export/fasta", "")
		gc.SetParamNames("id")
		gc.SetParamValues(record.Id)

		assert.NoError(t, SequenceExportFasta(gc))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "demo.fasta")
		assert.Equal(t, ">seq1\nATCGATCG\n", rec.Body.String())
	})
}

func TestGetSequencesOverview(t *testing.T) {
	t.Run("should aggregate formats and totals", func(t *testing.T) {
		repo := memory.NewRepository()

		fastaRecord, _ := sequencesService.ParseFasta(">a\nGGCC", "a.fasta")
		fastaRecord.Stats = sequencesService.ComputeStats(fastaRecord)
		repo.SaveSequenceRecord(fastaRecord)

		fastqRecord, _ := sequencesService.ParseFastq("@r\nAT\n+\nII", "r.fastq")
		fastqRecord.Stats = sequencesService.ComputeStats(fastqRecord)
		repo.SaveSequenceRecord(fastqRecord)

		gc, rec := setUpEcho(testConfig(), repo, http.MethodGet, "/sequences/overview", "")

		assert.NoError(t, GetSequencesOverview(gc))
		assert.Equal(t, http.StatusOK, rec.Code)

		var overview map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))

		assert.Equal(t, float64(2), overview["sequenceCount"])
		assert.Equal(t, float64(6), overview["totalBases"])

		formats := overview["formats"].(map[string]interface{})
		assert.Equal(t, float64(1), formats["FASTA"])
		assert.Equal(t, float64(1), formats["FASTQ"])
	})
}
