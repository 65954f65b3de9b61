package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/paddock-picks/internal/logger"
	"github.com/yourusername/paddock-picks/internal/models"
	"github.com/yourusername/paddock-picks/internal/service"
	"github.com/yourusername/paddock-picks/internal/strategy"
)

const paste = `阪神 3R
本命 1人気 複勝1.1-1.3
伏兵 8.0 (5番人気)
`

func newTestMux(maxBody int64) *http.ServeMux {
	log := logger.Discard()
	svc := service.NewAnalysisService(strategy.NewMidTierStrategy(strategy.DefaultThresholds()), nil, log)
	mux := http.NewServeMux()
	NewHandler(svc, maxBody, log).Register(mux)
	return mux
}

func post(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func correctBody(t *testing.T, req CorrectRequest) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(req))
	return buf.String()
}

func TestAnalyze(t *testing.T) {
	mux := newTestMux(1 << 20)

	rec := post(mux, "/v1/analyze", paste)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		RunID       string            `json:"run_id"`
		Picks       []models.PickCard `json:"picks"`
		Recommended []models.PickCard `json:"recommended"`
		Worklist    []models.PickCard `json:"worklist"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.RunID)
	require.Len(t, resp.Picks, 1)
	assert.Equal(t, models.RankS, resp.Picks[0].Rank)
	assert.True(t, resp.Picks[0].PlaceLow.IsEstimated())
	assert.Len(t, resp.Recommended, 1)
	assert.Len(t, resp.Worklist, 1)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	rec := post(newTestMux(1<<20), "/v1/analyze", "\n\n")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, models.ErrEmptyInput.Error())
}

func TestAnalyzeBodyTooLarge(t *testing.T) {
	rec := post(newTestMux(8), "/v1/analyze", paste)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnalyzeRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCorrectWithoutSession(t *testing.T) {
	body := correctBody(t, CorrectRequest{Track: "阪神", RaceNo: 3, Horse: "伏兵", Text: "伏兵 2.4-3.0"})

	rec := post(newTestMux(1<<20), "/v1/correct", body)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCorrectFlow(t *testing.T) {
	mux := newTestMux(1 << 20)
	require.Equal(t, http.StatusOK, post(mux, "/v1/analyze", paste).Code)

	tests := []struct {
		name     string
		req      CorrectRequest
		wantCode int
	}{
		{name: "invalid body", wantCode: http.StatusBadRequest},
		{name: "race out of range", req: CorrectRequest{Track: "阪神", RaceNo: 13, Horse: "伏兵", Text: "伏兵 2.4-3.0"}, wantCode: http.StatusBadRequest},
		{name: "missing text", req: CorrectRequest{Track: "阪神", RaceNo: 3, Horse: "伏兵"}, wantCode: http.StatusBadRequest},
		{name: "unknown horse", req: CorrectRequest{Track: "阪神", RaceNo: 3, Horse: "別馬", Text: "別馬 2.4-3.0"}, wantCode: http.StatusNotFound},
		{name: "no range", req: CorrectRequest{Track: "阪神", RaceNo: 3, Horse: "伏兵", Text: "伏兵 単 9.0"}, wantCode: http.StatusUnprocessableEntity},
		{name: "applied", req: CorrectRequest{Track: "阪神", RaceNo: 3, Horse: "伏兵", Text: "伏兵 複勝 2.4-3.0"}, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := "{"
			if tt.req.RaceNo != 0 {
				body = correctBody(t, tt.req)
			}
			rec := post(mux, "/v1/correct", body)
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode != http.StatusOK {
				return
			}
			var resp CorrectResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.NotNil(t, resp.Pick)
			assert.Equal(t, models.RankA, resp.Pick.Rank)
			assert.Equal(t, "2.4–3.0", resp.Pick.PlaceRangeText)
			assert.Empty(t, resp.Worklist)
			assert.Len(t, resp.Recommended, 1)
		})
	}
}

func TestCorrectNamelessPick(t *testing.T) {
	mux := newTestMux(1 << 20)
	rec := post(mux, "/v1/analyze", "中山 7R\n◎ 8.0 (5番人気)\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var analyzed AnalyzeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&analyzed))
	require.Len(t, analyzed.Worklist, 1)
	assert.Empty(t, analyzed.Worklist[0].HorseName)

	body := correctBody(t, CorrectRequest{Track: "中山", RaceNo: 7, Text: "複勝 2.4-3.0"})
	rec = post(mux, "/v1/correct", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CorrectResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Pick)
	assert.Equal(t, models.RankA, resp.Pick.Rank)
	assert.True(t, resp.Pick.PlaceLow.IsMeasured())
	assert.Empty(t, resp.Worklist)
}
