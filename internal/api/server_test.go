package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/spanmask/internal/masking"
)

func newTestEcho() *echo.Echo {
	server := NewServer(NewMaskStore(), ServerConfig{
		Defaults: masking.SpanConfig{MaskProb: 0.3, SpanLen: 2, MinSpans: 1},
		Seed:     7,
	})
	e := echo.New()
	server.Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeRecord(t *testing.T, rec *httptest.ResponseRecorder) MaskRecord {
	t.Helper()
	var out MaskRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body=%s", rec.Body.String())
	return out
}

func TestCreateGetDeleteMaskLifecycle(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	createRec := doJSON(t, e, http.MethodPost, "/v1/masks", `{"max_seq_len":10,"seq_lengths":[10,5],"seed":3}`)
	require.Equal(t, http.StatusOK, createRec.Code, "body=%s", createRec.Body.String())

	created := decodeRecord(t, createRec)
	require.True(t, strings.HasPrefix(created.ID, "mask_"))
	require.Equal(t, "mask", created.Object)
	require.Equal(t, "span", created.Strategy)
	require.Equal(t, masking.BatchShape{Batch: 2, SeqLen: 10}, created.Shape)
	require.Len(t, created.Rows, 2)
	for _, row := range created.Rows {
		require.Len(t, row, 10)
	}
	require.NotNil(t, created.Config)
	require.Equal(t, 2, created.Config.SpanLen)
	require.Equal(t, created.Masked, created.Coverage.Masked[0]+created.Coverage.Masked[1])

	getRec := doJSON(t, e, http.MethodGet, "/v1/masks/"+created.ID, "")
	require.Equal(t, http.StatusOK, getRec.Code)
	require.Equal(t, created, decodeRecord(t, getRec))

	delRec := doJSON(t, e, http.MethodDelete, "/v1/masks/"+created.ID, "")
	require.Equal(t, http.StatusOK, delRec.Code)
	require.Contains(t, delRec.Body.String(), `"deleted":true`)

	missing := doJSON(t, e, http.MethodGet, "/v1/masks/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestCreateMaskSeededIsReproducible(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	body := `{"max_seq_len":40,"seq_lengths":[40,31,12],"mask_prob":0.5,"span_len":4,"seed":99}`
	a := decodeRecord(t, doJSON(t, e, http.MethodPost, "/v1/masks", body))
	b := decodeRecord(t, doJSON(t, e, http.MethodPost, "/v1/masks", body))
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, a.Rows, b.Rows)
	require.Equal(t, 4, a.Config.SpanLen)
	require.InDelta(t, 0.5, a.Config.MaskProb, 1e-12)
}

func TestCreateMaskBaselines(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	none := decodeRecord(t, doJSON(t, e, http.MethodPost, "/v1/masks", `{"strategy":"none","batch":2,"max_seq_len":6}`))
	require.Equal(t, []string{"000000", "000000"}, none.Rows)
	require.Nil(t, none.Config)

	all := decodeRecord(t, doJSON(t, e, http.MethodPost, "/v1/masks", `{"strategy":"all","batch":1,"max_seq_len":3}`))
	require.Equal(t, []string{"111"}, all.Rows)
	require.Equal(t, 3, all.Masked)
}

func TestCreateMaskErrors(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"malformed", `{"max_seq_len":`, http.StatusBadRequest, "invalid_request_error"},
		{"unknown field", `{"max_seq_len":4,"batch":1,"bogus":1}`, http.StatusBadRequest, "bogus"},
		{"no batch", `{"max_seq_len":8}`, http.StatusBadRequest, "batch or seq_lengths is required"},
		{"batch mismatch", `{"max_seq_len":8,"batch":3,"seq_lengths":[8]}`, http.StatusBadRequest, "batch is 3"},
		{"span too wide", `{"max_seq_len":4,"batch":1,"span_len":4}`, http.StatusBadRequest, "span_len 4 must be smaller"},
		{"length too long", `{"max_seq_len":4,"seq_lengths":[5]}`, http.StatusBadRequest, "shape mismatch"},
		{"bad prob", `{"max_seq_len":8,"batch":1,"mask_prob":0}`, http.StatusBadRequest, "mask_prob"},
		{"unknown strategy", `{"strategy":"dropout","max_seq_len":8,"batch":1}`, http.StatusBadRequest, "unknown strategy"},
		{"reserved strategy", `{"strategy":"random","max_seq_len":8,"batch":1}`, http.StatusNotImplemented, "not_implemented_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, "/v1/masks", tc.body)
			require.Equal(t, tc.status, rec.Code, "body=%s", rec.Body.String())
			require.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestDeleteUnknownMask(t *testing.T) {
	t.Parallel()

	rec := doJSON(t, newTestEcho(), http.MethodDelete, "/v1/masks/mask_missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "not_found_error")
}

func TestListStrategies(t *testing.T) {
	t.Parallel()

	rec := doJSON(t, newTestEcho(), http.MethodGet, "/v1/strategies", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []StrategyInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []StrategyInfo{
		{Name: "none", Implemented: true},
		{Name: "all", Implemented: true},
		{Name: "span", Implemented: true},
		{Name: "inverse-span", Implemented: false},
		{Name: "random", Implemented: false},
	}, body.Data)
}

func TestConcurrentUnseededRequests(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	var wg sync.WaitGroup
	codes := make([]int, 16)
	for i := range codes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := doJSON(t, e, http.MethodPost, "/v1/masks", `{"max_seq_len":32,"seq_lengths":[32,20,9]}`)
			codes[i] = rec.Code
		}()
	}
	wg.Wait()
	for i, code := range codes {
		require.Equal(t, http.StatusOK, code, "request %d", i)
	}

	health := doJSON(t, e, http.MethodGet, "/healthz", "")
	require.Contains(t, health.Body.String(), `"masks":16`)
}
