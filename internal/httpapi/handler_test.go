package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/logging"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(Config{
		Logger:    logging.Discard(),
		Tolerance: decimal.RequireFromString("0.01"),
		Version:   "test",
	}))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestGetHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, HealthResponse{Status: "ok", Version: "test"}, body)
}

func TestPostProfitLoss(t *testing.T) {
	srv := newTestServer(t)

	status, body := post(t, srv, "/api/v1/profit-loss", readTestdata(t, "transactions.json"))
	require.Equal(t, http.StatusOK, status)

	summary := body["summary"].(map[string]any)
	assert.Equal(t, "1200", summary["totalIncome"])
	assert.Equal(t, "550", summary["totalExpenses"])
	assert.Equal(t, "650", summary["netProfit"])
	assert.Equal(t, "60", summary["profitMargin"])

	assert.Equal(t, "profit", body["status"].(map[string]any)["status"])
	assert.Equal(t, []any{"Excellent profit margin of 60.00% on sales."}, body["insights"])
	assert.Contains(t, body, "ratios")
}

func TestPostProfitLoss_EmptyObject(t *testing.T) {
	srv := newTestServer(t)

	status, body := post(t, srv, "/api/v1/profit-loss", `{}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "break-even", body["status"].(map[string]any)["status"])
}

func TestPostProfitLoss_Malformed(t *testing.T) {
	srv := newTestServer(t)

	status, body := post(t, srv, "/api/v1/profit-loss", `{"sales": [`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "malformed payload")
}

func TestPostProfitLoss_HugeExponentIsZero(t *testing.T) {
	srv := newTestServer(t)

	status, body := post(t, srv, "/api/v1/profit-loss",
		`{"sales": [{"totalAmount": 1e100000000}, {"totalAmount": "1e2000000000"}, {"totalAmount": 300}]}`)
	require.Equal(t, http.StatusOK, status)

	summary := body["summary"].(map[string]any)
	assert.Equal(t, "300", summary["totalIncome"])
}

func TestPostGrowth_HugeExponentIsZero(t *testing.T) {
	srv := newTestServer(t)

	status, body := post(t, srv, "/api/v1/growth",
		`{"current": {"summary": {"netProfit": 1e100000000}}, "previous": {"summary": {"netProfit": 100}}}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "-100", body["growth"].(map[string]any)["netProfitGrowth"])
}

func TestPostReconcile(t *testing.T) {
	srv := newTestServer(t)

	status, body := post(t, srv, "/api/v1/trading/reconcile", readTestdata(t, "trading.json"))
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "800", body["lhsTotal"])
	assert.Equal(t, "800", body["rhsTotal"])
	assert.Equal(t, true, body["balanced"])
	assert.Equal(t, true, body["hasPaymentMethodDetails"])
	assert.Equal(t, "trading.sales.total", body["salesSource"])
}

func TestPostReconcile_Unbalanced(t *testing.T) {
	srv := newTestServer(t)

	status, body := post(t, srv, "/api/v1/trading/reconcile",
		`{"trading": {"openingStock": 100, "purchases": 50, "sales": {"total": 100}}}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["balanced"])
	assert.Equal(t, "50", body["discrepancy"])
	assert.Equal(t, false, body["hasPaymentMethodDetails"])
}

func TestPostGrowth(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantGrowth map[string]any
	}{
		{
			name: "doubled net profit",
			body: `{"current": {"income": {"total": 300}, "summary": {"netProfit": 200}},
			        "previous": {"income": {"total": 200}, "summary": {"netProfit": 100}}}`,
			wantStatus: http.StatusOK,
			wantGrowth: map[string]any{"netProfitGrowth": "100", "incomeGrowth": "50"},
		},
		{
			name:       "no previous period",
			body:       `{"current": {"summary": {"netProfit": 200}}, "previous": null}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "previous is not a statement",
			body:       `{"current": {}, "previous": 5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, srv, "/api/v1/growth", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, body["error"])
				return
			}
			if tt.wantGrowth == nil {
				assert.Nil(t, body["growth"])
				return
			}
			assert.Equal(t, tt.wantGrowth, body["growth"])
		})
	}
}

func TestRouter_PanicIsLoggedAsServerError(t *testing.T) {
	var buf bytes.Buffer
	mux := New(Config{Logger: logging.New(&buf, "info", "text")})
	mux.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	logged := buf.String()
	assert.Contains(t, logged, "msg=request")
	assert.Contains(t, logged, "status=500")
	assert.NotContains(t, logged, "status=0")
}

func TestRecovery(t *testing.T) {
	h := Recovery(logging.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}
