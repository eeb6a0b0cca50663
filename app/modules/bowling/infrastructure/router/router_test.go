package bowlingrouter

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlinghandlers "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	catalog, err := bowlingservice.NewCatalog(bowlingservice.Strategy{Validation: "full", Calculator: "classic"})
	require.NoError(t, err)

	handlers := bowlinghandlers.NewBowlingHandlers(
		catalog,
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		noop.NewTracerProvider().Tracer("test"),
	)

	r := chi.NewRouter()
	Register(r, handlers, opts)
	return r
}

func postScore(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, BasePath+"/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRegister_ScoresGames(t *testing.T) {
	h := newTestRouter(t, Options{RateLimit: 1000, RateBurst: 1000})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantScore  int
	}{
		{name: "all ones", body: `{"notation":"11|11|11|11|11|11|11|11|11|11||"}`, wantStatus: http.StatusOK, wantScore: 20},
		{name: "perfect game", body: `{"notation":"X|X|X|X|X|X|X|X|X|X||XX","calculator":"rules"}`, wantStatus: http.StatusOK, wantScore: 300},
		{name: "nine and miss", body: `{"notation":"9-|9-|9-|9-|9-|9-|9-|9-|9-|9-||"}`, wantStatus: http.StatusOK, wantScore: 90},
		{name: "strikes then ones", body: `{"notation":"X|X|X|X|X|X|X|X|X|X||11"}`, wantStatus: http.StatusOK, wantScore: 273},
		{name: "strikes then strike and one", body: `{"notation":"X|X|X|X|X|X|X|X|X|X||X1"}`, wantStatus: http.StatusOK, wantScore: 291},
		{name: "missing bonus delimiter", body: `{"notation":"11|11|11|11|11|11|11|11|11|11"}`, wantStatus: http.StatusBadRequest},
		{name: "nine frames", body: `{"notation":"11|11|11|11|11|11|11|11|11||"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "nine frames unvalidated", body: `{"notation":"11|11|11|11|11|11|11|11|11||","validation":"none"}`, wantStatus: http.StatusInternalServerError},
		{name: "unknown validation", body: `{"notation":"11||","validation":"strict"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postScore(t, h, tt.body)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp bowlinghandlers.ScoreResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			require.Equal(t, tt.wantScore, resp.Score)
			require.Equal(t, tt.wantScore, resp.Frames[len(resp.Frames)-1].Cumulative)
		})
	}
}

func TestRegister_Routes(t *testing.T) {
	h := newTestRouter(t, Options{RateLimit: 1000, RateBurst: 1000})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, BasePath+"/strategies", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var strategies []bowlingservice.Strategy
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&strategies))
	require.Len(t, strategies, 4)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, BasePath+"/score", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, BasePath+"/chart?notation=9-%7C9-%7C9-%7C9-%7C9-%7C9-%7C9-%7C9-%7C9-%7C9-%7C%7C", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "image/png", rr.Header().Get("Content-Type"))
}

func TestRegister_RateLimit(t *testing.T) {
	h := newTestRouter(t, Options{RateLimit: 0.001, RateBurst: 1})

	require.Equal(t, http.StatusOK, postScore(t, h, `{"notation":"X|X|X|X|X|X|X|X|X|X||XX"}`).Code)
	rr := postScore(t, h, `{"notation":"X|X|X|X|X|X|X|X|X|X||XX"}`)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	require.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func TestRegister_CORS(t *testing.T) {
	h := newTestRouter(t, Options{AllowedOrigins: []string{"https://lanes.example"}, RateLimit: 1000, RateBurst: 1000})

	req := httptest.NewRequest(http.MethodOptions, BasePath+"/score", nil)
	req.Header.Set("Origin", "https://lanes.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, "https://lanes.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, BasePath+"/score", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
