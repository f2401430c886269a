package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestChain tests middleware composition.
func TestChain(t *testing.T) {
	var callOrder []string

	track := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				callOrder = append(callOrder, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callOrder = append(callOrder, "handler")
	})

	Chain(track("m1"), track("m2"), track("m3"))(handler).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, []string{"m1", "m2", "m3", "handler"}, callOrder)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/alumni?sort=year", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/alumni", entry["path"])
	assert.Equal(t, "sort=year", entry["query"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
}

func TestRecovery(t *testing.T) {
	handler := Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/alumni", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"error","error":"internal server error"}`, w.Body.String())
}

func TestRecovery_AfterResponseStarted(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantCode int
		wantBody string
	}{
		{
			name: "body partly written",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"id":1}`))
				panic("boom")
			},
			wantCode: http.StatusOK,
			wantBody: `[{"id":1}`,
		},
		{
			name: "header written",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
				panic("boom")
			},
			wantCode: http.StatusAccepted,
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))

			w := httptest.NewRecorder()
			require.NotPanics(t, func() {
				Recovery(log)(tt.handler).ServeHTTP(w, httptest.NewRequest("GET", "/alumni", nil))
			})

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			assert.Contains(t, buf.String(), `"response_started":true`)
		})
	}
}

func TestLogger_ImplicitStatus(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Chain(Logger(log))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.EqualValues(t, http.StatusOK, entry["status"], "a late WriteHeader does not change the logged status")
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	tests := []struct {
		name        string
		config      CORSConfig
		method      string
		origin      string
		wantOrigin  string
		wantStatus  int
		wantBody    string
		wantVaryHdr bool
	}{
		{
			name:       "default allows any origin",
			config:     DefaultCORSConfig(),
			method:     http.MethodGet,
			origin:     "http://example.com",
			wantOrigin: "*",
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:        "listed origin is echoed",
			config:      CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}, AllowedMethods: []string{"GET"}},
			method:      http.MethodGet,
			origin:      "http://localhost:5173",
			wantOrigin:  "http://localhost:5173",
			wantStatus:  http.StatusOK,
			wantBody:    "ok",
			wantVaryHdr: true,
		},
		{
			name:       "unlisted origin gets no allow header",
			config:     CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}, AllowedMethods: []string{"GET"}},
			method:     http.MethodGet,
			origin:     "http://evil.example",
			wantOrigin: "",
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:       "preflight is answered without calling next",
			config:     DefaultCORSConfig(),
			method:     http.MethodOptions,
			origin:     "http://example.com",
			wantOrigin: "*",
			wantStatus: http.StatusNoContent,
			wantBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/alumni", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			CORS(tt.config)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantBody, w.Body.String())
			assert.Equal(t, tt.wantVaryHdr, w.Header().Get("Vary") == "Origin")
			assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "GET"))
		})
	}
}
