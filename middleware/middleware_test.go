// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/chamber-stats/models"
)

func TestWithLogging_PassesResponseThrough(t *testing.T) {
	routes := []struct {
		method, path string
		status       int
		body         string
	}{
		{"GET", "/stats/dashboard", http.StatusOK, `{"globalSuccessRate":50}`},
		{"POST", "/initiatives", http.StatusCreated, `{"imported":2}`},
		{"GET", "/stats/affinity?target=PP", http.StatusBadRequest, `{"error":"Bad Request"}`},
		{"GET", "/initiatives/999%2F1/consensus", http.StatusNotFound, `{"error":"Not Found"}`},
		{"POST", "/stats/analyze", http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			called := 0
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				called++
				w.WriteHeader(rt.status)
				w.Write([]byte(rt.body))
			})

			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest(rt.method, rt.path, nil))

			if called != 1 {
				t.Fatalf("Expected handler to run once, ran %d times", called)
			}
			if w.Code != rt.status {
				t.Errorf("Expected status %d, got %d", rt.status, w.Code)
			}
			if w.Body.String() != rt.body {
				t.Errorf("Expected body %s, got %s", rt.body, w.Body.String())
			}
		})
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	var seen string
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("generates an ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/stats/dashboard", nil))

		got := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("Expected a UUID request ID, got '%s'", got)
		}
		if seen != got {
			t.Errorf("Expected handler to see request ID %s, got %s", got, seen)
		}
	})

	t.Run("reuses incoming ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/stats/dashboard", nil)
		req.Header.Set(RequestIDHeader, "trace-42")
		w := httptest.NewRecorder()
		handler(w, req)

		if w.Header().Get(RequestIDHeader) != "trace-42" {
			t.Errorf("Expected request ID trace-42, got '%s'", w.Header().Get(RequestIDHeader))
		}
		if seen != "trace-42" {
			t.Errorf("Expected handler to see trace-42, got '%s'", seen)
		}
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
	})
}

func TestRequestID_Missing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("Expected empty request ID, got '%s'", got)
	}
}

func TestJSONResponse_Reports(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   interface{}
		want   string
	}{
		{
			name:   "affinity",
			status: http.StatusOK,
			data:   models.AffinityResponse{Target: "SUMAR", Reference: "PSOE", Affinity: 87},
			want:   `{"target":"SUMAR","reference":"PSOE","affinity":87}`,
		},
		{
			name:   "consensus metric",
			status: http.StatusOK,
			data:   models.ConsensusMetric{ConsensusIndex: 80, Label: models.LabelStrongAgreement, Color: models.ColorPositive},
			want:   `{"consensusIndex":80,"label":"` + models.LabelStrongAgreement + `","color":"` + models.ColorPositive + `"}`,
		},
		{
			name:   "party ranking",
			status: http.StatusOK,
			data:   []models.PartyAbsence{{Party: "JUNTS", Count: 4}, {Party: "PSOE", Count: 3}},
			want:   `[{"party":"JUNTS","count":4},{"party":"PSOE","count":3}]`,
		},
		{
			name:   "rejected import",
			status: http.StatusUnauthorized,
			data:   models.ErrorResponse{Error: "Unauthorized", Message: "invalid admin key"},
			want:   `{"error":"Unauthorized","message":"invalid admin key"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSONResponse(w, tt.status, tt.data)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.want {
				t.Errorf("Expected body %s, got %s", tt.want, got)
			}
		})
	}
}

func TestErrorResponse_StatusText(t *testing.T) {
	tests := map[int]string{
		http.StatusBadRequest:          "target and reference are required",
		http.StatusUnauthorized:        "missing admin key",
		http.StatusNotFound:            "initiative not found",
		http.StatusConflict:            "import requires a database source",
		http.StatusTooManyRequests:     "rate limit exceeded",
		http.StatusInternalServerError: "Failed to load initiatives",
	}

	for status, message := range tests {
		t.Run(http.StatusText(status), func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorResponse(w, status, message)

			if w.Code != status {
				t.Errorf("Expected status %d, got %d", status, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != http.StatusText(status) {
				t.Errorf("Expected error %q, got %q", http.StatusText(status), resp.Error)
			}
			if resp.Message != message {
				t.Errorf("Expected message %q, got %q", message, resp.Message)
			}
		})
	}
}

func TestCORS_DashboardClient(t *testing.T) {
	reached := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		JSONResponse(w, http.StatusCreated, models.ImportResponse{})
	}))

	t.Run("preflight for an authenticated import", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest("OPTIONS", "/initiatives", nil)
		req.Header.Set("Origin", "https://dashboard.congreso.test")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type, x-admin-key, x-request-id")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if reached {
			t.Error("Expected preflight to stop before the import handler")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://dashboard.congreso.test" {
			t.Errorf("Expected dashboard origin to be echoed, got %s", got)
		}

		allowed := w.Header().Get("Access-Control-Allow-Headers")
		for _, h := range []string{"Content-Type", "X-Admin-Key", RequestIDHeader} {
			if !strings.Contains(allowed, h) {
				t.Errorf("Expected %s in allowed headers %q", h, allowed)
			}
		}
		if methods := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "POST") {
			t.Errorf("Expected POST in allowed methods, got %s", methods)
		}
	})

	t.Run("import response exposes request ID", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest("POST", "/initiatives", strings.NewReader("[]"))
		req.Header.Set("Origin", "https://dashboard.congreso.test")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if !reached {
			t.Fatal("Expected import handler to run")
		}
		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Expose-Headers"); got != RequestIDHeader {
			t.Errorf("Expected %s to be exposed, got %q", RequestIDHeader, got)
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Error("Expected credentials to be allowed")
		}
	})

	t.Run("curl without origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/stats/participation", nil))

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard origin, got %s", got)
		}
	})
}

func TestGetClientIP_RateLimitKey(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"direct dashboard client", "", "", "198.51.100.7:52114", "198.51.100.7"},
		{"behind nginx", "", "198.51.100.7", "127.0.0.1:8080", "198.51.100.7"},
		{"behind load balancer", "198.51.100.7", "", "10.1.0.3:443", "198.51.100.7"},
		{"proxy chain keeps the origin client", "198.51.100.7, 10.1.0.3, 10.1.0.4", "", "127.0.0.1:8080", "198.51.100.7"},
		{"forwarded wins over real IP", "198.51.100.7", "203.0.113.9", "10.1.0.3:443", "198.51.100.7"},
		{"IPv6 client forwarded", "2001:db8::7", "", "127.0.0.1:8080", "2001:db8::7"},
		{"IPv6 remote keeps brackets", "", "", "[2001:db8::7]:52114", "[2001:db8::7]"},
		{"bare remote address", "", "", "198.51.100.7", "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/stats/analyze", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := GetClientIP(req); got != tt.want {
				t.Errorf("Expected IP %s, got %s", tt.want, got)
			}
		})
	}
}
