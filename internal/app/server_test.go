package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/markdave123-py/docsight/internal/config"
	"github.com/markdave123-py/docsight/internal/models"
	"github.com/markdave123-py/docsight/internal/services"
)

type echoDispatcher struct{}

func (echoDispatcher) Dispatch(_ context.Context, doc models.RawDocument) (string, error) {
	return doc.Filename, nil
}

type okFetcher struct{}

func (okFetcher) Fetch(context.Context, string) (*models.RemoteDocument, error) {
	return &models.RemoteDocument{StatusCode: http.StatusOK, ContentType: "application/pdf"}, nil
}

func testConfig(secret string) *config.Config {
	return &config.Config{
		Host:               "127.0.0.1",
		Port:               "0",
		MaxUploadMB:        1,
		JWTSecret:          secret,
		CORSAllowedOrigins: []string{"*"},
	}
}

func TestRoutes(t *testing.T) {
	srv := NewServer(testConfig(""), services.NewDocumentService(echoDispatcher{}, okFetcher{}))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/health status = %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/ocr/url", "application/json", strings.NewReader(`{"url":"https://h/download"}`))
	if err != nil {
		t.Fatalf("POST /ocr/url: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/ocr/url status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/ocr")
	if err != nil {
		t.Fatalf("GET /ocr: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /ocr status = %d, want 405", resp.StatusCode)
	}
}

func TestRoutesRequireTokenWhenConfigured(t *testing.T) {
	srv := NewServer(testConfig("s3cret"), services.NewDocumentService(echoDispatcher{}, okFetcher{}))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/health must stay public, got %d", resp.StatusCode)
	}

	post := func(token string) int {
		req, _ := http.NewRequest(http.MethodPost, ts.URL+"/ocr/url", strings.NewReader(`{"url":"https://h/a.pdf"}`))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("POST /ocr/url: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if got := post(""); got != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", got)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u-1"}).SignedString([]byte("s3cret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if got := post(token); got != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200", got)
	}
}
