package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const sampleYAML = `
company:
  holdings:
    - name: Founders
      category: Founder
      shares: 8000000
    - name: Pool
      category: Option pool
      shares: 2000000
series:
  - name: Series A
    investment: 2000000
round:
  preMoneyValuation: 10000000
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := NewHandler(zap.NewNop(), 0, "test")
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/version")
	if err != nil {
		t.Fatalf("GET /api/version failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["version"] != "test" {
		t.Errorf("version = %q, expected test", payload["version"])
	}
}

func TestHandleVersionMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/version", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/version failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", resp.StatusCode)
	}
}

func TestHandleCapTableUpload(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "captable.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(sampleYAML)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	resp, err := http.Post(srv.URL+"/api/captable", writer.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /api/captable failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}

	var payload roundResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.PreRound.Rows) == 0 {
		t.Errorf("pre-round table empty")
	}
	if payload.PostRound == nil || payload.Conversion == nil {
		t.Fatalf("priced round missing from response")
	}
	if payload.Conversion.TotalShares != 12000000 {
		t.Errorf("total shares = %v, expected 12000000", payload.Conversion.TotalShares)
	}
	if payload.CSV == "" {
		t.Errorf("CSV missing from response")
	}
}

func TestHandleCapTableEditor(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]any{
		"config": map[string]any{
			"company": map[string]any{
				"holdings": []map[string]any{
					{"name": "Founders", "shares": 1000000},
				},
			},
			"round": map[string]any{
				"preMoneyValuation": 4000000,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	resp, err := http.Post(srv.URL+"/api/editor/captable", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/editor/captable failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}

	var response roundResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.PreRound.Rows) != 2 {
		t.Errorf("pre-round rows = %d, expected holding + total", len(response.PreRound.Rows))
	}
	if response.ConfigYAML == "" {
		t.Errorf("configYaml missing from response")
	}
}

func TestHandleConfigExportOrdering(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]any{
		"round":   map[string]any{"preMoneyValuation": 1000000},
		"company": map[string]any{"name": "Acme"},
		"output":  map[string]any{"format": "csv"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	resp, err := http.Post(srv.URL+"/api/editor/export", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/editor/export failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}

	var response map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	yamlOut := response["configYaml"]
	companyIdx := strings.Index(yamlOut, "company:")
	roundIdx := strings.Index(yamlOut, "round:")
	outputIdx := strings.Index(yamlOut, "output:")
	if companyIdx == -1 || roundIdx == -1 || outputIdx == -1 {
		t.Fatalf("exported yaml missing sections: %q", yamlOut)
	}
	if !(companyIdx < roundIdx && roundIdx < outputIdx) {
		t.Errorf("exported yaml sections out of order: %q", yamlOut)
	}
}

func TestHandleCapTableEditorBadPayload(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/editor/captable", "application/json", strings.NewReader(`{"config": 42}`))
	if err != nil {
		t.Fatalf("POST /api/editor/captable failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", resp.StatusCode)
	}
}
