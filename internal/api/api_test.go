package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CareBridge/MedAssist/internal/agent"
	"github.com/CareBridge/MedAssist/internal/models"
	"github.com/CareBridge/MedAssist/internal/store"
)

func newTestServer(t *testing.T, directives ...string) (*Server, *store.InMemoryStore) {
	t.Helper()
	st := store.NewInMemoryStore()
	svc := agent.NewService(st, agent.NewMockDirectiveProvider(directives...))
	return NewServer(svc), st
}

func decodeResponse(t *testing.T, body *bytes.Buffer) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHealthHandler(t *testing.T) {
	srv, _ := newTestServer(t, "SuggestFollowUpAction")
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec.Body)
	if resp.Status != models.APIStatusOK {
		t.Errorf("expected ok status, got %q", resp.Status)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request ID header")
	}
}

func TestChatHandler(t *testing.T) {
	srv, st := newTestServer(t, "AnalyzeHealthQuestion: question=head hurts, symptom=headache")

	body, _ := json.Marshal(models.ChatRequest{UserID: "user_api", Message: "我头痛三天了"})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec.Body)
	if resp.Status != models.APIStatusOK {
		t.Errorf("expected ok status, got %q", resp.Status)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("expected result object, got %T", resp.Result)
	}
	if !strings.Contains(result["response"].(string), "Health question analysis:") {
		t.Errorf("expected action result text, got %v", result["response"])
	}

	// The turn must have persisted the record.
	saved, err := st.GetUserRecord("user_api")
	if err != nil || saved == nil {
		t.Fatalf("expected persisted record, got %v, %v", saved, err)
	}
}

func TestChatHandlerMissingFields(t *testing.T) {
	srv, _ := newTestServer(t, "SuggestFollowUpAction")

	cases := []models.ChatRequest{
		{UserID: "", Message: "hello"},
		{UserID: "user_x", Message: ""},
	}
	for _, c := range cases {
		body, _ := json.Marshal(c)
		req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		srv.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %+v, got %d", c, rec.Code)
		}
		if resp := decodeResponse(t, rec.Body); resp.Status != models.APIStatusError {
			t.Errorf("expected error status, got %q", resp.Status)
		}
	}
}

func TestChatHandlerInvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t, "SuggestFollowUpAction")
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestUserSummaryHandler(t *testing.T) {
	srv, st := newTestServer(t, "SuggestFollowUpAction")

	record := models.NewUserRecord("user_sum")
	record.UpdateBasicInfo(map[string]interface{}{"name": "Lu Han"})
	if err := st.SaveUserRecord(record); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/user_sum/summary", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec.Body)
	result := resp.Result.(map[string]interface{})
	if !strings.Contains(result["summary"].(string), "Lu Han") {
		t.Errorf("expected summary text, got %v", result["summary"])
	}
}

func TestUserSummaryHandlerNotFound(t *testing.T) {
	srv, _ := newTestServer(t, "SuggestFollowUpAction")
	req := httptest.NewRequest(http.MethodGet, "/api/users/user_nope/summary", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateBasicInfoHandler(t *testing.T) {
	srv, st := newTestServer(t, "SuggestFollowUpAction")

	body := []byte(`{"name": "Xu Jing", "favorite_color": "blue"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/user_bi/basic-info", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	saved, err := st.GetUserRecord("user_bi")
	if err != nil || saved == nil {
		t.Fatalf("expected persisted record, got %v, %v", saved, err)
	}
	if saved.BasicInfo["name"] != "Xu Jing" {
		t.Errorf("expected name persisted, got %v", saved.BasicInfo["name"])
	}
	if _, ok := saved.BasicInfo["favorite_color"]; ok {
		t.Error("unknown key must be skipped")
	}
}
