package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type replierStub struct {
	reply string
	last  string
}

func (s *replierStub) Reply(ctx context.Context, message string) string {
	s.last = message
	return s.reply
}

func serve(t *testing.T, stub *replierStub, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewHandler(stub))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestChatQuery(t *testing.T) {
	stub := &replierStub{reply: "Liste des bénéficiaires:\n"}

	req := httptest.NewRequest(http.MethodGet, "/chat?message=lister", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp ChatResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Response != stub.reply {
		t.Fatalf("unexpected reply: %q", resp.Response)
	}
	if resp.ConversationID == "" {
		t.Fatal("expected a conversation id")
	}
	if stub.last != "lister" {
		t.Fatalf("expected the message forwarded to the agent, got %q", stub.last)
	}
}

func TestChatQuery_MissingMessageIs400(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rr := serve(t, &replierStub{}, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestChatBody(t *testing.T) {
	stub := &replierStub{reply: "Bonjour !"}

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(`{"message":"Bonjour"}`))
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if stub.last != "Bonjour" {
		t.Fatalf("expected the message forwarded to the agent, got %q", stub.last)
	}
}

func TestChatBody_EmptyMessageIs400(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(`{}`))
	rr := serve(t, &replierStub{}, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
