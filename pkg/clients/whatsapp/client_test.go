package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mamadbah2/stockdesk/internal/config"
)

func TestSendTextMessage(t *testing.T) {
	var got textPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v21.0/12345/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer server.Close()

	c := NewClient(config.WhatsAppConfig{BaseURL: server.URL, APIVersion: "v21.0", AccessToken: "token", PhoneNumberID: "12345"})
	resp, err := c.SendTextMessage(context.Background(), SendTextMessageRequest{To: "2547000", Body: "hello"})
	if err != nil {
		t.Fatalf("SendTextMessage: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].ID != "wamid.1" {
		t.Errorf("unexpected response %+v", resp)
	}
	if got.MessagingProduct != "whatsapp" || got.To != "2547000" || got.Text.Body != "hello" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestSendTextMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
	}))
	defer server.Close()

	c := NewClient(config.WhatsAppConfig{BaseURL: server.URL, APIVersion: "v21.0", PhoneNumberID: "1"})
	_, err := c.SendTextMessage(context.Background(), SendTextMessageRequest{To: "x", Body: strings.Repeat("a", 5000)})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Detail.Code != 100 {
		t.Errorf("unexpected error %+v", apiErr)
	}
}
