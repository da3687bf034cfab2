package whatsapp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/commands"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
	client "github.com/mamadbah2/stockdesk/pkg/clients/whatsapp"
)

type recordingClient struct {
	sent []client.SendTextMessageRequest
}

func (r *recordingClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	r.sent = append(r.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

type stubDispatcher struct {
	reply string
	err   error
}

func (s stubDispatcher) HandleCommand(context.Context, models.Command, string) (string, error) {
	return s.reply, s.err
}

func payloadWithText(from, body string) models.WebhookPayload {
	return models.WebhookPayload{Entry: []models.WebhookEntry{{
		Changes: []models.WebhookChange{{Value: models.WebhookValue{Messages: []models.InboundMessage{{
			From: from, ID: "wamid.1", Type: "text", Text: &models.TextContent{Body: body},
		}}}}},
	}}}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{VerifyToken: "secret"}, &recordingClient{}, stubDispatcher{}, nil)

	if got, err := svc.VerifyWebhookToken("subscribe", "secret", "42"); err != nil || got != "42" {
		t.Errorf("expected challenge echo, got %q, %v", got, err)
	}
	if _, err := svc.VerifyWebhookToken("subscribe", "wrong", "42"); err == nil {
		t.Error("expected invalid token error")
	}
	if _, err := svc.VerifyWebhookToken("unsubscribe", "secret", "42"); err == nil {
		t.Error("expected unsupported mode error")
	}
}

func TestHandleWebhookRepliesWithDispatchResult(t *testing.T) {
	wa := &recordingClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, stubDispatcher{reply: "Stock: 4 products"}, nil)

	if err := svc.HandleWebhook(context.Background(), payloadWithText("2547000", "/stock")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	if len(wa.sent) != 1 || wa.sent[0].To != "2547000" || wa.sent[0].Body != "Stock: 4 products" {
		t.Errorf("unexpected sends %+v", wa.sent)
	}
}

func TestHandleWebhookErrorReplies(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unknown", commands.ErrUnsupportedCommand, "Unknown command."},
		{"expired", &backend.APIError{Status: http.StatusUnauthorized, Message: "jwt expired"}, "session has expired"},
		{"upstream", errors.New("boom"), "try again later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wa := &recordingClient{}
			svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, stubDispatcher{err: tt.err}, nil)

			if err := svc.HandleWebhook(context.Background(), payloadWithText("1", "/x")); err != nil {
				t.Fatalf("HandleWebhook: %v", err)
			}
			if len(wa.sent) != 1 || !strings.Contains(wa.sent[0].Body, tt.want) {
				t.Errorf("expected reply containing %q, got %+v", tt.want, wa.sent)
			}
		})
	}
}

func TestHandleWebhookIgnoresNonText(t *testing.T) {
	wa := &recordingClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, stubDispatcher{reply: "x"}, nil)

	payload := models.WebhookPayload{Entry: []models.WebhookEntry{{
		Changes: []models.WebhookChange{{Value: models.WebhookValue{Messages: []models.InboundMessage{{From: "1", Type: "image"}}}}},
	}}}
	if err := svc.HandleWebhook(context.Background(), payload); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	if len(wa.sent) != 0 {
		t.Errorf("expected no reply, got %+v", wa.sent)
	}
}
