package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dankdash1/dispatch-service/internal/notify"
)

func TestWebhookSender_Send(t *testing.T) {
	t.Parallel()

	var got notify.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := notify.NewWebhookSender(srv.URL, time.Second)

	err := s.Send(context.Background(), notify.Message{
		Channel:   notify.ChannelSMS,
		Recipient: "+13105550142",
		Body:      "DankDash: test",
	})

	require.NoError(t, err)
	require.Equal(t, notify.ChannelSMS, got.Channel)
	require.Equal(t, "+13105550142", got.Recipient)
}

func TestWebhookSender_Send_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := notify.NewWebhookSender(srv.URL, time.Second)

	err := s.Send(context.Background(), notify.Message{Channel: notify.ChannelEmail, Recipient: "a@b.c"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestWebhookSender_Send_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listens anymore

	s := notify.NewWebhookSender(srv.URL, time.Second)

	err := s.Send(context.Background(), notify.Message{Channel: notify.ChannelEmail, Recipient: "a@b.c"})
	require.Error(t, err)
}
