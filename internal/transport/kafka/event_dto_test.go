package kafka_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dankdash1/dispatch-service/internal/service/orders"
	"github.com/dankdash1/dispatch-service/internal/transport/kafka"
)

func TestToDomain_TrimsAndCopiesFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	dto := kafka.EventDTO{
		OrderID:   42,
		Status:    "  confirmed  ",
		CreatedAt: ts,
	}

	got := kafka.ToDomain(dto)

	require.Equal(t, orders.Event{
		OrderID:   42,
		Status:    "confirmed",
		CreatedAt: ts,
	}, got)
}
