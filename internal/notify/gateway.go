package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/dankdash1/dispatch-service/internal/domain"
	"github.com/dankdash1/dispatch-service/internal/logx"
)

// Customer-facing one-liners per lifecycle state.
var statusMessages = map[domain.DeliveryStatus]string{
	domain.DeliveryAssigned:  "Your order has been assigned to a driver",
	domain.DeliveryPickedUp:  "Your order has been picked up and is on the way",
	domain.DeliveryInTransit: "Your order is in transit",
	domain.DeliveryDelivered: "Your order has been delivered",
	domain.DeliveryFailed:    "There was an issue with your delivery",
}

type counter interface {
	Inc()
}

// Gateway fans dispatch events out to customers and drivers over email
// and SMS. Delivery is best effort: a failed send is counted and logged,
// never surfaced to the caller, so messaging outages cannot stall
// dispatch.
type Gateway struct {
	email    Sender
	sms      Sender
	failures counter
	logger   logx.Logger
}

// NewGateway creates a notification Gateway. The failure counter may be nil.
func NewGateway(email, sms Sender, failures counter, logger logx.Logger) *Gateway {
	return &Gateway{email: email, sms: sms, failures: failures, logger: logger}
}

// AssignmentCreated tells the driver about their new run and the
// customer about their driver.
func (g *Gateway) AssignmentCreated(ctx context.Context, order domain.Order, driver domain.Driver, eta time.Time) {
	etaText := formatETA(&eta)

	g.send(ctx, g.email, Message{
		Channel:   ChannelEmail,
		Recipient: driver.Email,
		Subject:   fmt.Sprintf("New Delivery Assignment - Order %s", order.OrderNumber),
		Body: fmt.Sprintf(
			"Hi %s, you have been assigned order %s for %s (%s, %s %s). Estimated delivery: %s.",
			driver.Name, order.OrderNumber, order.CustomerName,
			order.ShippingAddress.Street, order.ShippingAddress.City, order.ShippingAddress.Zip,
			etaText,
		),
	})
	g.send(ctx, g.sms, Message{
		Channel:   ChannelSMS,
		Recipient: driver.Phone,
		Body: fmt.Sprintf("DankDash: New delivery assigned! Order %s to %s. Check email for details.",
			order.OrderNumber, order.CustomerName),
	})

	g.send(ctx, g.email, Message{
		Channel:   ChannelEmail,
		Recipient: order.CustomerEmail,
		Subject:   fmt.Sprintf("Driver Assigned - Order %s", order.OrderNumber),
		Body: fmt.Sprintf(
			"Hi %s, %s (%s, rated %.1f/5.0) has been assigned to deliver your order %s. Estimated delivery: %s.",
			order.CustomerName, driver.Name, driver.VehicleType, driver.Rating, order.OrderNumber, etaText,
		),
	})
	if order.CustomerPhone != "" {
		g.send(ctx, g.sms, Message{
			Channel:   ChannelSMS,
			Recipient: order.CustomerPhone,
			Body: fmt.Sprintf("DankDash: Driver %s assigned to order %s. ETA: %s",
				driver.Name, order.OrderNumber, etaText),
		})
	}
}

// StatusChanged tells the customer about delivery progress. Unknown
// statuses are silently skipped.
func (g *Gateway) StatusChanged(ctx context.Context, order domain.Order, driver *domain.Driver, d domain.Delivery) {
	text, ok := statusMessages[d.Status]
	if !ok {
		return
	}

	driverName := "N/A"
	if driver != nil {
		driverName = driver.Name
	}
	body := fmt.Sprintf("Hi %s, %s. Order %s, driver %s.",
		order.CustomerName, text, order.OrderNumber, driverName)
	if d.Notes != "" {
		body += " Notes: " + d.Notes
	}

	g.send(ctx, g.email, Message{
		Channel:   ChannelEmail,
		Recipient: order.CustomerEmail,
		Subject:   fmt.Sprintf("Order Update - %s", order.OrderNumber),
		Body:      body,
	})
	if order.CustomerPhone != "" {
		g.send(ctx, g.sms, Message{
			Channel:   ChannelSMS,
			Recipient: order.CustomerPhone,
			Body:      fmt.Sprintf("DankDash: %s - Order %s", text, order.OrderNumber),
		})
	}
}

func (g *Gateway) send(ctx context.Context, s Sender, m Message) {
	if s == nil || m.Recipient == "" {
		return
	}
	if err := s.Send(ctx, m); err != nil {
		if g.failures != nil {
			g.failures.Inc()
		}
		g.logger.Warn("notification send failed",
			logx.String("channel", string(m.Channel)),
			logx.Any("error", err),
		)
	}
}

func formatETA(eta *time.Time) string {
	if eta == nil || eta.IsZero() {
		return "ASAP"
	}
	return eta.Format("3:04 PM")
}
