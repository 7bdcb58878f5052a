package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/dankdash1/dispatch-service/internal/config"
	"github.com/dankdash1/dispatch-service/internal/logx"
	"github.com/dankdash1/dispatch-service/internal/notify"
)

type sendersOut struct {
	dig.Out

	Email notify.Sender `name:"email_sender"`
	SMS   notify.Sender `name:"sms_sender"`
}

// newSenders wires webhook senders from config. An empty endpoint leaves
// the sender nil and the gateway skips that channel.
func newSenders(cfg *config.Config) sendersOut {
	var out sendersOut
	if cfg.Notify.EmailEndpoint != "" {
		out.Email = notify.NewWebhookSender(cfg.Notify.EmailEndpoint, cfg.Notify.Timeout)
	}
	if cfg.Notify.SMSEndpoint != "" {
		out.SMS = notify.NewWebhookSender(cfg.Notify.SMSEndpoint, cfg.Notify.Timeout)
	}
	return out
}

type gatewayIn struct {
	dig.In

	Email    notify.Sender      `name:"email_sender" optional:"true"`
	SMS      notify.Sender      `name:"sms_sender" optional:"true"`
	Failures prometheus.Counter `name:"notification_failures_total"`
	Logger   logx.Logger
}

func newGateway(in gatewayIn) *notify.Gateway {
	return notify.NewGateway(in.Email, in.SMS, in.Failures, in.Logger)
}

func registerNotify(container *dig.Container) error {
	return provideAll(container,
		newSenders,
		newGateway,
	)
}
