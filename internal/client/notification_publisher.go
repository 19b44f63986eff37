package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

// natsPublisher is the subset of *nats.Conn the publisher needs.
type natsPublisher interface {
	Publish(subject string, data []byte) error
}

// NotificationPublisher publishes workflow events to NATS for the
// notification service.
//
// Subject convention: <prefix>.<event_type>
// Event types: record_submitted, record_approved, record_rejected,
// product_advanced, user_pending_review, account_approved, account_rejected
//
// Publishing is non-fatal: errors are logged and never returned, so a NATS
// outage never blocks an approval or a stage move.
type NotificationPublisher struct {
	conn   natsPublisher
	prefix string
	log    *logger.Logger
}

// NotificationEvent is the JSON schema published to NATS.
type NotificationEvent struct {
	EventType    string                 `json:"event_type"`
	ActorID      string                 `json:"actor_id"`
	Recipients   []string               `json:"recipients"`
	ResourceType string                 `json:"resource_type,omitempty"`
	ResourceID   string                 `json:"resource_id,omitempty"`
	IsActionable bool                   `json:"is_actionable,omitempty"`
	Category     string                 `json:"category"`
	OccurredAt   time.Time              `json:"occurred_at"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
}

// ConnectNATS dials the NATS server with reconnect handlers that log through
// the service logger.
func ConnectNATS(url, name string, log *logger.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}

// NewNotificationPublisher creates a publisher. A nil conn makes every
// publish a no-op.
func NewNotificationPublisher(conn *nats.Conn, prefix string, log *logger.Logger) *NotificationPublisher {
	p := &NotificationPublisher{prefix: prefix, log: log.Named("notifications")}
	if conn != nil {
		p.conn = conn
	}
	return p
}

// Notify publishes an event to <prefix>.<eventType>.
func (p *NotificationPublisher) Notify(_ context.Context, eventType, resourceType, resourceID, actorID string, recipients []string, payload map[string]interface{}) {
	if p.conn == nil {
		return
	}
	if len(recipients) == 0 {
		return
	}

	event := &NotificationEvent{
		EventType:    eventType,
		ActorID:      actorID,
		Recipients:   recipients,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IsActionable: eventType == "record_submitted" || eventType == "user_pending_review",
		Category:     "ops_workflow",
		OccurredAt:   time.Now().UTC(),
		Payload:      payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.Warn().Err(err).Str("event_type", eventType).Msg("notification: failed to marshal event")
		return
	}

	subject := fmt.Sprintf("%s.%s", p.prefix, eventType)
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.Warn().Err(err).
			Str("subject", subject).
			Str("resource_id", resourceID).
			Msg("notification: failed to publish NATS event (non-fatal)")
		return
	}

	p.log.Debug().
		Str("subject", subject).
		Str("resource_id", resourceID).
		Int("recipients", len(recipients)).
		Msg("notification: event published")
}
