package service

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/egovmeet/video-verification/internal/queue"
)

// LifecyclePublisher sends meeting lifecycle events to RabbitMQ. It dials per
// publish and swallows failures with a warning: event delivery is best-effort
// and must never fail the operation that produced it.
type LifecyclePublisher struct {
	url string
	log *zap.Logger
}

func NewLifecyclePublisher(url string, log *zap.Logger) *LifecyclePublisher {
	return &LifecyclePublisher{url: url, log: log}
}

func (p *LifecyclePublisher) Publish(ctx context.Context, ev queue.MeetingLifecycleEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("lifecycle publish: marshal failed", zap.Error(err))
		return
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("lifecycle publish: dial failed",
			zap.String("event", ev.Event), zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("lifecycle publish: channel open failed", zap.Error(err))
		return
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.LifecycleQueueName, true, false, false, false, nil); err != nil {
		p.log.Warn("lifecycle publish: queue declare failed", zap.Error(err))
		return
	}

	err = ch.PublishWithContext(ctx, "", queue.LifecycleQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.log.Warn("lifecycle publish: publish failed",
			zap.String("event", ev.Event), zap.Error(err))
		return
	}
	p.log.Info("lifecycle event published",
		zap.String("event", ev.Event), zap.String("meeting_id", ev.MeetingID))
}
