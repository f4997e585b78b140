package securityevents

import (
	"context"
	"encoding/json"
	"time"

	e "tickex/internal/core/domain/errors"
	"tickex/internal/core/domain/logging"
	"tickex/internal/core/domain/user"
	"tickex/internal/rabbitmq"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ publishes account security events for the notification
// subsystem. Events are informational, consumers must tolerate loss.
type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
	now        func() time.Time
}

func NewRabbitMQ(
	log logging.Logger,
	channel *rabbitmq.Channel,
	exchange string,
	routingKey string,
	now func() time.Time,
) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey, now: now}
}

type passwordChangedEvent struct {
	UserID     int64     `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (p *RabbitMQ) PublishPasswordChanged(ctx context.Context, u user.User) error {
	body, err := json.Marshal(passwordChangedEvent{
		UserID:     int64(u.ID),
		OccurredAt: p.now(),
	})
	if err != nil {
		return err
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.log.Error(ctx, "Could not publish security event.", logging.Entry("userID", u.ID), logging.Entry("err", err))
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("routingKey", p.routingKey),
		logging.Entry("userID", u.ID),
	)
	return nil
}
