package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

type ChangeAvailabilityMessage struct {
	SellerID string `json:"seller_id"`
}

func (l *ChangeFeedListener) startAvailabilityQueue(ctx context.Context) error {
	return l.consumeQueue(
		ctx,
		l.cfg.RabbitMq.QueueConfig.AvailabilityQueueName,
		l.cfg.RabbitMq.QueueConfig.AvailabilityQueueBind,
		l.cfg.RabbitMq.QueueConfig.AvailabilityQueueExchange,
		l.processAvailabilityMessage,
	)
}

func (l *ChangeFeedListener) processAvailabilityMessage(ctx context.Context, msg amqp.Delivery) error {
	changeMessageRoutingKey, err := l.parseChangeMessageRoutingKey(ctx, msg)
	if err != nil {
		return err
	}

	if changeMessageRoutingKey.ResourceType != ChangeResourceTypeAvailabilityConfig {
		return nil
	}

	var msgJson ChangeAvailabilityMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	if changeMessageRoutingKey.HitType == ChangeHitTypeInvalidate {
		go l.useCase.InvalidateSellerCache(ctx, msgJson.SellerID)

		l.logger.Info("availability.message.invalidated", out.LogFields{
			"sellerId": msgJson.SellerID,
		})
	}

	return nil
}
