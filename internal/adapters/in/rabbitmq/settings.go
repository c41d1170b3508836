package rabbitmq

import (
	"context"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

func (l *ChangeFeedListener) startSettingsQueue(ctx context.Context) error {
	return l.consumeQueue(
		ctx,
		l.cfg.RabbitMq.QueueConfig.SettingsQueueName,
		l.cfg.RabbitMq.QueueConfig.SettingsQueueBind,
		l.cfg.RabbitMq.QueueConfig.SettingsQueueExchange,
		l.processSettingsMessage,
	)
}

// Настройки площадки затрагивают слоты всех продавцов, поэтому при их смене
// сбрасываем все кэши целиком
func (l *ChangeFeedListener) processSettingsMessage(ctx context.Context, msg amqp.Delivery) error {
	changeMessageRoutingKey, err := l.parseChangeMessageRoutingKey(ctx, msg)
	if err != nil {
		return err
	}

	if changeMessageRoutingKey.ResourceType != ChangeResourceTypeStoreSettings {
		return nil
	}

	if changeMessageRoutingKey.HitType == ChangeHitTypeInvalidate {
		go l.useCase.InvalidateAllCache(ctx)

		l.logger.Info("settings.message.invalidated", out.LogFields{
			"store_settings_cache": true,
			"availability_cache":   true,
		})
	}

	return nil
}
