package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

type ChangeAppointmentMessage struct {
	SellerID    string `json:"seller_id"`
	Appointment domain.Appointment
}

func (l *ChangeFeedListener) startAppointmentQueue(ctx context.Context) error {
	return l.consumeQueue(
		ctx,
		l.cfg.RabbitMq.QueueConfig.AppointmentQueueName,
		l.cfg.RabbitMq.QueueConfig.AppointmentQueueBind,
		l.cfg.RabbitMq.QueueConfig.AppointmentQueueExchange,
		l.processAppointmentMessage,
	)
}

// Визиты в кэше не лежат, но смена визита в бэкенде может прийти из внешней
// админки. Сбрасываем кэш конфигурации продавца, чтобы следующий запрос слотов
// пересчитался по свежим данным.
func (l *ChangeFeedListener) processAppointmentMessage(ctx context.Context, msg amqp.Delivery) error {
	changeMessageRoutingKey, err := l.parseChangeMessageRoutingKey(ctx, msg)
	if err != nil {
		return err
	}

	if changeMessageRoutingKey.ResourceType != ChangeResourceTypeAppointment {
		return nil
	}

	var msgJson ChangeAppointmentMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.logger.Info("appointment.message.received", out.LogFields{
		"sellerId":      msgJson.SellerID,
		"appointmentId": msgJson.Appointment.ID,
	})

	if changeMessageRoutingKey.HitType == ChangeHitTypeInvalidate {
		go l.useCase.InvalidateSellerCache(ctx, msgJson.SellerID)

		l.logger.Info("appointment.message.invalidated", out.LogFields{
			"sellerId": msgJson.SellerID,
		})
	}

	return nil
}
