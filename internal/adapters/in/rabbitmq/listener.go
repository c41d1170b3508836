package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/config"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/in"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ChangeFeedListener слушает ленту изменений бэкенда и инвалидирует кэши
type ChangeFeedListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.VisitSchedulerUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	ChangeHitType      string
	ChangeResourceType string
)

type ChangeMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType ChangeResourceType
	HitType      ChangeHitType
}

const (
	ChangeResourceTypeAppointment        ChangeResourceType = "appointment"
	ChangeResourceTypeAvailabilityConfig ChangeResourceType = "availabilityconfig"
	ChangeResourceTypeStoreSettings      ChangeResourceType = "storesettings"
)

const (
	ChangeHitTypeStore      ChangeHitType = "store"
	ChangeHitTypeInvalidate ChangeHitType = "invalidate"
)

func NewChangeFeedListener(useCase in.VisitSchedulerUseCase, cfg *config.Config, logger out.LoggerPort) (*ChangeFeedListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMq.AmqpUri,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &ChangeFeedListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *ChangeFeedListener) Start(ctx context.Context) error {
	var err error
	err = l.startAppointmentQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.AppointmentQueueName,
	})
	err = l.startAvailabilityQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("availability.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.AvailabilityQueueName,
	})
	err = l.startSettingsQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("settings.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.SettingsQueueName,
	})

	return nil
}

func (l *ChangeFeedListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// consumeQueue объявляет очередь, привязывает ее к exchange и запускает обработку
func (l *ChangeFeedListener) consumeQueue(ctx context.Context, name, bind, exchange string, process func(context.Context, amqp.Delivery) error) error {
	queue, err := l.channel.QueueDeclare(
		name,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}
	err = l.channel.QueueBind(
		queue.Name,
		bind,
		exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := process(ctx, msg); err != nil {
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

// Пример routingKey:
// garage16.visit-scheduler-svc.appointment.create.invalidate
// garage16.visit-scheduler-svc.availabilityconfig.update.invalidate
// garage16.visit-scheduler-svc.storesettings.update.invalidate
func (l *ChangeFeedListener) parseChangeMessageRoutingKey(ctx context.Context, msg amqp.Delivery) (ChangeMessageRoutingKey, error) {
	routingKey := msg.RoutingKey
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return ChangeMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return ChangeMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: ChangeResourceType(parts[2]),
		HitType:      ChangeHitType(parts[4]),
	}, nil
}
