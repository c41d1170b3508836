package config

import (
	"strings"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/Sao_Paulo"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Backend struct {
		URL      string `env:"BACKEND_URL"`
		Username string `env:"BACKEND_USERNAME"`
		Password string `env:"BACKEND_PASSWORD"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"visit_scheduler:visit_scheduler"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMq struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri string `env:"RABBITMQ_URL"`

		QueueConfig struct {
			AppointmentQueueName     string `env:"RABBITMQ_APPOINTMENT_QUEUE" envDefault:"garage16.visit-scheduler-svc.appointment"`
			AppointmentQueueBind     string `env:"RABBITMQ_APPOINTMENT_QUEUE_BIND" envDefault:"garage16.visit-scheduler-svc.appointment.#"`
			AppointmentQueueExchange string `env:"RABBITMQ_APPOINTMENT_QUEUE_EXCHANGE" envDefault:"garage16"`

			AvailabilityQueueName     string `env:"RABBITMQ_AVAILABILITY_QUEUE" envDefault:"garage16.visit-scheduler-svc.availabilityconfig"`
			AvailabilityQueueBind     string `env:"RABBITMQ_AVAILABILITY_QUEUE_BIND" envDefault:"garage16.visit-scheduler-svc.availabilityconfig.#"`
			AvailabilityQueueExchange string `env:"RABBITMQ_AVAILABILITY_QUEUE_EXCHANGE" envDefault:"garage16"`

			SettingsQueueName     string `env:"RABBITMQ_SETTINGS_QUEUE" envDefault:"garage16.visit-scheduler-svc.storesettings"`
			SettingsQueueBind     string `env:"RABBITMQ_SETTINGS_QUEUE_BIND" envDefault:"garage16.visit-scheduler-svc.storesettings.#"`
			SettingsQueueExchange string `env:"RABBITMQ_SETTINGS_QUEUE_EXCHANGE" envDefault:"garage16"`
		}
	}

	Cache struct {
		Enabled          bool `env:"CACHE_ENABLED"`
		AvailabilitySize int  `env:"CACHE_AVAILABILITY_SIZE" envDefault:"1000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Разделение basic-клиентов из строки конфигурации
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// Кэш без ленты инвалидации протухает, поэтому без RabbitMQ его не включаем
	if !cfg.RabbitMq.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
