package notifications

import (
	"context"

	"driftwood/internal/shared/config"
	"driftwood/pkg/logger"
)

// Service publishes reservation lifecycle events. Publishing is best effort
// from the caller's point of view: reservation transitions commit regardless
// of broker health, so failures are logged and swallowed here.
type Service interface {
	NotifyReservationEvent(ctx context.Context, event *ReservationEvent)
	Close() error
}

type service struct {
	producer Producer
	log      *logger.Logger
}

// NewService wires the Kafka producer behind the notification service. When
// Kafka is disabled in config it returns a no-op service so callers never
// need a nil check.
func NewService(cfg config.KafkaConfig, log *logger.Logger) (Service, error) {
	if !cfg.Enabled {
		return &noopService{}, nil
	}

	producerCfg := DefaultKafkaProducerConfig()
	producerCfg.Brokers = cfg.Brokers
	producerCfg.Topic = cfg.Topic

	producer, err := NewKafkaProducer(producerCfg)
	if err != nil {
		return nil, err
	}

	return &service{
		producer: producer,
		log:      log,
	}, nil
}

func (s *service) NotifyReservationEvent(ctx context.Context, event *ReservationEvent) {
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.WithError(err).Warn("Failed to publish reservation event",
			"event_type", string(event.Type),
			"reservation_id", event.ReservationID.String())
	}
}

func (s *service) Close() error {
	return s.producer.Close()
}

type noopService struct{}

func (n *noopService) NotifyReservationEvent(ctx context.Context, event *ReservationEvent) {}

func (n *noopService) Close() error { return nil }
