package service

import (
	"context"

	"zeorag-be/internal/dto"
	"zeorag-be/internal/pkg/logger"
	"zeorag-be/pkg/events"
	pktNats "zeorag-be/pkg/nats"

	"github.com/google/uuid"
)

// IngestionDelivery defines how to push real-time ingestion updates.
// Typically implemented by the WebSocket Hub.
type IngestionDelivery interface {
	Broadcast(event dto.IngestionEvent)
}

// NotificationService bridges the event bus and connected UI clients: it
// listens for ingestion outcomes and pushes them over websockets.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   IngestionDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery IngestionDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.document.>", "ingestion-notifier", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start event subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Listening for document events", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	documentId, err := uuid.Parse(stringField(payload, "document_id"))
	if err != nil {
		s.logger.Warn("NotificationService", "Event without a valid document_id, dropping", map[string]interface{}{
			"type": event.EventType(),
		})
		return nil
	}

	notification := dto.IngestionEvent{
		DocumentId: documentId,
		Name:       stringField(payload, "name"),
	}

	switch event.EventType() {
	case events.TypeDocumentIngested:
		notification.Status = "ready"
		if chunks, ok := payload["chunks"].(float64); ok {
			notification.Chunks = int(chunks)
		}
	case events.TypeDocumentIngestFailed:
		notification.Status = "failed"
		notification.Error = stringField(payload, "reason")
	default:
		return nil
	}

	s.delivery.Broadcast(notification)
	return nil
}

func stringField(payload map[string]interface{}, key string) string {
	v, _ := payload[key].(string)
	return v
}
