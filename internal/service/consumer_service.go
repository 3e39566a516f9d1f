package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"zeorag-be/internal/constant"
	"zeorag-be/internal/dto"
	"zeorag-be/internal/entity"
	"zeorag-be/internal/pkg/logger"
	"zeorag-be/internal/repository/specification"
	"zeorag-be/internal/repository/unitofwork"
	"zeorag-be/pkg/embedding"
	"zeorag-be/pkg/events"
	pktNats "zeorag-be/pkg/nats"
	"zeorag-be/pkg/objectstore"
	"zeorag-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the ingestion worker: it pulls queued documents,
// splits them into chunks, embeds each chunk and marks the document ready
// for retrieval.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	store             *objectstore.Client
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	store *objectstore.Client,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		store:             store,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ingest", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads never become valid on retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.log.Error("ingest", "failed to fetch document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if document == nil {
		cs.log.Warn("ingest", "document not found, dropping", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
		})
		msg.Ack()
		return
	}

	if err := cs.ingest(ctx, uow, document); err != nil {
		cs.log.Error("ingest", "ingestion failed", map[string]interface{}{
			"document_id": document.Id.String(),
			"name":        document.Name,
			"error":       err.Error(),
		})
		cs.markFailed(ctx, document, err)
		msg.Ack() // failure is recorded on the document, no redelivery
		return
	}

	msg.Ack()
}

func (cs *consumerService) ingest(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document) error {
	object, err := cs.store.Get(ctx, document.ObjectKey)
	if err != nil {
		return fmt.Errorf("failed to fetch object %s: %w", document.ObjectKey, err)
	}
	defer object.Close()

	raw, err := io.ReadAll(object)
	if err != nil {
		return fmt.Errorf("failed to read object %s: %w", document.ObjectKey, err)
	}

	chunks := utils.SplitText(string(raw), constant.DocumentChunkSize, constant.DocumentChunkOverlap)
	cs.log.Info("ingest", "document split into chunks", map[string]interface{}{
		"document_id": document.Id.String(),
		"chunks":      len(chunks),
	})

	newEmbeddings := make([]*entity.DocumentEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := cs.embeddingProvider.Generate(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		newEmbeddings = append(newEmbeddings, &entity.DocumentEmbedding{
			Id:         uuid.New(),
			DocumentId: document.Id,
			ChunkIndex: i,
			Chunk:      chunk,
			Embedding:  vector,
			CreatedAt:  time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Re-ingestion replaces the previous chunks wholesale.
	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, document.Id); err != nil {
		return err
	}
	if len(newEmbeddings) > 0 {
		if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			return err
		}
	}
	if err := uow.DocumentRepository().UpdateStatus(ctx, document.Id, constant.DocumentStatusReady); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if cs.eventPublisher != nil {
		evt := events.DocumentIngested{
			DocumentId: document.Id,
			Name:       document.Name,
			Chunks:     len(newEmbeddings),
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.log.Warn("ingest", "failed to publish ingested event", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	cs.log.Info("ingest", "document ingested", map[string]interface{}{
		"document_id": document.Id.String(),
		"name":        document.Name,
		"chunks":      len(newEmbeddings),
	})
	return nil
}

func (cs *consumerService) markFailed(ctx context.Context, document *entity.Document, cause error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().UpdateStatus(ctx, document.Id, constant.DocumentStatusFailed); err != nil {
		cs.log.Error("ingest", "failed to mark document failed", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}

	if cs.eventPublisher != nil {
		evt := events.DocumentIngestFailed{
			DocumentId: document.Id,
			Name:       document.Name,
			Reason:     cause.Error(),
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.log.Warn("ingest", "failed to publish ingest_failed event", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       err.Error(),
			})
		}
	}
}
