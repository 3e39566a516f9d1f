package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"zeorag-be/internal/constant"
	"zeorag-be/internal/dto"
	"zeorag-be/internal/entity"
	"zeorag-be/internal/pkg/logger"
	"zeorag-be/internal/repository/specification"
	"zeorag-be/internal/repository/unitofwork"
	"zeorag-be/pkg/objectstore"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, name string, contentType string, size int64, data io.Reader) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	store            *objectstore.Client
	publisherService IPublisherService
	log              logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	store *objectstore.Client,
	publisherService IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		store:            store,
		publisherService: publisherService,
		log:              log,
	}
}

// Upload stores the raw document in the object store, records it as pending
// and queues it for ingestion. The document only becomes searchable once the
// ingestion worker has embedded its chunks.
func (ds *documentService) Upload(ctx context.Context, name string, contentType string, size int64, data io.Reader) (*dto.UploadDocumentResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	document := entity.Document{
		Id:          uuid.New(),
		Name:        name,
		Bucket:      ds.store.Bucket(),
		ObjectKey:   fmt.Sprintf("%s%s", uuid.New().String(), path.Ext(name)),
		Size:        size,
		ContentType: contentType,
		Status:      constant.DocumentStatusPending,
		CreatedAt:   time.Now(),
	}

	if err := ds.store.Upload(ctx, document.ObjectKey, data, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		// The object is orphaned otherwise.
		if removeErr := ds.store.Remove(ctx, document.ObjectKey); removeErr != nil {
			ds.log.Warn("document", "failed to remove orphaned object", map[string]interface{}{
				"object_key": document.ObjectKey,
				"error":      removeErr.Error(),
			})
		}
		return nil, err
	}

	msgPayload := dto.PublishIngestDocumentMessage{
		DocumentId: document.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := ds.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	ds.log.Info("document", "document queued for ingestion", map[string]interface{}{
		"document_id": document.Id.String(),
		"name":        document.Name,
		"size":        document.Size,
	})

	return &dto.UploadDocumentResponse{
		Id:      document.Id,
		Name:    document.Name,
		Status:  document.Status,
		Message: "document uploaded, ingestion in progress",
	}, nil
}

func (ds *documentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentResponse, 0, len(documents))
	for _, d := range documents {
		response = append(response, &dto.DocumentResponse{
			Id:        d.Id,
			Name:      d.Name,
			Size:      d.Size,
			Status:    d.Status,
			CreatedAt: d.CreatedAt,
		})
	}
	return response, nil
}

func (ds *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := ds.store.Remove(ctx, document.ObjectKey); err != nil {
		ds.log.Warn("document", "failed to remove stored object", map[string]interface{}{
			"object_key": document.ObjectKey,
			"error":      err.Error(),
		})
	}
	return nil
}
