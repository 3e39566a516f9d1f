package implementation

import (
	"context"

	"zeorag-be/internal/entity"
	"zeorag-be/internal/mapper"
	"zeorag-be/internal/model"
	"zeorag-be/internal/repository/contract"
	"zeorag-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatHistoryMapper
}

func NewChatHistoryRepository(db *gorm.DB) contract.ChatHistoryRepository {
	return &ChatHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatHistoryMapper(),
	}
}

func (r *ChatHistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatHistoryRepositoryImpl) Append(ctx context.Context, sessionId uuid.UUID, sessionName string, messages []entity.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	rows := make([]*model.ChatHistory, len(messages))
	for i, msg := range messages {
		row, err := r.mapper.ToModel(sessionId, sessionName, msg)
		if err != nil {
			return err
		}
		rows[i] = row
	}

	// One transaction per batch: all messages become visible together or
	// not at all.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rows).Error
	})
}

func (r *ChatHistoryRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatRecord, error) {
	var rows []*model.ChatHistory
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]*entity.ChatRecord, 0, len(rows))
	for _, row := range rows {
		record, err := r.mapper.ToEntity(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *ChatHistoryRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Delete(&model.ChatHistory{}).Error
}

func (r *ChatHistoryRepositoryImpl) ListSessions(ctx context.Context) ([]*entity.SessionInfo, error) {
	type row struct {
		SessionId   uuid.UUID
		SessionName string
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&model.ChatHistory{}).
		Distinct("session_id", "session_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*entity.SessionInfo, len(rows))
	for i, s := range rows {
		sessions[i] = &entity.SessionInfo{
			SessionId:   s.SessionId,
			SessionName: s.SessionName,
		}
	}
	return sessions, nil
}

func (r *ChatHistoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatHistory{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
