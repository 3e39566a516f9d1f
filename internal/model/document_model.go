package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:text;not null"`
	Bucket      string    `gorm:"type:text;not null"`
	ObjectKey   string    `gorm:"type:text;not null;uniqueIndex"`
	Size        int64     `gorm:"not null"`
	ContentType string    `gorm:"type:varchar(120)"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
