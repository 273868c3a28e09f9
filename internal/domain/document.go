package domain

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID          uuid.UUID  `json:"id" db:"document_id"`
	ProjectID   uuid.UUID  `json:"project_id" db:"project_id"`
	UploadedBy  uuid.UUID  `json:"uploaded_by" db:"uploaded_by"`
	FileName    string     `json:"file_name" db:"file_name"`
	FileSize    int64      `json:"file_size" db:"file_size"`
	MimeType    string     `json:"mime_type" db:"mime_type"`
	Category    string     `json:"category" db:"category"`
	StoragePath string     `json:"-" db:"storage_path"`
	URL         string     `json:"url" db:"-"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

type DocumentCategory string

const (
	DocBlueprint DocumentCategory = "blueprint"
	DocPermit    DocumentCategory = "permit"
	DocContract  DocumentCategory = "contract"
	DocPhoto     DocumentCategory = "photo"
	DocOther     DocumentCategory = "other"
)

func (c DocumentCategory) IsValid() bool {
	switch c {
	case DocBlueprint, DocPermit, DocContract, DocPhoto, DocOther:
		return true
	}
	return false
}
