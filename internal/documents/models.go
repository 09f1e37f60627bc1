package documents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentType enumerates the document kinds every pilgrim must submit.
type DocumentType string

const (
	DocumentTypePassport    DocumentType = "passport"
	DocumentTypeVisa        DocumentType = "visa"
	DocumentTypePhoto       DocumentType = "photo"
	DocumentTypeVaccination DocumentType = "vaccination_certificate"
)

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypePassport, DocumentTypeVisa, DocumentTypePhoto, DocumentTypeVaccination:
		return true
	}
	return false
}

// RequiredDocumentTypes returns the full set of kinds a pilgrim needs before
// they count as fully document-ready.
func RequiredDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypePassport,
		DocumentTypeVisa,
		DocumentTypePhoto,
		DocumentTypeVaccination,
	}
}

// Document is one uploaded document for one pilgrim. At most one row exists
// per (pilgrim, type) pair; a re-upload replaces the row in place.
type Document struct {
	ID              uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PilgrimID       uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:idx_pilgrim_doc_type" json:"pilgrim_id"`
	Type            DocumentType `gorm:"not null;uniqueIndex:idx_pilgrim_doc_type" json:"type"`
	Status          Status       `gorm:"not null;default:'pending'" json:"status"`
	FileName        string       `gorm:"not null" json:"file_name"`
	FileURL         string       `gorm:"not null" json:"file_url"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	UploadedAt      time.Time    `gorm:"not null" json:"uploaded_at"`
	VerifiedAt      *time.Time   `json:"verified_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
