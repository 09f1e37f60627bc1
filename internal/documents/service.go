package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"yatra/internal/shared/errs"
)

// UploadRequest carries document upload metadata. The file itself lands in
// object storage out of band; this service only tracks the verification state.
type UploadRequest struct {
	Type     string `json:"type" binding:"required"`
	FileName string `json:"file_name" binding:"required,max=255"`
	FileURL  string `json:"file_url" binding:"required,url"`
}

// RejectRequest carries the reason a document was sent back.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,min=5,max=500"`
}

// Service interface defines the contract for the per-document verification
// state machine: pending -> verified (locked) | pending -> needs_reupload.
type Service interface {
	Upload(ctx context.Context, pilgrimID uuid.UUID, req UploadRequest) (*Document, error)
	Verify(ctx context.Context, documentID uuid.UUID) (*Document, error)
	Reject(ctx context.Context, documentID uuid.UUID, reason string) (*Document, error)

	GetPilgrimDocuments(ctx context.Context, pilgrimID uuid.UUID) ([]Document, error)
	Progress(ctx context.Context, pilgrimID uuid.UUID) (float64, error)
	ProgressForPilgrims(ctx context.Context, pilgrimIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new document service instance.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Upload creates or replaces the document for (pilgrim, type) and resets its
// status to pending. Replacing a verified document is refused.
func (s *service) Upload(ctx context.Context, pilgrimID uuid.UUID, req UploadRequest) (*Document, error) {
	docType := DocumentType(req.Type)
	if !docType.IsValid() {
		return nil, errs.Validation(errs.CodeValidation, fmt.Sprintf("unknown document type: %s", req.Type))
	}

	exists, err := s.repo.PilgrimExists(ctx, pilgrimID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NotFound("pilgrim not found")
	}

	existing, err := s.repo.GetByPilgrimAndType(ctx, pilgrimID, docType)
	if err != nil && !errs.IsKind(err, errs.KindNotFound) {
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		if existing.Status.IsLocked() {
			return nil, errs.StateConflict(errs.CodeLocked,
				fmt.Sprintf("a verified %s already exists for this pilgrim", docType))
		}
		existing.FileName = req.FileName
		existing.FileURL = req.FileURL
		existing.Status = StatusPending
		existing.RejectionReason = ""
		existing.UploadedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to replace document: %w", err)
		}
		return existing, nil
	}

	doc := &Document{
		ID:         uuid.New(),
		PilgrimID:  pilgrimID,
		Type:       docType,
		Status:     StatusPending,
		FileName:   req.FileName,
		FileURL:    req.FileURL,
		UploadedAt: now,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// Verify marks a document verified. Verified is terminal: a second verify
// fails rather than silently succeeding.
func (s *service) Verify(ctx context.Context, documentID uuid.UUID) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.Status.IsLocked() {
		return nil, errs.StateConflict(errs.CodeAlreadyLocked, "document is already verified and locked")
	}

	now := time.Now()
	doc.Status = StatusVerified
	doc.RejectionReason = ""
	doc.VerifiedAt = &now
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to verify document: %w", err)
	}
	return doc, nil
}

// Reject sends a document back for re-upload with the given reason.
func (s *service) Reject(ctx context.Context, documentID uuid.UUID, reason string) (*Document, error) {
	if reason == "" {
		return nil, errs.Validation(errs.CodeValidation, "rejection reason is required")
	}

	doc, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.Status.IsLocked() {
		return nil, errs.StateConflict(errs.CodeAlreadyLocked, "document is already verified and locked")
	}

	doc.Status = StatusNeedsReupload
	doc.RejectionReason = reason
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to reject document: %w", err)
	}
	return doc, nil
}

func (s *service) GetPilgrimDocuments(ctx context.Context, pilgrimID uuid.UUID) ([]Document, error) {
	exists, err := s.repo.PilgrimExists(ctx, pilgrimID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NotFound("pilgrim not found")
	}
	return s.repo.GetByPilgrimID(ctx, pilgrimID)
}

// Progress returns the share of required document kinds this pilgrim has
// submitted and not had bounced, as a percentage.
func (s *service) Progress(ctx context.Context, pilgrimID uuid.UUID) (float64, error) {
	docs, err := s.repo.GetByPilgrimID(ctx, pilgrimID)
	if err != nil {
		return 0, err
	}
	return progressOf(docs), nil
}

// ProgressForPilgrims computes readiness for a batch of pilgrims in one query.
// Pilgrims with no documents report 0.
func (s *service) ProgressForPilgrims(ctx context.Context, pilgrimIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	docs, err := s.repo.GetByPilgrimIDs(ctx, pilgrimIDs)
	if err != nil {
		return nil, err
	}

	byPilgrim := make(map[uuid.UUID][]Document, len(pilgrimIDs))
	for _, doc := range docs {
		byPilgrim[doc.PilgrimID] = append(byPilgrim[doc.PilgrimID], doc)
	}

	progress := make(map[uuid.UUID]float64, len(pilgrimIDs))
	for _, id := range pilgrimIDs {
		progress[id] = progressOf(byPilgrim[id])
	}
	return progress, nil
}

func progressOf(docs []Document) float64 {
	required := len(RequiredDocumentTypes())
	counted := 0
	for _, doc := range docs {
		if doc.Type.IsValid() && doc.Status.CountsTowardProgress() {
			counted++
		}
	}
	return float64(counted) / float64(required) * 100
}
