package documents

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatra/internal/shared/errs"
)

// fakeRepository keeps documents in memory, indexed the same way the real
// table is: unique per (pilgrim, type).
type fakeRepository struct {
	docs     map[uuid.UUID]*Document
	pilgrims map[uuid.UUID]bool
}

func newFakeRepository(pilgrimIDs ...uuid.UUID) *fakeRepository {
	pilgrims := make(map[uuid.UUID]bool, len(pilgrimIDs))
	for _, id := range pilgrimIDs {
		pilgrims[id] = true
	}
	return &fakeRepository{
		docs:     make(map[uuid.UUID]*Document),
		pilgrims: pilgrims,
	}
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, errs.NotFound("document not found")
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeRepository) GetByPilgrimAndType(_ context.Context, pilgrimID uuid.UUID, docType DocumentType) (*Document, error) {
	for _, doc := range f.docs {
		if doc.PilgrimID == pilgrimID && doc.Type == docType {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, errs.NotFound("document not found")
}

func (f *fakeRepository) GetByPilgrimID(_ context.Context, pilgrimID uuid.UUID) ([]Document, error) {
	var docs []Document
	for _, doc := range f.docs {
		if doc.PilgrimID == pilgrimID {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (f *fakeRepository) GetByPilgrimIDs(_ context.Context, pilgrimIDs []uuid.UUID) ([]Document, error) {
	var docs []Document
	for _, id := range pilgrimIDs {
		for _, doc := range f.docs {
			if doc.PilgrimID == id {
				docs = append(docs, *doc)
			}
		}
	}
	return docs, nil
}

func (f *fakeRepository) Create(_ context.Context, doc *Document) error {
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, doc *Document) error {
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeRepository) PilgrimExists(_ context.Context, pilgrimID uuid.UUID) (bool, error) {
	return f.pilgrims[pilgrimID], nil
}

func uploadReq(docType DocumentType) UploadRequest {
	return UploadRequest{
		Type:     string(docType),
		FileName: "scan.pdf",
		FileURL:  "https://storage.example.com/scan.pdf",
	}
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	pilgrimID := uuid.New()

	t.Run("creates pending document", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))

		doc, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypePassport))
		require.NoError(t, err)

		assert.Equal(t, StatusPending, doc.Status)
		assert.Equal(t, DocumentTypePassport, doc.Type)
		assert.Equal(t, pilgrimID, doc.PilgrimID)
	})

	t.Run("unknown type", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))

		_, err := svc.Upload(ctx, pilgrimID, UploadRequest{Type: "drivers_license", FileName: "x", FileURL: "https://x"})
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("unknown pilgrim", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.Upload(ctx, uuid.New(), uploadReq(DocumentTypePassport))
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})

	t.Run("reupload resets needs_reupload to pending", func(t *testing.T) {
		repo := newFakeRepository(pilgrimID)
		svc := NewService(repo)

		doc, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypeVisa))
		require.NoError(t, err)
		_, err = svc.Reject(ctx, doc.ID, "photo page unreadable")
		require.NoError(t, err)

		replaced, err := svc.Upload(ctx, pilgrimID, UploadRequest{
			Type:     string(DocumentTypeVisa),
			FileName: "scan-v2.pdf",
			FileURL:  "https://storage.example.com/scan-v2.pdf",
		})
		require.NoError(t, err)

		assert.Equal(t, doc.ID, replaced.ID)
		assert.Equal(t, StatusPending, replaced.Status)
		assert.Empty(t, replaced.RejectionReason)
		assert.Equal(t, "scan-v2.pdf", replaced.FileName)
	})

	t.Run("refuses to replace a verified document", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))

		doc, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypePhoto))
		require.NoError(t, err)
		_, err = svc.Verify(ctx, doc.ID)
		require.NoError(t, err)

		_, err = svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypePhoto))
		require.Error(t, err)
		assert.Equal(t, errs.CodeLocked, errs.CodeOf(err))
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	pilgrimID := uuid.New()

	t.Run("marks verified and stamps time", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))
		doc, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypePassport))
		require.NoError(t, err)

		verified, err := svc.Verify(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusVerified, verified.Status)
		assert.NotNil(t, verified.VerifiedAt)
	})

	t.Run("verify twice is a conflict", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))
		doc, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypePassport))
		require.NoError(t, err)
		_, err = svc.Verify(ctx, doc.ID)
		require.NoError(t, err)

		_, err = svc.Verify(ctx, doc.ID)
		assert.Equal(t, errs.CodeAlreadyLocked, errs.CodeOf(err))
	})

	t.Run("verify clears an earlier rejection reason", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))
		doc, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypeVisa))
		require.NoError(t, err)
		_, err = svc.Reject(ctx, doc.ID, "expiry not visible")
		require.NoError(t, err)

		verified, err := svc.Verify(ctx, doc.ID)
		require.NoError(t, err)
		assert.Empty(t, verified.RejectionReason)
	})

	t.Run("missing document", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))
		_, err := svc.Verify(ctx, uuid.New())
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	pilgrimID := uuid.New()

	t.Run("moves to needs_reupload with reason", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))
		doc, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypeVaccination))
		require.NoError(t, err)

		rejected, err := svc.Reject(ctx, doc.ID, "certificate expired")
		require.NoError(t, err)
		assert.Equal(t, StatusNeedsReupload, rejected.Status)
		assert.Equal(t, "certificate expired", rejected.RejectionReason)
	})

	t.Run("requires a reason", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))
		doc, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypePhoto))
		require.NoError(t, err)

		_, err = svc.Reject(ctx, doc.ID, "")
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("cannot reject a verified document", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))
		doc, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypePhoto))
		require.NoError(t, err)
		_, err = svc.Verify(ctx, doc.ID)
		require.NoError(t, err)

		_, err = svc.Reject(ctx, doc.ID, "blurred")
		assert.Equal(t, errs.CodeAlreadyLocked, errs.CodeOf(err))
	})
}

func TestProgress(t *testing.T) {
	ctx := context.Background()
	pilgrimID := uuid.New()

	t.Run("counts pending and verified, not needs_reupload", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))

		passport, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypePassport))
		require.NoError(t, err)
		_, err = svc.Verify(ctx, passport.ID)
		require.NoError(t, err)

		_, err = svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypeVisa))
		require.NoError(t, err)

		photo, err := svc.Upload(ctx, pilgrimID, uploadReq(DocumentTypePhoto))
		require.NoError(t, err)
		_, err = svc.Reject(ctx, photo.ID, "face not visible")
		require.NoError(t, err)

		// verified passport + pending visa out of four required kinds
		progress, err := svc.Progress(ctx, pilgrimID)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, progress, 0.001)
	})

	t.Run("no documents is zero", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))
		progress, err := svc.Progress(ctx, pilgrimID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, progress)
	})

	t.Run("all four kinds submitted is one hundred", func(t *testing.T) {
		svc := NewService(newFakeRepository(pilgrimID))
		for _, docType := range RequiredDocumentTypes() {
			_, err := svc.Upload(ctx, pilgrimID, uploadReq(docType))
			require.NoError(t, err)
		}

		progress, err := svc.Progress(ctx, pilgrimID)
		require.NoError(t, err)
		assert.Equal(t, 100.0, progress)
	})
}

func TestProgressForPilgrims(t *testing.T) {
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	svc := NewService(newFakeRepository(first, second))
	_, err := svc.Upload(ctx, first, uploadReq(DocumentTypePassport))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, first, uploadReq(DocumentTypeVisa))
	require.NoError(t, err)

	progress, err := svc.ProgressForPilgrims(ctx, []uuid.UUID{first, second})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, progress[first], 0.001)
	assert.Equal(t, 0.0, progress[second])
}
