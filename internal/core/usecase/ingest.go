package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
	"github.com/agrovision/crop-disease-api/internal/core/ports"
)

// IngestScanUseCase accepts an uploaded crop photo for asynchronous
// processing: store the bytes, record the scan, enqueue the job.
type IngestScanUseCase struct {
	repo    ports.ScanRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewIngestScanUseCase(
	repo ports.ScanRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestScanUseCase {
	return &IngestScanUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

func (uc *IngestScanUseCase) Submit(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Scan, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read upload", err)
	}
	// Reject non-images before anything is stored or queued.
	if err := validateImage(mimeType, raw); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	scan := &domain.Scan{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Status:      domain.ScanUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, scan); err != nil {
		return nil, fmt.Errorf("create scan record: %w", err)
	}

	if err := uc.queue.PublishScanRequested(ctx, scan.ID); err != nil {
		return nil, fmt.Errorf("publish scan job: %w", err)
	}

	return scan, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == ".." {
		return "image.bin"
	}
	return base
}
