package usecase

import (
	"context"
	"fmt"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
	"github.com/agrovision/crop-disease-api/internal/core/ports"
)

// ProcessScanUseCase runs the inference pipeline for a previously uploaded
// scan and persists the outcome.
type ProcessScanUseCase struct {
	repo      ports.ScanRepository
	storage   ports.ObjectStorage
	predictor ports.DiseasePredictor
}

func NewProcessScanUseCase(
	repo ports.ScanRepository,
	storage ports.ObjectStorage,
	predictor ports.DiseasePredictor,
) *ProcessScanUseCase {
	return &ProcessScanUseCase{
		repo:      repo,
		storage:   storage,
		predictor: predictor,
	}
}

func (uc *ProcessScanUseCase) ProcessByID(ctx context.Context, scanID string) error {
	if err := uc.repo.UpdateStatus(ctx, scanID, domain.ScanProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.runPipeline(ctx, scanID)
	if err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, scanID, domain.ScanFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveResult(ctx, scanID, *result); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, scanID, domain.ScanFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save prediction: %w", err)
	}

	if err := uc.repo.UpdateStatus(ctx, scanID, domain.ScanReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessScanUseCase) runPipeline(ctx context.Context, scanID string) (*domain.PredictionResult, error) {
	scan, err := uc.repo.GetByID(ctx, scanID)
	if err != nil {
		return nil, fmt.Errorf("fetch scan by id: %w", err)
	}

	body, err := uc.storage.Open(ctx, scan.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open stored image: %w", err)
	}
	defer body.Close()

	result, err := uc.predictor.Predict(ctx, scan.Filename, scan.MimeType, body)
	if err != nil {
		return nil, fmt.Errorf("predict disease: %w", err)
	}
	return result, nil
}
