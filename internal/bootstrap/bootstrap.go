package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agrovision/crop-disease-api/internal/config"
	"github.com/agrovision/crop-disease-api/internal/core/ports"
	"github.com/agrovision/crop-disease-api/internal/core/usecase"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/catalog"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/classifier/dummy"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/classifier/onnx"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/classifier/remote"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/labels"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/queue/nats"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/repository/postgres"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/resilience"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/storage/localfs"
	"github.com/agrovision/crop-disease-api/internal/infrastructure/vision"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.ScanRepository

	PredictUC ports.DiseasePredictor
	IngestUC  ports.ScanIngestor
	ProcessUC ports.ScanProcessor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewScanRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	labelSet, err := labels.Load(cfg.LabelsPath)
	if err != nil {
		slog.Warn("labels file unusable, using embedded defaults", "path", cfg.LabelsPath, "error", err)
		labelSet = labels.Default()
	}

	classifier, closeClassifier := newClassifier(cfg, executor, labelSet)
	advisor := catalog.Load(cfg.KnowledgeBaseDir)
	preprocessor := vision.NewPreprocessor(cfg.ImageTargetSize, cfg.ImageTargetSize)

	predictUC := usecase.NewPredictUseCase(preprocessor, classifier, advisor, labelSet)
	ingestUC := usecase.NewIngestScanUseCase(repo, storage, queue)
	processUC := usecase.NewProcessScanUseCase(repo, storage, predictUC)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		PredictUC: predictUC,
		IngestUC:  ingestUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			if closeClassifier != nil {
				closeClassifier()
			}
			_ = db.Close()
		},
	}, nil
}

// newClassifier selects the configured backend, falling back to the dummy
// classifier rather than refusing to start. Health reporting picks the
// degradation up through Ready().
func newClassifier(cfg config.Config, executor *resilience.Executor, labelSet []string) (ports.Classifier, func()) {
	switch cfg.ClassifierBackend {
	case "remote":
		return remote.New(cfg.InferenceURL, executor), nil
	case "dummy":
		return dummy.New(cfg.DummyClassCount), nil
	default:
		size := int64(cfg.ImageTargetSize)
		if size <= 0 {
			size = 224
		}
		classifier, err := onnx.New(cfg.ModelPath, []int64{1, size, size, 3}, len(labelSet))
		if err != nil {
			slog.Warn("model load failed, serving with dummy classifier",
				"model_path", cfg.ModelPath, "error", err)
			return dummy.New(cfg.DummyClassCount), nil
		}
		slog.Info("model loaded", "model_path", cfg.ModelPath, "classes", len(labelSet))
		return classifier, classifier.Close
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
