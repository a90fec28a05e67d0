package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/common"
	"github.com/vedam-app/vedam/internal/handlers"
	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/services/answers"
	"github.com/vedam-app/vedam/internal/services/ingest"
	"github.com/vedam-app/vedam/internal/services/llm"
	"github.com/vedam-app/vedam/internal/services/questions"
	"github.com/vedam-app/vedam/internal/services/retrieval"
	"github.com/vedam-app/vedam/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Generation service
	Generator interfaces.TextGenerator

	// Core services
	IngestService   interfaces.IngestService
	AnswerService   interfaces.AnswerService
	QuestionService interfaces.QuestionService

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	ChatHandler     *handlers.ChatHandler
	SubjectHandler  *handlers.SubjectHandler
	DocumentHandler *handlers.DocumentHandler
	QuestionHandler *handlers.QuestionHandler
}

// New creates and wires all application components. Construction order
// follows the dependency chain: storage, generation service, core services,
// then handlers.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	generator, err := llm.NewTextGenerator(cfg, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize generation service: %w", err)
	}

	chunks := storageManager.ChunkStorage()
	subjects := storageManager.SubjectStorage()

	retriever := retrieval.NewRetriever(chunks, cfg.Retrieval.TopK, logger)
	confidence := retrieval.NewConfidenceEstimator(cfg.Retrieval.ConfidenceHigh, cfg.Retrieval.ConfidenceMedium)

	ingestService := ingest.NewService(chunks, cfg.Ingest.ChunkSize, logger)
	answerService := answers.NewComposer(retriever, confidence, generator, cfg.Retrieval.GroundingThreshold, logger)
	questionService := questions.NewGenerator(chunks, generator, cfg.Retrieval.ContextChunks, logger)

	app := &App{
		Config:         cfg,
		Logger:         logger,
		StorageManager: storageManager,
		Generator:      generator,

		IngestService:   ingestService,
		AnswerService:   answerService,
		QuestionService: questionService,

		APIHandler:      handlers.NewAPIHandler(generator, logger),
		ChatHandler:     handlers.NewChatHandler(answerService, subjects, chunks, logger),
		SubjectHandler:  handlers.NewSubjectHandler(subjects, logger),
		DocumentHandler: handlers.NewDocumentHandler(ingestService, subjects, cfg.Ingest.MaxUploadBytes, logger),
		QuestionHandler: handlers.NewQuestionHandler(questionService, subjects, logger),
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Str("provider", cfg.LLM.Provider).
		Msg("Application initialized")

	return app, nil
}

// Close releases all application resources in reverse construction order.
func (a *App) Close() error {
	var firstErr error

	if a.Generator != nil {
		if err := a.Generator.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close generation service")
			firstErr = err
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
