package app

import (
	"context"
	"log"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"audioscribe/internal/config"
	"audioscribe/internal/gateway"
	"audioscribe/internal/logging"
	"audioscribe/internal/repository"
	"audioscribe/internal/repository/pg"
	"audioscribe/internal/repository/sqlite"
	"audioscribe/internal/storage"
	"audioscribe/internal/transcriber"
	"audioscribe/internal/transcriber/deepgram"
	"audioscribe/internal/transcriber/whisper"
	"audioscribe/internal/workflow"
)

// GatewayURL is the base URL client components use to reach the gateway.
type GatewayURL string

func provideLogger(cfg *config.Config) *zap.Logger {
	return logging.MustNewLogger(cfg.Environment == "development")
}

// provideTranscriber selects the speech-to-text backend from configuration.
func provideTranscriber(cfg *config.Config, opts config.TranscribeOptions) transcriber.Transcriber {
	switch cfg.Transcriber {
	case "whisper":
		return whisper.NewRemoteTranscriber(openai.NewClient(cfg.OpenAIAPIKey), opts)
	default:
		return deepgram.NewClient(cfg.DeepgramBaseURL, cfg.DeepgramAPIKey, opts)
	}
}

// provideArchive returns nil when archival is disabled; the gateway treats a
// nil store as "do not archive".
func provideArchive(cfg *config.Config) storage.AudioStore {
	if !cfg.ArchiveEnabled {
		return nil
	}
	store, err := storage.NewMinioStore(context.Background(), storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v\n", err)
	}
	return store
}

func provideRepository(cfg *config.Config) repository.TranscriptRepository {
	switch cfg.DatabaseDriver {
	case "postgres":
		repo, err := pg.NewPostgresRepository(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("Failed to open postgres repository: %v\n", err)
		}
		return repo
	default:
		repo, err := sqlite.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite repository: %v\n", err)
		}
		return repo
	}
}

func provideGatewayClient(url GatewayURL) *workflow.GatewayClient {
	return workflow.NewGatewayClient(string(url))
}

func provideRecorder() workflow.Recorder {
	return workflow.NewMemoryRecorder("audio/webm", "webm")
}

func provideHistory(repo repository.TranscriptRepository, logger *zap.Logger) *workflow.History {
	return workflow.NewHistory(repo, logger)
}

func provideWorkflow(
	recorder workflow.Recorder,
	client *workflow.GatewayClient,
	repo repository.TranscriptRepository,
	history *workflow.History,
	logger *zap.Logger,
) *workflow.Workflow {
	return workflow.New(recorder, client, repo, history, logger)
}

func provideServer(
	cfg *config.Config,
	t transcriber.Transcriber,
	archive storage.AudioStore,
	logger *zap.Logger,
) *gateway.Server {
	return gateway.NewServer(cfg, t, archive, logger)
}
