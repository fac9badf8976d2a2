//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"audioscribe/internal/config"
	"audioscribe/internal/gateway"
	"audioscribe/internal/workflow"
)

// InitializeServer builds the transcription gateway from configuration.
func InitializeServer(cfg *config.Config, opts config.TranscribeOptions) *gateway.Server {
	wire.Build(provideServer, provideTranscriber, provideArchive, provideLogger)
	return &gateway.Server{}
}

// InitializeWorkflow builds a client session pointed at the gateway at url.
func InitializeWorkflow(cfg *config.Config, url GatewayURL) *workflow.Workflow {
	wire.Build(provideWorkflow, provideRecorder, provideGatewayClient, provideRepository, provideHistory, provideLogger)
	return &workflow.Workflow{}
}

// InitializeHistory builds the standalone history list used by the CLI.
func InitializeHistory(cfg *config.Config) *workflow.History {
	wire.Build(provideHistory, provideRepository, provideLogger)
	return &workflow.History{}
}
