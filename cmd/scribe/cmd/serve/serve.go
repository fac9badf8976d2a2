package serve

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/config"
)

var optionsPath string

func init() {
	Cmd.Flags().StringVarP(&optionsPath, "options", "o", "",
		"path to a yaml file with transcription options (model, language, smart_format)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcription gateway",
	Long: `Run the transcription gateway.

Accepts multipart audio uploads on POST /transcribe, forwards them to the
configured speech-to-text provider, and returns the transcript as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v\n", err)
		}

		if optionsPath == "" {
			optionsPath = os.Getenv("TRANSCRIBE_OPTIONS")
		}
		opts, err := config.LoadTranscribeOptions(optionsPath)
		if err != nil {
			log.Fatalf("Failed to load transcription options: %v\n", err)
		}

		server := app.InitializeServer(cfg, opts)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("Server error: %v\n", err)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Fatalf("Shutdown error: %v\n", err)
			}
		}
	},
}
