package transcribe

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"audioscribe/internal/app"
	"audioscribe/internal/config"
	"audioscribe/internal/workflow"
)

var gatewayURL string

func init() {
	Cmd.Flags().StringVarP(&gatewayURL, "gateway", "g", "http://localhost:3030",
		"base URL of the transcription gateway")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio files...>",
	Short: "Transcribe local audio files through the gateway and save the results",
	Long: `Transcribe local audio files through the gateway and save the results.

Each file is uploaded to the gateway, the transcript is printed, and the
(file name, transcript) pair is saved to the history unless an identical
pair already exists.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v\n", err)
		}

		wf := app.InitializeWorkflow(cfg, app.GatewayURL(gatewayURL))
		ctx := context.Background()

		bar := newBar(len(args))

		for _, path := range args {
			transcript, err := transcribeFile(ctx, wf, path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			} else {
				fmt.Printf("%s:\n%s\n\n", filepath.Base(path), transcript)
			}
			if bar != nil {
				bar.Increment()
			}
			wf.Reset()
		}
	},
}

func transcribeFile(ctx context.Context, wf *workflow.Workflow, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}

	if err := wf.SelectFile(filepath.Base(path), mimeType, data); err != nil {
		return "", err
	}
	if err := wf.Transcribe(ctx); err != nil {
		return "", err
	}
	return wf.Result(), nil
}

// newBar returns a progress bar for batch runs, nil for single files.
func newBar(total int) *mpb.Bar {
	if total < 2 {
		return nil
	}

	container := mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)
	return container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("transcribing ", decor.WC{W: 13, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
		),
	)
}
