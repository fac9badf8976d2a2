package list

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/config"
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List saved transcripts, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v\n", err)
		}

		history := app.InitializeHistory(cfg)
		if err := history.Load(context.Background()); err != nil {
			log.Fatalf("Failed to load history: %v\n", err)
		}

		items := history.Items()
		if len(items) == 0 {
			fmt.Println("No transcriptions available.")
			return
		}
		for _, t := range items {
			fmt.Printf("%d\t%s\n\t%s\n", t.ID, t.AudioName, t.Transcription)
		}
	},
}
