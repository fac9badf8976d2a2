package export

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/config"
	"audioscribe/internal/export"
)

var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transcript history to excel",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v\n", err)
		}

		history := app.InitializeHistory(cfg)
		if err := history.Load(context.Background()); err != nil {
			log.Fatal(err)
		}

		if err := export.ToExcel(history.Items(), outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
