package delete

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/config"
)

// Cmd represents the delete command
var Cmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one saved transcript by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatalf("Invalid id %q\n", args[0])
		}

		cfg, err := config.FromEnv()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v\n", err)
		}

		history := app.InitializeHistory(cfg)
		if err := history.Remove(context.Background(), id); err != nil {
			log.Fatalf("Failed to delete transcript: %v\n", err)
		}
		fmt.Printf("deleted transcript %d\n", id)
	},
}
