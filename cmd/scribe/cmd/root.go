package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"audioscribe/cmd/scribe/cmd/delete"
	"audioscribe/cmd/scribe/cmd/export"
	"audioscribe/cmd/scribe/cmd/list"
	"audioscribe/cmd/scribe/cmd/serve"
	"audioscribe/cmd/scribe/cmd/transcribe"
	"audioscribe/cmd/scribe/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Record or upload audio, transcribe it, and keep the transcript history",
	Long: `Record or upload audio, transcribe it, and keep the transcript history.
- serve runs the transcription gateway the clients upload to
- transcribe sends local audio files through the gateway and saves the results
- list, delete and export manage the saved transcript history`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(delete.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
