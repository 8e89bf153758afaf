package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GowthamOleti/itelo/internal/app"
)

// @title           Itelo Chat API
// @version         1.0
// @description     Backend for the Itelo chat application: sessions, streamed responses, reminders and image requests.
// @BasePath        /api

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Itelo chat backend",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(app.Run())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
