package cmd

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"civiclens/internal/apihandlers"
)

var (
	serveAddr string // Listen address
	servePort string // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run CivicLens as an HTTP API server",
	Long: `Starts an HTTP server exposing the analysis endpoints (/analyze,
/analyze-text, /classify-text, /summarize-text, /detect-urgency, /health).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		router := gin.Default() // Includes logger and recovery middleware
		router.Use(apihandlers.RequestID())

		apiHandler := apihandlers.NewAPIHandler(appInstance)
		apiHandler.RegisterRoutes(router)

		if serveAddr == "" {
			serveAddr = appInstance.Config.Server.Addr
		}
		if servePort == "" {
			servePort = appInstance.Config.Server.Port
		}

		listenAddr := fmt.Sprintf("%s:%s", serveAddr, servePort)
		log.Printf("Starting CivicLens API server on http://%s", listenAddr)

		// router.Run blocks unless an error occurs
		if err := router.Run(listenAddr); err != nil {
			log.Printf("ERROR: Failed to run API server: %v", err)
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (defaults to server.addr from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (defaults to server.port from config)")
}
