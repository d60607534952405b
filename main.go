package main

import (
	"log"

	"github.com/pattarin-dev/thaidoc-parser/client"
	"github.com/pattarin-dev/thaidoc-parser/config"
	"github.com/pattarin-dev/thaidoc-parser/handler"
	"github.com/pattarin-dev/thaidoc-parser/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize OCR clients
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	ocrSpaceClient := client.NewOCRSpaceClient(cfg.OCRSpaceURL, cfg.OCRSpaceAPIKey)
	refineClient := client.NewRefineClient(cfg.RefineURL, cfg.RefineAPIKey, cfg.RefineModel)

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	parseService := service.NewParseService(tesseractClient, ocrSpaceClient, refineClient, pdfProcessor)

	// Initialize handler layer
	parseHandler := handler.NewParseHandler(parseService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Thai Document Parser",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/parse", parseHandler.ParseText)
		api.POST("/scan", parseHandler.ScanFile)
	}

	// Start server
	log.Printf("Starting Thai Document Parser Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
