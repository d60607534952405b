package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/pattarin-dev/thaidoc-parser/dto"
	"github.com/pattarin-dev/thaidoc-parser/service"

	"github.com/gin-gonic/gin"
)

type ParseHandler struct {
	parseService *service.ParseService
}

func NewParseHandler(parseService *service.ParseService) *ParseHandler {
	return &ParseHandler{
		parseService: parseService,
	}
}

// ParseText handles the POST /api/v1/parse endpoint
func (h *ParseHandler) ParseText(c *gin.Context) {
	var request dto.ParseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	log.Printf("Parsing %d bytes of text (language=%s)", len(request.Text), request.Language)

	result, refined := h.parseService.ParseText(&request)

	c.JSON(http.StatusOK, dto.ScanResponse{
		Result:    result,
		Refined:   refined,
		OCRSource: "text",
	})
}

// ScanFile handles the POST /api/v1/scan endpoint
func (h *ParseHandler) ScanFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}

	language := c.PostForm("language")
	refine := c.PostForm("refine") == "true"

	switch language {
	case "", "auto", "tha", "eng":
	default:
		h.sendError(c, http.StatusBadRequest, dto.ErrBadLanguage.Error(), dto.ErrBadLanguage)
		return
	}

	log.Printf("Scanning file %s (%d bytes, language=%s)", fileHeader.Filename, fileHeader.Size, language)

	response, err := h.parseService.ScanFile(fileHeader, language, refine)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrUnsupportedFileType):
			h.sendError(c, http.StatusUnsupportedMediaType, err.Error(), err)
		case errors.Is(err, dto.ErrNoTextRecognized):
			h.sendError(c, http.StatusUnprocessableEntity, err.Error(), err)
		default:
			h.sendError(c, http.StatusInternalServerError, "Failed to scan file", err)
		}
		return
	}

	log.Printf("Scan completed for %s (source=%s)", fileHeader.Filename, response.OCRSource)
	c.JSON(http.StatusOK, response)
}

// sendError sends a structured error response
func (h *ParseHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "PARSE_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
