package service

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/pattarin-dev/thaidoc-parser/client"
	"github.com/pattarin-dev/thaidoc-parser/dto"
	"github.com/pattarin-dev/thaidoc-parser/parser"
)

// maxOCRPages bounds how many page images of a scanned PDF are OCRed.
const maxOCRPages = 5

// ParseService wires the structuring engine to its collaborators: local
// and remote OCR, PDF extraction and the optional AI reviser.
type ParseService struct {
	tesseractClient *client.TesseractClient
	ocrSpaceClient  *client.OCRSpaceClient
	refineClient    *client.RefineClient
	pdfProcessor    PDFProcessor
}

func NewParseService(
	tesseractClient *client.TesseractClient,
	ocrSpaceClient *client.OCRSpaceClient,
	refineClient *client.RefineClient,
	pdfProcessor PDFProcessor,
) *ParseService {
	return &ParseService{
		tesseractClient: tesseractClient,
		ocrSpaceClient:  ocrSpaceClient,
		refineClient:    refineClient,
		pdfProcessor:    pdfProcessor,
	}
}

// ParseText runs the engine over raw OCR text. The second result is the
// AI-revised version, present only when requested and successful; the
// heuristic result always stands on its own.
func (s *ParseService) ParseText(req *dto.ParseRequest) (dto.ParseResult, *dto.ParseResult) {
	result := parser.SmartParse(req.Text, req.Options())

	var refined *dto.ParseResult
	if req.Refine && s.refineClient != nil && s.refineClient.Available() {
		r, err := s.refineClient.Refine(result)
		if err != nil {
			log.Printf("Refine failed, keeping heuristic result: %v", err)
		} else {
			refined = r
		}
	}
	return result, refined
}

// ScanFile OCRs an uploaded image or PDF and parses the recognized text.
func (s *ParseService) ScanFile(fileHeader *multipart.FileHeader, langHint string, refine bool) (*dto.ScanResponse, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fileHeader.Filename, err)
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileHeader.Filename, err)
	}

	resp := &dto.ScanResponse{Filename: fileHeader.Filename}

	var text string
	switch {
	case isPDF(fileHeader.Filename, fileBytes):
		text, resp.OCRSource, err = s.textFromPDF(fileBytes, langHint)
	default:
		text, resp.OCRSource, err = s.textFromImage(fileHeader, fileBytes, langHint)
		if payload, qrErr := DecodeQRPayload(fileBytes); qrErr == nil {
			log.Printf("QR payload decoded (%d bytes)", len(payload))
			resp.QRPayload = payload
		}
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, dto.ErrNoTextRecognized
	}

	result, refined := s.ParseText(&dto.ParseRequest{Text: text, Language: langHint, Refine: refine})
	resp.Result = result
	resp.Refined = refined
	return resp, nil
}

// textFromPDF prefers the embedded text layer; scanned PDFs fall back to
// OCR over the extracted page images.
func (s *ParseService) textFromPDF(fileBytes []byte, langHint string) (string, string, error) {
	text, err := s.pdfProcessor.ExtractText(fileBytes)
	if err != nil {
		log.Printf("PDF text extraction failed: %v", err)
	}
	if len(strings.TrimSpace(text)) >= 50 {
		return text, "pdf", nil
	}

	images, err := s.pdfProcessor.ExtractImages(fileBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract PDF images: %w", err)
	}

	var sb strings.Builder
	for i, img := range images {
		if i == maxOCRPages {
			log.Printf("Stopping OCR after %d PDF pages", maxOCRPages)
			break
		}
		pageText, err := s.ocrImage(img, langHint)
		if err != nil {
			log.Printf("OCR failed on PDF page %d: %v", i+1, err)
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), "tesseract", nil
}

// textFromImage tries local Tesseract first and falls back to OCR.space.
func (s *ParseService) textFromImage(fileHeader *multipart.FileHeader, fileBytes []byte, langHint string) (string, string, error) {
	if !isImage(fileHeader.Filename) {
		return "", "", dto.ErrUnsupportedFileType
	}

	text, err := s.tesseractClient.ExtractTextFromFile(fileHeader, langHint)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, "tesseract", nil
	}
	if err != nil {
		log.Printf("Tesseract OCR failed: %v", err)
	}

	if s.ocrSpaceClient != nil && s.ocrSpaceClient.Available() {
		remote, rerr := s.ocrSpaceClient.ExtractText(fileBytes, mimeFor(fileHeader.Filename), langHint)
		if rerr == nil {
			return remote, "ocrspace", nil
		}
		log.Printf("OCR.space fallback failed: %v", rerr)
	}

	if err != nil {
		return "", "", fmt.Errorf("OCR failed for %s: %w", fileHeader.Filename, err)
	}
	return text, "tesseract", nil
}

func (s *ParseService) ocrImage(img image.Image, langHint string) (string, error) {
	tempFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if err := png.Encode(tempFile, img); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to encode page image: %w", err)
	}
	tempFile.Close()

	return s.tesseractClient.ExtractText(tempFile.Name(), langHint)
}

func isPDF(filename string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return len(data) >= 4 && string(data[:4]) == "%PDF"
}

func isImage(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".webp":
		return true
	}
	return false
}

func mimeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
