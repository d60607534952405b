package dto

import "errors"

// Custom errors
var (
	ErrEmptyText           = errors.New("text is required")
	ErrBadLanguage         = errors.New("language must be auto, tha or eng")
	ErrUnsupportedFileType = errors.New("unsupported file type: expected an image or a PDF")
	ErrNoTextRecognized    = errors.New("OCR produced no text")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ScanResponse is the result of POST /scan: OCR plus parse, with optional
// extras recovered from the uploaded file itself.
type ScanResponse struct {
	Result    ParseResult  `json:"result"`
	Refined   *ParseResult `json:"refined,omitempty"`
	QRPayload string       `json:"qr_payload,omitempty"`
	OCRSource string       `json:"ocr_source"` // "tesseract", "ocrspace" or "pdf"
	Filename  string       `json:"filename"`
}
