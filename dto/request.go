package dto

import "strings"

// ParseRequest is the JSON body of POST /parse: raw OCR text in, structured
// document out.
type ParseRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language"`
	Refine   bool   `json:"refine"`
}

// Validate performs basic validation on the request
func (r *ParseRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	switch r.Language {
	case "", "auto", "tha", "eng":
		return nil
	}
	return ErrBadLanguage
}

// Options maps the request onto engine options.
func (r *ParseRequest) Options() ParseOptions {
	lang := r.Language
	if lang == "" {
		lang = "auto"
	}
	return ParseOptions{Language: lang}
}
