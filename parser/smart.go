// Package parser is the heuristic document structuring engine: it turns
// noisy OCR text into a classified document with typed fields, line items,
// sections and reconciliation diagnostics. Every operation is a pure
// function of its input; bad input degrades the result, it never fails.
package parser

import (
	"github.com/pattarin-dev/thaidoc-parser/dto"
	"github.com/pattarin-dev/thaidoc-parser/heading"
	"github.com/pattarin-dev/thaidoc-parser/textclean"
)

// SmartParse runs the full pipeline: normalize, classify, extract fields
// and line items, validate totals, split sections. It always returns a
// usable result; the empty string yields an all-absent one.
func SmartParse(raw string, opts dto.ParseOptions) dto.ParseResult {
	clean := textclean.Clean(raw)
	result := dto.ParseResult{
		Text:      clean,
		Fields:    dto.SmartFields{DocType: dto.DocTypeGeneric},
		Sections:  []dto.Section{},
		LineItems: []dto.LineItem{},
	}
	if clean == "" {
		return result
	}

	docType := Classify(clean)
	if docType == dto.DocTypeThaiMemo {
		result.Sections, result.Fields = heading.ParseThaiMemo(clean)
		return result
	}

	result.Fields = ExtractFields(clean, docType, opts.Language)
	result.Sections = heading.ParseSections(clean)
	if docType.IsCommercial() {
		result.LineItems = ExtractLineItems(clean)
		fields, report := Validate(result.Fields, result.LineItems)
		result.Fields = fields
		result.Validations = &report
	}
	return result
}
