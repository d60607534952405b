package parser

import (
	"regexp"
	"strings"

	"github.com/pattarin-dev/thaidoc-parser/dto"
	"github.com/pattarin-dev/thaidoc-parser/heading"
)

// Latin keywords are matched with word boundaries so BILL never fires
// inside BILLING; Thai has no word boundaries, so Thai keywords are matched
// as substrings of full phrases.
var (
	reCreditNote = regexp.MustCompile(`(?i)\bCREDIT\s+NOTE\b`)
	reDebitNote  = regexp.MustCompile(`(?i)\bDEBIT\s+NOTE\b`)
	reQuotation  = regexp.MustCompile(`(?i)\bQUOTATION\b|\bPRICE\s+QUOTE\b`)
	rePurchase   = regexp.MustCompile(`(?i)\bPURCHASE\s+ORDER\b|\bP\.?O\.?\s*(?:NO\.?|NUMBER|#)`)
	reTaxInvoice = regexp.MustCompile(`(?i)\bTAX\s+INVOICE\b`)
	reReceipt    = regexp.MustCompile(`(?i)\bRECEIPT\b`)
	reInvoice    = regexp.MustCompile(`(?i)\bINVOICE\b`)
	reBill       = regexp.MustCompile(`(?i)\bBILL\b`)
	reBillTo     = regexp.MustCompile(`(?i)\bBILL(?:ED)?\s+TO\b`)
	reResume     = regexp.MustCompile(`(?i)\bRESUME\b|\bCURRICULUM\s+VITAE\b|\bCV\b`)
	reResumeSect = regexp.MustCompile(`(?im)^(?:EDUCATION|EXPERIENCE|WORK\s+EXPERIENCE|SKILLS|PROJECTS?|CERTIFICATIONS?)\b`)
	reLetter     = regexp.MustCompile(`(?i)\bDEAR\b|\bSINCERELY\b|\bYOURS\s+(?:FAITHFULLY|TRULY)\b|\bBEST\s+REGARDS\b`)
)

type classRule struct {
	docType dto.DocumentType
	match   func(text string) bool
}

// classRules is evaluated top to bottom, first hit wins. More specific
// types come before the generic ones they overlap with.
var classRules = []classRule{
	{dto.DocTypeThaiMemo, heading.DetectThaiMemo},
	{dto.DocTypeCreditNote, func(t string) bool {
		return reCreditNote.MatchString(t) || strings.Contains(t, "ใบลดหนี้")
	}},
	{dto.DocTypeDebitNote, func(t string) bool {
		return reDebitNote.MatchString(t) || strings.Contains(t, "ใบเพิ่มหนี้")
	}},
	{dto.DocTypeQuotation, func(t string) bool {
		return reQuotation.MatchString(t) || strings.Contains(t, "ใบเสนอราคา")
	}},
	{dto.DocTypePurchaseOrder, func(t string) bool {
		return rePurchase.MatchString(t) || strings.Contains(t, "ใบสั่งซื้อ")
	}},
	{dto.DocTypeInvoice, func(t string) bool {
		return reTaxInvoice.MatchString(t) || strings.Contains(t, "ใบกำกับภาษี")
	}},
	{dto.DocTypeReceipt, func(t string) bool {
		return reReceipt.MatchString(t) || strings.Contains(t, "ใบเสร็จ")
	}},
	{dto.DocTypeInvoice, func(t string) bool {
		return reInvoice.MatchString(t)
	}},
	{dto.DocTypeBill, func(t string) bool {
		// BILL TO on its own names a column header, not the document.
		stripped := reBillTo.ReplaceAllString(t, "")
		return reBill.MatchString(stripped) ||
			strings.Contains(t, "ใบแจ้งหนี้") || strings.Contains(t, "ใบวางบิล")
	}},
	{dto.DocTypeResume, func(t string) bool {
		if reResume.MatchString(t) || strings.Contains(t, "ประวัติส่วนตัว") || strings.Contains(t, "ประวัติย่อ") {
			return true
		}
		return len(reResumeSect.FindAllString(t, 3)) >= 2
	}},
	{dto.DocTypeBusinessLetter, func(t string) bool {
		return reLetter.MatchString(t) || strings.Contains(t, "ขอแสดงความนับถือ")
	}},
}

// Classify assigns exactly one document type to normalized text. It is
// deterministic and total: unmatched text is generic, never an error.
func Classify(text string) dto.DocumentType {
	for _, rule := range classRules {
		if rule.match(text) {
			return rule.docType
		}
	}
	return dto.DocTypeGeneric
}
