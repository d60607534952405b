package parser

import (
	"regexp"
	"strings"

	"github.com/pattarin-dev/thaidoc-parser/dto"
	"github.com/pattarin-dev/thaidoc-parser/heading"
)

// Date shapes: numeric D/M/Y family, spelled English months, Thai months.
var (
	dateShapeSrc = `\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}` +
		`|\d{1,2}(?:st|nd|rd|th)?[ \t]+[A-Za-z]{3,9}\.?,?[ \t]+\d{4}` +
		`|[A-Za-z]{3,9}[ \t]+\d{1,2},?[ \t]+\d{4}` +
		`|\d{1,2}[ \t]*(?:มกราคม|กุมภาพันธ์|มีนาคม|เมษายน|พฤษภาคม|มิถุนายน|กรกฎาคม|สิงหาคม|กันยายน|ตุลาคม|พฤศจิกายน|ธันวาคม|ม\.ค\.|ก\.พ\.|มี\.ค\.|เม\.ย\.|พ\.ค\.|มิ\.ย\.|ก\.ค\.|ส\.ค\.|ก\.ย\.|ต\.ค\.|พ\.ย\.|ธ\.ค\.)[ \t]*\d{2,4}`
	reDateShape = regexp.MustCompile(dateShapeSrc)

	rePercentTok = regexp.MustCompile(`\d{1,3}(?:[.,]\d+)?%`)
	reNumberTok  = regexp.MustCompile(`\$?\d[\d,]*(?:\.\d{1,2})?`)
	reAnyLetter  = regexp.MustCompile(`[A-Za-zก-ฮ]`)

	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	rePhone = regexp.MustCompile(`(\+?\d{1,4}[\s-])?(0|\+66)\d([\s-]?\d){7,8}`)

	reResumeHeading = regexp.MustCompile(`(?i)^(?:SUMMARY|OBJECTIVE|PROFILE|EDUCATION|EXPERIENCE|WORK\s+EXPERIENCE|SKILLS|PROJECTS?|CERTIFICATIONS?|ADDITIONAL\s+INFORMATION)\b|^(?:การศึกษา|ประสบการณ์|ทักษะ|ประวัติ)`)
	reSignOff       = regexp.MustCompile(`(?i)^(?:SINCERELY|BEST\s+REGARDS|KIND\s+REGARDS|REGARDS|YOURS\s+(?:FAITHFULLY|TRULY))\b|^ขอแสดงความนับถือ`)
	reAddressHint   = regexp.MustCompile(`(?i)\b(?:ROAD|RD\.?|STREET|ST\.?|AVENUE|DISTRICT|PROVINCE)\b|ถนน|ตำบล|แขวง|อำเภอ|เขต|จังหวัด|กรุงเทพ`)
)

// labelSet is one language's label vocabulary. Scalar labels anchor the
// "label, then same-or-next-line" scan; money labels anchor the
// last-number-on-the-line scan.
type labelSet struct {
	docNo     []*regexp.Regexp
	dateLabel []*regexp.Regexp
	dueLabel  []*regexp.Regexp
	seller    []*regexp.Regexp
	buyer     []*regexp.Regexp
	subject   []*regexp.Regexp
	recipient []*regexp.Regexp
	subtotal  []*regexp.Regexp
	vat       []*regexp.Regexp
	vatSkip   []*regexp.Regexp
	discount  []*regexp.Regexp
	total     []*regexp.Regexp
	totalSkip []*regexp.Regexp
}

var engLabels = labelSet{
	docNo: compileAll(
		`(?i)\b(?:TAX\s+INVOICE|INVOICE|RECEIPT|QUOTATION|PURCHASE\s+ORDER|CREDIT\s+NOTE|DEBIT\s+NOTE|BILL|DOCUMENT|ORDER)\s*(?:NO\.?|NUMBER|#|:)\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9/-]*)`,
		`(?i)\b(?:REF(?:ERENCE)?|DOC)\s*(?:NO\.?|NUMBER|#)?\s*[:#]?\s*([A-Z0-9][A-Za-z0-9/-]*\d[A-Za-z0-9/-]*)`,
	),
	dateLabel: compileAll(`(?i)\b(?:INVOICE\s+DATE|ISSUE\s+DATE|DATE\s+OF\s+ISSUE|DATE)\b`),
	dueLabel:  compileAll(`(?i)\b(?:DUE\s+DATE|PAYMENT\s+DUE|DUE\s+BY)\b`),
	seller:    compileAll(`(?i)^(?:FROM|SELLER|VENDOR|SOLD\s+BY|SUPPLIER|PAY\s+TO)\b`),
	buyer:     compileAll(`(?i)^(?:BILL(?:ED)?\s+TO|SHIP\s+TO|ISSUED\s+TO|SOLD\s+TO|BUYER|CUSTOMER|CLIENT)\b`),
	subject:   compileAll(`(?i)^(?:SUBJECT|RE)\b`),
	recipient: compileAll(`(?i)^(?:DEAR|ATTN|ATTENTION|TO)\b`),
	subtotal:  compileAll(`(?i)\bSUB\s*-?\s*TOTAL\b`),
	vat:       compileAll(`(?i)\b(?:SALES\s+TAX|VAT|GST|TAX)\b`),
	vatSkip:   compileAll(`(?i)\bTAX\s+INVOICE\b`),
	discount:  compileAll(`(?i)\b(?:PACKAGE\s+DISCOUNT|DISCOUNT)\b`),
	total: compileAll(
		`(?i)\b(?:TOTAL\s+DUE|BALANCE\s+DUE|AMOUNT\s+DUE|GRAND\s+TOTAL)\b`,
		`(?i)\bTOTAL\b`,
	),
	totalSkip: compileAll(`(?i)\bSUB\s*-?\s*TOTAL\b`),
}

var thaLabels = labelSet{
	docNo:     compileAll(`เลขที่(?:เอกสาร)?\s*[:：]?\s*([A-Za-z0-9][A-Za-z0-9/-]*)`),
	dateLabel: compileAll(`วันที่`),
	dueLabel:  compileAll(`ครบกำหนด|กำหนดชำระ`),
	seller:    compileAll(`^(?:ผู้ขาย|ผู้ออก|ผู้ให้บริการ)`),
	buyer:     compileAll(`^(?:ลูกค้า|ผู้ซื้อ|นามลูกค้า|ผู้รับบริการ)`),
	subject:   compileAll(`^เรื่อง`),
	recipient: compileAll(`^เรียน`),
	subtotal:  compileAll(`ยอดรวมก่อนภาษี|รวมเป็นเงิน`),
	vat:       compileAll(`ภาษีมูลค่าเพิ่ม|ภาษี`),
	discount:  compileAll(`ส่วนลด`),
	total:     compileAll(`รวมทั้งสิ้น|รวมเงินทั้งสิ้น|ยอดสุทธิ|รวมสุทธิ|ยอดรวม`),
}

func compileAll(srcs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(srcs))
	for i, s := range srcs {
		out[i] = regexp.MustCompile(s)
	}
	return out
}

// labelSetsFor orders the label vocabularies by the language hint. The hint
// is a preference, never a filter.
func labelSetsFor(lang string) []labelSet {
	if lang == "tha" {
		return []labelSet{thaLabels, engLabels}
	}
	return []labelSet{engLabels, thaLabels}
}

// ExtractFields pulls the scalar fields relevant to docType out of
// normalized text. It is best-effort: fields it cannot locate stay absent.
func ExtractFields(text string, docType dto.DocumentType, lang string) dto.SmartFields {
	lines := nonEmptyLines(text)
	sets := labelSetsFor(lang)

	switch {
	case docType.IsCommercial():
		return extractCommercial(text, lines, docType, sets)
	case docType == dto.DocTypeThaiMemo:
		_, f := heading.ParseThaiMemo(text)
		return f
	case docType == dto.DocTypeResume:
		return extractResume(lines)
	case docType == dto.DocTypeBusinessLetter:
		return extractLetter(text, lines, sets)
	default:
		return extractGeneric(lines, docType)
	}
}

func extractCommercial(text string, lines []string, docType dto.DocumentType, sets []labelSet) dto.SmartFields {
	f := dto.SmartFields{DocType: docType}

	for _, set := range sets {
		if f.DocNo == "" {
			f.DocNo = firstCapture(lines, set.docNo)
		}
		if f.Date == "" {
			f.Date = findDate(lines, set.dateLabel, set.dueLabel)
		}
		if f.DueDate == "" {
			f.DueDate = findDate(lines, set.dueLabel, nil)
		}
		if f.Seller == "" {
			f.Seller = labelValue(lines, set.seller)
		}
		if f.Buyer == "" {
			f.Buyer = labelValue(lines, set.buyer)
		}
		if f.Subtotal == nil {
			f.Subtotal = moneyByLabel(lines, set.subtotal, nil)
		}
		if f.VAT == nil {
			f.VAT = moneyByLabel(lines, set.vat, set.vatSkip)
		}
		if f.Discount == nil {
			f.Discount = moneyByLabel(lines, set.discount, nil)
		}
		if f.Total == nil {
			f.Total = moneyByLabel(lines, set.total, set.totalSkip)
		}
	}
	if f.Date == "" {
		// unlabeled documents: the first date-shaped substring wins
		f.Date = strings.TrimSpace(reDateShape.FindString(text))
	}
	return f
}

func extractResume(lines []string) dto.SmartFields {
	f := dto.SmartFields{DocType: dto.DocTypeResume}
	f.Email = findFirstMatch(lines, reEmail)
	f.Phone = findFirstMatch(lines, rePhone)

	// The name and title sit in the first few lines, above any section
	// heading, on short lines that are not contact details.
	limit := 8
	var candidates []string
	for _, l := range lines {
		if limit == 0 || reResumeHeading.MatchString(l) {
			break
		}
		limit--
		if reEmail.MatchString(l) || rePhone.MatchString(l) {
			continue
		}
		words := strings.Fields(l)
		if len(words) == 0 || len(words) > 5 || len([]rune(l)) >= 50 {
			continue
		}
		if !reAnyLetter.MatchString(l) {
			continue
		}
		candidates = append(candidates, l)
	}
	if len(candidates) > 0 {
		f.Name = candidates[0]
	}
	if len(candidates) > 1 {
		f.Title = candidates[1]
	}
	for _, l := range lines {
		if reAddressHint.MatchString(l) {
			f.Address = l
			break
		}
	}
	return f
}

func extractLetter(text string, lines []string, sets []labelSet) dto.SmartFields {
	f := dto.SmartFields{DocType: dto.DocTypeBusinessLetter}
	for _, set := range sets {
		if f.Subject == "" {
			f.Subject = labelValue(lines, set.subject)
		}
		if f.Recipient == "" {
			f.Recipient = labelValue(lines, set.recipient)
		}
		if f.Date == "" {
			f.Date = findDate(lines, set.dateLabel, nil)
		}
	}
	if f.Date == "" {
		f.Date = strings.TrimSpace(reDateShape.FindString(text))
	}
	// the sender is the first short line under the sign-off
	for i, l := range lines {
		if !reSignOff.MatchString(l) {
			continue
		}
		for j := i + 1; j < len(lines) && j <= i+2; j++ {
			if words := strings.Fields(lines[j]); len(words) >= 1 && len(words) <= 5 {
				f.Sender = lines[j]
				break
			}
		}
		break
	}
	return f
}

func extractGeneric(lines []string, docType dto.DocumentType) dto.SmartFields {
	f := dto.SmartFields{DocType: docType}
	f.Email = findFirstMatch(lines, reEmail)
	f.Phone = findFirstMatch(lines, rePhone)
	for _, l := range lines {
		if reAddressHint.MatchString(l) {
			f.Address = l
			break
		}
	}
	return f
}

/* ---------- scanning primitives ---------- */

func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func trimSeparators(s string) string {
	return strings.Trim(s, " \t:：#.–—-")
}

// labelValue implements the label-then-same-or-next-line rule: for the
// first line matching a label, the remainder of the line is the value; if
// the remainder is empty the value falls through to the next 1-2 lines.
func labelValue(lines []string, labels []*regexp.Regexp) string {
	for _, re := range labels {
		for i, l := range lines {
			loc := re.FindStringIndex(l)
			if loc == nil {
				continue
			}
			if rest := trimSeparators(l[loc[1]:]); rest != "" {
				return rest
			}
			for j := i + 1; j < len(lines) && j <= i+2; j++ {
				if rest := trimSeparators(lines[j]); rest != "" {
					return rest
				}
			}
			return ""
		}
	}
	return ""
}

// firstCapture returns the first capture group of the first pattern that
// matches any line.
func firstCapture(lines []string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		for _, l := range lines {
			if m := re.FindStringSubmatch(l); len(m) > 1 {
				return strings.TrimSpace(m[1])
			}
		}
	}
	return ""
}

// findDate scans for a labeled date, looking on the labeled line first and
// then the next 1-2 lines. Lines matching any avoid pattern are skipped so
// DATE never steals DUE DATE's value.
func findDate(lines []string, labels, avoid []*regexp.Regexp) string {
	for _, re := range labels {
		for i, l := range lines {
			if matchesAny(l, avoid) {
				continue
			}
			loc := re.FindStringIndex(l)
			if loc == nil {
				continue
			}
			if d := reDateShape.FindString(l[loc[1]:]); d != "" {
				return strings.TrimSpace(d)
			}
			for j := i + 1; j < len(lines) && j <= i+2; j++ {
				if d := reDateShape.FindString(lines[j]); d != "" {
					return strings.TrimSpace(d)
				}
			}
			return ""
		}
	}
	return ""
}

// moneyByLabel finds a labeled amount. The value is the last number-shaped
// token on the labeled line, because labels and reference numbers precede
// the amount; a bare percentage is kept raw for the validator to resolve.
func moneyByLabel(lines []string, labels, skip []*regexp.Regexp) *dto.MoneyField {
	for _, re := range labels {
		for i, l := range lines {
			if matchesAny(l, skip) {
				continue
			}
			loc := re.FindStringIndex(l)
			if loc == nil {
				continue
			}
			rest := l[loc[1]:]
			if field := moneyFromFragment(rest); field != nil {
				return field
			}
			for j := i + 1; j < len(lines) && j <= i+2; j++ {
				if field := moneyFromFragment(lines[j]); field != nil {
					return field
				}
			}
			return nil
		}
	}
	return nil
}

func moneyFromFragment(s string) *dto.MoneyField {
	if p := rePercentTok.FindString(s); p != "" {
		return &dto.MoneyField{Raw: p, Text: p}
	}
	s = reSplitDecimal.ReplaceAllString(s, "$1.$2")
	tokens := reNumberTok.FindAllString(s, -1)
	if len(tokens) == 0 {
		return nil
	}
	return NewMoneyField(tokens[len(tokens)-1])
}

func matchesAny(s string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func findFirstMatch(lines []string, re *regexp.Regexp) string {
	for _, l := range lines {
		if m := re.FindString(l); m != "" {
			return m
		}
	}
	return ""
}
