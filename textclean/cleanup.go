// Package textclean normalizes raw OCR output of mixed Thai/English
// documents into a stable form the extractors can scan line by line.
// Clean is idempotent: feeding its output back in returns it unchanged.
package textclean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var thaiDigits = map[rune]rune{
	'๐': '0', '๑': '1', '๒': '2', '๓': '3', '๔': '4',
	'๕': '5', '๖': '6', '๗': '7', '๘': '8', '๙': '9',
}

var (
	reZeroWidth   = regexp.MustCompile("[\u200B\u200C\u200D\u2060\uFEFF]")
	reMultiSpace  = regexp.MustCompile(`[ \t]{2,}`)
	reUniSpace    = regexp.MustCompile("[\u00A0\u1680\u2000-\u200A\u202F\u205F\u3000]")
	reSpaceEOL    = regexp.MustCompile(`[ \t]+\n`)
	reManyBlank   = regexp.MustCompile(`\n{3,}`)
	reEOLHyphen   = regexp.MustCompile("([A-Za-zก-ฮ0-9])[-\u2010\u2011]\n[ \t]*([A-Za-zก-ฮ0-9])")
	reNoisyBorder = regexp.MustCompile("^[^A-Za-zก-ฮ0-9]{3,}$")
	reLetterDigit = regexp.MustCompile("[A-Za-zก-ฮ0-9]")

	reBullet    = regexp.MustCompile(`^(-|\*|•|▪|■|●|○)\s+|^\(?\d{1,3}\)?[.)]\s+|^[A-Za-z][.)]\s+`)
	reThaiRefNo = regexp.MustCompile(`^ที่\s+[ก-ฮ]{1,4}\s*\d`)
	// A colon close to the start of a line marks it as a label line that
	// must not be folded into the previous paragraph.
	reEarlyColon = regexp.MustCompile(`^[^:：\n]{1,24}[:：]`)

	reThaiGap   = regexp.MustCompile("([ก-๛])[ \t]+([ก-๛])")
	reCloseGap  = regexp.MustCompile(`[ \t]+([,.;:!?%)\]}”])([ \t]|$|\n)`)
	reCloseEnd  = regexp.MustCompile(`[ \t]+([,.;:!?%)\]}”])$`)
	reOpenGap   = regexp.MustCompile(`([(\[{“])[ \t]+`)
)

// headingWords keeps structural lines standalone during the line-merge
// pass. Matching is prefix-anchored and case-insensitive for Latin.
var headingWords = []string{
	"INVOICE", "TAX INVOICE", "RECEIPT", "QUOTATION", "PURCHASE ORDER",
	"CREDIT NOTE", "DEBIT NOTE", "BILL", "SUBTOTAL", "TOTAL", "VAT", "TAX",
	"DISCOUNT", "DATE", "DUE DATE", "DESCRIPTION", "QTY", "QUANTITY",
	"SUMMARY", "ABSTRACT", "EDUCATION", "EXPERIENCE", "PROJECT", "SKILLS",
	"CERTIFICATION", "ADDITIONAL INFORMATION", "BILL TO", "SHIP TO",
	"ISSUED TO", "PAY TO",
	"บันทึกข้อความ", "ส่วนราชการ", "วันที่", "เรื่อง", "เรียน",
	"สิ่งที่ส่งมาด้วย", "ลงชื่อ", "ขอแสดงความนับถือ", "ตำแหน่ง",
	"ใบกำกับภาษี", "ใบเสร็จรับเงิน", "ใบเสนอราคา", "ใบสั่งซื้อ",
	"ใบแจ้งหนี้", "ใบลดหนี้", "ใบเพิ่มหนี้",
	"ยอดรวม", "รวมเงิน", "ส่วนลด", "ภาษีมูลค่าเพิ่ม",
	"หัวข้อ", "สรุป", "หมายเหตุ", "เนื้อหา", "รายละเอียด", "ประวัติ",
}

// ocrFixes corrects misrecognitions OCR makes reliably enough to hard-code.
// Keys must never appear in any value, so applying the table twice is a
// no-op.
var ocrFixes = []struct{ bad, good string }{
	{"บันทีกข้อความ", "บันทึกข้อความ"},
	{"บันทิกข้อความ", "บันทึกข้อความ"},
	{"สวนราชการ", "ส่วนราชการ"},
	{"ไบกำกับภาษี", "ใบกำกับภาษี"},
	{"ไบเสร็จ", "ใบเสร็จ"},
	{"INVOIGE", "INVOICE"},
	{"LNVOICE", "INVOICE"},
	{"RECE1PT", "RECEIPT"},
	{"SUBT0TAL", "SUBTOTAL"},
	{"T0TAL", "TOTAL"},
	{"QUANT1TY", "QUANTITY"},
}

var reLineStartThaiSubject = regexp.MustCompile(`(?m)^เรีอง`)

// Clean normalizes raw OCR text. It never fails; empty input yields "".
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	s := norm.NFC.String(raw)
	s = toArabicDigits(s)
	s = reZeroWidth.ReplaceAllString(s, "")
	s = reUniSpace.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = reEOLHyphen.ReplaceAllString(s, "$1$2")
	s = reSpaceEOL.ReplaceAllString(s, "\n")
	s = reManyBlank.ReplaceAllString(s, "\n\n")
	s = reMultiSpace.ReplaceAllString(s, " ")

	s = dropNoise(s)
	s = mergeLines(s)
	s = applyOCRFixes(s)

	// OCR over-segments Thai clusters; three passes close chains like
	// "ก ร ม".
	for i := 0; i < 3; i++ {
		s = reThaiGap.ReplaceAllString(s, "$1$2")
	}
	s = reCloseGap.ReplaceAllString(s, "$1$2")
	s = reCloseEnd.ReplaceAllString(s, "$1")
	s = reOpenGap.ReplaceAllString(s, "$1")
	s = reMultiSpace.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

func toArabicDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := thaiDigits[r]; ok {
			return d
		}
		return r
	}, s)
}

// dropNoise removes lines that are border garbage: no letters at all, or
// less than a quarter letters/digits.
func dropNoise(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" {
			kept = append(kept, l)
			continue
		}
		if reNoisyBorder.MatchString(t) {
			continue
		}
		letters := len(reLetterDigit.FindAllString(t, -1))
		if float64(letters)/float64(len([]rune(t))) < 0.25 {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

// IsStructuralLine reports whether a line must survive the merge pass on
// its own: blank lines, bullets, label lines and known heading words.
func IsStructuralLine(line string) bool {
	l := strings.TrimSpace(line)
	if l == "" {
		return true
	}
	if reBullet.MatchString(l) {
		return true
	}
	if reEarlyColon.MatchString(l) {
		return true
	}
	if reThaiRefNo.MatchString(l) {
		return true
	}
	upper := strings.ToUpper(l)
	for _, w := range headingWords {
		if strings.HasPrefix(upper, w) || strings.HasPrefix(l, w) {
			return true
		}
	}
	return false
}

// mergeLines rejoins paragraphs OCR broke across lines. Structural lines
// stay standalone; anything else is folded into the previous open line.
func mergeLines(s string) string {
	lines := strings.Split(s, "\n")
	merged := make([]string, 0, len(lines))
	for _, raw := range lines {
		l := strings.TrimSpace(raw)
		if l == "" {
			merged = append(merged, "")
			continue
		}
		if IsStructuralLine(l) {
			merged = append(merged, l)
			continue
		}
		if len(merged) == 0 || merged[len(merged)-1] == "" || IsStructuralLine(merged[len(merged)-1]) {
			merged = append(merged, l)
			continue
		}
		merged[len(merged)-1] += " " + l
	}
	return strings.Join(merged, "\n")
}

func applyOCRFixes(s string) string {
	for _, f := range ocrFixes {
		s = strings.ReplaceAll(s, f.bad, f.good)
	}
	return reLineStartThaiSubject.ReplaceAllString(s, "เรื่อง")
}
