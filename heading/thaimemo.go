package heading

import (
	"regexp"
	"strings"

	"github.com/pattarin-dev/thaidoc-parser/dto"
)

// Thai official memos (บันทึกข้อความ) follow a fixed administrative
// template, so the splitter extracts its blocks by label instead of
// guessing headings.

var (
	reMemoRefLine  = regexp.MustCompile(`(?m)^ที่[ \t]*[ก-ฮ]{1,4}`)
	reMemoDateLine = regexp.MustCompile(`(?m)^วันที่`)
	reMemoSubject  = regexp.MustCompile(`(?m)^เรื่อง`)
	reMemoTo       = regexp.MustCompile(`(?m)^เรียน`)
	reInlineDate   = regexp.MustCompile(`วันที่[ \t]*(.+)$`)
	reParenName    = regexp.MustCompile(`\(([^)]{2,60})\)`)
	reThaiName     = regexp.MustCompile(`^(?:นาย|นาง|นางสาว|ดร\.?)[ \t]?\S+`)
	rePositionWord = regexp.MustCompile(`ผู้อำนวยการ|อธิบดี|รองอธิบดี|หัวหน้า|ปลัด|เลขาธิการ|ผู้ว่า|นักวิชาการ|ผู้จัดการ`)
)

// signatureWindow bounds how many trailing lines are searched for the
// signature block. Longer sign-off blocks get truncated.
const signatureWindow = 6

// memo header fields (top of the template) and body markers (must appear
// below it). A single stray keyword is not enough to call a page a memo.
var memoHeaderChecks = []func(string) bool{
	func(t string) bool { return strings.Contains(t, "บันทึกข้อความ") },
	func(t string) bool { return strings.Contains(t, "ส่วนราชการ") },
	func(t string) bool { return reMemoRefLine.MatchString(t) },
	func(t string) bool { return reMemoDateLine.MatchString(t) },
	func(t string) bool { return reMemoSubject.MatchString(t) },
}

var memoBodyChecks = []func(string) bool{
	func(t string) bool { return reMemoTo.MatchString(t) },
	func(t string) bool { return strings.Contains(t, "สิ่งที่ส่งมาด้วย") },
	func(t string) bool { return strings.Contains(t, "ลงชื่อ") },
	func(t string) bool { return strings.Contains(t, "ขอแสดงความนับถือ") },
	func(t string) bool { return strings.Contains(t, "จึงเรียนมาเพื่อ") },
}

// DetectThaiMemo requires at least two header-field hits and one body hit.
func DetectThaiMemo(text string) bool {
	header := 0
	for _, check := range memoHeaderChecks {
		if check(text) {
			header++
		}
	}
	if header < 2 {
		return false
	}
	for _, check := range memoBodyChecks {
		if check(text) {
			return true
		}
	}
	return false
}

// afterLabel strips a label prefix and the separators that follow it.
func afterLabel(line, label string) string {
	rest := strings.TrimPrefix(line, label)
	return strings.TrimLeft(rest, " \t:：-–")
}

// ParseThaiMemo extracts the memo template: four fixed header fields, an
// addressee block, an attachments block, the free-form body and a bounded
// signature block. A synthesized header section is prepended.
func ParseThaiMemo(text string) ([]dto.Section, dto.SmartFields) {
	fields := dto.SmartFields{DocType: dto.DocTypeThaiMemo}
	lines := splitLines(text)

	var addressee, attachments, body, signature []string
	consumed := make([]bool, len(lines))

	for i, l := range lines {
		switch {
		case strings.Contains(l, "บันทึกข้อความ") && len([]rune(l)) < 30:
			consumed[i] = true
		case strings.HasPrefix(l, "ส่วนราชการ"):
			fields.Agency = afterLabel(l, "ส่วนราชการ")
			consumed[i] = true
		case strings.HasPrefix(l, "ที่") && !strings.HasPrefix(l, "ที่อยู่"):
			rest := afterLabel(l, "ที่")
			if m := reInlineDate.FindStringSubmatch(rest); m != nil {
				fields.Date = strings.TrimSpace(m[1])
				rest = strings.TrimSpace(rest[:strings.Index(rest, "วันที่")])
			}
			fields.RefNo = rest
			consumed[i] = true
		case strings.HasPrefix(l, "วันที่"):
			fields.Date = afterLabel(l, "วันที่")
			consumed[i] = true
		case strings.HasPrefix(l, "เรื่อง"):
			fields.Subject = afterLabel(l, "เรื่อง")
			consumed[i] = true
		case strings.HasPrefix(l, "เรียน"):
			addressee = append(addressee, afterLabel(l, "เรียน"))
			consumed[i] = true
		case strings.HasPrefix(l, "สิ่งที่ส่งมาด้วย"):
			attachments = append(attachments, afterLabel(l, "สิ่งที่ส่งมาด้วย"))
			consumed[i] = true
		}
	}
	if len(addressee) > 0 {
		fields.Addressee = addressee[0]
	}

	sigStart := findSignatureStart(lines)
	for i, l := range lines {
		if consumed[i] {
			continue
		}
		if sigStart >= 0 && i >= sigStart {
			signature = append(signature, l)
			continue
		}
		body = append(body, l)
	}
	fields.SignerName, fields.SignerPosition = parseSigner(signature)

	header := dto.Section{Heading: "header", Content: []string{}}
	for _, kv := range []struct{ label, val string }{
		{"ส่วนราชการ", fields.Agency},
		{"ที่", fields.RefNo},
		{"วันที่", fields.Date},
		{"เรื่อง", fields.Subject},
	} {
		if kv.val != "" {
			header.Content = append(header.Content, kv.label+": "+kv.val)
		}
	}

	sections := []dto.Section{header}
	if len(addressee) > 0 {
		sections = append(sections, dto.Section{Heading: "เรียน", Content: addressee})
	}
	if len(attachments) > 0 {
		sections = append(sections, dto.Section{Heading: "สิ่งที่ส่งมาด้วย", Content: attachments})
	}
	if len(body) > 0 {
		sections = append(sections, dto.Section{Heading: "เนื้อหา", Content: body})
	}
	if len(signature) > 0 {
		sections = append(sections, dto.Section{Heading: "ลงชื่อ", Content: signature})
	}
	return sections, fields
}

// findSignatureStart locates the sign-off inside the trailing window.
func findSignatureStart(lines []string) int {
	start := len(lines) - signatureWindow
	if start < 0 {
		start = 0
	}
	for i := start; i < len(lines); i++ {
		l := lines[i]
		if strings.Contains(l, "ลงชื่อ") || strings.Contains(l, "ขอแสดงความนับถือ") ||
			reParenName.MatchString(l) {
			return i
		}
	}
	return -1
}

func parseSigner(signature []string) (name, position string) {
	for i, l := range signature {
		if name == "" {
			if m := reParenName.FindStringSubmatch(l); m != nil {
				name = strings.TrimSpace(m[1])
			} else if reThaiName.MatchString(l) {
				name = l
			}
			if name != "" {
				// the position usually sits right under the name
				for j := i + 1; j < len(signature); j++ {
					rest := strings.TrimSpace(afterLabel(signature[j], "ตำแหน่ง"))
					if rest != "" && !strings.Contains(rest, "ลงชื่อ") &&
						!strings.Contains(rest, "ขอแสดงความนับถือ") {
						position = rest
						return
					}
				}
			}
			continue
		}
	}
	if position == "" {
		for _, l := range signature {
			if rePositionWord.MatchString(l) && !strings.Contains(l, name) {
				position = l
				break
			}
		}
	}
	return
}

func splitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
