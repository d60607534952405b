// Package heading partitions normalized OCR text into named sections. The
// general path uses fuzzy heading detection; Thai official memos follow a
// fixed template instead (thaimemo.go).
package heading

import (
	"regexp"
	"strings"

	"github.com/pattarin-dev/thaidoc-parser/dto"
)

var (
	reColonEnd    = regexp.MustCompile(`^.{2,40}[:：]\s*$`)
	reBulletLine  = regexp.MustCompile(`^(-|\*|•|▪|■|●|○)\s+|^\(?\d{1,3}\)?[.)]\s+|^[A-Za-z][.)]\s+`)
	reBulletTrim  = regexp.MustCompile(`^\(?\d{1,3}\)?[.)]\s+|^(-|\*|•|▪|■|●|○)\s+`)
	reHeadKeyTH   = regexp.MustCompile(`^(เนื้อหา|หัวข้อ|สรุป|หมายเหตุ|รายละเอียด|ข้อมูล|ภาคผนวก|อ้างอิง)`)
	reHeadKeyEN   = regexp.MustCompile(`(?i)^(SUMMARY|ABSTRACT|INTRODUCTION|EDUCATION|EXPERIENCE|PROJECTS?|SKILLS|CERTIFICATIONS?|ADDITIONAL INFORMATION|INVOICE|RECEIPT|BILL TO|SHIP TO|ISSUED TO|PAY TO|TOTAL|SUBTOTAL)\b`)
	reInlineHead  = regexp.MustCompile(`(?i)^(INVOICE|RECEIPT)\b.+(DATE|DUE DATE)\b`)
	reSentenceEnd = regexp.MustCompile(`[.:;!?。！？]$`)
	reNonLatin    = regexp.MustCompile(`[^A-Za-z]`)
	reLowerLatin  = regexp.MustCompile(`[^A-Z]`)
)

func isMostlyUpper(s string) bool {
	letters := reNonLatin.ReplaceAllString(s, "")
	if len(letters) < 4 {
		return false
	}
	uppers := len(reLowerLatin.ReplaceAllString(letters, ""))
	return float64(uppers)/float64(len(letters)) >= 0.75
}

func isHeadingLine(line string) bool {
	l := strings.TrimSpace(line)
	if l == "" {
		return false
	}
	if reColonEnd.MatchString(l) {
		return true
	}
	if isMostlyUpper(l) {
		return true
	}
	if reHeadKeyTH.MatchString(l) || reHeadKeyEN.MatchString(l) {
		return true
	}
	return reInlineHead.MatchString(l)
}

// splitState tracks the single pass over lines: either no section has been
// opened yet, or one is accumulating content.
type splitState struct {
	sections []dto.Section
	current  *dto.Section
}

func (st *splitState) open(h string) {
	st.flush()
	st.current = &dto.Section{Heading: h, Content: []string{}}
}

func (st *splitState) flush() {
	if st.current != nil {
		st.sections = append(st.sections, *st.current)
		st.current = nil
	}
}

func (st *splitState) add(l string) {
	if st.current == nil {
		// leading content before any heading
		st.current = &dto.Section{Heading: "body", Content: []string{}}
	}
	if reBulletLine.MatchString(l) {
		st.current.Content = append(st.current.Content, reBulletTrim.ReplaceAllString(l, ""))
		return
	}
	n := len(st.current.Content)
	if n == 0 || reSentenceEnd.MatchString(st.current.Content[n-1]) {
		st.current.Content = append(st.current.Content, l)
		return
	}
	// soft-wrapped continuation of the previous entry
	st.current.Content[n-1] += " " + l
}

// ParseSections partitions text into sections in encounter order. It never
// fails: empty input yields no sections, text without headings yields a
// single implicit body section.
func ParseSections(text string) []dto.Section {
	if strings.TrimSpace(text) == "" {
		return []dto.Section{}
	}
	st := &splitState{}
	for _, raw := range strings.Split(text, "\n") {
		l := strings.TrimSpace(raw)
		if l == "" {
			continue
		}
		if isHeadingLine(l) {
			st.open(strings.TrimRight(l, " :："))
			continue
		}
		st.add(l)
	}
	st.flush()

	out := make([]dto.Section, 0, len(st.sections))
	for _, s := range st.sections {
		content := make([]string, 0, len(s.Content))
		for _, c := range s.Content {
			if c = strings.TrimSpace(c); c != "" {
				content = append(content, c)
			}
		}
		out = append(out, dto.Section{Heading: strings.TrimSpace(s.Heading), Content: content})
	}
	return out
}
