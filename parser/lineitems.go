package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pattarin-dev/thaidoc-parser/dto"
)

// Item-table header orderings seen in the wild. Column gaps are bounded to
// 40 characters so matching stays linear on adversarial input.
// Gaps are lazy so the match ends at the nearest keyword instead of
// swallowing the first row when a totals line sits close below the header.
var itemHeaderPats = []*regexp.Regexp{
	regexp.MustCompile(`(?is)\b(?:QTY|QUANTITY)\b.{0,40}?\bDESCRIPTION\b.{0,40}?\b(?:UNIT\s+PRICE|RATE|PRICE)\b.{0,40}?\b(?:AMOUNT|TOTAL|COST)\b`),
	regexp.MustCompile(`(?is)\b(?:DESCRIPTION|TASK)\b.{0,40}?\b(?:UNIT\s+PRICE|RATE|PRICE)\b.{0,40}?\b(?:QTY|QUANTITY|HOURS?|HRS?)\b.{0,40}?\b(?:AMOUNT|TOTAL|COST)\b`),
	// headers with a misread quantity column
	regexp.MustCompile(`(?is)\bDESCRIPTION\b.{0,40}?\b(?:UNIT\s+PRICE|RATE|PRICE)\b.{0,40}?\b(?:AMOUNT|TOTAL|COST)\b`),
	regexp.MustCompile(`(?s)(?:รายการ|รายละเอียด).{0,40}?จำนวน.{0,40}?(?:ราคาต่อหน่วย|ราคา).{0,40}?(?:จำนวนเงิน|รวมเงิน)`),
}

var reRegionEnd = regexp.MustCompile(`(?i)\b(?:SUBTOTAL|TOTAL\s+DUE|BALANCE\s+DUE|AMOUNT\s+DUE|TOTAL)\b|รวมเป็นเงิน|ยอดรวม|รวมทั้งสิ้น|รวมเงิน`)

var (
	reDecMoney  = regexp.MustCompile(`\d[\d,]*\.\d{1,2}`)
	reThousands = regexp.MustCompile(`^\$?\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?$`)
	reBareLong  = regexp.MustCompile(`^\d{3,}$`)
	reInt       = regexp.MustCompile(`^\d+$`)
	reTwoDigit  = regexp.MustCompile(`^\d{2}$`)
	reDollarTok = regexp.MustCompile(`^\$\d[\d,]*(?:\.\d{1,2})?(?:/[A-Za-z]+)?$`)
	reQtyShape  = regexp.MustCompile(`^\d{1,4}(?:[.,]\d{1,2})?$`)
	reQtyJunk   = regexp.MustCompile(`[^0-9 \t.,-]`)
)

// ExtractLineItems recovers (description, qty, unit price, amount) rows
// from the tabular region of commercial text. Best-effort: no region or no
// parsable rows yields an empty list, never an error.
func ExtractLineItems(text string) []dto.LineItem {
	region, ok := sliceItemsRegion(text)
	if !ok {
		return []dto.LineItem{}
	}
	tokens := strings.Fields(strings.ReplaceAll(region, "\n", " "))

	// Invoice layouts disagree on column order, so two grammars compete
	// and whichever yields more accepted rows wins.
	a := parseItemsQtyFirst(tokens)
	b := parseItemsDescFirst(tokens)
	if len(b) > len(a) {
		return b
	}
	return a
}

// sliceItemsRegion bounds the region between the earliest column-header
// match and the next total/subtotal keyword.
func sliceItemsRegion(text string) (string, bool) {
	best := -1
	bestEnd := -1
	for _, p := range itemHeaderPats {
		loc := p.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if best == -1 || loc[0] < best {
			best, bestEnd = loc[0], loc[1]
		}
	}
	if best == -1 {
		return "", false
	}
	tail := text[bestEnd:]
	if end := reRegionEnd.FindStringIndex(tail); end != nil {
		tail = tail[:end[0]]
	}
	tail = strings.TrimSpace(tail)
	return tail, tail != ""
}

type moneyTok struct {
	raw   string
	value float64
	next  int
}

// readMoney reads one money-shaped token at position i, rejoining decimal
// fragments that OCR split across a space.
func readMoney(tokens []string, i int) (moneyTok, bool) {
	cur, nxt := tokenAt(tokens, i), tokenAt(tokens, i+1)
	if reDecMoney.MatchString(cur) || reThousands.MatchString(cur) {
		if v, ok := ParseMoneyToken(cur); ok {
			return moneyTok{cur, v, i + 1}, true
		}
	}
	if reBareLong.MatchString(cur) && nxt != "00" {
		if v, ok := ParseMoneyToken(cur); ok {
			return moneyTok{cur, v, i + 1}, true
		}
	}
	if reInt.MatchString(cur) && reTwoDigit.MatchString(nxt) {
		raw := cur + " " + nxt
		if v, ok := ParseMoneyToken(raw); ok {
			return moneyTok{raw, v, i + 2}, true
		}
	}
	if reDollarTok.MatchString(cur) {
		if v, ok := ParseMoneyToken(cur); ok {
			return moneyTok{cur, v, i + 1}, true
		}
	}
	return moneyTok{}, false
}

type qtyTok struct {
	text string
	next int
}

func readQty(tokens []string, i int) (qtyTok, bool) {
	cur, nxt := tokenAt(tokens, i), tokenAt(tokens, i+1)
	if reInt.MatchString(cur) && reTwoDigit.MatchString(nxt) {
		return qtyTok{normalizeQty(cur + " " + nxt), i + 2}, true
	}
	if reQtyShape.MatchString(cur) || reBareLong.MatchString(cur) {
		return qtyTok{normalizeQty(cur), i + 1}, true
	}
	return qtyTok{}, false
}

func normalizeQty(raw string) string {
	s := reQtyJunk.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, ",", "")
	s = reSplitDecimal.ReplaceAllString(s, "$1.$2")
	if reBareLong.MatchString(s) {
		s = s[:len(s)-2] + "." + s[len(s)-2:]
	}
	return s
}

func tokenAt(tokens []string, i int) string {
	if i < 0 || i >= len(tokens) {
		return ""
	}
	return tokens[i]
}

// acceptItem applies the shared acceptance test: the description must
// contain a letter, and qty*unit must approximate the amount when all
// three are numeric.
func acceptItem(desc string, qtyText string, unit, amount float64) (dto.LineItem, bool) {
	if !reAnyLetter.MatchString(desc) {
		return dto.LineItem{}, false
	}
	if qn, err := strconv.ParseFloat(qtyText, 64); err == nil {
		if !ApproxEqual(amount, round2(qn*unit)) {
			return dto.LineItem{}, false
		}
	}
	return dto.LineItem{
		Description: desc,
		Qty:         qtyText,
		UnitPrice:   FormatMoney(unit),
		Amount:      FormatMoney(amount),
	}, true
}

// parseItemsQtyFirst walks the token stream expecting qty, description,
// unit price, amount. The cursor always advances past a rejected qty
// token, so the walk never stalls.
func parseItemsQtyFirst(tokens []string) []dto.LineItem {
	items := []dto.LineItem{}
	i := 0
	for i < len(tokens) {
		q, ok := readQty(tokens, i)
		if !ok {
			i++
			continue
		}
		j := q.next
		unitIdx := -1
		for k := j; k < len(tokens) && k < j+24; k++ {
			if _, ok := readMoney(tokens, k); ok {
				unitIdx = k
				break
			}
		}
		if unitIdx == -1 {
			i = j
			continue
		}
		unit, _ := readMoney(tokens, unitIdx)
		amt, ok := readMoney(tokens, unit.next)
		if !ok {
			i = unit.next
			continue
		}
		desc := strings.TrimSpace(strings.Join(tokens[j:unitIdx], " "))
		item, ok := acceptItem(desc, q.text, unit.value, amt.value)
		if !ok {
			if !reAnyLetter.MatchString(desc) {
				i = amt.next
			} else {
				i = j
			}
			continue
		}
		items = append(items, item)
		i = amt.next
	}
	return items
}

// parseItemsDescFirst expects description, unit price, qty, amount.
func parseItemsDescFirst(tokens []string) []dto.LineItem {
	items := []dto.LineItem{}
	i := 0
	for i < len(tokens) {
		start := i
		found := false
		for k := start + 1; k < len(tokens) && k < start+40; k++ {
			unit, ok := readMoney(tokens, k)
			if !ok {
				continue
			}
			q, ok := readQty(tokens, unit.next)
			if !ok {
				continue
			}
			amt, ok := readMoney(tokens, q.next)
			if !ok {
				continue
			}
			desc := strings.TrimSpace(strings.Join(tokens[start:k], " "))
			if !reAnyLetter.MatchString(desc) {
				break
			}
			item, ok := acceptItem(desc, q.text, unit.value, amt.value)
			if !ok {
				continue
			}
			items = append(items, item)
			i = amt.next
			found = true
			break
		}
		if !found {
			i++
		}
	}
	return items
}
