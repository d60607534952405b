package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/pattarin-dev/thaidoc-parser/dto"
)

// Empirically chosen tolerances; kept as named constants so callers can
// reason about them.
const (
	// AmountAbsTolerance and AmountRelTolerance bound how far qty*unit may
	// drift from a printed amount before a candidate is rejected.
	AmountAbsTolerance = 0.05
	AmountRelTolerance = 0.02

	// MaxTaxRatio caps a tax amount derived from total relations at a share
	// of the subtotal; anything above is a misread, not a tax.
	MaxTaxRatio = 0.35

	// TaxSanityRatio marks a directly extracted tax as suspicious when it
	// exceeds this share of the subtotal (usually a dropped decimal point).
	TaxSanityRatio = 0.8
)

var (
	reMoneyJunk    = regexp.MustCompile(`[^0-9 \t.,-]`)
	reSplitDecimal = regexp.MustCompile(`\b(\d+)[ \t]+(\d{2})\b`)
	reHasDecimal   = regexp.MustCompile(`\d\.\d{1,2}`)
	reFloatToken   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	reBareDigits   = regexp.MustCompile(`^\d{3,}$`)
	reBareInt      = regexp.MustCompile(`^\d+$`)
)

var moneyPrinter = message.NewPrinter(language.English)

// ParseMoneyToken interprets an OCR-mangled numeric token. Rules are tried
// in order, first match wins:
//
//  1. a decimal point with 1-2 fraction digits parses directly;
//  2. a bare run of 3+ digits lost its decimal point two digits from the
//     end ("10000" -> 100.00);
//  3. a decimal fragment split across a space is rejoined ("40 00" -> 40.00);
//  4. anything else parses as a plain integer.
//
// A leading minus, as printed on credit and discount lines, keeps the
// value negative.
//
// The second return is false when no rule applies; callers treat that as
// "field not found", never as an error.
func ParseMoneyToken(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	s := reMoneyJunk.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimSpace(strings.TrimLeft(s, "-"))
	s = reSplitDecimal.ReplaceAllString(s, "$1.$2")
	if s == "" {
		return 0, false
	}

	var v float64
	var ok bool
	switch {
	case reHasDecimal.MatchString(s):
		v, ok = parseFloatPrefix(s)
	case reBareDigits.MatchString(s):
		v, ok = parseFloatPrefix(s[:len(s)-2] + "." + s[len(s)-2:])
	case reBareInt.MatchString(s):
		v, ok = parseFloatPrefix(s)
	}
	if ok && neg {
		v = -v
	}
	return v, ok
}

// parseFloatPrefix parses the first numeric run, tolerating trailing junk
// like a stray dash.
func parseFloatPrefix(s string) (float64, bool) {
	tok := reFloatToken.FindString(s)
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// FormatMoney renders a value as its thousands-grouped two-decimal display
// string, e.g. 1234.5 -> "1,234.50".
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("%v",
		number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// NewMoneyField wraps ParseMoneyToken, keeping the raw substring even when
// it does not parse.
func NewMoneyField(raw string) *dto.MoneyField {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f := &dto.MoneyField{Raw: raw}
	if v, ok := ParseMoneyToken(raw); ok {
		v = round2(v)
		f.Value = dto.Float(v)
		f.Text = FormatMoney(v)
	}
	return f
}

// moneyFieldFromValue builds a field for a derived amount.
func moneyFieldFromValue(v float64) *dto.MoneyField {
	v = round2(v)
	return &dto.MoneyField{
		Raw:   strconv.FormatFloat(v, 'f', 2, 64),
		Value: dto.Float(v),
		Text:  FormatMoney(v),
	}
}

// ApproxEqual compares two amounts within the greater of the absolute and
// relative tolerance.
func ApproxEqual(a, b float64) bool {
	limit := math.Max(AmountAbsTolerance, AmountRelTolerance*math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= limit
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
