package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pattarin-dev/thaidoc-parser/dto"
)

var rePctDigits = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// Validate cross-checks extracted totals against line items and the
// subtotal/discount/tax/total identity. It returns an amended copy of the
// fields: gaps may be filled (recorded as fixes) but a value directly
// extracted from labeled text is never replaced by a derived one, with one
// documented exception — an implausibly high tax that a /100 rescale
// brings back into range (a dropped decimal point).
func Validate(fields dto.SmartFields, items []dto.LineItem) (dto.SmartFields, dto.ValidationReport) {
	f := fields
	report := dto.ValidationReport{Warnings: []string{}, Fixes: []string{}}

	sub, subOK := moneyValue(f.Subtotal)
	tax, taxOK := moneyValue(f.VAT)
	total, totalOK := moneyValue(f.Total)
	discount, _ := moneyValue(f.Discount)

	// tax captured as a percentage
	if !taxOK && f.VAT != nil && strings.Contains(f.VAT.Raw, "%") && subOK {
		if p, ok := percentOf(f.VAT.Raw); ok {
			tax, taxOK = round2(sub*p/100), true
			f.VAT = &dto.MoneyField{Raw: f.VAT.Raw, Value: dto.Float(tax), Text: FormatMoney(tax)}
			report.Fixes = append(report.Fixes, fmt.Sprintf("computed VAT from %s of subtotal", f.VAT.Raw))
		}
	}
	// discount captured as a percentage
	if discount == 0 && f.Discount != nil && f.Discount.Value == nil &&
		strings.Contains(f.Discount.Raw, "%") && subOK {
		if p, ok := percentOf(f.Discount.Raw); ok {
			discount = round2(sub * p / 100)
			report.Computed.DiscountFromPct = dto.Float(discount)
			f.Discount = &dto.MoneyField{Raw: f.Discount.Raw, Value: dto.Float(discount), Text: FormatMoney(discount)}
			report.Fixes = append(report.Fixes, fmt.Sprintf("computed discount from %s of subtotal", f.Discount.Raw))
		}
	}

	// tax from the totals relation; the upper bound rejects derivations
	// from misread totals
	if !taxOK && subOK && totalOK {
		t := round2(total - (sub - discount))
		if t >= -0.01 && t <= sub*MaxTaxRatio {
			tax, taxOK = t, true
			f.VAT = moneyFieldFromValue(t)
			report.Fixes = append(report.Fixes, "derived VAT from subtotal/total relation")
		}
	}

	// synthesize a missing total
	if !totalOK && subOK {
		total, totalOK = round2(sub-discount+tax), true
		f.Total = moneyFieldFromValue(total)
		report.Fixes = append(report.Fixes, "filled total from subtotal - discount + tax")
	}

	// a tax near the subtotal usually lost its decimal point
	if taxOK && subOK && tax > sub*TaxSanityRatio {
		rescaled := round2(tax / 100)
		if rescaled <= sub*MaxTaxRatio {
			raw := ""
			if f.VAT != nil {
				raw = f.VAT.Raw
			}
			tax = rescaled
			f.VAT = &dto.MoneyField{Raw: raw, Value: dto.Float(rescaled), Text: FormatMoney(rescaled)}
			report.Fixes = append(report.Fixes, "rescaled implausibly high VAT by 1/100")
		} else {
			report.Warnings = append(report.Warnings, "VAT is implausibly high relative to subtotal")
		}
	}

	// reconcile against the line-item sum
	if sum, ok := sumItems(items); ok {
		report.Computed.SubtotalFromItems = dto.Float(sum)
		if !subOK {
			sub, subOK = sum, true
			f.Subtotal = moneyFieldFromValue(sum)
			report.Fixes = append(report.Fixes, "set subtotal from line item sum")
		} else if !ApproxEqual(sub, sum) {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"subtotal (%s) does not match line item sum (%s)", FormatMoney(sub), FormatMoney(sum)))
		}
	}

	// final identity check; disagreement is reported, never auto-corrected
	if subOK && totalOK {
		expect := round2(sub - discount + tax)
		if !ApproxEqual(expect, total) {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"subtotal - discount + tax (%s) does not equal total (%s)", FormatMoney(expect), FormatMoney(total)))
		}
	}

	if subOK && totalOK {
		report.Computed.TaxFromCalc = dto.Float(round2(total - (sub - discount)))
	}
	if subOK {
		report.Computed.TotalFromCalc = dto.Float(round2(sub - discount + tax))
	}

	report.Confidence = confidence(f, report)
	return f, report
}

func confidence(f dto.SmartFields, report dto.ValidationReport) float64 {
	c := 0.6
	if f.DocNo != "" {
		c += 0.05
	}
	if f.Date != "" {
		c += 0.05
	}
	if f.Subtotal != nil && f.Subtotal.Value != nil {
		c += 0.10
	}
	if f.VAT != nil && f.VAT.Value != nil {
		c += 0.05
	}
	if f.Total != nil && f.Total.Value != nil {
		c += 0.10
	}
	c += -0.05*float64(len(report.Warnings)) + 0.03*float64(len(report.Fixes))
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func moneyValue(m *dto.MoneyField) (float64, bool) {
	if m == nil || m.Value == nil {
		return 0, false
	}
	return *m.Value, true
}

func percentOf(raw string) (float64, bool) {
	tok := rePctDigits.FindString(raw)
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func sumItems(items []dto.LineItem) (float64, bool) {
	var sum float64
	found := false
	for _, li := range items {
		if v, ok := ParseMoneyToken(li.Amount); ok {
			sum += v
			found = true
		}
	}
	return round2(sum), found
}
