package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pattarin-dev/thaidoc-parser/dto"
)

func invoiceFields() dto.SmartFields {
	return dto.SmartFields{DocType: dto.DocTypeInvoice}
}

func TestValidateResolvesPercentVAT(t *testing.T) {
	f := invoiceFields()
	f.DocNo = "INV-001"
	f.Date = "01/02/2024"
	f.Subtotal = NewMoneyField("100.00")
	f.VAT = &dto.MoneyField{Raw: "7%", Text: "7%"}
	f.Total = NewMoneyField("107.00")

	out, report := Validate(f, nil)

	assert.Equal(t, 7.00, *out.VAT.Value)
	assert.Equal(t, "7%", out.VAT.Raw)
	assert.Len(t, report.Fixes, 1)
	assert.Empty(t, report.Warnings)
	assert.InDelta(t, 0.98, report.Confidence, 1e-6)
}

func TestValidateDerivesVATFromTotals(t *testing.T) {
	f := invoiceFields()
	f.Subtotal = NewMoneyField("100.00")
	f.Total = NewMoneyField("110.00")

	out, report := Validate(f, nil)

	assert.NotNil(t, out.VAT)
	assert.Equal(t, 10.00, *out.VAT.Value)
	assert.Len(t, report.Fixes, 1)
	assert.Empty(t, report.Warnings)
}

func TestValidateRejectsImplausibleDerivedVAT(t *testing.T) {
	// a 100% tax is a misread total, not a tax
	f := invoiceFields()
	f.Subtotal = NewMoneyField("100.00")
	f.Total = NewMoneyField("200.00")

	out, report := Validate(f, nil)

	assert.Nil(t, out.VAT)
	assert.Empty(t, report.Fixes)
	assert.Len(t, report.Warnings, 1)
}

func TestValidateNeverOverwritesDirectExtraction(t *testing.T) {
	f := invoiceFields()
	f.Subtotal = NewMoneyField("100.00")
	f.VAT = NewMoneyField("15.00")
	f.Total = NewMoneyField("105.00")

	out, report := Validate(f, nil)

	assert.Equal(t, 100.00, *out.Subtotal.Value)
	assert.Equal(t, 15.00, *out.VAT.Value)
	assert.Equal(t, 105.00, *out.Total.Value)
	assert.Empty(t, report.Fixes)
	assert.Len(t, report.Warnings, 1)
	assert.InDelta(t, 0.80, report.Confidence, 1e-6)
}

func TestValidateRescalesDroppedDecimalVAT(t *testing.T) {
	f := invoiceFields()
	f.Subtotal = NewMoneyField("100.00")
	f.VAT = NewMoneyField("700.00")
	f.Total = NewMoneyField("107.00")

	out, report := Validate(f, nil)

	assert.Equal(t, 7.00, *out.VAT.Value)
	assert.Contains(t, report.Fixes[0], "rescaled")
	assert.Empty(t, report.Warnings)
}

func TestValidateFillsMissingTotal(t *testing.T) {
	f := invoiceFields()
	f.Subtotal = NewMoneyField("100.00")
	f.VAT = NewMoneyField("7.00")

	out, report := Validate(f, nil)

	assert.NotNil(t, out.Total)
	assert.Equal(t, 107.00, *out.Total.Value)
	assert.Len(t, report.Fixes, 1)
	assert.Empty(t, report.Warnings)
}

func TestValidatePercentDiscount(t *testing.T) {
	f := invoiceFields()
	f.Subtotal = NewMoneyField("100.00")
	f.Discount = &dto.MoneyField{Raw: "10%", Text: "10%"}

	out, report := Validate(f, nil)

	assert.Equal(t, 10.00, *out.Discount.Value)
	assert.Equal(t, 90.00, *out.Total.Value)
	assert.Equal(t, 10.00, *report.Computed.DiscountFromPct)
}

func TestValidateSubtotalFromLineItems(t *testing.T) {
	f := invoiceFields()
	items := []dto.LineItem{
		{Description: "Widget", Amount: "20.00"},
		{Description: "Gadget", Amount: "15.00"},
	}

	out, report := Validate(f, items)

	assert.NotNil(t, out.Subtotal)
	assert.Equal(t, 35.00, *out.Subtotal.Value)
	assert.Equal(t, 35.00, *report.Computed.SubtotalFromItems)
}

func TestValidateWarnsOnItemSumMismatch(t *testing.T) {
	f := invoiceFields()
	f.Subtotal = NewMoneyField("100.00")
	items := []dto.LineItem{{Description: "Widget", Amount: "20.00"}}

	out, report := Validate(f, items)

	assert.Equal(t, 100.00, *out.Subtotal.Value)
	assert.NotEmpty(t, report.Warnings)
}

func TestValidateEmptyFields(t *testing.T) {
	out, report := Validate(invoiceFields(), nil)

	assert.Nil(t, out.Subtotal)
	assert.Nil(t, out.Total)
	assert.Empty(t, report.Warnings)
	assert.Empty(t, report.Fixes)
	assert.InDelta(t, 0.6, report.Confidence, 1e-6)
}
