package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pattarin-dev/thaidoc-parser/dto"
)

func TestSmartParseEmptyInput(t *testing.T) {
	result := SmartParse("", dto.ParseOptions{Language: "auto"})

	assert.Equal(t, "", result.Text)
	assert.Equal(t, dto.DocTypeGeneric, result.Fields.DocType)
	assert.Empty(t, result.Sections)
	assert.Empty(t, result.LineItems)
	assert.Nil(t, result.Validations)
}

func TestSmartParseInvoice(t *testing.T) {
	raw := "INVOICE NO: INV-001\nDATE: 01/02/2024\nSUBTOTAL: 100.00\nVAT: 7%\nTOTAL: 107.00"
	result := SmartParse(raw, dto.ParseOptions{Language: "eng"})

	assert.Equal(t, dto.DocTypeInvoice, result.Fields.DocType)
	assert.Equal(t, "INV-001", result.Fields.DocNo)
	assert.Equal(t, "01/02/2024", result.Fields.Date)
	assert.Equal(t, 100.00, *result.Fields.Subtotal.Value)
	assert.Equal(t, "7%", result.Fields.VAT.Raw)
	assert.Equal(t, 7.00, *result.Fields.VAT.Value)
	assert.Equal(t, 107.00, *result.Fields.Total.Value)

	assert.NotNil(t, result.Validations)
	assert.Empty(t, result.Validations.Warnings)
	assert.Len(t, result.Validations.Fixes, 1)
}

func TestSmartParseInvoiceWithItems(t *testing.T) {
	raw := "INVOICE\nDESCRIPTION UNIT PRICE QTY AMOUNT\nWidget 10.00 2 20.00\nSUBTOTAL 20.00\nTOTAL 20.00"
	result := SmartParse(raw, dto.ParseOptions{Language: "eng"})

	assert.Equal(t, dto.DocTypeInvoice, result.Fields.DocType)
	assert.Len(t, result.LineItems, 1)
	assert.Equal(t, "Widget", result.LineItems[0].Description)
	assert.Equal(t, "2", result.LineItems[0].Qty)
	assert.Equal(t, "20.00", result.LineItems[0].Amount)

	assert.NotNil(t, result.Validations)
	assert.Equal(t, 20.00, *result.Validations.Computed.SubtotalFromItems)
	assert.Empty(t, result.Validations.Warnings)
}

func TestSmartParseThaiMemo(t *testing.T) {
	raw := "บันทึกข้อความ\n" +
		"ส่วนราชการ กรมบัญชีกลาง\n" +
		"ที่ กค 0401/123\n" +
		"วันที่ 1 มีนาคม 2568\n" +
		"เรื่อง ขอเชิญประชุมคณะทำงาน\n" +
		"เรียน อธิบดีกรมบัญชีกลาง\n" +
		"จึงเรียนมาเพื่อโปรดพิจารณา\n" +
		"ลงชื่อ\n" +
		"(นายสมชาย ใจดี)\n" +
		"ตำแหน่ง ผู้อำนวยการกองบริหาร"
	result := SmartParse(raw, dto.ParseOptions{Language: "tha"})

	assert.Equal(t, dto.DocTypeThaiMemo, result.Fields.DocType)
	assert.Equal(t, "กรมบัญชีกลาง", result.Fields.Agency)
	assert.Equal(t, "กค 0401/123", result.Fields.RefNo)
	assert.Equal(t, "1 มีนาคม 2568", result.Fields.Date)
	assert.Equal(t, "ขอเชิญประชุมคณะทำงาน", result.Fields.Subject)
	assert.Equal(t, "อธิบดีกรมบัญชีกลาง", result.Fields.Addressee)
	assert.Equal(t, "นายสมชายใจดี", result.Fields.SignerName)
	assert.Equal(t, "ผู้อำนวยการกองบริหาร", result.Fields.SignerPosition)

	assert.Equal(t, "header", result.Sections[0].Heading)
	assert.Nil(t, result.Validations)
}

func TestSmartParseGenericNeverFails(t *testing.T) {
	for _, raw := range []string{"   ", "!!! ??? ---", "หนึ่ง สอง สาม", "plain note"} {
		result := SmartParse(raw, dto.ParseOptions{Language: "auto"})
		assert.NotNil(t, result.Sections, "input: %q", raw)
		assert.NotNil(t, result.LineItems, "input: %q", raw)
	}
}
