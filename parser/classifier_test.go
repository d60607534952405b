package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pattarin-dev/thaidoc-parser/dto"
)

func TestClassifyInvoice(t *testing.T) {
	assert.Equal(t, dto.DocTypeInvoice, Classify("INVOICE NO: INV-001\nTOTAL: 107.00"))
}

func TestClassifyTaxInvoiceBeatsReceipt(t *testing.T) {
	text := "TAX INVOICE / RECEIPT\nNO: TI-22"
	assert.Equal(t, dto.DocTypeInvoice, Classify(text))
}

func TestClassifyThaiReceipt(t *testing.T) {
	assert.Equal(t, dto.DocTypeReceipt, Classify("ใบเสร็จรับเงิน\nรวมทั้งสิ้น 500.00"))
}

func TestClassifyCreditNoteBeforeInvoice(t *testing.T) {
	text := "CREDIT NOTE\nAgainst invoice INV-001"
	assert.Equal(t, dto.DocTypeCreditNote, Classify(text))
}

func TestClassifyQuotation(t *testing.T) {
	assert.Equal(t, dto.DocTypeQuotation, Classify("QUOTATION\nQuote for services"))
}

func TestClassifyPurchaseOrder(t *testing.T) {
	assert.Equal(t, dto.DocTypePurchaseOrder, Classify("PURCHASE ORDER\nP.O. NO. 7788"))
}

func TestClassifyBill(t *testing.T) {
	assert.Equal(t, dto.DocTypeBill, Classify("BILL\nElectricity charges for March"))
}

func TestClassifyBillToIsNotBill(t *testing.T) {
	text := "BILL TO: Acme Corp\nDESCRIPTION OF SERVICES"
	assert.Equal(t, dto.DocTypeGeneric, Classify(text))
}

func TestClassifyWordBoundaries(t *testing.T) {
	assert.Equal(t, dto.DocTypeGeneric, Classify("BILLING STATEMENT ARCHIVE"))
}

func TestClassifyResumeBySectionHeadings(t *testing.T) {
	text := "Jane Smith\nSoftware Engineer\nEDUCATION\nB.Sc. Computer Science\nEXPERIENCE\nAcme Corp"
	assert.Equal(t, dto.DocTypeResume, Classify(text))
}

func TestClassifyBusinessLetter(t *testing.T) {
	text := "Dear Mr. Smith\nWe write regarding the partnership.\nSincerely\nJohn Doe"
	assert.Equal(t, dto.DocTypeBusinessLetter, Classify(text))
}

func TestClassifyThaiMemo(t *testing.T) {
	text := "บันทึกข้อความ\nส่วนราชการ กรมบัญชีกลาง\nเรื่อง ขอเชิญประชุม\nเรียน อธิบดี\nจึงเรียนมาเพื่อโปรดพิจารณา"
	assert.Equal(t, dto.DocTypeThaiMemo, Classify(text))
}

func TestClassifyThaiMemoNeedsBodyKeyword(t *testing.T) {
	// three header keywords but no body marker is not enough
	text := "บันทึกข้อความ\nส่วนราชการ กรมบัญชีกลาง\nเรื่อง ขอเชิญประชุม"
	assert.Equal(t, dto.DocTypeGeneric, Classify(text))
}

func TestClassifyTotality(t *testing.T) {
	assert.Equal(t, dto.DocTypeGeneric, Classify(""))
	assert.Equal(t, dto.DocTypeGeneric, Classify("   \n\t"))
	assert.Equal(t, dto.DocTypeGeneric, Classify("!!! ??? ---"))
	assert.Equal(t, dto.DocTypeGeneric, Classify("an unremarkable note"))
}
