package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanEmpty(t *testing.T) {
	assert.Equal(t, "", Clean(""))
	assert.Equal(t, "", Clean("   \n\t\n  "))
}

func TestCleanThaiDigits(t *testing.T) {
	out := Clean("วันที่ ๑๕ มกราคม ๒๕๖๘")
	assert.Equal(t, "วันที่ 15 มกราคม 2568", out)
}

func TestCleanNormalizesLineEndings(t *testing.T) {
	out := Clean("TOTAL: 100.00 \r\nVAT: 7.00\r")
	assert.Equal(t, "TOTAL: 100.00\nVAT: 7.00", out)
}

func TestCleanJoinsHyphenatedWords(t *testing.T) {
	out := Clean("The deliv-\nery arrived late.")
	assert.Equal(t, "The delivery arrived late.", out)

	out = Clean("DELIV-\nERY arrived late.")
	assert.Equal(t, "DELIVERY arrived late.", out)
}

func TestCleanStripsInvisibleCharacters(t *testing.T) {
	out := Clean("\uFEFFTOTAL: 100.00​")
	assert.Equal(t, "TOTAL: 100.00", out)
}

func TestCleanCollapsesThaiGaps(t *testing.T) {
	out := Clean("ก ร ม บัญชีกลาง")
	assert.Equal(t, "กรมบัญชีกลาง", out)
}

func TestCleanKeepsLatinSpacing(t *testing.T) {
	out := Clean("Widget A costs 10.00")
	assert.Equal(t, "Widget A costs 10.00", out)
}

func TestCleanDropsNoiseLines(t *testing.T) {
	out := Clean("INVOICE\n===========\n|||---|||---|||\nTOTAL 100.00")
	assert.Equal(t, "INVOICE\nTOTAL 100.00", out)
}

func TestCleanMergesWrappedParagraph(t *testing.T) {
	out := Clean("This sentence was wrapped\nby the OCR engine.")
	assert.Equal(t, "This sentence was wrapped by the OCR engine.", out)
}

func TestCleanKeepsLabelLinesStandalone(t *testing.T) {
	out := Clean("Subject: Budget review\nplease see the attachment")
	assert.Equal(t, "Subject: Budget review\nplease see the attachment", out)
}

func TestCleanAppliesOCRFixes(t *testing.T) {
	assert.Equal(t, "INVOICE No. 5", Clean("LNVOICE No. 5"))
	assert.Equal(t, "SUBTOTAL: 40.00", Clean("SUBT0TAL: 40.00"))
}

func TestCleanPunctuationSpacing(t *testing.T) {
	assert.Equal(t, "VAT: 7%", Clean("VAT : 7 %"))
}

func TestCleanIdempotent(t *testing.T) {
	samples := []string{
		"",
		"INVOICE NO: INV-001\nDATE: 01/02/2024\nSUBTOTAL: 100.00\nVAT: 7%\nTOTAL: 107.00",
		"The deliv-\nery arrived late.\n\n- first item\n- second item",
		"ก ร ม บัญชีกลาง\nเรื่อง ขอเชิญประชุม\nเรียน อธิบดี",
		"บันทึกข้อความ\nส่วนราชการ กรมบัญชีกลาง\nที่ กค 0401/123\nวันที่ 1 มีนาคม 2568",
		"Header\n====\nsome wrapped\ntext continues here.",
		"VAT : 7 %\nTOTAL 107.00",
		"!!!\n???\nno letters above survive",
	}
	for _, s := range samples {
		once := Clean(s)
		assert.Equal(t, once, Clean(once), "input: %q", s)
	}
}

func TestIsStructuralLine(t *testing.T) {
	assert.True(t, IsStructuralLine(""))
	assert.True(t, IsStructuralLine("- bullet item"))
	assert.True(t, IsStructuralLine("1. numbered item"))
	assert.True(t, IsStructuralLine("Date: 01/02/2024"))
	assert.True(t, IsStructuralLine("เรื่อง ขอเชิญประชุม"))
	assert.True(t, IsStructuralLine("SUBTOTAL 100.00"))
	assert.False(t, IsStructuralLine("just an ordinary sentence"))
}
