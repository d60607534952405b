package heading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSectionsEmpty(t *testing.T) {
	assert.Empty(t, ParseSections(""))
	assert.Empty(t, ParseSections("   \n\t\n"))
}

func TestParseSectionsImplicitBody(t *testing.T) {
	sections := ParseSections("just a line of text\nanother line.")

	assert.Len(t, sections, 1)
	assert.Equal(t, "body", sections[0].Heading)
	assert.Equal(t, []string{"just a line of text another line."}, sections[0].Content)
}

func TestParseSectionsUppercaseHeadings(t *testing.T) {
	sections := ParseSections("SUMMARY\nFirst point.\nEDUCATION\nSome school 2020.")

	assert.Len(t, sections, 2)
	assert.Equal(t, "SUMMARY", sections[0].Heading)
	assert.Equal(t, []string{"First point."}, sections[0].Content)
	assert.Equal(t, "EDUCATION", sections[1].Heading)
	assert.Equal(t, []string{"Some school 2020."}, sections[1].Content)
}

func TestParseSectionsColonHeadingAndBullets(t *testing.T) {
	sections := ParseSections("Skills:\n- Go\n- SQL")

	assert.Len(t, sections, 1)
	assert.Equal(t, "Skills", sections[0].Heading)
	assert.Equal(t, []string{"Go", "SQL"}, sections[0].Content)
}

func TestParseSectionsNumberedBullets(t *testing.T) {
	sections := ParseSections("NOTES\n1. First\n2. Second")

	assert.Len(t, sections, 1)
	assert.Equal(t, []string{"First", "Second"}, sections[0].Content)
}

func TestParseSectionsContinuationJoin(t *testing.T) {
	sections := ParseSections("SUMMARY\nThis line was\nwrapped badly.\nNext sentence here.")

	assert.Len(t, sections, 1)
	assert.Equal(t, []string{
		"This line was wrapped badly.",
		"Next sentence here.",
	}, sections[0].Content)
}

func TestParseSectionsThaiKeywordHeading(t *testing.T) {
	sections := ParseSections("หมายเหตุ\nกรุณาชำระภายในกำหนด")

	assert.Len(t, sections, 1)
	assert.Equal(t, "หมายเหตุ", sections[0].Heading)
}

func TestParseSectionsTotality(t *testing.T) {
	for _, text := range []string{"!!!", "1234", "a", "\n\n\n"} {
		assert.NotPanics(t, func() { ParseSections(text) }, "input: %q", text)
	}
}
