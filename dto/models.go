package dto

type DocumentType string

const (
	DocTypeInvoice        DocumentType = "invoice"
	DocTypeReceipt        DocumentType = "receipt"
	DocTypeQuotation      DocumentType = "quotation"
	DocTypePurchaseOrder  DocumentType = "purchase_order"
	DocTypeCreditNote     DocumentType = "credit_note"
	DocTypeDebitNote      DocumentType = "debit_note"
	DocTypeBill           DocumentType = "bill"
	DocTypeBusinessLetter DocumentType = "business_letter"
	DocTypeThaiMemo       DocumentType = "thai_memo"
	DocTypeResume         DocumentType = "resume"
	DocTypeGeneric        DocumentType = "generic"
)

// IsCommercial reports whether the document type carries totals and line
// items (and therefore gets a ValidationReport).
func (d DocumentType) IsCommercial() bool {
	switch d {
	case DocTypeInvoice, DocTypeReceipt, DocTypeQuotation, DocTypePurchaseOrder,
		DocTypeCreditNote, DocTypeDebitNote, DocTypeBill:
		return true
	}
	return false
}

// MoneyField keeps the original matched substring alongside the parsed
// amount. Value may be nil even when Raw is set (unparseable token); when
// Value is set, Text is its thousands-grouped two-decimal rendering.
type MoneyField struct {
	Raw   string   `json:"raw,omitempty"`
	Value *float64 `json:"value,omitempty"`
	Text  string   `json:"text,omitempty"`
}

// LineItem is one recovered table row. Qty, UnitPrice and Amount hold
// display-formatted numbers and may be empty when a column was not found.
type LineItem struct {
	Description string `json:"description"`
	Qty         string `json:"qty,omitempty"`
	UnitPrice   string `json:"unit_price,omitempty"`
	Amount      string `json:"amount,omitempty"`
}

// SmartFields carries every scalar field the extractors know about; which
// ones are populated depends on DocType. Absent fields stay zero and are
// omitted from JSON.
type SmartFields struct {
	DocType DocumentType `json:"doc_type"`

	// commercial documents
	DocNo    string      `json:"doc_no,omitempty"`
	Date     string      `json:"date,omitempty"`
	DueDate  string      `json:"due_date,omitempty"`
	Seller   string      `json:"seller,omitempty"`
	Buyer    string      `json:"buyer,omitempty"`
	Subtotal *MoneyField `json:"subtotal,omitempty"`
	VAT      *MoneyField `json:"vat,omitempty"`
	Discount *MoneyField `json:"discount,omitempty"`
	Total    *MoneyField `json:"total,omitempty"`

	// letters
	Subject   string `json:"subject,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Sender    string `json:"sender,omitempty"`

	// resumes and generic contact lines
	Name    string `json:"name,omitempty"`
	Title   string `json:"title,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`

	// Thai official memos
	Agency         string `json:"agency,omitempty"`
	RefNo          string `json:"ref_no,omitempty"`
	Addressee      string `json:"addressee,omitempty"`
	SignerName     string `json:"signer_name,omitempty"`
	SignerPosition string `json:"signer_position,omitempty"`
}

// Section is one named slice of the document, in encounter order.
type Section struct {
	Heading string   `json:"heading"`
	Content []string `json:"content"`
}

// ComputedTotals is the derived-value snapshot the validator worked from.
type ComputedTotals struct {
	SubtotalFromItems *float64 `json:"subtotal_from_items,omitempty"`
	TaxFromCalc       *float64 `json:"tax_from_calc,omitempty"`
	DiscountFromPct   *float64 `json:"discount_from_pct,omitempty"`
	TotalFromCalc     *float64 `json:"total_from_calc,omitempty"`
}

// ValidationReport lists uncorrected inconsistencies (warnings) and applied
// gap-fills (fixes) for commercial documents.
type ValidationReport struct {
	Warnings   []string       `json:"warnings"`
	Fixes      []string       `json:"fixes"`
	Confidence float64        `json:"confidence"`
	Computed   ComputedTotals `json:"computed"`
}

// ParseResult is the composite output of a single parse. Validations is nil
// for non-commercial document types.
type ParseResult struct {
	Text        string            `json:"text"`
	Fields      SmartFields       `json:"fields"`
	Sections    []Section         `json:"sections"`
	LineItems   []LineItem        `json:"line_items"`
	Validations *ValidationReport `json:"validations,omitempty"`
}

// ParseOptions tunes a parse. Language prefers one label-pattern set over
// the other; it never changes control flow.
type ParseOptions struct {
	Language string `json:"language,omitempty"` // "auto", "tha" or "eng"
}

// Float returns a pointer suitable for the optional numeric fields above.
func Float(v float64) *float64 { return &v }
