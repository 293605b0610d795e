package extractor

import (
	"regexp"
	"strings"

	"merxylab/kpay-verify/internal/models"
)

var (
	shapeTimePattern   = regexp.MustCompile(`\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}`)
	shapeAmountPattern = regexp.MustCompile(`(?i)(-?\d[\d,]*\.?\d*)\s*Ks`)
	shapeNamePattern   = regexp.MustCompile(`([A-Z][A-Za-z ]{2,}?)\s*[(<]?([*#]+\d+)[)>]?`)
	digitRunPattern    = regexp.MustCompile(`\d+`)

	// Line-pair form: a bare name line followed by a masked account line.
	nameLinePattern = regexp.MustCompile(`^[A-Z][A-Za-z .]{2,}$`)
	maskLinePattern = regexp.MustCompile(`[()*#\d]{4,}`)
)

// ShapeStrategy recognizes fields purely by their shape, without label
// anchoring. OCR frequently drops or garbles label text, and receipts in a
// secondary script have no English labels at all, so every rule here keys
// on the value's own structure: a slash-separated timestamp, a 16-20 digit
// run, a decimal followed by the currency token, a capitalized name next to
// a masked account number.
type ShapeStrategy struct{}

// NewShapeStrategy creates a ShapeStrategy.
func NewShapeStrategy() *ShapeStrategy {
	return &ShapeStrategy{}
}

// Name returns the name of this strategy for logging and debugging.
func (s *ShapeStrategy) Name() string {
	return "shape"
}

// Applies always reports true: shape rules are the last resort for any
// text.
func (s *ShapeStrategy) Applies(t *ReceiptText) bool {
	return true
}

// Extract fills unset candidate fields from shape-only matches.
func (s *ShapeStrategy) Extract(t *ReceiptText, c *models.Candidate) {
	if c.Time == "" {
		c.Time = shapeTimePattern.FindString(t.Joined)
	}

	// When the labeled layout is present the id must come from the digits
	// after "Transaction No"; picking up a free-standing digit run there
	// would risk matching an account number instead.
	if c.TransactionID == "" && !strings.Contains(t.Joined, "Transaction No") {
		c.TransactionID = findTransactionID(t.Joined)
	}

	if c.Amount == "" {
		if m := shapeAmountPattern.FindStringSubmatch(t.Joined); m != nil {
			setAmount(c, m[1])
		}
	}

	if c.Counterparty == nil {
		c.Counterparty = findCounterparty(t)
	}

	if c.Notes == "" {
		c.Notes = leftoverNotes(t, c)
	}
}

// findTransactionID returns the first maximal digit run of 16-20
// characters. Shorter runs (phone numbers, partial account numbers) and
// longer runs (merged tokens) are not transaction ids.
func findTransactionID(joined string) string {
	for _, run := range digitRunPattern.FindAllString(joined, -1) {
		if len(run) >= 16 && len(run) <= 20 {
			return run
		}
	}
	return ""
}

// findCounterparty scans for a name token adjacent to an account mask,
// first within the collapsed text, then as a line pair (name line directly
// above a masked line), which is how most receipt layouts print it.
func findCounterparty(t *ReceiptText) *models.Counterparty {
	if m := shapeNamePattern.FindStringSubmatch(t.Joined); m != nil {
		return &models.Counterparty{
			Name:        strings.TrimSpace(m[1]),
			AccountTail: lastDigits(m[2], 4),
		}
	}

	for i := 0; i+1 < len(t.Lines); i++ {
		if nameLinePattern.MatchString(t.Lines[i]) && maskLinePattern.MatchString(t.Lines[i+1]) {
			return &models.Counterparty{
				Name:        strings.TrimSpace(t.Lines[i]),
				AccountTail: lastDigits(t.Lines[i+1], 4),
			}
		}
	}
	return nil
}

// leftoverNotes treats the last non-empty line not already consumed by
// another field as the memo line. This is a heuristic fallback: absence of
// notes is expected and acceptable.
func leftoverNotes(t *ReceiptText, c *models.Candidate) string {
	for i := len(t.Lines) - 1; i >= 0; i-- {
		if !lineConsumed(t.Lines[i], c) {
			return t.Lines[i]
		}
	}
	return ""
}

// lineConsumed reports whether a line carries a value some other field was
// extracted from, or is a bare label line.
func lineConsumed(line string, c *models.Candidate) bool {
	if c.Time != "" && strings.Contains(line, c.Time) {
		return true
	}
	if c.TransactionID != "" && strings.Contains(line, c.TransactionID) {
		return true
	}
	if c.Amount != "" && strings.Contains(strings.ReplaceAll(line, ",", ""), c.Amount) {
		return true
	}
	if c.Counterparty != nil {
		if c.Counterparty.Name != "" && strings.Contains(line, c.Counterparty.Name) {
			return true
		}
		if maskLinePattern.MatchString(line) && strings.Contains(lastDigits(line, 4), c.Counterparty.AccountTail) {
			return true
		}
	}
	for _, label := range fieldLabels {
		if line == label || line == label+"." {
			return true
		}
	}
	return false
}
