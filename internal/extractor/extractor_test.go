package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merxylab/kpay-verify/internal/logging"
	"merxylab/kpay-verify/internal/models"
)

const primaryLayoutReceipt = "Transaction Time 21/05/2024 10:15:03\n" +
	"Transaction No. 12345678901234567\n" +
	"Transfer To U MIN KO NAING (****3307)\n" +
	"Amount 6,000 Ks\n" +
	"Notes Shopping"

func TestExtract_PrimaryLayout(t *testing.T) {
	e := New(&logging.MockLogger{})

	c := e.Extract(primaryLayoutReceipt)

	assert.Equal(t, "21/05/2024 10:15:03", c.Time)
	assert.Equal(t, "12345678901234567", c.TransactionID)
	assert.Equal(t, "6000", c.Amount)
	assert.Equal(t, "6,000 Ks", c.RawAmount)
	assert.False(t, c.AmountNegative)
	require.NotNil(t, c.Counterparty)
	assert.Equal(t, "U MIN KO NAING", c.Counterparty.Name)
	assert.Equal(t, "3307", c.Counterparty.AccountTail)
	assert.Equal(t, "Shopping", c.Notes)
}

func TestExtract_PrimaryLayoutVariants(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected models.Candidate
	}{
		{
			name: "label without period and negative amount",
			raw: "Transaction Time 01/02/2023 08:00:59\n" +
				"Transaction No 98765432109876543210\n" +
				"Amount -15,000 Ks",
			expected: models.Candidate{
				Time:           "01/02/2023 08:00:59",
				TransactionID:  "98765432109876543210",
				Amount:         "15000",
				RawAmount:      "-15,000 Ks",
				AmountNegative: true,
			},
		},
		{
			name: "amount without thousands separators",
			raw:  "Transaction No. 1234567890123456\nAmount 700 Ks",
			expected: models.Candidate{
				TransactionID: "1234567890123456",
				Amount:        "700",
				RawAmount:     "700 Ks",
			},
		},
		{
			name: "lowercase currency token",
			raw:  "Transaction No. 1234567890123456\nAmount 6,000 ks",
			expected: models.Candidate{
				TransactionID: "1234567890123456",
				Amount:        "6000",
				RawAmount:     "6,000 Ks",
			},
		},
		{
			name: "fields squeezed onto one line by OCR",
			raw:  "Transaction Time 21/05/2024 10:15:03 Transaction No. 12345678901234567 Amount 6,000 Ks",
			expected: models.Candidate{
				Time:          "21/05/2024 10:15:03",
				TransactionID: "12345678901234567",
				Amount:        "6000",
				RawAmount:     "6,000 Ks",
			},
		},
	}

	e := New(&logging.MockLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.Extract(tt.raw)
			assert.Equal(t, tt.expected.Time, c.Time)
			assert.Equal(t, tt.expected.TransactionID, c.TransactionID)
			assert.Equal(t, tt.expected.Amount, c.Amount)
			assert.Equal(t, tt.expected.RawAmount, c.RawAmount)
			assert.Equal(t, tt.expected.AmountNegative, c.AmountNegative)
		})
	}
}

func TestExtract_ShapeFallback(t *testing.T) {
	// No labels at all: every field must be recognized by shape alone.
	raw := "21/05/2024 10:15:03\n" +
		"12345678901234567\n" +
		"U MIN KO NAING\n" +
		"(****3307)\n" +
		"-6,000 Ks\n" +
		"Shopping"

	e := New(&logging.MockLogger{})
	c := e.Extract(raw)

	assert.Equal(t, "21/05/2024 10:15:03", c.Time)
	assert.Equal(t, "12345678901234567", c.TransactionID)
	assert.Equal(t, "6000", c.Amount)
	assert.True(t, c.AmountNegative)
	require.NotNil(t, c.Counterparty)
	assert.Contains(t, c.Counterparty.Name, "U MIN KO NAING")
	assert.Equal(t, "3307", c.Counterparty.AccountTail)
	assert.Equal(t, "Shopping", c.Notes)
}

func TestExtract_SecondaryScript(t *testing.T) {
	// Myanmar-script receipt: no English labels, values recognized purely
	// by shape among non-Latin lines.
	raw := "ငွေလွှဲအောင်မြင်ပါသည်\n" +
		"21/05/2024 10:15:03\n" +
		"12345678901234567\n" +
		"6,000 Ks\n" +
		"ကျေးဇူးတင်ပါသည်"

	e := New(&logging.MockLogger{})
	c := e.Extract(raw)

	assert.Equal(t, "21/05/2024 10:15:03", c.Time)
	assert.Equal(t, "12345678901234567", c.TransactionID)
	assert.Equal(t, "6000", c.Amount)
	assert.Nil(t, c.Counterparty)
}

func TestExtract_DegradesFieldByField(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty text", raw: ""},
		{name: "unrelated text", raw: "hello world\nthis is not a receipt"},
		{name: "whitespace only", raw: " \n\t \n"},
	}

	e := New(&logging.MockLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.Extract(tt.raw)
			assert.Empty(t, c.Time)
			assert.Empty(t, c.TransactionID)
			assert.Empty(t, c.Amount)
			assert.Nil(t, c.Counterparty)
			assert.False(t, c.HasRequired())
		})
	}
}

func TestExtract_LabeledIDWinsOverDigitRuns(t *testing.T) {
	// An account number the same shape as a transaction id must not be
	// picked up when the labeled layout is present.
	raw := "Account 99999999999999999999\n" +
		"Transaction No. 12345678901234567\n" +
		"Amount 6,000 Ks"

	e := New(&logging.MockLogger{})
	c := e.Extract(raw)

	assert.Equal(t, "12345678901234567", c.TransactionID)
}

func TestExtract_GarbledLabeledIDNotReplacedByShape(t *testing.T) {
	// The labeled layout is detected but its digits are garbled; the shape
	// rule must not substitute some other digit run.
	raw := "Transaction No. 123\n" +
		"Account 12345678901234567\n" +
		"Amount 6,000 Ks"

	e := New(&logging.MockLogger{})
	c := e.Extract(raw)

	assert.Empty(t, c.TransactionID)
}

func TestFindTransactionID_RunLengths(t *testing.T) {
	tests := []struct {
		name     string
		joined   string
		expected string
	}{
		{name: "sixteen digits", joined: "id 1234567890123456 end", expected: "1234567890123456"},
		{name: "twenty digits", joined: "id 12345678901234567890 end", expected: "12345678901234567890"},
		{name: "fifteen digits too short", joined: "id 123456789012345 end", expected: ""},
		{name: "twenty-one digits too long", joined: "id 123456789012345678901 end", expected: ""},
		{name: "first qualifying run wins", joined: "123 1234567890123456 9876543210987654", expected: "1234567890123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, findTransactionID(tt.joined))
		})
	}
}

func TestNormalizeText(t *testing.T) {
	raw := "  Transaction   Time \n\n\t 21/05/2024  10:15:03 \n"
	text := NormalizeText(raw)

	require.Len(t, text.Lines, 2)
	assert.Equal(t, "Transaction Time", text.Lines[0])
	assert.Equal(t, "21/05/2024 10:15:03", text.Lines[1])
	assert.Equal(t, "Transaction Time 21/05/2024 10:15:03", text.Joined)
	assert.True(t, text.HasLatinLetters())

	assert.False(t, NormalizeText("၁၂၃ ၄၅၆").HasLatinLetters())
}

func TestLabelStrategy_OnlyFillsUnsetFields(t *testing.T) {
	s := NewLabelStrategy()
	text := NormalizeText(primaryLayoutReceipt)

	c := models.Candidate{TransactionID: "preset"}
	s.Extract(text, &c)

	assert.Equal(t, "preset", c.TransactionID)
	assert.Equal(t, "21/05/2024 10:15:03", c.Time)
}

func TestLabelStrategy_NotApplicableWithoutLatinText(t *testing.T) {
	s := NewLabelStrategy()
	assert.False(t, s.Applies(NormalizeText("၆၀၀၀")))
	assert.True(t, s.Applies(NormalizeText("Amount 6,000 Ks")))
}

func TestShapeStrategy_CounterpartyLinePair(t *testing.T) {
	s := NewShapeStrategy()
	text := NormalizeText("Daw Mya Mya\n**##12344556\nother")

	var c models.Candidate
	s.Extract(text, &c)

	require.NotNil(t, c.Counterparty)
	assert.Equal(t, "Daw Mya Mya", c.Counterparty.Name)
	assert.Equal(t, "4556", c.Counterparty.AccountTail)
}

func TestShapeStrategy_NotesSkipsConsumedLines(t *testing.T) {
	s := NewShapeStrategy()
	text := NormalizeText("21/05/2024 10:15:03\n1234567890123456\n6,000 Ks\nBook payment")

	var c models.Candidate
	s.Extract(text, &c)

	assert.Equal(t, "Book payment", c.Notes)
}
