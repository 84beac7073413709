package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watspent/watspent/internal/model"
)

func sampleTxns() []model.Transaction {
	return []model.Transaction{
		{
			DateTime: time.Date(2024, 9, 4, 18, 2, 47, 0, time.UTC),
			Type:     "105 : FOOD PURCHASE",
			Terminal: "00043 : REV DINING",
			Status:   "Approved",
			Balance:  decimal.RequireFromString("393.65"),
			Units:    decimal.Zero,
			Amount:   decimal.RequireFromString("-9.8"),
		},
		{
			DateTime: time.Date(2024, 9, 3, 8, 0, 0, 0, time.UTC),
			Type:     `SAY "HI"`,
			Terminal: "00051",
			Status:   "Approved",
			Balance:  decimal.RequireFromString("400"),
			Units:    decimal.NewFromInt(1),
			Amount:   decimal.RequireFromString("-1.005"),
		},
	}
}

func TestHeaderLine(t *testing.T) {
	assert.Equal(t, `"Date - Time","Transaction Type","Terminal","Status","Balance","Units","Amount"`, HeaderLine())
}

func TestToDelimitedText(t *testing.T) {
	out := ToDelimitedText(sampleTxns())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, HeaderLine(), lines[0])
	assert.Equal(t, `"2024-09-04 18:02:47","105 : FOOD PURCHASE","00043 : REV DINING","Approved","393.65","0.00","-9.80"`, lines[1])
	assert.Equal(t, `"2024-09-03 08:00:00","SAY ""HI""","00051","Approved","400.00","1.00","-1.005"`, lines[2])
}

func TestToDelimitedText_Empty(t *testing.T) {
	assert.Equal(t, HeaderLine()+"\n", ToDelimitedText(nil))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_Error(t *testing.T) {
	err := Write(failWriter{}, sampleTxns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing header")
}

func TestWrite_MatchesToDelimitedText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTxns()))
	assert.Equal(t, ToDelimitedText(sampleTxns()), buf.String())
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "watcard_transactions_2026-10-19.csv", FileName(now))
}
