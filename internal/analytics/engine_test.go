package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watspent/watspent/internal/model"
	"github.com/watspent/watspent/internal/store"
)

func TestTerminalToName(t *testing.T) {
	assert.Equal(t, "REVelation", TerminalToName("00043XYZ"))
	assert.Equal(t, "REVelation", TerminalToName("00043 : REV DINING"))
	assert.Equal(t, InvalidInput, TerminalToName("ab"))
	assert.Equal(t, InvalidInput, TerminalToName(""))
	assert.Equal(t, "99999ZZ", TerminalToName("99999ZZ"))
}

func TestDirectory_Overrides(t *testing.T) {
	d := NewDirectory(map[string]string{
		"00043": "REV",
		"12345": "Pop-up Stand",
	})
	assert.Equal(t, "REV", d.Name("00043XYZ"))
	assert.Equal(t, "Pop-up Stand", d.Name("12345"))
	assert.Equal(t, "Mudie's", d.Name("00051 : V1"))

	// Overrides never leak into the built-in table.
	assert.Equal(t, "REVelation", TerminalToName("00043XYZ"))
}

func TestDirectory_MultibyteShortInput(t *testing.T) {
	assert.Equal(t, InvalidInput, NewDirectory(nil).Name("ééé"))
	assert.Equal(t, "ééééé!", NewDirectory(nil).Name("ééééé!"))
}

func TestCompute_Empty(t *testing.T) {
	r := Compute(nil, DefaultOptions(), nil)
	assert.Equal(t, 0, r.Count)
	assert.True(t, r.TotalSpent.IsZero())
	assert.Equal(t, 0, r.Streak.Length)
	assert.Equal(t, 0, r.UniqueTerminals)
	assert.Nil(t, r.MostCommonTerminal)
	assert.Empty(t, r.TopTerminals)
}

func TestCompute(t *testing.T) {
	txns := []model.Transaction{
		spend(day(1), "00043 : REV DINING", "-7.45"),
		spend(day(2), "00051 : V1 MUDIES", "-11.20"),
		spend(day(3), "00043 : REV DINING", "-9.80"),
		prepayment(day(4), "1000.00"),
	}
	r := Compute(txns, DefaultOptions(), nil)
	assert.Equal(t, 4, r.Count)
	assert.Equal(t, "28.45", r.TotalSpent.StringFixed(2))
	assert.Equal(t, 3, r.Streak.Length)
	assert.Equal(t, 3, r.UniqueTerminals)
	require.NotNil(t, r.MostCommonTerminal)
	assert.Equal(t, "00043 : REV DINING", r.MostCommonTerminal.Terminal)
	assert.Equal(t, "REVelation", r.MostCommonTerminal.Name)
	assert.Equal(t, 2, r.MostCommonTerminal.Count)
	assert.Len(t, r.TopTerminals, 3)
}

func TestCompute_TopTerminalsCapped(t *testing.T) {
	var txns []model.Transaction
	for _, term := range []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7"} {
		txns = append(txns, spend(day(1), term, "-1"))
	}
	r := Compute(txns, DefaultOptions(), nil)
	assert.Len(t, r.TopTerminals, topTerminalLimit)
	assert.Equal(t, InvalidInput, r.TopTerminals[0].Name)
}

func TestEngine_MemoizesOnGeneration(t *testing.T) {
	e := NewEngine(DefaultOptions(), nil)
	gen := uuid.New()

	first := e.Report(store.Snapshot{Generation: gen, Transactions: []model.Transaction{spend(day(1), "A", "-1")}})
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, gen, first.Generation)

	// Same generation: cached result regardless of contents.
	again := e.Report(store.Snapshot{Generation: gen})
	assert.Equal(t, 1, again.Count)

	next := e.Report(store.Snapshot{Generation: uuid.New()})
	assert.Equal(t, 0, next.Count)
}

func TestEngine_WithStore(t *testing.T) {
	s := store.New()
	e := NewEngine(DefaultOptions(), nil)

	assert.Equal(t, 0, e.Report(s.Snapshot()).Count)

	s.Replace([]model.Transaction{spend(day(1), "A", "-4"), spend(day(2), "A", "-6")})
	r := e.Report(s.Snapshot())
	assert.Equal(t, 2, r.Count)
	assert.Equal(t, "10", r.TotalSpent.String())

	s.Clear()
	assert.Equal(t, 0, e.Report(s.Snapshot()).Count)
}

func TestEngine_Accessors(t *testing.T) {
	d := NewDirectory(map[string]string{"12345": "X"})
	e := NewEngine(DefaultOptions(), d)
	assert.Same(t, d, e.Venues())
	assert.Equal(t, SpendNegative, e.Options().Sign)
}
