package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypeCodeAndLabel(t *testing.T) {
	txn := Transaction{Type: "003 : PREPAYMENT (ADMIN)"}
	assert.Equal(t, "003", txn.TypeCode())
	assert.Equal(t, "PREPAYMENT (ADMIN)", txn.TypeLabel())
}

func TestTypeWithoutCode(t *testing.T) {
	txn := Transaction{Type: "VENDING"}
	assert.Equal(t, "VENDING", txn.TypeCode())
	assert.Equal(t, "VENDING", txn.TypeLabel())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "REV DINING", Transaction{Terminal: "00043 : REV DINING"}.Location())
	assert.Equal(t, "00043XYZ", Transaction{Terminal: "00043XYZ"}.Location())
}

func TestDay(t *testing.T) {
	txn := Transaction{DateTime: time.Date(2024, 9, 3, 23, 59, 59, 0, time.UTC)}
	assert.Equal(t, time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC), txn.Day())
}
