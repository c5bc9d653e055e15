package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
)

func TestReceiptCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.ReceiptStatusWorking, entity.ReceiptStatusFinished, true},
		{entity.ReceiptStatusWorking, entity.ReceiptStatusCancelled, true},
		{entity.ReceiptStatusWorking, entity.ReceiptStatusWorking, false},
		{entity.ReceiptStatusFinished, entity.ReceiptStatusWorking, false},
		{entity.ReceiptStatusFinished, entity.ReceiptStatusCancelled, false},
		{entity.ReceiptStatusCancelled, entity.ReceiptStatusFinished, false},
		{entity.ReceiptStatusCancelled, entity.ReceiptStatusWorking, false},
	}
	for _, tc := range cases {
		r := &entity.PurchaseReceipt{Status: tc.from}
		assert.Equal(t, tc.want, r.CanTransitionTo(tc.to), "%s → %s", tc.from, tc.to)
	}
}

func TestReceiptIsWorking(t *testing.T) {
	assert.True(t, (&entity.PurchaseReceipt{Status: entity.ReceiptStatusWorking}).IsWorking())
	assert.False(t, (&entity.PurchaseReceipt{Status: entity.ReceiptStatusFinished}).IsWorking())
	assert.False(t, (&entity.PurchaseReceipt{Status: entity.ReceiptStatusCancelled}).IsWorking())
}
