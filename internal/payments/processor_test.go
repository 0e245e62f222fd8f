package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockProcessorCharges(t *testing.T) {
	processor := NewMockProcessor([]string{"4000000000000002"})

	err := processor.Charge(context.Background(), "pi_1", 6550, Card{
		Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123",
	})
	assert.NoError(t, err)
}

func TestMockProcessorDeclinesListedCards(t *testing.T) {
	processor := NewMockProcessor([]string{"4000000000000002"})

	err := processor.Charge(context.Background(), "pi_1", 6550, Card{
		Number: "4000 0000 0000 0002", ExpMonth: 12, ExpYear: 2030, CVC: "123",
	})
	assert.ErrorIs(t, err, ErrCardDeclined)
}

func TestMockProcessorRejectsBadInput(t *testing.T) {
	processor := NewMockProcessor(nil)

	err := processor.Charge(context.Background(), "pi_1", 6550, Card{
		Number: "4242", ExpMonth: 12, ExpYear: 2030, CVC: "123",
	})
	assert.ErrorIs(t, err, ErrProcessorError)

	err = processor.Charge(context.Background(), "pi_1", 0, Card{
		Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123",
	})
	assert.ErrorIs(t, err, ErrProcessorError)

	err = processor.Charge(context.Background(), "pi_1", 6550, Card{
		Number: "4242424242424242", ExpMonth: 1, ExpYear: 2024, CVC: "123",
	})
	assert.ErrorIs(t, err, ErrProcessorError)
}
