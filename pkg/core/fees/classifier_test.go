package fees_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dusk-network/tx-admission/pkg/core/fees"
	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

var ref = transactions.HandlerRef{Type: 0, TypeGroup: 1}

func tx(fee uint64) transactions.Transaction {
	return transactions.Transaction{Type: ref.Type, TypeGroup: ref.TypeGroup, Fee: fee}
}

func TestStaticMatcherDefaultFloors(t *testing.T) {
	matcher := fees.NewStaticMatcher(100, 50)
	classifier := fees.NewClassifier(matcher)

	assert.Equal(t, fees.Outcome{EnterPool: true, Broadcast: true}, classifier.Classify(tx(100)))
	assert.Equal(t, fees.Outcome{EnterPool: false, Broadcast: true}, classifier.Classify(tx(50)))
	assert.Equal(t, fees.Outcome{EnterPool: false, Broadcast: false}, classifier.Classify(tx(10)))
}

func TestStaticMatcherPerRefOverride(t *testing.T) {
	matcher := fees.NewStaticMatcher(100, 50)
	matcher.SetMinimums(ref, 10, 5)
	classifier := fees.NewClassifier(matcher)

	assert.Equal(t, fees.Outcome{EnterPool: true, Broadcast: true}, classifier.Classify(tx(10)))

	other := tx(10)
	other.Type = 9
	assert.Equal(t, fees.Outcome{EnterPool: false, Broadcast: false}, classifier.Classify(other))
}
