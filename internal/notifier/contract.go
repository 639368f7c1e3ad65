//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package notifier

import (
	"context"

	"github.com/s21platform/conversation-service/internal/model"
)

// Sink hands an event to whatever transport reaches the recipients' devices.
type Sink interface {
	Deliver(ctx context.Context, recipients []int64, event model.Event) error
}
