//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package redisbus

import (
	"context"

	"github.com/s21platform/conversation-service/internal/model"
)

// LocalSink delivers to sessions held by this node.
type LocalSink interface {
	Deliver(ctx context.Context, recipients []int64, event model.Event) error
}
