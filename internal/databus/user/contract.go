//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package user

import (
	"context"

	"github.com/s21platform/conversation-service/internal/model"
)

type DBRepo interface {
	UpsertUser(ctx context.Context, user *model.User) error
}
