package service

import (
	"time"
)

// Service implements conversation management, message history and read-state tracking.
// It keeps no state between calls; the Entity Store is the single source of truth.
type Service struct {
	repository DBRepo
	validator  Validator
	notifier   Notifier
	now        func() time.Time
}

func New(repo DBRepo, validator Validator, notifier Notifier) *Service {
	return &Service{
		repository: repo,
		validator:  validator,
		notifier:   notifier,
		now:        time.Now,
	}
}
