package profileflow

import (
	"context"
	"sync"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/logger"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

type accountTypeBackend interface {
	ChangeAccountType(ctx context.Context, accountType models.AccountType) error
}

// PrivacyFlow owns the local privacy toggle state. Concurrent triggers are
// not coalesced; the last response to arrive wins the local value.
type PrivacyFlow struct {
	backend accountTypeBackend
	logger  logger.Logger

	mu        sync.Mutex
	isPrivate bool
}

func NewPrivacyFlow(backend accountTypeBackend, log logger.Logger, initial models.AccountType) *PrivacyFlow {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &PrivacyFlow{
		backend:   backend,
		logger:    log,
		isPrivate: initial.IsPrivate(),
	}
}

// IsPrivate is the current locally visible toggle state.
func (f *PrivacyFlow) IsPrivate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isPrivate
}

// SetPrivate applies the toggle optimistically, then confirms remotely. On
// failure the captured prior value is restored and the result reports the
// rollback; the caller must re-trigger to retry.
func (f *PrivacyFlow) SetPrivate(ctx context.Context, target bool) *Result {
	result := newPending()

	f.mu.Lock()
	previous := f.isPrivate
	f.isPrivate = target
	f.mu.Unlock()

	accountType := models.AccountPublic
	if target {
		accountType = models.AccountPrivate
	}

	if err := f.backend.ChangeAccountType(ctx, accountType); err != nil {
		f.logger.Warn("Privacy change rejected, restoring previous value", "error", err)
		f.mu.Lock()
		f.isPrivate = previous
		f.mu.Unlock()
		result.rollback(err)
		return result
	}

	result.commit()
	return result
}
