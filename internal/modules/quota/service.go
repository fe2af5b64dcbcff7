package quota

import "context"

// Service meters AI dialogue turns per user.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// SpendTurn deducts one turn from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the turn is
// immediately spent. Returns ErrQuotaExhausted when the month's allowance is gone.
func (s *Service) SpendTurn(ctx context.Context, uid string) error {
	err := s.store.SpendTurn(ctx, uid)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid); initErr != nil {
		return initErr
	}
	return s.store.SpendTurn(ctx, uid)
}
