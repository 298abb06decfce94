package ledger

import (
	"context"

	"debt_ledger/internal/domain"
	"debt_ledger/internal/statement"
)

// Statement words the printable letter for one record owned by userID, dated today.
func (s *Service) Statement(ctx context.Context, dir domain.Direction, id, userID uint, ownerName string, opts statement.Options) (statement.Document, error) {
	p, err := s.store.GetParty(ctx, dir, id, userID)
	if err != nil {
		return statement.Document{}, err
	}
	return statement.Generate(p, ownerName, s.now(), opts)
}
