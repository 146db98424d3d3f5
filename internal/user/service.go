package user

import "context"

type service struct {
	infra Infra
}

func NewService(infra Infra) Service {
	return &service{infra: infra}
}

func (s *service) ResetUser(ctx context.Context, userID string) error {
	return s.infra.ResetUser(ctx, userID)
}
