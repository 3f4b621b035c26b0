package services

import (
	"context"

	"github.com/mhagen/assembly/internal/core/domain"
	"github.com/mhagen/assembly/internal/core/ports"
)

type receiptService struct {
	receiptRepo ports.ReceiptRepository
}

func NewReceiptService(receiptRepo ports.ReceiptRepository) ports.ReceiptService {
	return &receiptService{
		receiptRepo: receiptRepo,
	}
}

func (s *receiptService) Verify(ctx context.Context, secret string) (*domain.Vote, error) {
	if secret == "" {
		return nil, domain.ErrReceiptNotFound
	}
	return s.receiptRepo.GetVoteBySecretHash(ctx, domain.HashReceiptSecret(secret))
}
