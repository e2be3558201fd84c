package services

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

// PDCSvcFacade manages post-dated cheques.
type PDCSvcFacade interface {
	CreatePDC(ctx context.Context, orgID string, req dto.CreatePDCRequest, actorID string) (*domain.PDC, error)
	UpdatePDC(ctx context.Context, orgID, pdcID string, req dto.UpdatePDCRequest, actorID string) (*domain.PDC, error)
	GetPDC(ctx context.Context, orgID, pdcID string) (*domain.PDC, error)

	// TransitionPDC applies a lifecycle action. Clearing posts to the GL; bouncing
	// a cleared cheque reverses that posting.
	TransitionPDC(ctx context.Context, req dto.TransitionPDCRequest) (*dto.PDCTransitionResult, error)
}
