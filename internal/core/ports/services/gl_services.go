package services

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

// GLSvcFacade serves read-only GL queries.
type GLSvcFacade interface {
	GetHeader(ctx context.Context, orgID, headerID string) (*domain.GLHeader, error)
	ListHeaders(ctx context.Context, orgID string, params dto.ListGLHeadersParams) (*dto.ListGLHeadersResponse, error)
	ListHeadersForSource(ctx context.Context, orgID string, sourceType domain.SourceType, sourceID string) ([]domain.GLHeader, error)
	TrialCheck(ctx context.Context, orgID string) (*dto.TrialCheckResponse, error)
}
