package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/accounting"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// glService serves the GL to reconciliation and reporting callers.
type glService struct {
	BaseService
	reader portsrepo.GLReader
}

func newGLService(reader portsrepo.GLReader) *glService {
	return &glService{reader: reader}
}

var _ portssvc.GLSvcFacade = (*glService)(nil)

func (s *glService) GetHeader(ctx context.Context, orgID, headerID string) (*domain.GLHeader, error) {
	header, err := s.reader.FindHeaderByID(ctx, orgID, headerID)
	if err != nil {
		return nil, wrapLookup(err, "gl header", headerID)
	}
	return header, nil
}

func (s *glService) ListHeaders(ctx context.Context, orgID string, params dto.ListGLHeadersParams) (*dto.ListGLHeadersResponse, error) {
	if params.SourceType != nil && !params.SourceType.IsValid() {
		return nil, apperrors.NewValidationError("unknown source type %q", *params.SourceType)
	}
	if params.NextToken != nil {
		if _, err := pagination.DecodeToken(*params.NextToken); err != nil {
			return nil, apperrors.NewValidationError("%s", err.Error())
		}
	}

	headers, next, err := s.reader.ListHeaders(ctx, orgID, portsrepo.ListHeadersFilter{
		SourceType: params.SourceType,
		SourceID:   params.SourceID,
		Limit:      pagination.ClampLimit(params.Limit),
		NextToken:  params.NextToken,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list GL headers")
		return nil, fmt.Errorf("list gl headers: %w", err)
	}
	if headers == nil {
		headers = []domain.GLHeader{}
	}
	return &dto.ListGLHeadersResponse{Headers: headers, NextToken: next}, nil
}

// ListHeadersForSource returns every header of one source document, reversals included.
func (s *glService) ListHeadersForSource(ctx context.Context, orgID string, sourceType domain.SourceType, sourceID string) ([]domain.GLHeader, error) {
	var out []domain.GLHeader
	err := s.eachPage(ctx, orgID, portsrepo.ListHeadersFilter{SourceType: &sourceType, SourceID: &sourceID}, func(page []domain.GLHeader) {
		out = append(out, page...)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TrialCheck totals every header of the organization and nets each account.
func (s *glService) TrialCheck(ctx context.Context, orgID string) (*dto.TrialCheckResponse, error) {
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	net := map[string]decimal.Decimal{}
	err := s.eachPage(ctx, orgID, portsrepo.ListHeadersFilter{}, func(page []domain.GLHeader) {
		for _, h := range page {
			totalDebit = totalDebit.Add(h.TotalDebit)
			totalCredit = totalCredit.Add(h.TotalCredit)
		}
		for id, amount := range accounting.NetByAccount(page...) {
			net[id] = net[id].Add(amount)
		}
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]dto.AccountNet, 0, len(net))
	for id, amount := range net {
		accounts = append(accounts, dto.AccountNet{AccountID: id, Net: accounting.Round2(amount)})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].AccountID < accounts[j].AccountID })

	return &dto.TrialCheckResponse{
		TotalDebit:  accounting.Round2(totalDebit),
		TotalCredit: accounting.Round2(totalCredit),
		Balanced:    totalDebit.Equal(totalCredit),
		Accounts:    accounts,
	}, nil
}

func (s *glService) eachPage(ctx context.Context, orgID string, filter portsrepo.ListHeadersFilter, fn func([]domain.GLHeader)) error {
	filter.Limit = pagination.MaxLimit
	for {
		page, next, err := s.reader.ListHeaders(ctx, orgID, filter)
		if err != nil {
			return fmt.Errorf("list gl headers: %w", err)
		}
		fn(page)
		if next == nil {
			return nil
		}
		filter.NextToken = next
	}
}
