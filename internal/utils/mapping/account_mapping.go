package mapping

import (
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		OrgID:       m.OrgID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Subtype:     domain.AccountSubtype(m.Subtype),
		IsActive:    m.IsActive,
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrgID:        m.OrgID,
		Name:         m.Name,
		BaseCurrency: m.BaseCurrency,
		LockDate:     m.LockDate,
	}
}
