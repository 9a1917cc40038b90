package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/models"
	"github.com/svetozar/covelo-api/internal/store"
)

// AuthzService guards privileged team operations. A missing membership
// row and an insufficient role are treated identically: both deny.
type AuthzService struct {
	memberships MembershipStoreInterface
}

func NewAuthzService(memberships MembershipStoreInterface) *AuthzService {
	return &AuthzService{memberships: memberships}
}

func (s *AuthzService) IsTeamAdmin(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	role, err := s.memberships.GetRole(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	switch role {
	case models.RoleOwner, models.RoleAdmin:
		return true, nil
	default:
		return false, nil
	}
}
