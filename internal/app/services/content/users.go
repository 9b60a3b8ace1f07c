package content

import (
	"context"
	"errors"

	"realty/internal/app/dto"
	domainuser "realty/internal/domain/user"
)

var ErrSelfDemotion = errors.New("content: admins cannot change their own roles or blocked state")

func (s *Service) ListUsers(ctx context.Context, role string, limit, offset int) ([]dto.UserProfile, error) {
	items, err := s.Users.List(ctx, domainuser.ListParams{
		Role:   domainuser.Role(role),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserProfile, 0, len(items))
	for _, u := range items {
		out = append(out, dto.MapUserProfile(u))
	}
	return out, nil
}

// SetUserRoles replaces the target's role set. Admins cannot edit their
// own account through this path.
func (s *Service) SetUserRoles(ctx context.Context, actorID, userID string, roles []string) (dto.UserProfile, error) {
	if actorID == userID {
		return dto.UserProfile{}, ErrSelfDemotion
	}
	u, err := s.Users.ByID(ctx, domainuser.ID(userID))
	if err != nil {
		return dto.UserProfile{}, err
	}
	assigned := make([]domainuser.Role, 0, len(roles))
	for _, r := range roles {
		assigned = append(assigned, domainuser.Role(r))
	}
	if err := u.AssignRoles(assigned, s.now()); err != nil {
		return dto.UserProfile{}, err
	}
	if err := s.Users.Save(ctx, u); err != nil {
		return dto.UserProfile{}, err
	}
	if s.Logger != nil {
		s.Logger.Info("user roles changed", "user_id", userID, "actor_id", actorID)
	}
	return dto.MapUserProfile(u), nil
}

func (s *Service) SetUserBlocked(ctx context.Context, actorID, userID string, blocked bool) (dto.UserProfile, error) {
	if actorID == userID {
		return dto.UserProfile{}, ErrSelfDemotion
	}
	u, err := s.Users.ByID(ctx, domainuser.ID(userID))
	if err != nil {
		return dto.UserProfile{}, err
	}
	u.SetBlocked(blocked, s.now())
	if err := s.Users.Save(ctx, u); err != nil {
		return dto.UserProfile{}, err
	}
	if s.Logger != nil {
		s.Logger.Info("user blocked state changed", "user_id", userID, "blocked", blocked, "actor_id", actorID)
	}
	return dto.MapUserProfile(u), nil
}
