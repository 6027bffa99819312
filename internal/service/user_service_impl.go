package service

import (
	"context"
	"fmt"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/repository"
)

// NameInvalidator drops a cached display name after a user record changes.
// *directory.CachedDirectory satisfies it.
type NameInvalidator interface {
	Invalidate(userID string)
}

type userService struct {
	users    repository.UserRepo
	names    NameInvalidator
	observer UseCaseObserver
}

// NewUserService creates the user directory service. names may be nil when
// no display-name cache is wired.
func NewUserService(users repository.UserRepo, names NameInvalidator, observers ...UseCaseObserver) UserService {
	return &userService{
		users:    users,
		names:    names,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *userService) Register(ctx context.Context, u *domain.User) error {
	return observe(ctx, s.observer, "user.register", map[string]any{"user_id": u.ID}, func() error {
		if u.ID == "" {
			return fmt.Errorf("user id is required")
		}
		if u.DisplayName == "" {
			return fmt.Errorf("display name is required")
		}
		if err := s.users.Upsert(ctx, u); err != nil {
			return err
		}
		if s.names != nil {
			s.names.Invalidate(u.ID)
		}
		return nil
	})
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
