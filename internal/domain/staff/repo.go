package staff

import (
	"context"

	"github.com/hms/hms/internal/platform/authz"
)

type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, staffID string) (*Staff, error)
	Update(ctx context.Context, s *Staff) error
	List(ctx context.Context) ([]*Staff, error)
	ListByRole(ctx context.Context, role authz.Role) ([]*Staff, error)
	ListByDepartment(ctx context.Context, department string) ([]*Staff, error)
	Count(ctx context.Context) (int, error)
}
