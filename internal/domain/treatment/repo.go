package treatment

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Record, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*Record, error)
	Count(ctx context.Context) (int, error)
}
