package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, patientID string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context) ([]*Patient, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*Patient, error)
	SearchByName(ctx context.Context, query string) ([]*Patient, error)
	Count(ctx context.Context) (int, error)
}
