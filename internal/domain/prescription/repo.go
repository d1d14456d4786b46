package prescription

import "context"

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id string) (*Prescription, error)
	List(ctx context.Context) ([]*Prescription, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Prescription, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*Prescription, error)
	ListByDrugName(ctx context.Context, drugName string) ([]*Prescription, error)
	Count(ctx context.Context) (int, error)
}
