package repositories

import "context"

// Repository aggregates every repository of the service.
type Repository interface {
	User() UserRepository
	Student() StudentRepository
	Doubt() DoubtRepository
	DoubtMessage() DoubtMessageRepository
	CareerSummary() CareerSummaryRepository

	// WithTransaction runs fn against repositories bound to one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns the repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
