package repositories

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	OfferingRepository        *OfferingRepository
	CollegeLocationRepository *CollegeLocationRepository
	UserRepository            *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool, queryTimeout time.Duration) *Repositories {
	return &Repositories{
		OfferingRepository:        NewOfferingRepository(db, queryTimeout),
		CollegeLocationRepository: NewCollegeLocationRepository(db, queryTimeout),
		UserRepository:            NewUserRepository(db, queryTimeout),
	}
}
