// Package repository holds the gorm-backed stores used by the services. Each
// store is an interface so services can be tested against in-memory fakes.
package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mocks/repository_mock.go -package=mocks . AlertRepository,DeviceRepository,IntegrationRepository,ProfileRepository,ProgressRepository,SystemLogRepository,TokenRepository,UserRepository

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// duplicate maps a Postgres unique violation to ErrAlreadyExists.
func duplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrAlreadyExists
	}
	return err
}
