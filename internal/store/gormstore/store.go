// Package gormstore implements store.Store on PostgreSQL through GORM.
package gormstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/store"
)

// PostgreSQL SQLSTATE codes we translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

type Store struct {
	db *gorm.DB
}

var (
	_ store.Store       = (*Store)(nil)
	_ store.QueryRunner = (*Store)(nil)
)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Transact runs fn inside a database transaction. A non-nil error from fn
// rolls the transaction back and is returned unchanged.
func (s *Store) Transact(ctx context.Context, fn func(tx store.Store) error) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	if err != nil && apperr.KindOf(err) == apperr.KindUnknown {
		return apperr.StoreUnavailable(err, "transaction")
	}
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperr.StoreUnavailable(err, "get database handle")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.StoreUnavailable(err, "ping database")
	}
	return nil
}

// RunReadOnly executes query in a READ ONLY transaction and returns the rows
// as column-name maps.
func (s *Store) RunReadOnly(ctx context.Context, query string) ([]map[string]any, error) {
	rows := []map[string]any{}
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION READ ONLY").Error; err != nil {
			return err
		}
		return tx.Raw(query).Scan(&rows).Error
	})
	if err != nil {
		return nil, translate(err, "run query")
	}
	return rows, nil
}

// translate maps driver errors onto the apperr taxonomy.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &apperr.Error{Kind: apperr.KindNotFound, Message: op + ": not found", Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &apperr.Error{Kind: apperr.KindConflict, Message: op + ": duplicate " + pgErr.ConstraintName, Err: err}
		case pgForeignKeyViolation:
			return &apperr.Error{Kind: apperr.KindNotFound, Message: op + ": referenced row does not exist", Err: err}
		case pgCheckViolation:
			return &apperr.Error{Kind: apperr.KindInvalidRequest, Message: op + ": violates " + pgErr.ConstraintName, Err: err}
		}
	}
	return apperr.StoreUnavailable(err, op)
}

// notFound keeps the caller's message for missing rows.
func notFound(err error, nf *apperr.Error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return translate(err, op)
}

// mustAffect turns a zero-row UPDATE into nf.
func mustAffect(res *gorm.DB, nf *apperr.Error, op string) error {
	if res.Error != nil {
		return translate(res.Error, op)
	}
	if res.RowsAffected == 0 {
		return nf
	}
	return nil
}
