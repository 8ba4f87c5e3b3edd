package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound indicates the requested identifier does not exist.
	// It is a client-visible "not found" outcome, never a server error.
	ErrRecordNotFound = errors.New("store: record not found")

	// ErrStoreUnavailable indicates a transport-level failure talking to the
	// backing database. It is never retried here; retry policy belongs to the
	// connection layer.
	ErrStoreUnavailable = errors.New("store: unavailable")

	// ErrInvalidQuery indicates a malformed field name in a query.
	ErrInvalidQuery = errors.New("store: invalid query")
)

// Store is a uniform CRUD and query façade over one collection. All record
// types share identical semantics; the type parameter selects the collection.
type Store[T any] struct {
	db *gorm.DB
}

// New constructs a store bound to the shared database handle.
func New[T any](db *gorm.DB) (*Store[T], error) {
	if db == nil {
		return nil, errors.New("store: db is required")
	}
	return &Store[T]{db: db}, nil
}

// Create inserts a new record. Identifier and timestamps are stamped during
// the insert; the passed record is updated in place.
func (s *Store[T]) Create(ctx context.Context, record *T) error {
	if record == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidQuery)
	}
	if err := s.db.WithContext(ensured(ctx)).Create(record).Error; err != nil {
		return unavailable(err)
	}
	return nil
}

// FindByID returns the record with the given identifier, or ErrRecordNotFound
// when no such record exists or it was deleted.
func (s *Store[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var record T
	err := s.db.WithContext(ensured(ctx)).Take(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return &record, nil
}

// Find evaluates the query and returns the materialized result set. Ordering
// is applied before limiting.
func (s *Store[T]) Find(ctx context.Context, q Query) ([]T, error) {
	tx, err := s.apply(ensured(ctx), q, true)
	if err != nil {
		return nil, err
	}

	var records []T
	if err := tx.Find(&records).Error; err != nil {
		return nil, unavailable(err)
	}
	return records, nil
}

// Update merges the partial fields into the existing record, re-stamps
// updated_at, and returns the updated record re-fetched from the store.
// Updating a missing identifier fails closed with ErrRecordNotFound.
func (s *Store[T]) Update(ctx context.Context, id string, changes map[string]any) (*T, error) {
	ctx = ensured(ctx)

	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return existing, nil
	}

	for field := range changes {
		if !validIdentifier(field) {
			return nil, fmt.Errorf("%w: field %q", ErrInvalidQuery, field)
		}
	}

	var model T
	if err := s.db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, unavailable(err)
	}

	return s.FindByID(ctx, id)
}

// Delete removes the record unconditionally. Deleting a missing identifier is
// not an error.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	var model T
	if err := s.db.WithContext(ensured(ctx)).Where("id = ?", id).Delete(&model).Error; err != nil {
		return unavailable(err)
	}
	return nil
}

// Count returns the cardinality of the query result without materializing
// records. Ordering and limit are ignored.
func (s *Store[T]) Count(ctx context.Context, q Query) (int64, error) {
	tx, err := s.apply(ensured(ctx), q, false)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, unavailable(err)
	}
	return count, nil
}

// Increment atomically adds delta to a numeric column of one record. The
// addition happens server-side so concurrent increments are never lost.
// A missing identifier fails closed with ErrRecordNotFound.
func (s *Store[T]) Increment(ctx context.Context, id, column string, delta int64) error {
	if !validIdentifier(column) {
		return fmt.Errorf("%w: column %q", ErrInvalidQuery, column)
	}

	var model T
	tx := s.db.WithContext(ensured(ctx)).Model(&model).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if tx.Error != nil {
		return unavailable(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store[T]) apply(ctx context.Context, q Query, withOrderAndLimit bool) (*gorm.DB, error) {
	var model T
	tx := s.db.WithContext(ctx).Model(&model)

	for _, f := range q.filters {
		if !validIdentifier(f.Field) {
			return nil, fmt.Errorf("%w: field %q", ErrInvalidQuery, f.Field)
		}
		tx = tx.Where(f.Field+" = ?", f.Value)
	}

	if !withOrderAndLimit {
		return tx, nil
	}

	if q.orderField != "" {
		if !validIdentifier(q.orderField) {
			return nil, fmt.Errorf("%w: order field %q", ErrInvalidQuery, q.orderField)
		}
		dir := "DESC"
		if q.orderDir == Ascending {
			dir = "ASC"
		}
		tx = tx.Order(q.orderField + " " + dir)
	}

	if q.limit > 0 {
		tx = tx.Limit(q.limit)
	}

	return tx, nil
}

func ensured(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
