package service

import (
	"testing"

	"github.com/sangkips/trademarket-api/internal/domain/repository"
	infraRepo "github.com/sangkips/trademarket-api/internal/infrastructure/repository"
	"github.com/sangkips/trademarket-api/internal/testutil"
	"github.com/sangkips/trademarket-api/pkg/apperror"
	"gorm.io/gorm"
)

func newSeededUOW(t *testing.T) (repository.UnitOfWork, *gorm.DB) {
	t.Helper()
	db := testutil.NewSeededDB(t)
	return infraRepo.NewUnitOfWork(db), db
}

func assertValidation(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	if !apperror.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func ids[T any](items []T, id func(T) uint) []uint {
	out := make([]uint, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func countRows(t *testing.T, db *gorm.DB, table, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
