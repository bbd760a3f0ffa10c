package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/wichananm65/profile-registry/internal/domain/repository"
)

func TestGet_ReturnsStoredValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewKeyValueRepository(db)

	rows := sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"name":"Amy"}]`))
	mock.ExpectQuery("SELECT value FROM kv_store").WithArgs("formData").WillReturnRows(rows)

	value, err := repo.Get(context.Background(), "formData")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if string(value) != `[{"name":"Amy"}]` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGet_MissingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewKeyValueRepository(db)

	mock.ExpectQuery("SELECT value FROM kv_store").WithArgs("formData").WillReturnError(sql.ErrNoRows)

	if _, err := repo.Get(context.Background(), "formData"); !errors.Is(err, repository.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSet_Upserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewKeyValueRepository(db)

	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs("formData", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Set(context.Background(), "formData", []byte(`[]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSet_WrapsDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewKeyValueRepository(db)

	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO kv_store").WillReturnError(boom)

	if err := repo.Set(context.Background(), "formData", []byte(`[]`)); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}

func TestDelete_NoRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewKeyValueRepository(db)

	mock.ExpectExec("DELETE FROM kv_store").WithArgs("profilePicture:abc").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM kv_store").WithArgs("profilePicture:def").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "profilePicture:abc"); !errors.Is(err, repository.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), "profilePicture:def"); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewKeyValueRepository(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
