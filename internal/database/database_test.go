package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, driver), mock
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMock(t, "postgres")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products SET current_stock = current_stock + 1 WHERE product_id = $1").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := WithTx(context.Background(), db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(tx.Rebind("UPDATE products SET current_stock = current_stock + 1 WHERE product_id = ?"), 7)
		return err
	})
	if err != nil {
		t.Fatalf("Expected commit, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock := newMock(t, "postgres")
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("product not found")
	err := WithTx(context.Background(), db, func(*sqlx.Tx) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Expected fn's error back, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db, mock := newMock(t, "postgres")
	mock.ExpectBegin()
	mock.ExpectRollback()

	func() {
		defer func() {
			if p := recover(); p != "boom" {
				t.Errorf("Expected panic to propagate, got %v", p)
			}
		}()
		WithTx(context.Background(), db, func(*sqlx.Tx) error { panic("boom") })
	}()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestWithTx_CommitFailure(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("deadlock"))

	if err := WithTx(context.Background(), db, func(*sqlx.Tx) error { return nil }); err == nil {
		t.Fatal("Expected commit error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsertID(t *testing.T) {
	const insert = "INSERT INTO warehouses (warehouse_name) VALUES (?)"

	t.Run("postgres uses RETURNING", func(t *testing.T) {
		db, mock := newMock(t, "postgres")
		mock.ExpectQuery("INSERT INTO warehouses (warehouse_name) VALUES ($1) RETURNING warehouse_id").
			WithArgs("North").
			WillReturnRows(sqlmock.NewRows([]string{"warehouse_id"}).AddRow(9))

		id, err := InsertID(context.Background(), db, "warehouse_id", insert, "North")
		if err != nil || id != 9 {
			t.Fatalf("Expected id 9, got %d (%v)", id, err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("mysql uses LastInsertId", func(t *testing.T) {
		db, mock := newMock(t, "mysql")
		mock.ExpectExec(insert).
			WithArgs("North").
			WillReturnResult(sqlmock.NewResult(12, 1))

		id, err := InsertID(context.Background(), db, "warehouse_id", insert, "North")
		if err != nil || id != 12 {
			t.Fatalf("Expected id 12, got %d (%v)", id, err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})
}
