package files

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filekeeper/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	ownerID  = "3a1f0245-7c7e-4da4-9a92-2a241b0e1b41"
	fileID   = "c371ef6f-af6a-47d1-8c0f-f32f43d4e6f1"
	folderID = "8b3abbcf-bb07-4f87-a052-7b0e83dd17c1"
)

var fileColumns = []string{"id", "user_id", "name", "type", "parent_id", "is_public", "local_path", "seq", "created_at"}

func TestCreate_FolderStoresNullParentAndPath(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+files\s*\(user_id,\s*name,\s*type,\s*parent_id,\s*is_public,\s*local_path\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*seq,\s*created_at\s*$`

	rows := sqlmock.NewRows([]string{"id", "seq", "created_at"}).AddRow(folderID, int64(1), time.Now())
	mock.ExpectQuery(q).
		WithArgs(ownerID, "docs", "folder", nil, false, nil).
		WillReturnRows(rows)

	f := &File{UserID: ownerID, Name: "docs", Type: "folder"}
	got, err := repo.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != folderID || got.Seq != 1 {
		t.Fatalf("unexpected file: %+v", got)
	}
}

func TestCreate_FileStoresParentAndPath(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "seq", "created_at"}).AddRow(fileID, int64(2), time.Now())
	mock.ExpectQuery(`INSERT\s+INTO\s+files`).
		WithArgs(ownerID, "a.txt", "file", folderID, true, "blobname").
		WillReturnRows(rows)

	f := &File{UserID: ownerID, Name: "a.txt", Type: "file", ParentID: folderID, IsPublic: true, LocalPath: "blobname"}
	if _, err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(fileColumns).
		AddRow(fileID, ownerID, "a.txt", "file", folderID, false, "blobname", int64(2), time.Now())
	mock.ExpectQuery(`SELECT\s+id,\s*user_id,.*FROM\s+files\s+WHERE\s+id`).
		WithArgs(fileID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), fileID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ParentID != folderID || got.LocalPath != "blobname" {
		t.Fatalf("unexpected file: %+v", got)
	}
}

func TestGetByID_NullColumnsScanToEmptyStrings(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(fileColumns).
		AddRow(folderID, ownerID, "docs", "folder", nil, false, nil, int64(1), time.Now())
	mock.ExpectQuery(`SELECT\s+id,\s*user_id,.*FROM\s+files\s+WHERE\s+id`).
		WithArgs(folderID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), folderID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ParentID != "" || got.LocalPath != "" {
		t.Fatalf("unexpected file: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user_id`).
		WithArgs(fileID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), fileID)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestGetByID_MalformedIDIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.GetByID(context.Background(), "42")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected db access: %v", err)
	}
}

func TestListByParent_RootUsesIsNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(fileColumns).
		AddRow(folderID, ownerID, "docs", "folder", nil, false, nil, int64(1), time.Now()).
		AddRow(fileID, ownerID, "a.txt", "file", nil, false, "blobname", int64(2), time.Now())
	mock.ExpectQuery(`(?s)SELECT\s+id,.*WHERE\s+user_id\s*=\s*\$1\s+AND\s+parent_id\s+IS\s+NULL\s+ORDER\s+BY\s+seq`).
		WithArgs(ownerID, 20, 0).
		WillReturnRows(rows)

	got, err := repo.ListByParent(context.Background(), ownerID, "", 0, 20)
	if err != nil {
		t.Fatalf("ListByParent error: %v", err)
	}
	if len(got) != 2 || got[0].Seq != 1 || got[1].Seq != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByParent_WithParentAndWindow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id,.*WHERE\s+user_id\s*=\s*\$1\s+AND\s+parent_id\s*=\s*\$2\s+ORDER\s+BY\s+seq\s+LIMIT\s+\$3\s+OFFSET\s+\$4`).
		WithArgs(ownerID, folderID, 20, 40).
		WillReturnRows(sqlmock.NewRows(fileColumns))

	got, err := repo.ListByParent(context.Background(), ownerID, folderID, 40, 20)
	if err != nil {
		t.Fatalf("ListByParent error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty page, got %+v", got)
	}
}

func TestListByParent_MalformedParentYieldsEmpty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	got, err := repo.ListByParent(context.Background(), ownerID, "42", 0, 20)
	if err != nil {
		t.Fatalf("ListByParent error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected db access: %v", err)
	}
}

func TestCount_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+files`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 3 {
		t.Fatalf("unexpected count: %d", n)
	}
}
