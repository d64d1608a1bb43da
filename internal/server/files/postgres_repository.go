package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// nullable converts an empty string into a SQL NULL argument.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PostgresRepository) Create(ctx context.Context, file *File) (*File, error) {

	query :=
		`INSERT INTO files (user_id, name, type, parent_id, is_public, local_path)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, seq, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.UserID, file.Name, file.Type, nullable(file.ParentID), file.IsPublic, nullable(file.LocalPath)).
		Scan(&file.ID, &file.Seq, &file.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*File, error) {

	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT id, user_id, name, type, parent_id, is_public, local_path, seq, created_at FROM files
		 WHERE id = $1
		 `

	file, err := scanFile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) ListByParent(ctx context.Context, userID, parentID string, offset, limit int) ([]*File, error) {

	var (
		rows *sql.Rows
		err  error
	)

	if parentID == "" {
		query :=
			`SELECT id, user_id, name, type, parent_id, is_public, local_path, seq, created_at FROM files
			 WHERE user_id = $1 AND parent_id IS NULL
			 ORDER BY seq
			 LIMIT $2 OFFSET $3
			 `
		rows, err = r.db.QueryContext(ctx, query, userID, limit, offset)
	} else {
		// an unparseable parent id cannot match any record
		if _, perr := uuid.Parse(parentID); perr != nil {
			return []*File{}, nil
		}
		query :=
			`SELECT id, user_id, name, type, parent_id, is_public, local_path, seq, created_at FROM files
			 WHERE user_id = $1 AND parent_id = $2
			 ORDER BY seq
			 LIMIT $3 OFFSET $4
			 `
		rows, err = r.db.QueryContext(ctx, query, userID, parentID, limit, offset)
	}

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := make([]*File, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, file)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return n, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (*File, error) {
	var (
		file      File
		parentID  sql.NullString
		localPath sql.NullString
	)

	if err := s.Scan(&file.ID, &file.UserID, &file.Name, &file.Type,
		&parentID, &file.IsPublic, &localPath, &file.Seq, &file.CreatedAt); err != nil {
		return nil, err
	}

	file.ParentID = parentID.String
	file.LocalPath = localPath.String

	return &file, nil
}
