// Package targetgroup_repo implements targetgroup.Repository on PostgreSQL.
package targetgroup_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"audiens/internal/core/apperror"
	"audiens/internal/core/id"
	"audiens/internal/domain/filter"
	"audiens/internal/domain/targetgroup"
	"audiens/internal/infrastructure/storage/postgres"
)

const table = "target_groups"

// row is the DB projection; the wire payload is stored as jsonb.
type row struct {
	ID        id.ID     `db:"id"`
	Name      string    `db:"name"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

func (r row) toDomain() (*targetgroup.TargetGroup, error) {
	var payload filter.WirePayload
	if err := json.Unmarshal(r.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &targetgroup.TargetGroup{
		ID:        r.ID,
		Name:      r.Name,
		Payload:   payload,
		CreatedAt: r.CreatedAt,
	}, nil
}

// Repo implements targetgroup.Repository.
type Repo struct {
	pool *postgres.Pool
}

// New creates a target group repository.
func New(pool *postgres.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ targetgroup.Repository = (*Repo)(nil)

func baseSelect() sq.SelectBuilder {
	return sq.Select("id", "name", "payload", "created_at").
		From(table).
		PlaceholderFormat(sq.Dollar)
}

// Insert stores a target group.
func (r *Repo) Insert(ctx context.Context, tg *targetgroup.TargetGroup) error {
	payload, err := json.Marshal(tg.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	sql, args, err := sq.Insert(table).
		Columns("id", "name", "payload", "created_at").
		Values(tg.ID, tg.Name, payload, tg.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert target group: %w", err)
	}
	return nil
}

// List returns all target groups, newest first.
func (r *Repo) List(ctx context.Context) ([]targetgroup.TargetGroup, error) {
	sql, args, err := baseSelect().OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list target groups: %w", err)
	}

	out := make([]targetgroup.TargetGroup, 0, len(rows))
	for _, rw := range rows {
		tg, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *tg)
	}
	return out, nil
}

// GetByID returns one target group.
func (r *Repo) GetByID(ctx context.Context, groupID id.ID) (*targetgroup.TargetGroup, error) {
	sql, args, err := baseSelect().Where(sq.Eq{"id": groupID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, r.pool, &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("target group", groupID)
		}
		return nil, fmt.Errorf("get target group: %w", err)
	}
	return rw.toDomain()
}

// FindByName returns the group with the given name, or nil when absent.
func (r *Repo) FindByName(ctx context.Context, name string) (*targetgroup.TargetGroup, error) {
	sql, args, err := baseSelect().Where(sq.Eq{"name": name}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, r.pool, &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find target group by name: %w", err)
	}
	return rw.toDomain()
}

// Delete removes a target group.
func (r *Repo) Delete(ctx context.Context, groupID id.ID) error {
	sql, args, err := sq.Delete(table).
		Where(sq.Eq{"id": groupID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete target group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("target group", groupID)
	}
	return nil
}
