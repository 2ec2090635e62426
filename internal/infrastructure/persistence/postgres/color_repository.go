package postgres

import (
	"context"
	"database/sql"

	"github.com/girafadepapel/storefront-service/internal/domain/catalog"
	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
)

type ColorRepository struct {
	db *sql.DB
}

func NewColorRepository(conn *Connection) *ColorRepository {
	return &ColorRepository{db: conn.GetDB()}
}

func (r *ColorRepository) List(ctx context.Context) ([]*catalog.Color, error) {
	query := `
		SELECT id, name, hex, active, created_at, updated_at
		FROM colors
		ORDER BY name ASC
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "colors", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colors []*catalog.Color
	for rows.Next() {
		var c catalog.Color
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		colors = append(colors, &c)
	}

	return colors, rows.Err()
}

func (r *ColorRepository) GetByID(ctx context.Context, id string) (*catalog.Color, error) {
	query := `
		SELECT id, name, hex, active, created_at, updated_at
		FROM colors
		WHERE id = $1
	`

	var c catalog.Color
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "colors", query, id)
	err := row.Scan(&c.ID, &c.Name, &c.Hex, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrColorNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ColorRepository) Create(ctx context.Context, c *catalog.Color) error {
	query := `
		INSERT INTO colors (id, name, hex, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "colors", query,
		c.ID, c.Name, c.Hex, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *ColorRepository) Update(ctx context.Context, c *catalog.Color) error {
	query := `
		UPDATE colors
		SET name = $2, hex = $3, active = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "colors", query,
		c.ID, c.Name, c.Hex, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(result, errors.ErrColorNotFound)
}

func (r *ColorRepository) Delete(ctx context.Context, id string) error {
	result, err := monitoring.InstrumentExec(ctx, r.db, "DELETE", "colors",
		`DELETE FROM colors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, errors.ErrColorNotFound)
}
