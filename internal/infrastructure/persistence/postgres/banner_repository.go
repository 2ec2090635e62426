package postgres

import (
	"context"
	"database/sql"

	"github.com/girafadepapel/storefront-service/internal/domain/catalog"
	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
)

type BannerRepository struct {
	db *sql.DB
}

func NewBannerRepository(conn *Connection) *BannerRepository {
	return &BannerRepository{db: conn.GetDB()}
}

const bannerColumns = `id, title, subtitle, image_url, link_url, link_text, active, position, created_at, updated_at`

func (r *BannerRepository) ListActive(ctx context.Context) ([]*catalog.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE active = TRUE ORDER BY position ASC`
	return r.list(ctx, query)
}

func (r *BannerRepository) ListAll(ctx context.Context) ([]*catalog.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners ORDER BY position ASC`
	return r.list(ctx, query)
}

func (r *BannerRepository) list(ctx context.Context, query string) ([]*catalog.Banner, error) {
	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "banners", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []*catalog.Banner
	for rows.Next() {
		banner, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		banners = append(banners, banner)
	}

	return banners, rows.Err()
}

func (r *BannerRepository) GetByID(ctx context.Context, id string) (*catalog.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "banners", query, id)
	banner, err := scanBanner(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrBannerNotFound
		}
		return nil, err
	}
	return banner, nil
}

func (r *BannerRepository) Create(ctx context.Context, b *catalog.Banner) error {
	query := `
		INSERT INTO banners (id, title, subtitle, image_url, link_url, link_text, active, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "banners", query,
		b.ID, b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.LinkText,
		b.Active, b.Position, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r *BannerRepository) Update(ctx context.Context, b *catalog.Banner) error {
	query := `
		UPDATE banners
		SET title = $2, subtitle = $3, image_url = $4, link_url = $5, link_text = $6,
		    active = $7, position = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "banners", query,
		b.ID, b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.LinkText,
		b.Active, b.Position, b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(result, errors.ErrBannerNotFound)
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	result, err := monitoring.InstrumentExec(ctx, r.db, "DELETE", "banners",
		`DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, errors.ErrBannerNotFound)
}

func scanBanner(row rowScanner) (*catalog.Banner, error) {
	var b catalog.Banner
	err := row.Scan(
		&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL, &b.LinkText,
		&b.Active, &b.Position, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
