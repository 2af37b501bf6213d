package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rightmove-parser-service/internal/core/domain"
)

// PostgresStorageAdapter реализует PropertyStoragePort для PostgreSQL.
type PostgresStorageAdapter struct {
	pool *pgxpool.Pool
}

// NewPostgresStorageAdapter создает новый экземпляр адаптера.
func NewPostgresStorageAdapter(pool *pgxpool.Pool) (*PostgresStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresStorageAdapter{
		pool: pool,
	}, nil
}

// Save сохраняет одну запись PropertyRecord в базу данных. Повторная
// встреча того же URL обновляет запись свежими данными.
func (a *PostgresStorageAdapter) Save(ctx context.Context, record domain.PropertyRecord) error {
	sql := `
		INSERT INTO rightmove_properties (
			source, property_type, beds, baths, area, price, location,
			features, description, photos_url, video_url, video_thumbnail,
			url, property_info_count, page_number
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT (url) DO UPDATE SET
			property_type = EXCLUDED.property_type,
			beds = EXCLUDED.beds,
			baths = EXCLUDED.baths,
			area = EXCLUDED.area,
			price = EXCLUDED.price,
			location = EXCLUDED.location,
			features = EXCLUDED.features,
			description = EXCLUDED.description,
			photos_url = EXCLUDED.photos_url,
			video_url = EXCLUDED.video_url,
			video_thumbnail = EXCLUDED.video_thumbnail,
			property_info_count = EXCLUDED.property_info_count,
			page_number = EXCLUDED.page_number;
	`
	_, err := a.pool.Exec(ctx, sql,
		record.Source, record.Type, record.Beds, record.Baths, record.Area, record.Price, record.Location,
		record.Features, record.Description, record.PhotosURL, record.VideoURL, record.VideoThumbnail,
		record.URL, record.PropertyInfoCount, record.PageNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to insert/update rightmove_properties: %w", err)
	}
	return nil
}
