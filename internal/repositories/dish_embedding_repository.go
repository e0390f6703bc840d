package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodybuddy/internal/models/db_models"
)

type DishEmbeddingRepository interface {
	// SearchByVector returns the limit nearest dishes by cosine distance,
	// closest first, with similarity = 1 - distance.
	SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.DishMatch, error)
	Upsert(ctx context.Context, dish *db_models.DishEmbedding) error
	Count(ctx context.Context) (int64, error)
}

type dishEmbeddingRepository struct {
	db *gorm.DB
}

func NewDishEmbeddingRepository(db *gorm.DB) DishEmbeddingRepository {
	return &dishEmbeddingRepository{
		db: db,
	}
}

const searchByVectorSQL = `
        SELECT *, (1 - (embedding <=> ?)) AS similarity
        FROM dish_embeddings
        ORDER BY embedding <=> ?
        LIMIT ?
    `

func (d *dishEmbeddingRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.DishMatch, error) {
	var results []db_models.DishMatch

	err := d.db.WithContext(ctx).Raw(searchByVectorSQL, vector, vector, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (d *dishEmbeddingRepository) Upsert(ctx context.Context, dish *db_models.DishEmbedding) error {
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dish_id"}},
			UpdateAll: true,
		}).
		Create(dish).Error
}

func (d *dishEmbeddingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&db_models.DishEmbedding{}).Count(&n).Error
	return n, err
}
