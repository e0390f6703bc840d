package db_models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions is the width of the dish embedding column. Both LLM
// providers are asked for vectors of this size.
const EmbeddingDimensions = 768

type DishEmbedding struct {
	DishID          string `gorm:"primaryKey;column:dish_id"`
	DishName        string `gorm:"not null"`
	Description     string
	DishType        string
	ServingSize     string
	CookingTime     int // minutes
	CookingMethod   string
	Category        string
	Ingredients     pq.StringArray `gorm:"type:text[]"`
	DishTags        pq.StringArray `gorm:"type:text[]"`
	Calories        *int
	Fat             *int
	Fiber           *int
	Sugar           *int
	Protein         *int
	ImageLink       *string
	NutrientContent *string
	Embedding       pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

// DishMatch is a knowledge base hit with its cosine similarity.
type DishMatch struct {
	DishEmbedding
	Similarity float64 `gorm:"column:similarity"`
}
