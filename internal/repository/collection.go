package repository

import (
	"context"

	"face2geek/internal/models"

	"gorm.io/gorm"
)

// CollectionRepository defines the interface for snippet collections.
type CollectionRepository interface {
	Create(ctx context.Context, collection *models.Collection) error
	GetByID(ctx context.Context, id uint) (*models.Collection, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Collection, error)
}

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	if err := r.db.WithContext(ctx).Create(collection).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *collectionRepository) GetByID(ctx context.Context, id uint) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.WithContext(ctx).First(&collection, id).Error; err != nil {
		return nil, lookupError(err, "Collection", id)
	}
	return &collection, nil
}

func (r *collectionRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Collection, error) {
	var collections []*models.Collection
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&collections).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return collections, nil
}
