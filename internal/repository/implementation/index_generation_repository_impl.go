package implementation

import (
	"context"
	"errors"

	"university-assistant-be/internal/entity"
	"university-assistant-be/internal/mapper"
	"university-assistant-be/internal/model"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IndexGenerationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewIndexGenerationRepository(db *gorm.DB) contract.IndexGenerationRepository {
	return &IndexGenerationRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *IndexGenerationRepositoryImpl) Create(ctx context.Context, generation *entity.IndexGeneration) error {
	m := r.mapper.GenerationToModel(generation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*generation = *r.mapper.GenerationToEntity(m)
	return nil
}

func (r *IndexGenerationRepositoryImpl) FindActive(ctx context.Context) (*entity.IndexGeneration, error) {
	var m model.IndexGeneration
	err := specification.Apply(r.db.WithContext(ctx),
		specification.ActiveGeneration{},
		specification.OrderBy{Field: "built_at", Desc: true},
	).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.GenerationToEntity(&m), nil
}

func (r *IndexGenerationRepositoryImpl) Activate(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.IndexGeneration{}).Where("id <> ?", id).Update("active", false).Error; err != nil {
		return err
	}
	return specification.ByID{ID: id}.Apply(db.Model(&model.IndexGeneration{})).Update("active", true).Error
}

func (r *IndexGenerationRepositoryImpl) DeleteExcept(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id <> ?", id).Delete(&model.IndexGeneration{}).Error
}
