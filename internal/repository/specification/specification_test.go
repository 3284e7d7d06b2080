package specification

import (
	"testing"

	"university-assistant-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost dbname=none"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestChunkSpecifications(t *testing.T) {
	db := dryRunDB(t)
	gen := uuid.MustParse("7f1e8c8e-2d3c-4a55-9d6e-0b1a2c3d4e5f")

	tests := []struct {
		name     string
		specs    []Specification
		contains []string
		absent   []string
	}{
		{
			name:     "generation and university",
			specs:    []Specification{ByGeneration{ID: gen}, ByUniversity{University: "ned"}},
			contains: []string{"generation_id = '7f1e8c8e-2d3c-4a55-9d6e-0b1a2c3d4e5f'", "university = 'ned'"},
		},
		{
			name:     "empty university is unscoped",
			specs:    []Specification{ByGeneration{ID: gen}, ByUniversity{}},
			contains: []string{"generation_id ="},
			absent:   []string{"university ="},
		},
		{
			name:     "active generation join",
			specs:    []Specification{InActiveGeneration{}, ByUniversity{University: "smiu"}},
			contains: []string{"JOIN index_generations ON index_generations.id = university_chunks.generation_id AND index_generations.active = true", "university = 'smiu'"},
			absent:   []string{"generation_id = '"},
		},
		{
			name:     "ordering",
			specs:    []Specification{OrderBy{Field: "position"}},
			contains: []string{"ORDER BY position ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var out []model.UniversityChunk
				return Apply(tx.Model(&model.UniversityChunk{}), tt.specs...).Find(&out)
			})
			for _, s := range tt.contains {
				assert.Contains(t, sql, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, sql, s)
			}
		})
	}
}
