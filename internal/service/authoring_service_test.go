package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository/mocks"
	"gamebook-hub/internal/service"
)

func floatPtr(v float64) *float64 { return &v }

type authoringFixture struct {
	gamebooks *mocks.MockGamebookRepository
	cache     *mocks.MockGraphCache
	txManager *mocks.MockTxManager
	svc       service.AuthoringService
	gamebook  *models.Gamebook
}

func newAuthoringFixture() *authoringFixture {
	f := &authoringFixture{
		gamebooks: new(mocks.MockGamebookRepository),
		cache:     new(mocks.MockGraphCache),
		txManager: new(mocks.MockTxManager),
		gamebook:  &models.Gamebook{ID: uuid.New(), Slug: "cave-of-shadows"},
	}
	logger := zap.NewNop()
	graphs := service.NewGraphProvider(nil, f.gamebooks, new(mocks.MockNodeRepository), new(mocks.MockChoiceRepository), f.cache, logger)
	f.svc = service.NewAuthoringService(nil, f.gamebooks, graphs, f.txManager, logger)
	return f
}

func TestAuthoringService_ReplaceAttributeSchema(t *testing.T) {
	ctx := context.Background()

	t.Run("Normalizes keys and assigns order", func(t *testing.T) {
		f := newAuthoringFixture()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(f.gamebook, nil).Once()
		f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.gamebooks.On("ReplaceAttributes", mock.Anything, mock.Anything, f.gamebook.ID,
			mock.MatchedBy(func(defs []models.AttributeDefinition) bool {
				return len(defs) == 2 &&
					defs[0].Key == "strength" && defs[0].Order == 0 &&
					defs[1].Key == "luck-points" && defs[1].Order == 1
			})).Return(nil).Once()
		f.cache.On("Invalidate", mock.Anything, "cave-of-shadows").Return(nil).Once()

		normalized, err := f.svc.ReplaceAttributeSchema(ctx, "cave-of-shadows", []models.AttributeDefinition{
			{Key: "  Strength ", Type: models.AttributeInteger},
			{Label: "Luck Points", Type: models.AttributeInteger},
			{Type: models.AttributeInteger}, // без ключа и подписи — отбрасывается
		})

		assert.NoError(t, err)
		assert.Len(t, normalized, 2)
		f.gamebooks.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	t.Run("Duplicate keys after slugify", func(t *testing.T) {
		f := newAuthoringFixture()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(f.gamebook, nil).Once()

		_, err := f.svc.ReplaceAttributeSchema(ctx, "cave-of-shadows", []models.AttributeDefinition{
			{Key: "Luck Points", Type: models.AttributeInteger},
			{Key: "luck-points", Type: models.AttributeInteger},
		})

		var verrs models.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		f.txManager.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})

	t.Run("Range and default validation", func(t *testing.T) {
		f := newAuthoringFixture()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(f.gamebook, nil).Once()

		_, err := f.svc.ReplaceAttributeSchema(ctx, "cave-of-shadows", []models.AttributeDefinition{
			{Key: "hp", Type: models.AttributeInteger, Min: floatPtr(10), Max: floatPtr(5)},
			{Key: "mp", Type: models.AttributeInteger, Min: floatPtr(0), Max: floatPtr(10), Default: floatPtr(11)},
		})

		var verrs models.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("Resource requires max and non-negative min", func(t *testing.T) {
		f := newAuthoringFixture()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(f.gamebook, nil).Once()

		_, err := f.svc.ReplaceAttributeSchema(ctx, "cave-of-shadows", []models.AttributeDefinition{
			{Key: "ammo", Type: models.AttributeResource, Min: floatPtr(-1)},
		})

		var verrs models.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("Enum needs at least two options", func(t *testing.T) {
		f := newAuthoringFixture()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(f.gamebook, nil).Once()

		_, err := f.svc.ReplaceAttributeSchema(ctx, "cave-of-shadows", []models.AttributeDefinition{
			{Key: "class", Type: models.AttributeEnum, EnumOptions: "knight"},
		})

		var verrs models.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("Unknown gamebook", func(t *testing.T) {
		f := newAuthoringFixture()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "missing").
			Return(nil, models.ErrNotFound).Once()

		_, err := f.svc.ReplaceAttributeSchema(ctx, "missing", nil)
		assert.ErrorIs(t, err, models.ErrGamebookNotFound)
	})
}
