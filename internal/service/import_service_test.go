package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository/mocks"
	"gamebook-hub/internal/service"
)

type importFixture struct {
	gamebooks *mocks.MockGamebookRepository
	nodes     *mocks.MockNodeRepository
	choices   *mocks.MockChoiceRepository
	cache     *mocks.MockGraphCache
	txManager *mocks.MockTxManager
	svc       service.ImportService
}

func newImportFixture() *importFixture {
	f := &importFixture{
		gamebooks: new(mocks.MockGamebookRepository),
		nodes:     new(mocks.MockNodeRepository),
		choices:   new(mocks.MockChoiceRepository),
		cache:     new(mocks.MockGraphCache),
		txManager: new(mocks.MockTxManager),
	}
	logger := zap.NewNop()
	graphs := service.NewGraphProvider(nil, f.gamebooks, f.nodes, f.choices, f.cache, logger)
	f.svc = service.NewImportService(f.gamebooks, f.nodes, f.choices, graphs, f.txManager, logger)
	return f
}

func validImportDoc() *models.GamebookImport {
	return &models.GamebookImport{
		Title: "Пещера теней",
		Slug:  "Cave of Shadows",
		Nodes: []models.NodeImport{
			{
				Key: "start", Text: "Вы у входа.",
				Choices: []models.ChoiceImport{
					{Label: "Войти", ToNodeKey: "cave", Sets: "torch=true"},
				},
			},
			{Key: "cave", Text: "Темно.", IsEnding: true},
		},
	}
}

func TestImportService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("Validation happens before any write", func(t *testing.T) {
		f := newImportFixture()

		_, err := f.svc.Import(ctx, &models.GamebookImport{Title: "x"}, false)

		var verrs models.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2) // нет slug и нет стартового узла
		f.txManager.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})

	t.Run("Start node key check is case-insensitive", func(t *testing.T) {
		f := newImportFixture()
		doc := validImportDoc()
		doc.Nodes[0].Key = "START"

		f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(nil, models.ErrNotFound).Once()
		f.gamebooks.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.nodes.On("CreateBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.choices.On("CreateBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.cache.On("Invalidate", mock.Anything, "cave-of-shadows").Return(nil).Once()

		_, err := f.svc.Import(ctx, doc, false)
		assert.NoError(t, err)
	})

	t.Run("New gamebook: slug is slugified, nodes then choices", func(t *testing.T) {
		f := newImportFixture()
		doc := validImportDoc()

		f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(nil, models.ErrNotFound).Once()
		f.gamebooks.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(gb *models.Gamebook) bool {
			return gb.Slug == "cave-of-shadows" && gb.Title == "Пещера теней"
		})).Return(nil).Once()
		f.nodes.On("CreateBatch", mock.Anything, mock.Anything, mock.MatchedBy(func(nodes []*models.Node) bool {
			return len(nodes) == 2 && nodes[0].Key == "start" && nodes[1].Key == "cave"
		})).Return(nil).Once()
		f.choices.On("CreateBatch", mock.Anything, mock.Anything, mock.MatchedBy(func(choices []*models.Choice) bool {
			return len(choices) == 1 && choices[0].ToNodeKey == "cave" && choices[0].Sets == "torch=true"
		})).Return(nil).Once()
		f.cache.On("Invalidate", mock.Anything, "cave-of-shadows").Return(nil).Once()

		gb, err := f.svc.Import(ctx, doc, false)

		assert.NoError(t, err)
		assert.Equal(t, "cave-of-shadows", gb.Slug)
		f.gamebooks.AssertExpectations(t)
		f.nodes.AssertExpectations(t)
		f.choices.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	t.Run("Choices keep document order within a node", func(t *testing.T) {
		f := newImportFixture()
		doc := validImportDoc()
		doc.Nodes[0].Choices = []models.ChoiceImport{
			{Label: "Войти", ToNodeKey: "cave"},
			{Label: "Осмотреться", ToNodeKey: "start"},
			{Label: "Уйти", ToNodeKey: "cave"},
		}

		f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(nil, models.ErrNotFound).Once()
		f.gamebooks.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.nodes.On("CreateBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.choices.On("CreateBatch", mock.Anything, mock.Anything, mock.MatchedBy(func(choices []*models.Choice) bool {
			if len(choices) != 3 {
				return false
			}
			for i, c := range choices {
				if c.Order != i {
					return false
				}
			}
			return choices[1].Label == "Осмотреться"
		})).Return(nil).Once()
		f.cache.On("Invalidate", mock.Anything, "cave-of-shadows").Return(nil).Once()

		_, err := f.svc.Import(ctx, doc, false)
		assert.NoError(t, err)
		f.choices.AssertExpectations(t)
	})

	t.Run("Overwrite deletes choices before nodes", func(t *testing.T) {
		f := newImportFixture()
		doc := validImportDoc()
		existing := &models.Gamebook{ID: [16]byte{1}, Slug: "cave-of-shadows", Title: "Старая версия"}

		var order []string
		f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(existing, nil).Once()
		f.gamebooks.On("UpdateMeta", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.choices.On("DeleteByGamebook", mock.Anything, mock.Anything, existing.ID).
			Run(func(args mock.Arguments) { order = append(order, "choices") }).Return(nil).Once()
		f.nodes.On("DeleteByGamebook", mock.Anything, mock.Anything, existing.ID).
			Run(func(args mock.Arguments) { order = append(order, "nodes") }).Return(nil).Once()
		f.nodes.On("CreateBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.choices.On("CreateBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.cache.On("Invalidate", mock.Anything, "cave-of-shadows").Return(nil).Once()

		gb, err := f.svc.Import(ctx, doc, true)

		assert.NoError(t, err)
		assert.Equal(t, "Пещера теней", gb.Title)
		assert.Equal(t, []string{"choices", "nodes"}, order)
	})

	t.Run("Failed insert aborts without cache invalidation", func(t *testing.T) {
		f := newImportFixture()
		doc := validImportDoc()
		boom := errors.New("insert failed")

		f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(nil, models.ErrNotFound).Once()
		f.gamebooks.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.nodes.On("CreateBatch", mock.Anything, mock.Anything, mock.Anything).Return(boom).Once()

		_, err := f.svc.Import(ctx, doc, false)

		assert.ErrorIs(t, err, boom)
		f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("Choice owners are matched case-insensitively", func(t *testing.T) {
		f := newImportFixture()
		doc := validImportDoc()
		doc.Nodes[0].Key = "Start"
		doc.Nodes[0].Choices[0].ToNodeKey = "CAVE"

		f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		f.gamebooks.On("GetBySlug", mock.Anything, mock.Anything, "cave-of-shadows").
			Return(nil, models.ErrNotFound).Once()
		f.gamebooks.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.nodes.On("CreateBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.choices.On("CreateBatch", mock.Anything, mock.Anything, mock.MatchedBy(func(choices []*models.Choice) bool {
			// Ключ владельца сопоставлен, регистр toNodeKey сохранен как есть.
			return len(choices) == 1 && strings.EqualFold(choices[0].ToNodeKey, "cave")
		})).Return(nil).Once()
		f.cache.On("Invalidate", mock.Anything, "cave-of-shadows").Return(nil).Once()

		_, err := f.svc.Import(ctx, doc, false)
		assert.NoError(t, err)
		f.choices.AssertExpectations(t)
	})
}
