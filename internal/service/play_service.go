package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamebook-hub/internal/flags"
	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
)

// PlayService — игровой цикл: вход в книгу, переход по выбору, перезапуск.
// Прохождение принадлежит паре (игрок, книга); playerID приходит из
// identity-слоя и трактуется как непрозрачный ключ.
type PlayService interface {
	Play(ctx context.Context, playerID uuid.UUID, slug string) (*PlayView, error)
	Choose(ctx context.Context, playerID uuid.UUID, slug string, choiceID uuid.UUID) (*ChooseResult, error)
	Restart(ctx context.Context, playerID uuid.UUID, slug string) (*PlayView, error)
}

type playServiceImpl struct {
	db           repository.DBTX
	graphs       *GraphProvider
	playthroughs repository.PlaythroughRepository
	txManager    repository.TxManager
	logger       *zap.Logger
}

// NewPlayService создает игровой сервис.
func NewPlayService(
	db repository.DBTX,
	graphs *GraphProvider,
	playthroughs repository.PlaythroughRepository,
	txManager repository.TxManager,
	logger *zap.Logger,
) PlayService {
	return &playServiceImpl{
		db:           db,
		graphs:       graphs,
		playthroughs: playthroughs,
		txManager:    txManager,
		logger:       logger.Named("PlayService"),
	}
}

// Play — вход или возобновление. Прохождение создается лениво при первом
// входе, в узле "start" с пустыми флагами. Если сохраненный currentNodeKey
// исчез из графа (автор удалил узел), возвращается ErrCurrentNodeMissing:
// автосброса нет, игрок восстанавливается через restart.
func (s *playServiceImpl) Play(ctx context.Context, playerID uuid.UUID, slug string) (*PlayView, error) {
	log := s.logger.With(zap.Stringer("playerID", playerID), zap.String("slug", slug))

	graph, err := s.graphs.GetPublishedGraph(ctx, slug)
	if err != nil {
		return nil, err
	}

	pt, err := s.playthroughs.GetByPlayerAndGamebook(ctx, s.db, playerID, graph.Gamebook.ID)
	if errors.Is(err, models.ErrNotFound) {
		pt = models.NewPlaythrough(playerID, graph.Gamebook.ID)
		createErr := s.playthroughs.Create(ctx, s.db, pt)
		if errors.Is(createErr, models.ErrAlreadyExists) {
			// Параллельный первый вход уже создал запись — перечитываем.
			pt, err = s.playthroughs.GetByPlayerAndGamebook(ctx, s.db, playerID, graph.Gamebook.ID)
			if err != nil {
				return nil, err
			}
		} else if createErr != nil {
			return nil, createErr
		} else {
			log.Info("Playthrough created", zap.Stringer("gamebookID", graph.Gamebook.ID))
		}
	} else if err != nil {
		return nil, err
	}

	current, ok := graph.FindNode(pt.CurrentNodeKey)
	if !ok {
		log.Warn("Stored current node no longer exists in graph", zap.String("currentNodeKey", pt.CurrentNodeKey))
		return nil, models.ErrCurrentNodeMissing
	}

	return buildPlayView(graph, current, pt), nil
}

// Choose валидирует выбор против текущего узла и, если требование выполнено,
// вливает sets во флаги и переводит прохождение на целевой узел. Невыполненное
// требование — мягкий отказ: состояние не меняется, ошибки нет. Висячая
// ссылка toNodeKey — жесткая ошибка.
func (s *playServiceImpl) Choose(ctx context.Context, playerID uuid.UUID, slug string, choiceID uuid.UUID) (*ChooseResult, error) {
	log := s.logger.With(
		zap.Stringer("playerID", playerID),
		zap.String("slug", slug),
		zap.Stringer("choiceID", choiceID),
	)

	graph, err := s.graphs.GetPublishedGraph(ctx, slug)
	if err != nil {
		return nil, err
	}

	var result *ChooseResult
	err = s.txManager.WithTransaction(ctx, func(q repository.DBTX) error {
		pt, err := s.playthroughs.GetForUpdate(ctx, q, playerID, graph.Gamebook.ID)
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrPlaythroughNotFound
		} else if err != nil {
			return err
		}

		current, ok := graph.FindNode(pt.CurrentNodeKey)
		if !ok {
			return models.ErrCurrentNodeMissing
		}

		choice, ok := findChoice(current, choiceID)
		if !ok {
			return models.ErrChoiceNotFound
		}

		playerFlags := flags.Parse(string(pt.Flags))
		if !flags.Satisfies(graph.Attributes, playerFlags, choice.Requires) {
			log.Debug("Choice requirement not met, staying on current node",
				zap.String("nodeKey", current.Key))
			result = &ChooseResult{View: buildPlayView(graph, current, pt), Applied: false}
			return nil
		}

		target, ok := graph.FindNode(choice.ToNodeKey)
		if !ok {
			log.Error("Choice references nonexistent target node",
				zap.String("toNodeKey", choice.ToNodeKey))
			return models.ErrDanglingChoiceTarget
		}

		pt.Flags = flags.ApplyFlags(pt.Flags, choice.Sets)
		pt.CurrentNodeKey = target.Key
		if target.IsEnding {
			pt.IsFinished = true
		}

		if err := s.playthroughs.Update(ctx, q, pt); err != nil {
			return err
		}

		result = &ChooseResult{
			View:          buildPlayView(graph, target, pt),
			Applied:       true,
			EndingReached: target.IsEnding,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Applied {
		log.Info("Choice applied",
			zap.String("toNodeKey", result.View.Node.Key),
			zap.Bool("endingReached", result.EndingReached))
	}
	return result, nil
}

// Restart безусловно возвращает прохождение в начальное состояние: узел
// "start", пустые флаги, isFinished=false. Identity записи сохраняется;
// отсутствующее прохождение создается.
func (s *playServiceImpl) Restart(ctx context.Context, playerID uuid.UUID, slug string) (*PlayView, error) {
	log := s.logger.With(zap.Stringer("playerID", playerID), zap.String("slug", slug))

	graph, err := s.graphs.GetPublishedGraph(ctx, slug)
	if err != nil {
		return nil, err
	}

	var pt *models.Playthrough
	err = s.txManager.WithTransaction(ctx, func(q repository.DBTX) error {
		existing, err := s.playthroughs.GetForUpdate(ctx, q, playerID, graph.Gamebook.ID)
		if errors.Is(err, models.ErrNotFound) {
			pt = models.NewPlaythrough(playerID, graph.Gamebook.ID)
			return s.playthroughs.Create(ctx, q, pt)
		} else if err != nil {
			return err
		}
		existing.Reset()
		pt = existing
		return s.playthroughs.Update(ctx, q, pt)
	})
	if err != nil {
		return nil, err
	}
	log.Info("Playthrough restarted", zap.Stringer("gamebookID", graph.Gamebook.ID))

	start, ok := graph.FindNode(models.StartNodeKey)
	if !ok {
		return nil, models.ErrCurrentNodeMissing
	}
	return buildPlayView(graph, start, pt), nil
}

func findChoice(node *models.Node, choiceID uuid.UUID) (*models.Choice, bool) {
	for i := range node.Choices {
		if node.Choices[i].ID == choiceID {
			return &node.Choices[i], true
		}
	}
	return nil, false
}
