package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Playthrough хранит прогресс одного игрока в одной книге.
// Пара (PlayerID, GamebookID) уникальна; запись создается лениво при первом
// входе в игру и не удаляется обычным игровым процессом.
type Playthrough struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	PlayerID       uuid.UUID       `db:"player_id" json:"playerId"`
	GamebookID     uuid.UUID       `db:"gamebook_id" json:"gamebookId"`
	CurrentNodeKey string          `db:"current_node_key" json:"currentNodeKey"`
	Flags          json.RawMessage `db:"flags" json:"flags"`
	IsFinished     bool            `db:"is_finished" json:"isFinished"`
	StartedAt      time.Time       `db:"started_at" json:"startedAt"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updatedAt"`
}

// EmptyFlags — корректный пустой документ флагов, записываемый при создании
// и сбросе прохождения.
var EmptyFlags = json.RawMessage("{}")

// NewPlaythrough создает прохождение в начальном состоянии.
func NewPlaythrough(playerID, gamebookID uuid.UUID) *Playthrough {
	now := time.Now().UTC()
	return &Playthrough{
		ID:             uuid.New(),
		PlayerID:       playerID,
		GamebookID:     gamebookID,
		CurrentNodeKey: StartNodeKey,
		Flags:          EmptyFlags,
		IsFinished:     false,
		StartedAt:      now,
		UpdatedAt:      now,
	}
}

// Reset возвращает прохождение к начальному узлу, очищая флаги и признак
// завершения. Identity записи сохраняется.
func (p *Playthrough) Reset() {
	p.CurrentNodeKey = StartNodeKey
	p.Flags = EmptyFlags
	p.IsFinished = false
	p.UpdatedAt = time.Now().UTC()
}
