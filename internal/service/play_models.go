package service

import (
	"time"

	"github.com/google/uuid"

	"gamebook-hub/internal/flags"
	"gamebook-hub/internal/models"
)

// NodeView — текущий узел в ответе игрового цикла.
type NodeView struct {
	Key      string `json:"key"`
	Text     string `json:"text"`
	IsEnding bool   `json:"isEnding"`
}

// ChoiceView — доступный переход. Available показывает, выполнено ли
// требование выбора при текущих флагах.
type ChoiceView struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Available bool      `json:"available"`
}

// AttributeView — видимый игроку атрибут с действующим значением.
type AttributeView struct {
	Key   string               `json:"key"`
	Label string               `json:"label"`
	Type  models.AttributeType `json:"type"`
	Value string               `json:"value,omitempty"`
}

// PlayView — состояние прохождения, возвращаемое play/choose/restart.
type PlayView struct {
	Slug       string          `json:"slug"`
	Title      string          `json:"title"`
	Node       NodeView        `json:"node"`
	Choices    []ChoiceView    `json:"choices"`
	Attributes []AttributeView `json:"attributes,omitempty"`
	IsFinished bool            `json:"isFinished"`
	StartedAt  time.Time       `json:"startedAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ChooseResult — исход перехода. При невыполненном требовании Applied=false,
// а View описывает прежний узел.
type ChooseResult struct {
	View          *PlayView `json:"view"`
	Applied       bool      `json:"applied"`
	EndingReached bool      `json:"endingReached"`
}

// buildPlayView собирает представление узла: для каждого исходящего выбора
// заранее вычисляется доступность, видимые атрибуты получают действующие
// значения (из флагов, иначе default).
func buildPlayView(graph *models.GamebookGraph, node *models.Node, pt *models.Playthrough) *PlayView {
	playerFlags := flags.Parse(string(pt.Flags))

	choices := make([]ChoiceView, 0, len(node.Choices))
	for _, choice := range node.Choices {
		choices = append(choices, ChoiceView{
			ID:        choice.ID,
			Label:     choice.Label,
			Available: flags.Satisfies(graph.Attributes, playerFlags, choice.Requires),
		})
	}

	var attrs []AttributeView
	for i := range graph.Attributes {
		def := &graph.Attributes[i]
		if !def.Visible {
			continue
		}
		view := AttributeView{Key: def.Key, Label: def.Label, Type: def.Type}
		if stored, ok := playerFlags.Get(def.Key); ok {
			view.Value = stored.String()
		} else if current, ok := flags.CurrentAttributeValue(def, playerFlags); ok {
			view.Value = flags.NumberValue(current).String()
		}
		attrs = append(attrs, view)
	}

	return &PlayView{
		Slug:       graph.Gamebook.Slug,
		Title:      graph.Gamebook.Title,
		Node:       NodeView{Key: node.Key, Text: node.Text, IsEnding: node.IsEnding},
		Choices:    choices,
		Attributes: attrs,
		IsFinished: pt.IsFinished,
		StartedAt:  pt.StartedAt,
		UpdatedAt:  pt.UpdatedAt,
	}
}
