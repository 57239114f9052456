package models

import (
	"fmt"
	"strings"
)

// GamebookImport — внешний документ, описывающий граф книги целиком.
// Поля requires/sets принимаются грамматикой требований как есть.
type GamebookImport struct {
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	CoverURL    string       `json:"coverUrl"`
	IsPublished bool         `json:"isPublished"`
	Nodes       []NodeImport `json:"nodes"`
}

type NodeImport struct {
	Key      string         `json:"key"`
	Text     string         `json:"text"`
	IsEnding bool           `json:"isEnding"`
	Choices  []ChoiceImport `json:"choices"`
}

type ChoiceImport struct {
	Label     string `json:"label"`
	ToNodeKey string `json:"toNodeKey"`
	Requires  string `json:"requires"`
	Sets      string `json:"sets"`
}

// FieldError — ошибка валидации, привязанная к конкретному полю документа.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors — список полевых ошибок; при непустом списке ничего не
// сохраняется.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
