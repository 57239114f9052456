package models

import (
	"strings"

	"github.com/google/uuid"
)

// AttributeType — тип атрибута персонажа, объявленного автором книги.
type AttributeType string

const (
	AttributeInteger  AttributeType = "integer"
	AttributeDecimal  AttributeType = "decimal"
	AttributeBoolean  AttributeType = "boolean"
	AttributeText     AttributeType = "text"
	AttributeEnum     AttributeType = "enum"
	AttributeResource AttributeType = "resource"
)

// IsNumeric сообщает, интерпретируется ли значение атрибута как число.
func (t AttributeType) IsNumeric() bool {
	return t == AttributeInteger || t == AttributeDecimal || t == AttributeResource
}

// AttributeDefinition — объявление атрибута в схеме книги. Key уникален внутри
// схемы (в slug-нормализованном виде), Min/Max/Default применимы к числовым типам.
type AttributeDefinition struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	GamebookID  uuid.UUID     `db:"gamebook_id" json:"gamebookId"`
	Key         string        `db:"key" json:"key"`
	Label       string        `db:"label" json:"label"`
	Type        AttributeType `db:"type" json:"type"`
	Min         *float64      `db:"min" json:"min,omitempty"`
	Max         *float64      `db:"max" json:"max,omitempty"`
	Default     *float64      `db:"default_value" json:"default,omitempty"`
	Visible     bool          `db:"visible" json:"visible"`
	Order       int           `db:"display_order" json:"order"`
	EnumOptions string        `db:"enum_options" json:"enumOptions,omitempty"`
}

// Options разбирает список вариантов Enum-атрибута (через запятую).
func (a *AttributeDefinition) Options() []string {
	if strings.TrimSpace(a.EnumOptions) == "" {
		return nil
	}
	parts := strings.Split(a.EnumOptions, ",")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	return options
}
