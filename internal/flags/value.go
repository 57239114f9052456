// Package flags реализует грамматику требований и хранилище флагов прохождения:
// разбор структурного и свободного синтаксиса, слияние "sets"-выражений и
// вычисление требований с учетом схемы атрибутов.
package flags

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind — дискриминатор варианта значения флага.
type Kind int

const (
	KindBool Kind = iota
	KindNumber
	KindText
)

// Value — типизированное значение флага. Флаги гетерогенны (bool/число/строка),
// поэтому вместо interface{} используется явный вариант: ветки сравнения в
// evaluator становятся исчерпывающими.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Text   string
}

func BoolValue(v bool) Value      { return Value{Kind: KindBool, Bool: v} }
func NumberValue(v float64) Value { return Value{Kind: KindNumber, Number: v} }
func TextValue(v string) Value    { return Value{Kind: KindText, Text: v} }

// AsNumber пытается привести значение к числу: число — как есть, bool — 1/0,
// строка — через strconv.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Number, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
}

// String возвращает каноническое текстовое представление: bool — "true"/"false",
// число — без хвостовых нулей.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return v.Text
	}
}

// Equal сравнивает значения: если оба приводимы к числу — численно, иначе как
// строки без учета регистра.
func (v Value) Equal(other Value) bool {
	if a, ok := v.AsNumber(); ok {
		if b, ok := other.AsNumber(); ok {
			return a == b
		}
	}
	return strings.EqualFold(v.String(), other.String())
}

// MarshalJSON сериализует значение в его естественный JSON-тип.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindNumber:
		return json.Marshal(v.Number)
	default:
		return json.Marshal(v.Text)
	}
}

// UnmarshalJSON принимает bool, число или строку; вложенные объекты и массивы
// сохраняются как текст в сыром виде.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "true":
		*v = BoolValue(true)
		return nil
	case trimmed == "false":
		*v = BoolValue(false)
		return nil
	case trimmed == "null":
		*v = TextValue("")
		return nil
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		*v = NumberValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextValue(s)
		return nil
	}
	*v = TextValue(trimmed)
	return nil
}

// Map — нормализованное отображение ключ → значение. Ключи хранятся в нижнем
// регистре, сравнение нечувствительно к регистру.
type Map map[string]Value

// Get возвращает значение по ключу без учета регистра.
func (m Map) Get(key string) (Value, bool) {
	v, ok := m[strings.ToLower(key)]
	return v, ok
}

// Set записывает значение, канонизируя ключ.
func (m Map) Set(key string, v Value) {
	m[strings.ToLower(key)] = v
}
