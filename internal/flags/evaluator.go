package flags

import (
	"strings"

	"gamebook-hub/internal/models"
)

// Satisfies решает, удовлетворяет ли текущее состояние игрока требованию
// выбора. Функция чистая: ни флаги, ни схема не изменяются.
//
// Для каждого ключа требования:
//   - ключ, совпавший с key или label атрибута схемы, при числовом требуемом
//     значении проверяется как порог: текущее значение (из флагов, иначе
//     default атрибута) должно быть >= требуемого. Других сравнений для
//     атрибутов нет: операторы <=, >, < распознаются грамматикой, но
//     evaluator различает только "число → порог" и "не число → равенство";
//   - любой другой ключ проверяется на равенство со значением во флагах.
//
// Первый несработавший ключ делает все требование ложным. Пустое или
// неразбираемое требование истинно.
func Satisfies(attrs []models.AttributeDefinition, playerFlags Map, requires string) bool {
	if strings.TrimSpace(requires) == "" {
		return true
	}
	requirements := Parse(requires)
	if len(requirements) == 0 {
		return true
	}

	lookup := buildAttributeLookup(attrs)

	for key, required := range requirements {
		lookupKey := NormalizeKey(key)
		if lookupKey == "" {
			lookupKey = key
		}
		if def, ok := lookup[strings.ToLower(lookupKey)]; ok {
			if !meetsAttributeRequirement(def, required, playerFlags) {
				return false
			}
			continue
		}
		stored, ok := playerFlags.Get(lookupKey)
		if !ok || !stored.Equal(required) {
			return false
		}
	}
	return true
}

// CurrentAttributeValue возвращает действующее значение атрибута: числовое
// значение из флагов, иначе объявленный default. ok=false — значение не
// установлено.
func CurrentAttributeValue(def *models.AttributeDefinition, playerFlags Map) (float64, bool) {
	if stored, ok := playerFlags.Get(def.Key); ok {
		if n, ok := stored.AsNumber(); ok {
			return n, true
		}
	}
	if def.Default != nil {
		return *def.Default, true
	}
	return 0, false
}

// meetsAttributeRequirement — пороговая проверка для числового требования,
// иначе сравнение на равенство со значением во флагах по ключу атрибута.
func meetsAttributeRequirement(def *models.AttributeDefinition, required Value, playerFlags Map) bool {
	// Порогом считается число и числовая строка ("5" из JSON-документа).
	// Голый флаг ("brave") приводится к bool и порогом не считается.
	if required.Kind != KindBool {
		if threshold, ok := required.AsNumber(); ok {
			current, ok := CurrentAttributeValue(def, playerFlags)
			if !ok {
				return false
			}
			return current >= threshold
		}
	}

	stored, ok := playerFlags.Get(def.Key)
	if !ok {
		return false
	}
	return stored.Equal(required)
}

// buildAttributeLookup индексирует схему по key и label без учета регистра.
func buildAttributeLookup(attrs []models.AttributeDefinition) map[string]*models.AttributeDefinition {
	lookup := make(map[string]*models.AttributeDefinition, len(attrs)*2)
	for i := range attrs {
		def := &attrs[i]
		if key := strings.TrimSpace(def.Key); key != "" {
			lookup[strings.ToLower(key)] = def
		}
		if label := strings.TrimSpace(def.Label); label != "" {
			lookup[strings.ToLower(label)] = def
		}
	}
	return lookup
}
