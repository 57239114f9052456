package flags

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Операторы свободного синтаксиса в порядке приоритета. Порядок важен:
// ">=" должен проверяться раньше ">" и "=".
var operators = []string{">=", "<=", "=", ":", ">", "<"}

// Parse — комбинатор "строгий разбор, иначе свободный". Сначала вход
// разбирается как JSON-объект; если там есть хотя бы одна запись, она
// используется как есть. Иначе вход трактуется как список выражений
// свободного синтаксиса. Пустой или полностью неразбираемый вход дает
// пустое отображение — наружу ошибки не выходят никогда.
func Parse(input string) Map {
	if parsed, ok := ParseDocument(input); ok {
		return parsed
	}
	return ParseExpressions(input)
}

// ParseDocument разбирает вход как строгий JSON-объект ключ → значение.
// Возвращает ok=false, если вход не объект или объект пуст.
func ParseDocument(input string) (Map, bool) {
	if strings.TrimSpace(input) == "" {
		return Map{}, false
	}
	var raw map[string]Value
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return Map{}, false
	}
	result := make(Map, len(raw))
	for k, v := range raw {
		result.Set(k, v)
	}
	return result, len(result) > 0
}

// ParseExpressions разбирает свободный синтаксис: сегменты через ';', ',' или
// перевод строки; в каждом сегменте ключ и значение делятся первым найденным
// оператором; сегмент без оператора — голый флаг со значением true.
// Поздние дубликаты ключей перекрывают ранние.
func ParseExpressions(input string) Map {
	result := Map{}
	segments := strings.FieldsFunc(input, func(r rune) bool {
		return r == ';' || r == ',' || r == '\r' || r == '\n'
	})
	for _, raw := range segments {
		segment := strings.TrimSpace(raw)
		if segment == "" {
			continue
		}
		key, value := splitRequirement(segment)
		key = NormalizeKey(key)
		if key == "" {
			continue
		}
		result.Set(key, coerceValue(value))
	}
	return result
}

// splitRequirement делит выражение по первому вхождению оператора,
// перебирая операторы в порядке приоритета.
func splitRequirement(expression string) (string, string) {
	for _, op := range operators {
		if idx := strings.Index(expression, op); idx >= 0 {
			key := strings.TrimSpace(expression[:idx])
			value := strings.TrimSpace(expression[idx+len(op):])
			return key, value
		}
	}
	return strings.TrimSpace(expression), ""
}

// coerceValue приводит сырое текстовое значение: пусто → true, затем число,
// затем bool, иначе строка.
func coerceValue(text string) Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return BoolValue(true)
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberValue(n)
	}
	if strings.EqualFold(trimmed, "true") {
		return BoolValue(true)
	}
	if strings.EqualFold(trimmed, "false") {
		return BoolValue(false)
	}
	return TextValue(trimmed)
}

// NormalizeKey снимает с ключа обрамляющие пробелы, кавычки и фигурные скобки.
func NormalizeKey(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.Trim(trimmed, `{}"`)
	return strings.TrimSpace(trimmed)
}
