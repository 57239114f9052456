package flags

import (
	"encoding/json"
	"strings"
)

// ApplyFlags вливает "sets"-выражение выбора в текущие флаги прохождения.
// Слияние правостороннее: каждый ключ из sets перезаписывает одноименный ключ
// текущих флагов, остальные ключи не трогаются. Повторное применение того же
// sets идемпотентно. Ошибок наружу нет: неразбираемый вход деградирует до
// пустого отображения.
func ApplyFlags(current json.RawMessage, sets string) json.RawMessage {
	if strings.TrimSpace(sets) == "" {
		return current
	}

	base, ok := ParseDocument(string(current))
	if !ok {
		base = Map{}
	}
	for key, value := range Parse(sets) {
		base[key] = value
	}

	merged, err := json.Marshal(base)
	if err != nil {
		return current
	}
	return merged
}
