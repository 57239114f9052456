package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound         = errors.New("resource not found") // General not found
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrGamebookNotFound = errors.New("gamebook not found or not published")
	ErrNodeNotFound     = errors.New("node not found in gamebook graph")
	ErrChoiceNotFound   = errors.New("choice does not belong to the current node")

	// Progression Errors
	// ErrCurrentNodeMissing — сохраненный currentNodeKey больше не существует в графе
	// (например, автор удалил узел). Автосброса нет, клиент восстанавливается через restart.
	ErrCurrentNodeMissing   = errors.New("current node no longer exists in gamebook graph")
	ErrPlaythroughNotFound  = errors.New("playthrough not found")
	ErrDanglingChoiceTarget = errors.New("choice target node does not exist")

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// General Request/Server Errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
)

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Error string `json:"error"`
}
