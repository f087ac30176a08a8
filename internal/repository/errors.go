package repository

import "errors"

var (
	// ErrInvalidData в кеше лежит запись, которую не удалось разобрать
	ErrInvalidData = errors.New("invalid data")
)
