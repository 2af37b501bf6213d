package domain

import "errors"

var (
	// ErrInvalidResponse — страница объекта не прошла проверку до разбора
	// (не 200, пустое тело, не HTML).
	ErrInvalidResponse = errors.New("invalid property page response")

	// ErrInsufficientData — разбор прошёл, но ни цены, ни адреса нет.
	ErrInsufficientData = errors.New("insufficient property data")
)
