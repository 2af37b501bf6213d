package port

import (
	"context"

	"rightmove-parser-service/internal/core/domain"
)

// RightmoveFetcherPort объединяет все операции, которые можно выполнить
// с сайтом Rightmove.
type RightmoveFetcherPort interface {
	// FirstSearchPageURL строит URL первой страницы выдачи (index=0).
	FirstSearchPageURL() (string, error)

	// FetchSearchPage загружает страницу выдачи, извлекает канонические
	// ссылки на объекты и URL следующей страницы (пустая строка — конец).
	FetchSearchPage(ctx context.Context, pageURL string, pageNumber int) (*domain.SearchResultsPage, error)

	// FetchPropertyDetails загружает страницу объекта и разбирает её в
	// запись. Возвращает domain.ErrInvalidResponse либо
	// domain.ErrInsufficientData, если страница непригодна.
	FetchPropertyDetails(ctx context.Context, link domain.PropertyLink) (*domain.PropertyRecord, error)
}
