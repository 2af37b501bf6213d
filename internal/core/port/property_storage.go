package port

import (
	"context"

	"rightmove-parser-service/internal/core/domain"
)

// PropertyStoragePort определяет контракт для сохранения обработанного
// объекта недвижимости в постоянное хранилище.
type PropertyStoragePort interface {
	Save(ctx context.Context, record domain.PropertyRecord) error
}
