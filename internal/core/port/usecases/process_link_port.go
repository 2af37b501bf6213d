package usecases_port

import (
	"context"

	"rightmove-parser-service/internal/core/domain"
)

// ProcessLinkPort — обработка одной ссылки на объект: загрузка деталей
// и сохранение результата.
type ProcessLinkPort interface {
	Execute(ctx context.Context, link domain.PropertyLink) error
}
