package usecase

import (
	"context"
	"errors"
	"fmt"

	"rightmove-parser-service/internal/contextkeys"
	"rightmove-parser-service/internal/core/domain"
	"rightmove-parser-service/internal/core/port"
)

// ProcessLinkUseCase инкапсулирует логику обработки одной ссылки:
// загрузка и разбор страницы объекта, затем сохранение записи.
type ProcessLinkUseCase struct {
	detailsFetcher port.RightmoveFetcherPort
	storage        port.PropertyStoragePort
}

// NewProcessLinkUseCase создает новый экземпляр use case.
func NewProcessLinkUseCase(
	fetcher port.RightmoveFetcherPort,
	storage port.PropertyStoragePort,
) *ProcessLinkUseCase {
	return &ProcessLinkUseCase{
		detailsFetcher: fetcher,
		storage:        storage,
	}
}

// Execute выполняет основную логику use case. Любая ошибка касается
// только этой ссылки; вызывающий цикл решает лишь, считать запись или нет.
func (uc *ProcessLinkUseCase) Execute(ctx context.Context, link domain.PropertyLink) error {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{"use_case": "ProcessLink"})

	ucLogger.Debug("Processing property link", port.Fields{"url": link.URL})

	record, fetchErr := uc.detailsFetcher.FetchPropertyDetails(ctx, link)
	if fetchErr != nil {
		switch {
		case errors.Is(fetchErr, domain.ErrInsufficientData):
			ucLogger.Warn("Insufficient data, skipping property", port.Fields{"url": link.URL})
		case errors.Is(fetchErr, domain.ErrInvalidResponse):
			ucLogger.Warn("Invalid response, skipping property", port.Fields{"url": link.URL})
		default:
			ucLogger.Error("Failed to fetch property details", fetchErr, port.Fields{"url": link.URL})
		}
		return fmt.Errorf("failed to fetch/parse details for %s: %w", link.URL, fetchErr)
	}

	if saveErr := uc.storage.Save(ctx, *record); saveErr != nil {
		ucLogger.Error("Failed to save property record", saveErr, port.Fields{"url": link.URL})
		return fmt.Errorf("failed to save record for %s: %w", link.URL, saveErr)
	}

	ucLogger.Debug("Successfully saved property record", port.Fields{"url": link.URL})
	return nil
}
