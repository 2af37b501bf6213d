package rightmovefetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"rightmove-parser-service/internal/contextkeys"
	"rightmove-parser-service/internal/core/domain"
	"rightmove-parser-service/internal/core/port"
)

// FetchPropertyDetails загружает страницу объекта и разбирает её в запись.
// Все ошибки касаются только этого объекта и не должны останавливать обход.
func (a *RightmoveFetcherAdapter) FetchPropertyDetails(ctx context.Context, link domain.PropertyLink) (record *domain.PropertyRecord, err error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "RightmoveFetcherAdapter(FetchDetails)"})

	collector := a.newRequestCollector(fetchLogger)

	resp, fetchErr := a.fetchPage(ctx, collector, link.URL, fetchLogger)
	if fetchErr != nil {
		fetchLogger.Error("Failed to fetch property page", fetchErr, port.Fields{"url": link.URL})
		return nil, fmt.Errorf("rightmove adapter: failed to fetch %s: %w", link.URL, fetchErr)
	}

	if gateErr := validateResponse(resp.StatusCode, resp.ContentType, resp.Body); gateErr != nil {
		fetchLogger.Warn("Invalid property page response", port.Fields{
			"url":    link.URL,
			"status": resp.StatusCode,
			"reason": gateErr.Error(),
		})
		return nil, fmt.Errorf("rightmove adapter: %s: %w", link.URL, domain.ErrInvalidResponse)
	}

	// Паника при разборе не должна ронять обход: страница считается
	// непригодной, идём дальше.
	defer func() {
		if r := recover(); r != nil {
			fetchLogger.Error("Panic during property page extraction", fmt.Errorf("%v", r), port.Fields{"url": link.URL})
			record = nil
			err = fmt.Errorf("rightmove adapter: extraction panic on %s: %w", link.URL, domain.ErrInsufficientData)
		}
	}()

	parsed, mapErr := toPropertyRecord(resp.Body, link)
	if mapErr != nil {
		fetchLogger.Warn("Failed to map property page to record", port.Fields{
			"url":   link.URL,
			"error": mapErr.Error(),
		})
		return nil, fmt.Errorf("rightmove adapter: %s: %w", link.URL, domain.ErrInsufficientData)
	}

	if !parsed.HasMinimumData() {
		fetchLogger.Warn("Insufficient data on property page", port.Fields{"url": link.URL})
		return nil, fmt.Errorf("rightmove adapter: %s: %w", link.URL, domain.ErrInsufficientData)
	}

	return parsed, nil
}

// validateResponse — проверка ответа до разбора: успешный статус и
// непустое HTML-тело с корневым маркером. Отказ здесь дешевле, чем
// разбор мусорной страницы.
func validateResponse(statusCode int, contentType string, body []byte) error {
	if statusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", statusCode)
	}
	if len(body) == 0 {
		return fmt.Errorf("empty response body")
	}
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return fmt.Errorf("unexpected content type %q", contentType)
	}
	if !strings.Contains(strings.ToLower(string(body)), "<html") {
		return fmt.Errorf("no html root marker in body")
	}
	return nil
}
