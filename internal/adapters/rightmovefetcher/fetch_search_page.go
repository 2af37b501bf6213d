package rightmovefetcher

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"rightmove-parser-service/internal/contextkeys"
	"rightmove-parser-service/internal/core/domain"
	"rightmove-parser-service/internal/core/port"
)

// FetchSearchPage загружает одну страницу выдачи, извлекает канонические
// ссылки на объекты и определяет URL следующей страницы.
func (a *RightmoveFetcherAdapter) FetchSearchPage(ctx context.Context, pageURL string, pageNumber int) (*domain.SearchResultsPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "RightmoveFetcherAdapter(FetchSearchPage)"})

	collector := a.newRequestCollector(fetchLogger)

	resp, err := a.fetchPage(ctx, collector, pageURL, fetchLogger)
	if err != nil {
		fetchLogger.Error("Failed to fetch search page", err, port.Fields{
			"url":  pageURL,
			"page": pageNumber,
		})
		return nil, fmt.Errorf("rightmove adapter: failed to fetch search page %d: %w", pageNumber, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		fetchLogger.Error("Failed to parse search page html", err, port.Fields{"url": pageURL})
		return nil, fmt.Errorf("rightmove adapter: failed to parse search page %d: %w", pageNumber, err)
	}

	links := extractPropertyLinks(doc, pageURL, pageNumber)
	nextPageURL := a.resolveNextPageURL(doc, pageURL, pageNumber)

	fetchLogger.Info("Finished fetching search page", port.Fields{
		"page":          pageNumber,
		"links_found":   len(links),
		"has_next_page": nextPageURL != "",
	})

	return &domain.SearchResultsPage{
		PageNumber:  pageNumber,
		Links:       links,
		NextPageURL: nextPageURL,
	}, nil
}
