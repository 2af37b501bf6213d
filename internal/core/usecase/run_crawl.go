package usecase

import (
	"context"
	"fmt"
	"time"

	"rightmove-parser-service/internal/contextkeys"
	"rightmove-parser-service/internal/core/domain"
	"rightmove-parser-service/internal/core/port"
	usecases_port "rightmove-parser-service/internal/core/port/usecases"
)

// RunCrawlUseCase — управляющий цикл обхода: страница выдачи -> ссылки ->
// обработка каждой ссылки -> переход на следующую страницу. Единственный
// поток управления, никакого параллелизма.
type RunCrawlUseCase struct {
	fetcher     port.RightmoveFetcherPort
	processLink usecases_port.ProcessLinkPort
	budget      int
	pageDelay   time.Duration // пауза перед каждой новой страницей выдачи
}

// NewRunCrawlUseCase создает новый экземпляр use case.
func NewRunCrawlUseCase(
	fetcher port.RightmoveFetcherPort,
	processLink usecases_port.ProcessLinkPort,
	budget int,
	pageDelay time.Duration,
) *RunCrawlUseCase {
	return &RunCrawlUseCase{
		fetcher:     fetcher,
		processLink: processLink,
		budget:      budget,
		pageDelay:   pageDelay,
	}
}

// Execute выполняет обход целиком и возвращает количество сохранённых
// записей. Гарантия: после достижения бюджета не выполняется ни одного
// запроса — ни по оставшимся ссылкам страницы, ни по следующим страницам.
func (uc *RunCrawlUseCase) Execute(ctx context.Context) (int, error) {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{"use_case": "RunCrawl"})

	state := domain.NewCrawlState(uc.budget)

	pageURL, err := uc.fetcher.FirstSearchPageURL()
	if err != nil {
		return 0, fmt.Errorf("run crawl: failed to build first search page URL: %w", err)
	}

	ucLogger.Info("Starting crawl", port.Fields{
		"start_url": pageURL,
		"budget":    uc.budget,
	})

	for {
		page, fetchErr := uc.fetcher.FetchSearchPage(ctx, pageURL, state.Page)
		if fetchErr != nil {
			// Ошибка страницы выдачи не фатальна для запуска: просто
			// считаем, что пагинация закончилась.
			ucLogger.Warn("Search page fetch failed, stopping pagination", port.Fields{
				"page":  state.Page,
				"error": fetchErr.Error(),
			})
			break
		}

		ucLogger.Info("Processing search page", port.Fields{
			"page":        state.Page,
			"links_found": len(page.Links),
		})

		budgetHit := false
		for _, link := range page.Links {
			if state.BudgetReached() {
				budgetHit = true
				break
			}

			if procErr := uc.processLink.Execute(ctx, link); procErr != nil {
				// Все ошибки одной ссылки уже залогированы ниже по стеку;
				// ссылка пропускается, обход продолжается.
				ucLogger.Debug("Property link skipped", port.Fields{
					"url":   link.URL,
					"error": procErr.Error(),
				})
				continue
			}

			state.RecordScraped()
			ucLogger.Info("Scraped property", port.Fields{
				"scraped": state.Scraped,
				"budget":  state.Budget,
			})
		}

		if budgetHit || state.BudgetReached() {
			ucLogger.Info("Reached target number of properties", port.Fields{"scraped": state.Scraped})
			break
		}

		if page.NextPageURL == "" {
			ucLogger.Info("No more pages available", port.Fields{"last_page": state.Page})
			break
		}

		// Пауза перед следующей страницей выдачи длиннее обычной
		// межзапросной: страницы выдачи сайт отдаёт неохотнее.
		select {
		case <-ctx.Done():
			return state.Scraped, ctx.Err()
		case <-time.After(uc.pageDelay):
		}

		state.AdvancePage()
		pageURL = page.NextPageURL
		ucLogger.Info("Moving to next search page", port.Fields{"page": state.Page})
	}

	ucLogger.Info("Crawl finished", port.Fields{
		"scraped":         state.Scraped,
		"pages_processed": state.Page,
	})
	return state.Scraped, nil
}
