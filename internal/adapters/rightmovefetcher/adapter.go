package rightmovefetcher

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gocolly/colly/v2"

	"rightmove-parser-service/internal/constants"
	"rightmove-parser-service/internal/core/domain"
	"rightmove-parser-service/internal/core/port"
)

// Config — сетевые настройки адаптера.
type Config struct {
	BaseSearchURL string
	UserAgent     string
	PropertyDelay time.Duration // минимальная пауза между запросами
	RandomDelay   time.Duration // случайная добавка к паузе
	RetryTimes    int           // повторы одного запроса после ошибки
}

// RightmoveFetcherAdapter отвечает за все взаимодействия с сайтом Rightmove.
type RightmoveFetcherAdapter struct {
	// родительский коллектор, который разделяет лимиты
	collector     *colly.Collector
	baseSearchURL string
	query         domain.SearchQuery
	retryTimes    int
}

// NewRightmoveFetcherAdapter - конструктор. Запрос query фиксируется на
// весь обход; меняется только смещение пагинации.
func NewRightmoveFetcherAdapter(cfg Config, query domain.SearchQuery) (*RightmoveFetcherAdapter, error) {
	if cfg.BaseSearchURL == "" {
		cfg.BaseSearchURL = constants.BaseSearchURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = constants.DefaultUserAgent
	}

	// родительский коллектор; AllowURLRevisit нужен для ретраев
	c := colly.NewCollector(
		colly.AllowedDomains(constants.AllowedDomain),
		colly.AllowURLRevisit(),
		colly.UserAgent(cfg.UserAgent),
	)

	// Эти правила наследуются всеми клонами коллектора: один запрос за
	// раз, фиксированная пауза плюс случайная добавка.
	err := c.Limit(&colly.LimitRule{
		DomainGlob:  constants.AllowedDomain,
		Parallelism: 1,
		Delay:       cfg.PropertyDelay,
		RandomDelay: cfg.RandomDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("RightmoveFetcherAdapter: failed to set limit rule: %w", err)
	}

	return &RightmoveFetcherAdapter{
		collector:     c,
		baseSearchURL: cfg.BaseSearchURL,
		query:         query,
		retryTimes:    cfg.RetryTimes,
	}, nil
}

// FirstSearchPageURL строит URL первой страницы выдачи.
func (a *RightmoveFetcherAdapter) FirstSearchPageURL() (string, error) {
	return a.buildSearchURL(a.query.WithIndex(0))
}

func (a *RightmoveFetcherAdapter) buildSearchURL(q domain.SearchQuery) (string, error) {
	u, err := url.Parse(a.baseSearchURL)
	if err != nil {
		return "", fmt.Errorf("rightmove adapter: failed to parse base URL: %w", err)
	}

	vals := u.Query()
	for k, v := range q.Params {
		vals.Set(k, v)
	}
	vals.Set("index", strconv.Itoa(q.Index))
	u.RawQuery = vals.Encode()
	return u.String(), nil
}

// newRequestCollector клонирует родительский коллектор (клон наследует
// лимиты и домены, но не обработчики) и вешает браузерные заголовки.
func (a *RightmoveFetcherAdapter) newRequestCollector(logger port.LoggerPort) *colly.Collector {
	collector := a.collector.Clone()
	headers := constants.DefaultRequestHeaders()

	collector.OnRequest(func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
		logger.Debug("Making request", port.Fields{"url": r.URL.String()})
	})

	return collector
}

// pageResponse — то, что нужно от одного HTTP ответа дальше по конвейеру.
type pageResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// fetchPage выполняет один GET с ретраями. Ошибки отдельных попыток не
// фатальны; после исчерпания попыток наружу уходит последняя из них.
func (a *RightmoveFetcherAdapter) fetchPage(ctx context.Context, collector *colly.Collector, pageURL string, logger port.LoggerPort) (*pageResponse, error) {
	var resp *pageResponse
	var lastErr error

	collector.OnResponse(func(r *colly.Response) {
		if resp != nil {
			return
		}
		resp = &pageResponse{
			StatusCode:  r.StatusCode,
			ContentType: r.Headers.Get("Content-Type"),
			Body:        r.Body,
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		lastErr = fmt.Errorf("request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	for attempt := 0; attempt <= a.retryTimes; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 0 {
			logger.Debug("Retrying request", port.Fields{"url": pageURL, "attempt": attempt})
		}

		lastErr = nil
		if visitErr := collector.Visit(pageURL); visitErr != nil {
			lastErr = fmt.Errorf("failed to visit %s: %w", pageURL, visitErr)
		}
		collector.Wait()

		if resp != nil {
			return resp, nil
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no response received from %s", pageURL)
	}
	return nil, lastErr
}
