package constants

// Базовые адреса и параметры поиска Rightmove.
const (
	BaseSearchURL   = "https://www.rightmove.co.uk/property-for-sale/find.html"
	BasePropertyURL = "https://www.rightmove.co.uk/properties/"
	AllowedDomain   = "www.rightmove.co.uk"
	SourceName      = "rightmove"
)

const (
	// PageSize — сколько объектов отдаёт одна страница выдачи.
	PageSize = 24

	// MaxPaginationIndex — жёсткий потолок смещения при ручном построении
	// URL следующей страницы (~50 страниц по 24 объекта). Страхует от
	// бесконечной пагинации, когда контролы на странице не распознаются.
	MaxPaginationIndex = 1200

	// DefaultMaxProperties — бюджет записей за один запуск.
	DefaultMaxProperties = 2500
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultSearchParams — фиксированные фильтры поиска (Лондон, продажа).
// Смещение index сюда не входит, им управляет SearchQuery.
func DefaultSearchParams() map[string]string {
	return map[string]string{
		"searchLocation":            "London",
		"useLocationIdentifier":     "true",
		"locationIdentifier":        "REGION^87490",
		"buy":                       "For sale",
		"radius":                    "0.0",
		"_includeSSTC":              "on",
		"maxDaysSinceAdded":         "3",
		"sortType":                  "2",
		"channel":                   "BUY",
		"transactionType":           "BUY",
		"displayLocationIdentifier": "London-87490.html",
		"includeSSTC":               "true",
		"propertyTypes":             "flat,terraced,detached,semi-detached",
	}
}

// DefaultRequestHeaders — заголовки "настоящего браузера" для каждого
// запроса. User-Agent задаётся отдельно через конфигурацию коллектора.
// Accept-Encoding сюда не входит: ручная установка выключает прозрачную
// распаковку в net/http, а brotli клиент распаковать не умеет — тело
// пришло бы сырыми байтами и не прошло бы проверку на HTML.
func DefaultRequestHeaders() map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
}
