package domain

// SearchQuery — неизменяемый набор параметров поиска плюс смещение пагинации.
// Params задаются один раз при старте обхода; новое смещение всегда
// порождает новое значение, исходное не мутируется.
type SearchQuery struct {
	Params map[string]string
	Index  int
}

// NewSearchQuery копирует параметры, чтобы вызывающий код не мог
// изменить их после старта обхода.
func NewSearchQuery(params map[string]string) SearchQuery {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return SearchQuery{Params: copied, Index: 0}
}

// WithIndex возвращает копию запроса с новым смещением.
func (q SearchQuery) WithIndex(index int) SearchQuery {
	if index < 0 {
		index = 0
	}
	return SearchQuery{Params: q.Params, Index: index}
}

// CrawlState — состояние одного запуска обхода. Мутируется только
// управляющим потоком, между запусками не сохраняется.
type CrawlState struct {
	Page    int // номер текущей страницы выдачи, с 1
	Scraped int // сколько валидных записей уже отдано
	Budget  int // максимум записей за запуск
}

func NewCrawlState(budget int) *CrawlState {
	return &CrawlState{Page: 1, Budget: budget}
}

// BudgetReached — достигнут ли лимит записей. После этого никакие
// новые запросы не выполняются.
func (s *CrawlState) BudgetReached() bool {
	return s.Scraped >= s.Budget
}

// RecordScraped учитывает одну успешно сохранённую запись.
// Инвариант Scraped <= Budget сохраняется всегда.
func (s *CrawlState) RecordScraped() {
	if s.BudgetReached() {
		return
	}
	s.Scraped++
}

func (s *CrawlState) AdvancePage() {
	s.Page++
}

// PropertyLink — каноническая ссылка на страницу объекта и номер
// страницы выдачи, на которой она была найдена.
type PropertyLink struct {
	URL        string `json:"url"`
	PageNumber int    `json:"page_number"`
}

// SearchResultsPage — результат разбора одной страницы выдачи.
// Пустой NextPageURL означает конец пагинации.
type SearchResultsPage struct {
	PageNumber  int
	Links       []PropertyLink
	NextPageURL string
}
