package rightmovefetcher

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"rightmove-parser-service/internal/constants"
)

// nextPageStrategy — один детектор следующей страницы выдачи. Разметка
// контролов пагинации ненадёжна, поэтому детекторы пробуются строго по
// порядку; первый успех останавливает перебор, провал всех означает
// конец пагинации.
type nextPageStrategy func(doc *goquery.Document, currentPage int) (string, bool)

func (a *RightmoveFetcherAdapter) nextPageStrategies(pageURL string) []nextPageStrategy {
	return []nextPageStrategy{
		a.nextButtonByText,
		a.paginationNextControl,
		func(doc *goquery.Document, currentPage int) (string, bool) {
			return paginationLinkWithOffset(doc, currentPage, pageURL)
		},
		a.manualOffsetURL,
	}
}

func (a *RightmoveFetcherAdapter) resolveNextPageURL(doc *goquery.Document, pageURL string, currentPage int) string {
	for _, strategy := range a.nextPageStrategies(pageURL) {
		if nextURL, ok := strategy(doc, currentPage); ok {
			return nextURL
		}
	}
	return ""
}

// offsetURL строит URL выдачи для смещения currentPage*PageSize.
func (a *RightmoveFetcherAdapter) offsetURL(currentPage int) (string, bool) {
	nextURL, err := a.buildSearchURL(a.query.WithIndex(currentPage * constants.PageSize))
	if err != nil {
		return "", false
	}
	return nextURL, true
}

// Стратегия 1: кнопка с классом пагинации и текстом "Next".
func (a *RightmoveFetcherAdapter) nextButtonByText(doc *goquery.Document, currentPage int) (string, bool) {
	button := doc.Find("button").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return strings.Contains(class, "pagination") && strings.Contains(s.Text(), "Next")
	}).First()

	if button.Length() == 0 {
		return "", false
	}
	if _, disabled := button.Attr("disabled"); disabled {
		return "", false
	}
	return a.offsetURL(currentPage)
}

// Стратегия 2: стрелка "вперёд" по data-test атрибуту.
func (a *RightmoveFetcherAdapter) paginationNextControl(doc *goquery.Document, currentPage int) (string, bool) {
	arrow := doc.Find(`button[data-test="pagination-next"]`).First()
	if arrow.Length() == 0 {
		return "", false
	}
	if _, disabled := arrow.Attr("disabled"); disabled {
		return "", false
	}
	return a.offsetURL(currentPage)
}

// Стратегия 3: явный список ссылок пагинации; берём ту, чьё смещение
// равно currentPage*PageSize, буквально как она записана в документе.
func paginationLinkWithOffset(doc *goquery.Document, currentPage int, pageURL string) (string, bool) {
	needle := fmt.Sprintf("index=%d", currentPage*constants.PageSize)

	var found string
	doc.Find("div.pagination a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if ok && strings.Contains(href, needle) {
			found = absoluteURL(pageURL, href)
			return false
		}
		return true
	})
	return found, found != ""
}

// Стратегия 4: ручное построение URL, пока смещение ниже потолка.
// Срабатывает и тогда, когда контролы есть, но все отключены — так ведёт
// себя и выдача с "хвостом" результатов без кнопки Next.
func (a *RightmoveFetcherAdapter) manualOffsetURL(doc *goquery.Document, currentPage int) (string, bool) {
	if currentPage*constants.PageSize >= constants.MaxPaginationIndex {
		return "", false
	}
	return a.offsetURL(currentPage)
}
