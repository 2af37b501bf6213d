package rightmovefetcher

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"rightmove-parser-service/internal/constants"
	"rightmove-parser-service/internal/core/domain"
)

const propertyLinkSelector = `a[aria-label="Link to property details page"]`

// extractPropertyLinks собирает ссылки на объекты в порядке документа и
// приводит каждую к канонической форме.
func extractPropertyLinks(doc *goquery.Document, pageURL string, pageNumber int) []domain.PropertyLink {
	var links []domain.PropertyLink
	doc.Find(propertyLinkSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		links = append(links, domain.PropertyLink{
			URL:        normalizePropertyLink(href, pageURL),
			PageNumber: pageNumber,
		})
	})
	return links
}

// normalizePropertyLink — чистое преобразование ссылки, сети не касается.
// Ссылки выдачи бывают с "канальным" суффиксом вида "#/?channel=RES_BUY":
// тогда идентификатор объекта вырезается между "/properties/" и "#" и
// подставляется в канонический URL. Всё остальное — обычный absolute-join
// относительно страницы выдачи.
func normalizePropertyLink(href, pageURL string) string {
	if strings.Contains(href, "#/") {
		id := href
		if i := strings.LastIndex(id, "/properties/"); i >= 0 {
			id = id[i+len("/properties/"):]
		}
		if j := strings.Index(id, "#"); j >= 0 {
			id = id[:j]
		}
		return constants.BasePropertyURL + id
	}
	return absoluteURL(pageURL, href)
}

// absoluteURL никогда не ошибается: при непарсимом входе возвращает href
// как есть (best-effort, как и вся нормализация).
func absoluteURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	r, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(r).String()
}
