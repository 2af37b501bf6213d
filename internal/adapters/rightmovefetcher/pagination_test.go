package rightmovefetcher

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rightmove-parser-service/internal/core/domain"
)

func newTestAdapter(t *testing.T) *RightmoveFetcherAdapter {
	t.Helper()
	query := domain.NewSearchQuery(map[string]string{"searchLocation": "London"})
	adapter, err := NewRightmoveFetcherAdapter(Config{}, query)
	require.NoError(t, err)
	return adapter
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// Ожидаемый URL для смещения: параметры запроса в алфавитном порядке,
// как их кодирует url.Values.
func offsetSearchURL(index string) string {
	return "https://www.rightmove.co.uk/property-for-sale/find.html?index=" + index + "&searchLocation=London"
}

func TestNextButtonByText(t *testing.T) {
	a := newTestAdapter(t)

	doc := mustDoc(t, `<html><body><button class="pagination-next-btn"><span>Next</span></button></body></html>`)
	url, ok := a.nextButtonByText(doc, 1)
	assert.True(t, ok)
	assert.Equal(t, offsetSearchURL("24"), url)
}

func TestNextButtonByTextDisabled(t *testing.T) {
	a := newTestAdapter(t)

	doc := mustDoc(t, `<html><body><button class="pagination-next-btn" disabled>Next</button></body></html>`)
	_, ok := a.nextButtonByText(doc, 1)
	assert.False(t, ok)
}

func TestNextButtonByTextNeedsPaginationClass(t *testing.T) {
	a := newTestAdapter(t)

	doc := mustDoc(t, `<html><body><button class="cta">Next</button></body></html>`)
	_, ok := a.nextButtonByText(doc, 1)
	assert.False(t, ok)
}

func TestPaginationNextControl(t *testing.T) {
	a := newTestAdapter(t)

	doc := mustDoc(t, `<html><body><button data-test="pagination-next"></button></body></html>`)
	url, ok := a.paginationNextControl(doc, 2)
	assert.True(t, ok)
	assert.Equal(t, offsetSearchURL("48"), url)

	doc = mustDoc(t, `<html><body><button data-test="pagination-next" disabled></button></body></html>`)
	_, ok = a.paginationNextControl(doc, 2)
	assert.False(t, ok)
}

func TestPaginationLinkWithOffset(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<div class="pagination">
			<a href="?index=0">1</a>
			<a href="?index=24">2</a>
			<a href="?index=48">3</a>
		</div>
	</body></html>`)

	url, ok := paginationLinkWithOffset(doc, 1, searchPageURL)
	assert.True(t, ok)
	// ссылка берётся буквально из документа, не перестраивается
	assert.Equal(t, "https://www.rightmove.co.uk/property-for-sale/find.html?index=24", url)

	// нет ссылки с нужным смещением
	_, ok = paginationLinkWithOffset(doc, 3, searchPageURL)
	assert.False(t, ok)
}

func TestManualOffsetURLCeiling(t *testing.T) {
	a := newTestAdapter(t)
	empty := mustDoc(t, `<html><body></body></html>`)

	url, ok := a.manualOffsetURL(empty, 49)
	assert.True(t, ok)
	assert.Equal(t, offsetSearchURL("1176"), url)

	// 50*24 = 1200 — потолок достигнут
	_, ok = a.manualOffsetURL(empty, 50)
	assert.False(t, ok)
}

func TestResolveNextPageURLStrategyOrder(t *testing.T) {
	a := newTestAdapter(t)

	// Кнопка Next и явная ссылка присутствуют одновременно: побеждает
	// первая стратегия, ссылка из div.pagination игнорируется.
	doc := mustDoc(t, `<html><body>
		<button class="pagination-next">Next</button>
		<div class="pagination"><a href="/some/other?index=24">2</a></div>
	</body></html>`)

	url := a.resolveNextPageURL(doc, searchPageURL, 1)
	assert.Equal(t, offsetSearchURL("24"), url)
}

func TestResolveNextPageURLFallsBackToManual(t *testing.T) {
	a := newTestAdapter(t)

	// Контролов нет вовсе — срабатывает ручное построение URL.
	doc := mustDoc(t, `<html><body><p>no pagination controls</p></body></html>`)
	url := a.resolveNextPageURL(doc, searchPageURL, 1)
	assert.Equal(t, offsetSearchURL("24"), url)
}

func TestResolveNextPageURLExhausted(t *testing.T) {
	a := newTestAdapter(t)

	doc := mustDoc(t, `<html><body></body></html>`)
	url := a.resolveNextPageURL(doc, searchPageURL, 50)
	assert.Equal(t, "", url)
}
