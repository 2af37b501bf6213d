package rightmovefetcher

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"rightmove-parser-service/internal/constants"
	"rightmove-parser-service/internal/core/domain"
)

// Селекторы страницы объекта. Классы вида _1hV1... сгенерированы сборкой
// фронтенда Rightmove и периодически меняются; все правки локализованы
// в этом файле, форма записи от них не зависит.
const (
	propertyInfoSelector = `p[class*="_1hV1kqpVceE9m-QrX_hWDN"]`
	priceSelector        = `div[class="_1gfnqJ3Vtd1z40MlC0MzXu"] span`
	addressSelector      = `h1[itemprop="streetAddress"]`
	featuresSelector     = `article[data-testid="primary-layout"] li[class="lIhZ24u1NHMa5Y6gDH90A"]`
	photoSelector        = `a[itemprop="photo"] meta[itemprop="contentUrl"]`
	videoTourSelector    = `a[title="Video Tour"]`
)

var styleURLPattern = regexp.MustCompile(`url\(['"]?(.*?)['"]?\)`)

// toPropertyRecord - главный метод-трансформер: страница объекта ->
// доменная запись. Каждое правило работает по принципу best-effort:
// промах даёт null или пустой список, но никогда не роняет запись целиком.
func toPropertyRecord(body []byte, link domain.PropertyLink) (*domain.PropertyRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse property page html: %w", err)
	}

	info := collectTexts(doc.Find(propertyInfoSelector))

	record := &domain.PropertyRecord{
		Source:            constants.SourceName,
		Type:              infoSlot(info, 0),
		Beds:              infoSlot(info, 1),
		Baths:             infoSlot(info, 2),
		Area:              infoSlot(info, 3),
		Price:             firstText(doc.Find(priceSelector)),
		Location:          firstText(doc.Find(addressSelector)),
		Features:          extractFeatures(doc),
		Description:       extractDescription(doc),
		PhotosURL:         extractPhotoURLs(doc),
		URL:               link.URL,
		PropertyInfoCount: len(info),
		PageNumber:        link.PageNumber,
	}

	videoTour := doc.Find(videoTourSelector).First()
	if href, ok := videoTour.Attr("href"); ok && href != "" {
		record.VideoURL = &href
	}
	record.VideoThumbnail = extractVideoThumbnail(videoTour)

	return record, nil
}

// infoSlot — доступ к позиционным фрагментам блока "ключевой информации".
// Порядок значим и в разметке нигде не подписан: type, beds, baths, area.
// Если фрагментов меньше четырёх, хвостовые поля остаются null; сколько
// фрагментов нашлось на самом деле, фиксирует property_info_count.
func infoSlot(texts []string, i int) *string {
	if i >= len(texts) {
		return nil
	}
	t := strings.TrimSpace(texts[i])
	if t == "" {
		return nil
	}
	return &t
}

func collectTexts(sel *goquery.Selection) []string {
	var texts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return texts
}

func firstText(sel *goquery.Selection) *string {
	first := sel.First()
	if first.Length() == 0 {
		return nil
	}
	t := first.Text()
	if t == "" {
		return nil
	}
	return &t
}

// extractFeatures собирает прямые текстовые узлы каждого пункта списка
// особенностей: по одному кандидату на узел, с обрезкой пробелов и
// отбрасыванием пустых, в порядке документа. Класс li сравнивается
// целиком, не по вхождению. Без совпадений — пустой список, не null.
func extractFeatures(doc *goquery.Document) []string {
	features := []string{}
	doc.Find(featuresSelector).Each(func(_ int, li *goquery.Selection) {
		li.Contents().Each(func(_ int, n *goquery.Selection) {
			if goquery.NodeName(n) != "#text" {
				return
			}
			if t := strings.TrimSpace(n.Text()); t != "" {
				features = append(features, t)
			}
		})
	})
	return features
}

// extractDescription собирает текст div, следующего за КАЖДЫМ заголовком
// h2 с прямым текстовым узлом ровно "Description" (заголовок, обёрнутый
// в span, не считается). Текстовые узлы склеиваются БЕЗ разделителя,
// затем пробельные серии схлопываются в один пробел — ровно так склеивает
// источник, поэтому два слова на границе узлов без пробела в разметке
// сливаются в одно.
// TODO: сверить склейку без разделителя на свежих сохранённых страницах
// Rightmove, прежде чем менять её на склейку через пробел.
func extractDescription(doc *goquery.Document) *string {
	var joined strings.Builder
	doc.Find("div > h2").Each(func(_ int, h *goquery.Selection) {
		if !hasExactText(h, "Description") {
			return
		}
		joined.WriteString(h.NextAllFiltered("div").First().Text())
	})
	return collapseWhitespace(joined.String())
}

// hasExactText — есть ли среди прямых детей узла текстовый узел, равный
// строке целиком, без обрезки пробелов.
func hasExactText(sel *goquery.Selection, s string) bool {
	found := false
	sel.Contents().Each(func(_ int, n *goquery.Selection) {
		if goquery.NodeName(n) == "#text" && n.Text() == s {
			found = true
		}
	})
	return found
}

// collapseWhitespace нормализует пробелы; пустой результат — это null,
// а не пустая строка.
func collapseWhitespace(s string) *string {
	cleaned := strings.Join(strings.Fields(s), " ")
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// extractPhotoURLs — без совпадений пустой список, не null: в выходном
// json поле всегда массив.
func extractPhotoURLs(doc *goquery.Document) []string {
	photos := []string{}
	doc.Find(photoSelector).Each(func(_ int, m *goquery.Selection) {
		if content, ok := m.Attr("content"); ok && content != "" {
			photos = append(photos, content)
		}
	})
	return photos
}

// extractVideoThumbnail достаёт URL превью из inline-стиля блока
// видео-тура: background-image: url(...), кавычки опциональны.
func extractVideoThumbnail(videoTour *goquery.Selection) *string {
	if videoTour.Length() == 0 {
		return nil
	}

	var style string
	videoTour.Find("div").EachWithBreak(func(_ int, d *goquery.Selection) bool {
		if s, ok := d.Attr("style"); ok {
			style = s
			return false
		}
		return true
	})
	if style == "" {
		return nil
	}

	m := styleURLPattern.FindStringSubmatch(style)
	if m == nil || m[1] == "" {
		return nil
	}
	return &m[1]
}
