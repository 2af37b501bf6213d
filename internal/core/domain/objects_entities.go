package domain

// PropertyRecord — итоговая запись об объекте. Все поля, кроме Source и
// URL, опциональны: отсутствие значения в разметке даёт null, а не ошибку.
// Имена json-полей фиксированы форматом выходного файла.
type PropertyRecord struct {
	Source            string   `json:"source"`
	Type              *string  `json:"type"`
	Beds              *string  `json:"beds"`
	Baths             *string  `json:"baths"`
	Area              *string  `json:"area"`
	Price             *string  `json:"price"`
	Location          *string  `json:"location"`
	Features          []string `json:"features"`
	Description       *string  `json:"description"`
	PhotosURL         []string `json:"photos_url"`
	VideoURL          *string  `json:"video_url"`
	VideoThumbnail    *string  `json:"video_thumbnail"`
	URL               string   `json:"url"`
	PropertyInfoCount int      `json:"property_info_count"`
	PageNumber        int      `json:"page_number"`
}

// HasMinimumData — запись пригодна к выдаче, только если удалось достать
// хотя бы цену или адрес.
func (r *PropertyRecord) HasMinimumData() bool {
	return r.Price != nil || r.Location != nil
}
