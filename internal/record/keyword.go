package record

import "kwmap/internal/sheet"

// Fixed layout of the keyword sheet.
const (
	KeywordHeaderRow = 3
	KeywordDataStart = 4
)

// Keyword is one row of the keyword ranking sheet.
type Keyword struct {
	Key              string  `json:"key"`
	Rank             float64 `json:"rank"`             // 랭킹
	Keyword          string  `json:"keyword"`          // 키워드
	Category1        string  `json:"category1"`        // 1차 카테고리
	Category2        string  `json:"category2"`        // 2차 카테고리
	Category3        string  `json:"category3"`        // 3차 카테고리
	SearchVolume     float64 `json:"searchVolume"`     // 검색량
	PrevSearchVolume float64 `json:"prevSearchVolume"` // 전주 검색량
	GrowthRate       float64 `json:"growthRate"`       // 증감률
	ProductCount     float64 `json:"productCount"`     // 상품수
	CompetitionLevel string  `json:"competitionLevel"` // 경쟁강도
}

// RecordKey returns the keyword text.
func (k Keyword) RecordKey() string { return k.Key }

// Values returns every field as text, for search.
func (k Keyword) Values() []string {
	return []string{
		k.Key,
		sheet.FormatNumber(k.Rank),
		k.Keyword, k.Category1, k.Category2, k.Category3,
		sheet.FormatNumber(k.SearchVolume),
		sheet.FormatNumber(k.PrevSearchVolume),
		sheet.FormatNumber(k.GrowthRate),
		sheet.FormatNumber(k.ProductCount),
		k.CompetitionLevel,
	}
}

var keywordFields = []Field[Keyword]{
	NumberField("rank", "랭킹", func(k *Keyword) *float64 { return &k.Rank }, "순위"),
	StringField("keyword", "키워드", func(k *Keyword) *string { return &k.Keyword }),
	StringField("category1", "1차 카테고리", func(k *Keyword) *string { return &k.Category1 }, "1차"),
	StringField("category2", "2차 카테고리", func(k *Keyword) *string { return &k.Category2 }, "2차"),
	StringField("category3", "3차 카테고리", func(k *Keyword) *string { return &k.Category3 }, "3차"),
	NumberField("searchVolume", "검색량", func(k *Keyword) *float64 { return &k.SearchVolume }),
	NumberField("prevSearchVolume", "전주 검색량", func(k *Keyword) *float64 { return &k.PrevSearchVolume }, "전주검색량"),
	NumberField("growthRate", "증감률", func(k *Keyword) *float64 { return &k.GrowthRate }),
	NumberField("productCount", "상품수", func(k *Keyword) *float64 { return &k.ProductCount }),
	StringField("competitionLevel", "경쟁강도", func(k *Keyword) *string { return &k.CompetitionLevel }, "경쟁도"),
}

// KeywordSchema returns the keyword sheet layout.
func KeywordSchema() Schema[Keyword] {
	return newSchema("keyword", KeywordHeaderRow, KeywordDataStart, "keyword",
		func(k *Keyword) *string { return &k.Key }, keywordFields...)
}

// NormalizeKeywords is Normalize with the default keyword layout.
func NormalizeKeywords(g sheet.Grid) ([]Keyword, error) {
	return Normalize(g, KeywordSchema())
}

// KeywordTexts returns the keyword text of each record, in order.
func KeywordTexts(keywords []Keyword) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = k.Keyword
	}
	return out
}
