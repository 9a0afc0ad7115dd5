package ui

import (
	"cmp"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"kwmap/internal/record"
	"kwmap/internal/sheet"
)

// Column is one table column of a record pane. Rows sort by Number when it
// is set and by Value in Korean collation order otherwise.
type Column[T any] struct {
	Title  string
	Width  int
	Value  func(T) string
	Number func(T) float64
}

// Compare orders a and b by this column. The collator is only used for
// text columns and may be nil for numeric ones.
func (c Column[T]) Compare(coll *collate.Collator, a, b T) int {
	if c.Number != nil {
		return cmp.Compare(c.Number(a), c.Number(b))
	}
	return coll.CompareString(c.Value(a), c.Value(b))
}

func newCollator() *collate.Collator {
	return collate.New(language.Korean)
}

// ProductColumns lists the product pane columns.
func ProductColumns() []Column[record.Product] {
	return []Column[record.Product]{
		{Title: "상품번호", Width: 10, Value: func(p record.Product) string { return p.ID }},
		{Title: "상품구분", Width: 8, Value: func(p record.Product) string { return p.Type }},
		{Title: "상품명", Width: 24, Value: func(p record.Product) string { return p.Name }},
		{Title: "판매상태", Width: 8, Value: func(p record.Product) string { return p.SalesStatus }},
		{Title: "상품상태", Width: 8, Value: func(p record.Product) string { return p.ProductStatus }},
		{
			Title: "시중 판매가", Width: 11,
			Value:  func(p record.Product) string { return ThousandsText(p.MarketPrice) },
			Number: func(p record.Product) float64 { return PriceValue(p.MarketPrice) },
		},
		{
			Title: "판매가", Width: 10,
			Value:  func(p record.Product) string { return ThousandsText(p.SalePrice) },
			Number: func(p record.Product) float64 { return PriceValue(p.SalePrice) },
		},
		{
			Title: "할인가", Width: 10,
			Value:  func(p record.Product) string { return ThousandsText(p.DiscountedPrice) },
			Number: func(p record.Product) float64 { return PriceValue(p.DiscountedPrice) },
		},
	}
}

// KeywordColumns lists the keyword pane columns.
func KeywordColumns() []Column[record.Keyword] {
	return []Column[record.Keyword]{
		{
			Title: "랭킹", Width: 5,
			Value:  func(k record.Keyword) string { return sheet.FormatNumber(k.Rank) },
			Number: func(k record.Keyword) float64 { return k.Rank },
		},
		{Title: "키워드", Width: 18, Value: func(k record.Keyword) string { return k.Keyword }},
		{Title: "1차", Width: 10, Value: func(k record.Keyword) string { return k.Category1 }},
		{Title: "2차", Width: 10, Value: func(k record.Keyword) string { return k.Category2 }},
		{Title: "3차", Width: 10, Value: func(k record.Keyword) string { return k.Category3 }},
		{
			Title: "검색량", Width: 9,
			Value:  func(k record.Keyword) string { return Thousands(k.SearchVolume) },
			Number: func(k record.Keyword) float64 { return k.SearchVolume },
		},
		{
			Title: "전주", Width: 9,
			Value:  func(k record.Keyword) string { return Thousands(k.PrevSearchVolume) },
			Number: func(k record.Keyword) float64 { return k.PrevSearchVolume },
		},
		{
			Title: "증감률", Width: 8,
			Value:  func(k record.Keyword) string { return Percent(k.GrowthRate) },
			Number: func(k record.Keyword) float64 { return k.GrowthRate },
		},
		{
			Title: "상품수", Width: 7,
			Value:  func(k record.Keyword) string { return Thousands(k.ProductCount) },
			Number: func(k record.Keyword) float64 { return k.ProductCount },
		},
		{Title: "경쟁강도", Width: 8, Value: func(k record.Keyword) string { return k.CompetitionLevel }},
	}
}

// ProductDetail is the status line under the product table.
func ProductDetail(p record.Product) string {
	status, ok := StatusColor(p.SalesStatus)
	parts := []string{p.Name}
	if p.SalesStatus != "" {
		parts = append(parts, Colored(p.SalesStatus, status, ok))
	}
	if p.SalePrice != "" {
		parts = append(parts, ThousandsText(p.SalePrice)+"원")
	}
	return strings.Join(parts, " · ")
}

// KeywordDetail is the status line under the keyword table.
func KeywordDetail(k record.Keyword) string {
	level, ok := CompetitionColor(k.CompetitionLevel)
	parts := []string{k.Keyword, "검색량 " + Thousands(k.SearchVolume), Percent(k.GrowthRate)}
	if k.CompetitionLevel != "" {
		parts = append(parts, Colored(k.CompetitionLevel, level, ok))
	}
	return strings.Join(parts, " · ")
}
