package record

import "kwmap/internal/sheet"

// Fixed layout of the product sheet.
const (
	ProductHeaderRow = 2
	ProductDataStart = 3
)

// Product is one row of the product sheet. Every field is text, prices
// included, exactly as the sheet stores them.
type Product struct {
	Key             string `json:"key"`
	ID              string `json:"id"`              // 상품번호
	Type            string `json:"type"`            // 상품구분
	Name            string `json:"name"`            // 상품명
	SalesStatus     string `json:"salesStatus"`     // 판매상태
	ProductStatus   string `json:"productStatus"`   // 상품상태
	MarketPrice     string `json:"marketPrice"`     // 시중 판매가
	SalePrice       string `json:"salePrice"`       // 판매가
	DiscountedPrice string `json:"discountedPrice"` // 판매가(자사몰 할인 적용)
}

// RecordKey returns the product identifier.
func (p Product) RecordKey() string { return p.Key }

// Values returns every field as text, for search.
func (p Product) Values() []string {
	return []string{
		p.Key, p.ID, p.Type, p.Name, p.SalesStatus, p.ProductStatus,
		p.MarketPrice, p.SalePrice, p.DiscountedPrice,
	}
}

var productFields = []Field[Product]{
	StringField("id", "상품번호", func(p *Product) *string { return &p.ID }),
	StringField("type", "상품구분", func(p *Product) *string { return &p.Type }),
	StringField("name", "상품명", func(p *Product) *string { return &p.Name }),
	StringField("salesStatus", "판매상태", func(p *Product) *string { return &p.SalesStatus }),
	StringField("productStatus", "상품상태", func(p *Product) *string { return &p.ProductStatus }),
	StringField("marketPrice", "시중 판매가", func(p *Product) *string { return &p.MarketPrice }),
	StringField("salePrice", "판매가", func(p *Product) *string { return &p.SalePrice }),
	StringField("discountedPrice", "판매가(자사몰 할인 적용)", func(p *Product) *string { return &p.DiscountedPrice }),
}

// ProductSchema returns the product sheet layout.
func ProductSchema() Schema[Product] {
	return newSchema("product", ProductHeaderRow, ProductDataStart, "id",
		func(p *Product) *string { return &p.Key }, productFields...)
}

// NormalizeProducts is Normalize with the default product layout.
func NormalizeProducts(g sheet.Grid) ([]Product, error) {
	return Normalize(g, ProductSchema())
}
