// 文件路径: internal/service/pricing.go
// 模块说明: 选配件价目表，金额统一保留两位小数。
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/creamcroissant/trailerboard/internal/repository"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

// PricingService lists and maintains the price list.
type PricingService interface {
	List(ctx context.Context, input PriceListInput) ([]PriceItemView, error)
	Upsert(ctx context.Context, input PriceItemInput) (*PriceItemView, error)
}

// PriceListInput filters by category and orders by one column.
type PriceListInput struct {
	Category string
	Sort     tablesort.State
}

// PriceItemView mirrors the payload returned to clients.
type PriceItemView struct {
	ID          int64  `json:"id"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	UpdatedAt   int64  `json:"updated_at"`

	amount decimal.Decimal
}

// PriceItemInput is keyed by SKU; an existing SKU is overwritten.
type PriceItemInput struct {
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
}

type pricingService struct {
	items  repository.PriceItemRepository
	sorter *tablesort.Sorter[PriceItemView]
	now    func() time.Time
}

// NewPricingService wires repository-backed pricing operations.
func NewPricingService(items repository.PriceItemRepository, locale language.Tag) PricingService {
	return &pricingService{
		items: items,
		sorter: tablesort.NewSorter(locale, tablesort.Columns[PriceItemView]{
			"sku":         func(v PriceItemView) any { return v.SKU },
			"description": func(v PriceItemView) any { return v.Description },
			"category":    func(v PriceItemView) any { return v.Category },
			"price":       func(v PriceItemView) any { return v.amount.InexactFloat64() },
		}),
		now: time.Now,
	}
}

func (s *pricingService) List(ctx context.Context, input PriceListInput) ([]PriceItemView, error) {
	if s == nil || s.items == nil {
		return nil, fmt.Errorf("pricing service not configured / 价目服务未配置")
	}
	records, err := s.items.List(ctx, repository.PriceItemFilter{Category: strings.TrimSpace(input.Category)})
	if err != nil {
		return nil, err
	}
	views := make([]PriceItemView, 0, len(records))
	for _, record := range records {
		views = append(views, mapPriceItem(record))
	}
	return s.sorter.Apply(views, input.Sort), nil
}

func (s *pricingService) Upsert(ctx context.Context, input PriceItemInput) (*PriceItemView, error) {
	if s == nil || s.items == nil {
		return nil, fmt.Errorf("pricing service not configured / 价目服务未配置")
	}
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required / SKU 不能为空", ErrInvalidInput)
	}
	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}
	item := &repository.PriceItem{
		SKU:         sku,
		Description: strings.TrimSpace(input.Description),
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Price:       price,
		UpdatedAt:   s.now().Unix(),
	}
	if err := s.items.Upsert(ctx, item); err != nil {
		return nil, mapRepoError(err)
	}
	view := mapPriceItem(item)
	return &view, nil
}

// parsePrice accepts "1249.5", "$1,249.50" and similar; result has two places.
func parsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: price is required / 价格不能为空", ErrInvalidInput)
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q is not a number / 价格格式错误", ErrInvalidInput, raw)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: price must not be negative / 价格不能为负", ErrInvalidInput)
	}
	return price.Round(2), nil
}

func mapPriceItem(item *repository.PriceItem) PriceItemView {
	return PriceItemView{
		ID:          item.ID,
		SKU:         item.SKU,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price.StringFixed(2),
		UpdatedAt:   item.UpdatedAt,
		amount:      item.Price,
	}
}
