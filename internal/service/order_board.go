// 文件路径: internal/service/order_board.go
// 模块说明: 订单看板。读取订单后逐行推导状态，再按状态筛选、按列三态排序。
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/creamcroissant/trailerboard/internal/cache"
	"github.com/creamcroissant/trailerboard/internal/orderstatus"
	"github.com/creamcroissant/trailerboard/internal/repository"
	"github.com/creamcroissant/trailerboard/internal/security"
	"github.com/creamcroissant/trailerboard/internal/support/retry"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

// Sortable order board columns.
const (
	ColumnOrderNumber   = "order_number"
	ColumnDealer        = "dealer"
	ColumnModel         = "model"
	ColumnCustomer      = "customer"
	ColumnBuildDate     = "build_date"
	ColumnStatus        = "status"
	ColumnFinalizedDate = "finalized_date"
)

// BoardColumns lists the board columns in display order.
func BoardColumns() []string {
	return []string{ColumnOrderNumber, ColumnDealer, ColumnModel, ColumnCustomer, ColumnBuildDate, ColumnStatus, ColumnFinalizedDate}
}

// OrderBoardService 提供订单看板的查询、录入与排序切换。
type OrderBoardService interface {
	List(ctx context.Context, input OrderListInput) (OrderBoard, error)
	Get(ctx context.Context, id int64) (*OrderView, error)
	Create(ctx context.Context, input OrderSaveInput) (*OrderView, error)
	Update(ctx context.Context, id int64, input OrderSaveInput) (*OrderView, error)
	// Summary returns the cached status counts, computing them on a miss.
	Summary(ctx context.Context) (StatusSummary, error)
	// RefreshSummary recomputes the status counts and replaces the cached copy.
	RefreshSummary(ctx context.Context) (StatusSummary, error)
	// ToggleSort advances the tri-state sort of column starting from the
	// encoded state raw ("column:asc").
	ToggleSort(column, raw string) (tablesort.State, error)
}

// OrderListInput filters and orders the board.
type OrderListInput struct {
	Status string
	From   *time.Time
	To     *time.Time
	Sort   tablesort.State
}

// OrderView is one board row: the stored order plus its derived status.
type OrderView struct {
	ID             int64                  `json:"id"`
	OrderNumber    string                 `json:"order_number"`
	DealerID       string                 `json:"dealer_id"`
	Model          string                 `json:"model"`
	Customer       string                 `json:"customer"`
	SequenceMarker string                 `json:"sequence_marker,omitempty"`
	BuildDate      string                 `json:"build_date,omitempty"`
	FinalizedDate  string                 `json:"finalized_date,omitempty"`
	ShipmentID     string                 `json:"shipment_id,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	Status         orderstatus.Annotation `json:"status"`
	CreatedAt      int64                  `json:"created_at"`
	UpdatedAt      int64                  `json:"updated_at"`

	buildDate     *time.Time
	finalizedDate *time.Time
}

// OrderBoard is the result of a board listing.
type OrderBoard struct {
	Orders      []OrderView     `json:"orders"`
	Total       int             `json:"total"`
	Status      string          `json:"status,omitempty"`
	Sort        tablesort.State `json:"sort"`
	Degraded    bool            `json:"degraded"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// OrderSaveInput captures fields accepted by order intake and edit.
type OrderSaveInput struct {
	OrderNumber    string `json:"order_number"`
	DealerID       string `json:"dealer_id"`
	Model          string `json:"model"`
	Customer       string `json:"customer"`
	SequenceMarker string `json:"sequence_marker"`
	BuildDate      string `json:"build_date"`
	FinalizedDate  string `json:"finalized_date"`
	Notes          string `json:"notes"`
}

// StatusCount is one bucket of the status summary.
type StatusCount struct {
	Status orderstatus.Status `json:"status"`
	Label  string             `json:"label"`
	Color  string             `json:"color"`
	Count  int64              `json:"count"`
}

// StatusSummary counts orders per status in pipeline order.
type StatusSummary struct {
	Counts      []StatusCount `json:"counts"`
	Total       int64         `json:"total"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// Count returns the bucket size of status.
func (s StatusSummary) Count(status orderstatus.Status) int64 {
	for _, c := range s.Counts {
		if c.Status == status {
			return c.Count
		}
	}
	return 0
}

// OrderBoardOptions 注入看板服务依赖。
type OrderBoardOptions struct {
	Orders       repository.OrderRepository
	Cache        cache.Store
	Logger       *slog.Logger
	Audit        security.Recorder
	Locale       language.Tag
	FetchRetries int
	CacheTTL     time.Duration
	Now          func() time.Time
}

type orderBoardService struct {
	orders   repository.OrderRepository
	cache    cache.Store
	logger   *slog.Logger
	audit    security.Recorder
	sorter   *tablesort.Sorter[OrderView]
	retry    retry.Config
	cacheTTL time.Duration
	now      func() time.Time
}

// NewOrderBoardService wires repository-backed board operations.
func NewOrderBoardService(opts OrderBoardOptions) OrderBoardService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	audit := opts.Audit
	if audit == nil {
		audit = security.NopRecorder{}
	}
	return &orderBoardService{
		orders:   opts.Orders,
		cache:    opts.Cache,
		logger:   logger.With("component", "order_board"),
		audit:    audit,
		sorter:   newOrderSorter(opts.Locale),
		retry:    retry.WithRetries(opts.FetchRetries),
		cacheTTL: opts.CacheTTL,
		now:      now,
	}
}

func newOrderSorter(tag language.Tag) *tablesort.Sorter[OrderView] {
	return tablesort.NewSorter(tag, tablesort.Columns[OrderView]{
		ColumnOrderNumber:   func(v OrderView) any { return v.OrderNumber },
		ColumnDealer:        func(v OrderView) any { return v.DealerID },
		ColumnModel:         func(v OrderView) any { return v.Model },
		ColumnCustomer:      func(v OrderView) any { return v.Customer },
		ColumnBuildDate:     func(v OrderView) any { return v.buildDate },
		ColumnFinalizedDate: func(v OrderView) any { return v.finalizedDate },
		ColumnStatus:        func(v OrderView) any { return v.Status.Status.Rank() },
	})
}

func (s *orderBoardService) List(ctx context.Context, input OrderListInput) (OrderBoard, error) {
	if s == nil || s.orders == nil {
		return OrderBoard{}, fmt.Errorf("order board service not configured / 订单看板服务未配置")
	}

	var statusFilter orderstatus.Status
	if raw := strings.TrimSpace(input.Status); raw != "" {
		parsed, ok := orderstatus.ParseStatus(raw)
		if !ok {
			return OrderBoard{}, fmt.Errorf("%w: unknown status %q / 未知状态", ErrInvalidInput, raw)
		}
		statusFilter = parsed
	}
	if input.From != nil && input.To != nil && input.To.Before(*input.From) {
		return OrderBoard{}, fmt.Errorf("%w: to precedes from / 结束日期早于开始日期", ErrInvalidInput)
	}

	board := OrderBoard{
		Orders:      []OrderView{},
		Status:      string(statusFilter),
		Sort:        input.Sort,
		GeneratedAt: s.now().UTC(),
	}
	if board.Sort == nil {
		board.Sort = tablesort.State{}
	}

	records, err := s.fetch(ctx, repository.OrderFilter{BuildFrom: input.From, BuildTo: input.To})
	if err != nil {
		s.logger.Error("order board fetch failed, serving empty board",
			"error", err,
			"status", board.Status,
			"sort", board.Sort.String(),
		)
		board.Degraded = true
		return board, nil
	}

	views := make([]OrderView, 0, len(records))
	for _, record := range records {
		view := mapOrder(record)
		if statusFilter != "" && view.Status.Status != statusFilter {
			continue
		}
		views = append(views, view)
	}
	board.Orders = s.sorter.Apply(views, board.Sort)
	board.Total = len(board.Orders)
	return board, nil
}

func (s *orderBoardService) fetch(ctx context.Context, filter repository.OrderFilter) ([]*repository.Order, error) {
	var records []*repository.Order
	attempt := 0
	err := retry.Do(ctx, s.retry, func(ctx context.Context) error {
		attempt++
		rows, err := s.orders.List(ctx, filter)
		if err != nil {
			s.logger.Warn("order fetch attempt failed", "attempt", attempt, "error", err)
			return err
		}
		records = rows
		return nil
	})
	return records, err
}

func (s *orderBoardService) Get(ctx context.Context, id int64) (*OrderView, error) {
	if s == nil || s.orders == nil {
		return nil, fmt.Errorf("order board service not configured / 订单看板服务未配置")
	}
	if id <= 0 {
		return nil, ErrNotFound
	}
	record, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	view := mapOrder(record)
	return &view, nil
}

func (s *orderBoardService) Create(ctx context.Context, input OrderSaveInput) (*OrderView, error) {
	if s == nil || s.orders == nil {
		return nil, fmt.Errorf("order board service not configured / 订单看板服务未配置")
	}
	order := &repository.Order{}
	if err := applyOrderInput(order, input); err != nil {
		return nil, err
	}
	now := s.now().Unix()
	order.CreatedAt = now
	order.UpdatedAt = now

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, mapRepoError(err)
	}
	s.invalidateSummary(ctx)
	s.logger.Info("order created", "order_number", created.OrderNumber, "id", created.ID)
	s.audit.Record(ctx, security.Event{Kind: "order.created", Subject: created.OrderNumber, Metadata: map[string]any{"id": created.ID}})
	view := mapOrder(created)
	return &view, nil
}

func (s *orderBoardService) Update(ctx context.Context, id int64, input OrderSaveInput) (*OrderView, error) {
	if s == nil || s.orders == nil {
		return nil, fmt.Errorf("order board service not configured / 订单看板服务未配置")
	}
	if id <= 0 {
		return nil, ErrNotFound
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := applyOrderInput(order, input); err != nil {
		return nil, err
	}
	order.UpdatedAt = s.now().Unix()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, mapRepoError(err)
	}
	s.invalidateSummary(ctx)
	s.audit.Record(ctx, security.Event{Kind: "order.updated", Subject: order.OrderNumber, Metadata: map[string]any{"id": order.ID}})
	view := mapOrder(order)
	return &view, nil
}

func (s *orderBoardService) Summary(ctx context.Context) (StatusSummary, error) {
	if s == nil || s.orders == nil {
		return StatusSummary{}, fmt.Errorf("order board service not configured / 订单看板服务未配置")
	}
	if s.cache != nil {
		var cached StatusSummary
		if ok, err := s.cache.GetJSON(ctx, summaryCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	return s.RefreshSummary(ctx)
}

func (s *orderBoardService) RefreshSummary(ctx context.Context) (StatusSummary, error) {
	if s == nil || s.orders == nil {
		return StatusSummary{}, fmt.Errorf("order board service not configured / 订单看板服务未配置")
	}
	records, err := s.fetch(ctx, repository.OrderFilter{})
	if err != nil {
		return StatusSummary{}, fmt.Errorf("summary fetch: %w", err)
	}

	counts := make(map[orderstatus.Status]int64, len(orderstatus.Pipeline()))
	for _, record := range records {
		counts[orderstatus.Classify(record.Record())]++
	}
	summary := StatusSummary{
		Total:       int64(len(records)),
		GeneratedAt: s.now().UTC(),
	}
	for _, status := range orderstatus.Pipeline() {
		summary.Counts = append(summary.Counts, StatusCount{
			Status: status,
			Label:  orderstatus.StatusLabel(status),
			Color:  orderstatus.StatusColor(status),
			Count:  counts[status],
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, summaryCacheKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("cache status summary failed", "error", err)
		}
	}
	return summary, nil
}

func (s *orderBoardService) ToggleSort(column, raw string) (tablesort.State, error) {
	if s == nil || s.sorter == nil {
		return nil, fmt.Errorf("order board service not configured / 订单看板服务未配置")
	}
	column = strings.TrimSpace(column)
	if !s.sorter.HasColumn(column) {
		return nil, fmt.Errorf("%w: unknown sort column %q / 不支持的排序列", ErrInvalidInput, column)
	}
	return tablesort.Toggle(column, tablesort.ParseState(raw)), nil
}

func (s *orderBoardService) invalidateSummary(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, summaryCacheKey)
	}
}

func applyOrderInput(order *repository.Order, input OrderSaveInput) error {
	number := strings.TrimSpace(input.OrderNumber)
	if number == "" {
		return fmt.Errorf("%w: order_number is required / 订单号不能为空", ErrInvalidInput)
	}
	buildDate, err := parseDateInput("build_date", input.BuildDate)
	if err != nil {
		return err
	}
	finalized, err := parseDateInput("finalized_date", input.FinalizedDate)
	if err != nil {
		return err
	}
	order.OrderNumber = number
	order.DealerID = strings.TrimSpace(input.DealerID)
	order.Model = strings.TrimSpace(input.Model)
	order.Customer = strings.TrimSpace(input.Customer)
	order.SequenceMarker = optionalText(input.SequenceMarker)
	order.BuildDate = buildDate
	order.FinalizedDate = finalized
	order.Notes = sanitizeNotes(input.Notes)
	return nil
}

func mapOrder(order *repository.Order) OrderView {
	return OrderView{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		DealerID:       order.DealerID,
		Model:          order.Model,
		Customer:       order.Customer,
		SequenceMarker: textValue(order.SequenceMarker),
		BuildDate:      formatDate(order.BuildDate),
		FinalizedDate:  formatDate(order.FinalizedDate),
		ShipmentID:     textValue(order.ShipmentID),
		Notes:          order.Notes,
		Status:         orderstatus.Annotate(order.Record()),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
		buildDate:      order.BuildDate,
		finalizedDate:  order.FinalizedDate,
	}
}
