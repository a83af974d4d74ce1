// 文件路径: internal/service/schedule.go
// 模块说明: 生产排期与发运排期。
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/creamcroissant/trailerboard/internal/cache"
	"github.com/creamcroissant/trailerboard/internal/repository"
	"github.com/creamcroissant/trailerboard/internal/security"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

// defaultScheduleWindow is used when a schedule request has no range.
const defaultScheduleWindow = 14 * 24 * time.Hour

// ScheduleService groups orders into build days and shipments.
type ScheduleService interface {
	BuildSchedule(ctx context.Context, from, to *time.Time) (BuildSchedule, error)
	ShippingSchedule(ctx context.Context, from, to *time.Time) (ShippingSchedule, error)
	CreateShipment(ctx context.Context, input ShipmentInput) (*ShipmentView, error)
}

// BuildDay lists the unshipped orders due on one build date.
type BuildDay struct {
	Date   string      `json:"date"`
	Orders []OrderView `json:"orders"`
}

// BuildSchedule is the production plan for a date range.
type BuildSchedule struct {
	From  string     `json:"from"`
	To    string     `json:"to"`
	Days  []BuildDay `json:"days"`
	Total int        `json:"total"`
}

// ShipmentView is a shipment with its annotated orders.
type ShipmentView struct {
	ID            string      `json:"id"`
	Carrier       string      `json:"carrier"`
	Destination   string      `json:"destination"`
	ScheduledDate string      `json:"scheduled_date"`
	ShippedAt     *int64      `json:"shipped_at,omitempty"`
	Orders        []OrderView `json:"orders"`
	CreatedAt     int64       `json:"created_at"`
}

// ShippingSchedule lists shipments scheduled in a range.
type ShippingSchedule struct {
	From      string         `json:"from"`
	To        string         `json:"to"`
	Shipments []ShipmentView `json:"shipments"`
}

// ShipmentInput captures a new shipment and the orders it carries.
type ShipmentInput struct {
	Carrier       string  `json:"carrier"`
	Destination   string  `json:"destination"`
	ScheduledDate string  `json:"scheduled_date"`
	OrderIDs      []int64 `json:"order_ids"`
}

// ScheduleOptions 注入排期服务依赖。
type ScheduleOptions struct {
	Orders    repository.OrderRepository
	Shipments repository.ShipmentRepository
	Cache     cache.Store
	Logger    *slog.Logger
	Audit     security.Recorder
	Locale    language.Tag
	Now       func() time.Time
	NewID     func() string
}

type scheduleService struct {
	orders    repository.OrderRepository
	shipments repository.ShipmentRepository
	cache     cache.Store
	logger    *slog.Logger
	audit     security.Recorder
	sorter    *tablesort.Sorter[OrderView]
	now       func() time.Time
	newID     func() string
}

// NewScheduleService wires repository-backed schedule operations.
func NewScheduleService(opts ScheduleOptions) ScheduleService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	audit := opts.Audit
	if audit == nil {
		audit = security.NopRecorder{}
	}
	return &scheduleService{
		audit:     audit,
		orders:    opts.Orders,
		shipments: opts.Shipments,
		cache:     opts.Cache,
		logger:    logger.With("component", "schedule"),
		sorter:    newOrderSorter(opts.Locale),
		now:       now,
		newID:     newID,
	}
}

var byOrderNumber = tablesort.State{{Column: ColumnOrderNumber, Direction: tablesort.Ascending}}

func (s *scheduleService) window(from, to *time.Time) (time.Time, time.Time, error) {
	start := truncateDay(s.now())
	if from != nil {
		start = truncateDay(*from)
	}
	end := start.Add(defaultScheduleWindow)
	if to != nil {
		end = truncateDay(*to)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to precedes from / 结束日期早于开始日期", ErrInvalidInput)
	}
	return start, end, nil
}

func (s *scheduleService) BuildSchedule(ctx context.Context, from, to *time.Time) (BuildSchedule, error) {
	if s == nil || s.orders == nil {
		return BuildSchedule{}, fmt.Errorf("schedule service not configured / 排期服务未配置")
	}
	start, end, err := s.window(from, to)
	if err != nil {
		return BuildSchedule{}, err
	}
	records, err := s.orders.List(ctx, repository.OrderFilter{BuildFrom: &start, BuildTo: &end, OnlyUnshipped: true})
	if err != nil {
		return BuildSchedule{}, fmt.Errorf("list orders: %w", err)
	}

	grouped := make(map[string][]OrderView)
	var dates []string
	for _, record := range records {
		view := mapOrder(record)
		if _, ok := grouped[view.BuildDate]; !ok {
			dates = append(dates, view.BuildDate)
		}
		grouped[view.BuildDate] = append(grouped[view.BuildDate], view)
	}
	// YYYY-MM-DD 字符串的字典序即日期顺序。
	sort.Strings(dates)

	schedule := BuildSchedule{
		From:  start.Format(repository.DateLayout),
		To:    end.Format(repository.DateLayout),
		Days:  make([]BuildDay, 0, len(dates)),
		Total: len(records),
	}
	for _, date := range dates {
		schedule.Days = append(schedule.Days, BuildDay{
			Date:   date,
			Orders: s.sorter.Apply(grouped[date], byOrderNumber),
		})
	}
	return schedule, nil
}

func (s *scheduleService) ShippingSchedule(ctx context.Context, from, to *time.Time) (ShippingSchedule, error) {
	if s == nil || s.shipments == nil || s.orders == nil {
		return ShippingSchedule{}, fmt.Errorf("schedule service not configured / 排期服务未配置")
	}
	start, end, err := s.window(from, to)
	if err != nil {
		return ShippingSchedule{}, err
	}
	shipments, err := s.shipments.List(ctx, repository.ShipmentFilter{From: &start, To: &end})
	if err != nil {
		return ShippingSchedule{}, fmt.Errorf("list shipments: %w", err)
	}

	result := ShippingSchedule{
		From:      start.Format(repository.DateLayout),
		To:        end.Format(repository.DateLayout),
		Shipments: make([]ShipmentView, 0, len(shipments)),
	}
	if len(shipments) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(shipments))
	for _, shipment := range shipments {
		ids = append(ids, shipment.ID)
	}
	records, err := s.orders.List(ctx, repository.OrderFilter{ShipmentIDs: ids})
	if err != nil {
		return ShippingSchedule{}, fmt.Errorf("list shipment orders: %w", err)
	}
	byShipment := make(map[string][]OrderView, len(shipments))
	for _, record := range records {
		view := mapOrder(record)
		byShipment[view.ShipmentID] = append(byShipment[view.ShipmentID], view)
	}
	for _, shipment := range shipments {
		result.Shipments = append(result.Shipments, mapShipment(shipment, s.sorter.Apply(byShipment[shipment.ID], byOrderNumber)))
	}
	return result, nil
}

func (s *scheduleService) CreateShipment(ctx context.Context, input ShipmentInput) (*ShipmentView, error) {
	if s == nil || s.shipments == nil || s.orders == nil {
		return nil, fmt.Errorf("schedule service not configured / 排期服务未配置")
	}
	scheduled, err := parseDateInput("scheduled_date", input.ScheduledDate)
	if err != nil {
		return nil, err
	}
	if scheduled == nil {
		return nil, fmt.Errorf("%w: scheduled_date is required / 发运日期不能为空", ErrInvalidInput)
	}
	orderIDs := uniqueIDs(input.OrderIDs)
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("%w: order_ids is required / 至少选择一个订单", ErrInvalidInput)
	}

	shipment := &repository.Shipment{
		ID:            s.newID(),
		Carrier:       strings.TrimSpace(input.Carrier),
		Destination:   strings.TrimSpace(input.Destination),
		ScheduledDate: *scheduled,
		CreatedAt:     s.now().Unix(),
	}
	if err := s.shipments.Create(ctx, shipment, orderIDs); err != nil {
		return nil, mapRepoError(err)
	}
	if s.cache != nil {
		s.cache.Delete(ctx, summaryCacheKey)
	}
	s.logger.Info("shipment created", "shipment_id", shipment.ID, "orders", len(orderIDs))
	s.audit.Record(ctx, security.Event{Kind: "shipment.created", Subject: shipment.ID, Metadata: map[string]any{"order_ids": orderIDs}})

	records, err := s.orders.List(ctx, repository.OrderFilter{ShipmentIDs: []string{shipment.ID}})
	if err != nil {
		return nil, fmt.Errorf("list shipment orders: %w", err)
	}
	views := make([]OrderView, 0, len(records))
	for _, record := range records {
		views = append(views, mapOrder(record))
	}
	view := mapShipment(shipment, s.sorter.Apply(views, byOrderNumber))
	return &view, nil
}

func mapShipment(shipment *repository.Shipment, orders []OrderView) ShipmentView {
	if orders == nil {
		orders = []OrderView{}
	}
	return ShipmentView{
		ID:            shipment.ID,
		Carrier:       shipment.Carrier,
		Destination:   shipment.Destination,
		ScheduledDate: shipment.ScheduledDate.Format(repository.DateLayout),
		ShippedAt:     shipment.ShippedAt,
		Orders:        orders,
		CreatedAt:     shipment.CreatedAt,
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
