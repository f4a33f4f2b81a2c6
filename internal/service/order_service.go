package service

import (
	"context"
	"log/slog"

	"chayen/internal/dal"
	"chayen/internal/loyalty"
	"chayen/internal/models"
	"chayen/internal/pricing"

	"github.com/google/uuid"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	ListOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, req models.StatusUpdateRequest) (models.Order, error)
}

type orderService struct {
	orderRepo   dal.OrderRepository
	memberRepo  dal.MemberRepository
	catalogRepo dal.CatalogRepository
	logger      *slog.Logger
}

func NewOrderService(orderRepo dal.OrderRepository, memberRepo dal.MemberRepository, catalogRepo dal.CatalogRepository, logger *slog.Logger) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		memberRepo:  memberRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// CreateOrder settles an order. Every derived field — subtotal, tier discount,
// points discount, total, points earned — is recomputed from catalog prices
// and the member's stored tier; the client's numbers are verified against the
// server's and the request is rejected on any mismatch.
func (s *orderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, models.ErrEmptyOrder
	}
	status := req.Status
	if status == "" {
		status = models.StatusCompleted
	}
	if status != models.StatusPending && status != models.StatusCompleted {
		return models.Order{}, models.ErrInvalidStatus
	}
	if !req.PaymentMethod.Valid() {
		return models.Order{}, models.ErrInvalidPaymentMethod
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return models.Order{}, models.ErrInvalidQuantity
		}
		if !item.Sweetness.Valid() {
			return models.Order{}, models.ErrInvalidSweetness
		}
	}

	items, lines, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return models.Order{}, err
	}

	settlement, err := s.computeSettlement(ctx, lines, req.MemberID, req.PointsUsed)
	if err != nil {
		return models.Order{}, err
	}

	if req.TotalPrice != settlement.Total || req.DiscountAmount != settlement.DiscountAmount {
		return models.Order{}, models.ErrTotalMismatch
	}
	if req.PointsEarned != settlement.PointsEarned {
		return models.Order{}, models.ErrPointsMismatch
	}

	amountReceived := req.AmountReceived
	var change int64
	switch req.PaymentMethod {
	case models.PaymentCash:
		if amountReceived < settlement.Total {
			return models.Order{}, models.ErrInsufficientCash
		}
		change = amountReceived - settlement.Total
	case models.PaymentBankTransfer:
		// QR transfers are exact; nothing to count back.
		amountReceived = settlement.Total
		change = 0
	}

	order := models.Order{
		ID:             uuid.NewString(),
		MemberID:       req.MemberID,
		StaffID:        req.StaffID,
		ShiftID:        req.ShiftID,
		Status:         status,
		PaymentMethod:  req.PaymentMethod,
		TotalPrice:     settlement.Total,
		DiscountAmount: settlement.DiscountAmount,
		PointsEarned:   settlement.PointsEarned,
		PointsUsed:     req.PointsUsed,
		AmountReceived: amountReceived,
		Change:         change,
		Note:           req.Note,
		Items:          items,
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		return models.Order{}, err
	}

	if created.MemberID != nil {
		member, err := s.memberRepo.GetMemberByID(ctx, *created.MemberID)
		if err != nil {
			return models.Order{}, err
		}
		created.Member = &member
	}

	s.logger.Info("order settled",
		"order_id", created.ID,
		"total", created.TotalPrice,
		"discount", created.DiscountAmount,
		"points_earned", created.PointsEarned,
		"points_used", created.PointsUsed,
		"payment_method", created.PaymentMethod,
	)

	return created, nil
}

// resolveItems looks up catalog prices for every line and builds both the
// persisted order items and the pricing lines. Inactive menu items or
// toppings cannot be sold.
func (s *orderService) resolveItems(ctx context.Context, reqItems []models.OrderItemRequest) ([]models.OrderItem, []pricing.Line, error) {
	menuIDs := make([]string, 0, len(reqItems))
	var toppingIDs []string
	for _, item := range reqItems {
		menuIDs = append(menuIDs, item.MenuID)
		toppingIDs = append(toppingIDs, item.ToppingIDs...)
	}

	menus, err := s.catalogRepo.GetMenuItems(ctx, menuIDs)
	if err != nil {
		return nil, nil, err
	}
	toppings, err := s.catalogRepo.GetToppings(ctx, toppingIDs)
	if err != nil {
		return nil, nil, err
	}

	items := make([]models.OrderItem, 0, len(reqItems))
	lines := make([]pricing.Line, 0, len(reqItems))
	for _, reqItem := range reqItems {
		menu, ok := menus[reqItem.MenuID]
		if !ok {
			return nil, nil, models.ErrMenuNotFound
		}
		if !menu.IsActive {
			return nil, nil, models.ErrMenuUnavailable
		}

		item := models.OrderItem{
			ID:        uuid.NewString(),
			MenuID:    menu.ID,
			MenuName:  menu.Name,
			UnitPrice: menu.Price,
			Quantity:  reqItem.Quantity,
			Sweetness: reqItem.Sweetness,
			Note:      reqItem.Note,
		}

		var toppingTotal int64
		for _, id := range reqItem.ToppingIDs {
			topping, ok := toppings[id]
			if !ok {
				return nil, nil, models.ErrToppingNotFound
			}
			if !topping.IsActive {
				return nil, nil, models.ErrToppingUnavailable
			}
			toppingTotal += topping.Price
			item.Toppings = append(item.Toppings, topping)
		}

		items = append(items, item)
		lines = append(lines, pricing.Line{
			UnitPrice:    menu.Price,
			ToppingTotal: toppingTotal,
			Quantity:     reqItem.Quantity,
		})
	}

	return items, lines, nil
}

func (s *orderService) computeSettlement(ctx context.Context, lines []pricing.Line, memberID *string, pointsUsed int64) (pricing.Settlement, error) {
	settlement := pricing.Settlement{
		Subtotal: pricing.Subtotal(lines),
		Glasses:  pricing.Glasses(lines),
	}

	if memberID == nil {
		if pointsUsed != 0 {
			return pricing.Settlement{}, models.ErrInvalidRedemption
		}
		settlement.Total = settlement.Subtotal
		return settlement, nil
	}

	member, err := s.memberRepo.GetMemberByID(ctx, *memberID)
	if err != nil {
		return pricing.Settlement{}, err
	}

	settlement.TierDiscount = pricing.TierDiscount(settlement.Subtotal, loyalty.DiscountPercent(member.Tier))
	afterTier := settlement.Subtotal - settlement.TierDiscount

	if !loyalty.ValidRedemption(pointsUsed, member.Points, afterTier) {
		return pricing.Settlement{}, models.ErrInvalidRedemption
	}

	settlement.PointsDiscount = loyalty.RedemptionValue(pointsUsed)
	settlement.DiscountAmount = settlement.TierDiscount + settlement.PointsDiscount
	settlement.Total = afterTier - settlement.PointsDiscount
	settlement.PointsEarned = loyalty.PointsEarned(settlement.Glasses, settlement.PointsDiscount)

	return settlement, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (models.Order, error) {
	if id == "" {
		return models.Order{}, models.ErrOrderNotFound
	}
	return s.orderRepo.GetOrderByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, models.ErrInvalidStatus
	}
	return s.orderRepo.ListOrders(ctx, filters)
}

// UpdateStatus drives the order state machine. Cancellation of a member order
// reverses the points ledger and recomputes the tier atomically with the
// status change; a second cancellation is rejected before any mutation.
func (s *orderService) UpdateStatus(ctx context.Context, id string, req models.StatusUpdateRequest) (models.Order, error) {
	if id == "" {
		return models.Order{}, models.ErrOrderNotFound
	}
	if !req.Status.Valid() {
		return models.Order{}, models.ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateOrderStatus(ctx, id, req.Status, req.Note)
	if err != nil {
		return models.Order{}, err
	}

	if req.Status == models.StatusCancelled {
		s.logger.Info("order cancelled",
			"order_id", order.ID,
			"points_reversed", order.PointsEarned-order.PointsUsed,
		)
	}

	return order, nil
}
