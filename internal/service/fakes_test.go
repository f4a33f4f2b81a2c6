package service

import (
	"context"
	"time"

	"chayen/internal/loyalty"
	"chayen/internal/models"
)

// The fakes below honor the same contracts as the SQL repositories: the order
// fake applies member points mutations and tier recomputes on settlement and
// cancellation, and the shift fake enforces the one-open-shift rule the
// partial unique index enforces in PostgreSQL.

type fakeMemberRepo struct {
	members map[string]*models.Member
	glasses map[string]int64
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		members: make(map[string]*models.Member),
		glasses: make(map[string]int64),
	}
}

func (f *fakeMemberRepo) CreateMember(_ context.Context, member models.Member) (models.Member, error) {
	for _, m := range f.members {
		if m.Phone == member.Phone {
			return models.Member{}, models.ErrPhoneTaken
		}
	}
	member.CreatedAt = time.Now()
	f.members[member.ID] = &member
	return member, nil
}

func (f *fakeMemberRepo) GetMemberByID(_ context.Context, id string) (models.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return models.Member{}, models.ErrMemberNotFound
	}
	return *m, nil
}

func (f *fakeMemberRepo) GetMemberByPhone(_ context.Context, phone string) (models.Member, error) {
	for _, m := range f.members {
		if m.Phone == phone {
			return *m, nil
		}
	}
	return models.Member{}, models.ErrMemberNotFound
}

func (f *fakeMemberRepo) CountCompletedGlasses(_ context.Context, memberID string) (int64, error) {
	return f.glasses[memberID], nil
}

type fakeCatalogRepo struct {
	menus    map[string]models.MenuItem
	toppings map[string]models.Topping
	staff    map[string]models.Staff
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		menus:    make(map[string]models.MenuItem),
		toppings: make(map[string]models.Topping),
		staff:    make(map[string]models.Staff),
	}
}

func (f *fakeCatalogRepo) GetMenuItems(_ context.Context, ids []string) (map[string]models.MenuItem, error) {
	found := make(map[string]models.MenuItem)
	for _, id := range ids {
		if m, ok := f.menus[id]; ok {
			found[id] = m
		}
	}
	return found, nil
}

func (f *fakeCatalogRepo) GetToppings(_ context.Context, ids []string) (map[string]models.Topping, error) {
	found := make(map[string]models.Topping)
	for _, id := range ids {
		if t, ok := f.toppings[id]; ok {
			found[id] = t
		}
	}
	return found, nil
}

func (f *fakeCatalogRepo) GetStaffByID(_ context.Context, id string) (models.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return models.Staff{}, models.ErrStaffNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) GetStaffByPIN(_ context.Context, pin string) (models.Staff, error) {
	for _, s := range f.staff {
		if s.ID+"-pin" == pin {
			return s, nil
		}
	}
	return models.Staff{}, models.ErrInvalidPIN
}

type fakeOrderRepo struct {
	orders  map[string]*models.Order
	members *fakeMemberRepo
}

func newFakeOrderRepo(members *fakeMemberRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order), members: members}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order models.Order) (models.Order, error) {
	if order.MemberID != nil {
		m, ok := f.members.members[*order.MemberID]
		if !ok {
			return models.Order{}, models.ErrMemberNotFound
		}
		if order.PointsUsed > m.Points {
			return models.Order{}, models.ErrInvalidRedemption
		}
	}

	order.CreatedAt = time.Now()
	f.orders[order.ID] = &order
	if order.MemberID != nil && order.Status == models.StatusCompleted {
		if err := f.applyMemberMutation(*order.MemberID, order.PointsEarned-order.PointsUsed); err != nil {
			return models.Order{}, err
		}
	}
	return order, nil
}

// applyMemberMutation recomputes the tier even on a zero delta, the same as
// the SQL repository: a fully redeemed order still changes the glass count.
func (f *fakeOrderRepo) applyMemberMutation(memberID string, delta int64) error {
	m, ok := f.members.members[memberID]
	if !ok {
		return models.ErrMemberNotFound
	}
	m.Points += delta

	var glasses int64
	for _, o := range f.orders {
		if o.MemberID != nil && *o.MemberID == memberID && o.Status == models.StatusCompleted {
			for _, item := range o.Items {
				glasses += item.Quantity
			}
		}
	}
	m.Tier = loyalty.TierFor(glasses)
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, id string) (models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return models.Order{}, models.ErrOrderNotFound
	}
	return *o, nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, filters models.OrderFilters) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range f.orders {
		if filters.Status != "" && o.Status != filters.Status {
			continue
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id string, status models.OrderStatus, note string) (models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return models.Order{}, models.ErrOrderNotFound
	}

	switch {
	case o.Status == models.StatusCancelled && status == models.StatusCancelled:
		return models.Order{}, models.ErrOrderAlreadyCancelled
	case o.Status == models.StatusCancelled:
		return models.Order{}, models.ErrInvalidTransition
	case status == models.StatusProcessing && o.Status != models.StatusPending:
		return models.Order{}, models.ErrInvalidTransition
	case status == models.StatusCompleted && o.Status != models.StatusProcessing:
		return models.Order{}, models.ErrInvalidTransition
	case status == models.StatusCancelled && o.Status != models.StatusPending && o.Status != models.StatusCompleted:
		return models.Order{}, models.ErrInvalidTransition
	}

	if status == models.StatusCompleted && o.MemberID != nil {
		if m, ok := f.members.members[*o.MemberID]; ok && o.PointsUsed > m.Points {
			return models.Order{}, models.ErrInvalidRedemption
		}
	}

	prev := o.Status
	o.Status = status
	if note != "" {
		o.Note = note
	}

	if o.MemberID != nil {
		switch {
		case status == models.StatusCompleted:
			if err := f.applyMemberMutation(*o.MemberID, o.PointsEarned-o.PointsUsed); err != nil {
				return models.Order{}, err
			}
		case status == models.StatusCancelled && prev == models.StatusCompleted:
			if err := f.applyMemberMutation(*o.MemberID, -(o.PointsEarned - o.PointsUsed)); err != nil {
				return models.Order{}, err
			}
		}
	}

	return *o, nil
}

type fakeShiftRepo struct {
	shifts    map[string]*models.Shift
	summaries map[string]models.ShiftSummary
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{
		shifts:    make(map[string]*models.Shift),
		summaries: make(map[string]models.ShiftSummary),
	}
}

func (f *fakeShiftRepo) CreateShift(_ context.Context, shift models.Shift) (models.Shift, error) {
	for _, s := range f.shifts {
		if s.StaffID == shift.StaffID && s.Status == models.ShiftOpen {
			return models.Shift{}, models.ErrShiftAlreadyOpen
		}
	}
	shift.OpenedAt = time.Now()
	f.shifts[shift.ID] = &shift
	return shift, nil
}

func (f *fakeShiftRepo) GetShiftByID(_ context.Context, id string) (models.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return models.Shift{}, models.ErrShiftNotFound
	}
	return *s, nil
}

func (f *fakeShiftRepo) ListShifts(_ context.Context, filters models.ShiftFilters) ([]models.Shift, error) {
	var shifts []models.Shift
	for _, s := range f.shifts {
		if filters.StaffID != "" && s.StaffID != filters.StaffID {
			continue
		}
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		shifts = append(shifts, *s)
	}
	return shifts, nil
}

func (f *fakeShiftRepo) HasOpenShift(_ context.Context, staffID string) (bool, error) {
	for _, s := range f.shifts {
		if s.StaffID == staffID && s.Status == models.ShiftOpen {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeShiftRepo) CloseShift(_ context.Context, id string, req models.CloseShiftRequest) (models.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return models.Shift{}, models.ErrShiftNotFound
	}
	if s.Status == models.ShiftClosed {
		return models.Shift{}, models.ErrShiftAlreadyClosed
	}

	now := time.Now()
	total := req.CashSales + req.QRSales
	s.Status = models.ShiftClosed
	s.ClosedAt = &now
	s.EndingCash = &req.EndingCash
	s.CashSales = &req.CashSales
	s.QRSales = &req.QRSales
	s.TotalSales = &total
	s.Note = req.Note
	return *s, nil
}

func (f *fakeShiftRepo) GetShiftSummary(_ context.Context, id string) (models.ShiftSummary, error) {
	summary, ok := f.summaries[id]
	if !ok {
		return models.ShiftSummary{ShiftID: id}, nil
	}
	return summary, nil
}

type fakeVoucherRepo struct {
	vouchers map[string]*models.Voucher
	members  *fakeMemberRepo
}

func newFakeVoucherRepo(members *fakeMemberRepo) *fakeVoucherRepo {
	return &fakeVoucherRepo{vouchers: make(map[string]*models.Voucher), members: members}
}

func (f *fakeVoucherRepo) CreateVoucher(_ context.Context, voucher models.Voucher) (models.Voucher, error) {
	m, ok := f.members.members[voucher.MemberID]
	if !ok {
		return models.Voucher{}, models.ErrMemberNotFound
	}
	if voucher.PointsUsed > m.Points {
		return models.Voucher{}, models.ErrInvalidRedemption
	}

	m.Points -= voucher.PointsUsed
	voucher.CreatedAt = time.Now()
	f.vouchers[voucher.Code] = &voucher
	return voucher, nil
}

func (f *fakeVoucherRepo) GetVoucherByCode(_ context.Context, code string) (models.Voucher, error) {
	v, ok := f.vouchers[code]
	if !ok {
		return models.Voucher{}, models.ErrVoucherNotFound
	}
	return *v, nil
}

func (f *fakeVoucherRepo) RedeemVoucher(_ context.Context, code string) (models.Voucher, error) {
	v, ok := f.vouchers[code]
	if !ok {
		return models.Voucher{}, models.ErrVoucherNotFound
	}
	if v.IsUsed {
		return models.Voucher{}, models.ErrVoucherUsed
	}
	if time.Now().After(v.ExpiresAt) {
		return models.Voucher{}, models.ErrVoucherExpired
	}

	now := time.Now()
	v.IsUsed = true
	v.UsedAt = &now
	return *v, nil
}

func (f *fakeVoucherRepo) ListMemberVouchers(_ context.Context, memberID string) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	for _, v := range f.vouchers {
		if v.MemberID == memberID {
			vouchers = append(vouchers, *v)
		}
	}
	return vouchers, nil
}
