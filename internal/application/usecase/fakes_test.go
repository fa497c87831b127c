package usecase_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/ports"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
	"github.com/ngvyshop/chatorder-api/pkg/textkey"
)

// In-memory fakes over the repository ports. Mutex-guarded so tests can
// exercise concurrent paths.

// ── messages ─────────────────────────────────────────────────────────────────

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.Message
}

func (f *fakeMessageRepo) Insert(m *entity.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeMessageRepo) LatestTextBySender(senderID string, since time.Time) (*entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entity.Message
	for _, m := range f.messages {
		if m.SenderID != senderID || strings.TrimSpace(m.Text) == "" || m.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
		}
	}
	return latest, nil
}

func (f *fakeMessageRepo) List(conversationID string, limit, offset int) ([]*entity.Message, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var filtered []*entity.Message
	for _, m := range f.messages {
		if conversationID == "" || m.ConversationID == conversationID {
			filtered = append(filtered, m)
		}
	}
	// Newest first.
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}
	total := len(filtered)
	if offset >= len(filtered) {
		return nil, total, nil
	}
	filtered = filtered[offset:]
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, total, nil
}

var _ repository.MessageRepository = (*fakeMessageRepo)(nil)

// ── orders ───────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*entity.Order
	// insertErrAfter fails Insert once this many rows exist (-1 disables).
	insertErrAfter int
	insertErr      error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{insertErrAfter: -1}
}

func (f *fakeOrderRepo) Insert(o *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErrAfter >= 0 && len(f.orders) >= f.insertErrAfter {
		return f.insertErr
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) LatestPendingNameBySender(senderID string, notBefore *time.Time) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entity.Order
	for _, o := range f.orders {
		if o.SenderID != senderID || o.CustomerNameStatus != entity.NameStatusPending {
			continue
		}
		if notBefore != nil && o.CreatedAt.Before(*notBefore) {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	return latest, nil
}

func (f *fakeOrderRepo) SetCustomerName(id, customerName, nameStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.CustomerName = customerName
			o.CustomerNameStatus = nameStatus
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeOrderRepo) MoveByProduct(itemName string, from, to domain.Status) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	moved := 0
	for _, o := range f.orders {
		if o.ItemName == itemName && o.Status == from {
			o.Status = to
			moved++
		}
	}
	return moved, nil
}

func (f *fakeOrderRepo) UpdateStatus(id string, to domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = to
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeOrderRepo) MarkPaidByCustomer(customerName string, paidAt time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	moved := 0
	for _, o := range f.orders {
		if o.CustomerName == customerName && o.Status == domain.StatusBilling {
			o.Status = domain.StatusCompleted
			o.BillingStatus = entity.BillingPaid
			t := paidAt
			o.BillingPaidAt = &t
			moved++
		}
	}
	return moved, nil
}

func (f *fakeOrderRepo) UpdatePrice(id string, price decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.Price = price
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeOrderRepo) SetPreparationNotes(id, notes string) error {
	return f.setField(id, func(o *entity.Order) { o.PreparationNotes = notes })
}

func (f *fakeOrderRepo) SetBillingNotes(id, notes string) error {
	return f.setField(id, func(o *entity.Order) { o.BillingNotes = notes })
}

func (f *fakeOrderRepo) setField(id string, apply func(*entity.Order)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			apply(o)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeOrderRepo) PropagatePrice(itemName string, price decimal.Decimal) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, o := range f.orders {
		if o.ItemName == itemName {
			o.Price = price
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderRepo) PropagateImage(itemName, imageURL string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, o := range f.orders {
		if o.ItemName == itemName {
			o.ImageURL = imageURL
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderRepo) ListByStatusAndSender(status domain.Status, senderID string) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Order
	for _, o := range f.orders {
		if o.Status == status && (senderID == "" || o.SenderID == senderID) {
			out = append(out, o)
		}
	}
	return out, nil
}

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

// ── products ─────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product // keyed by NameLower
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) ResolveOrCreate(p *entity.Product) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.products[p.NameLower]; ok {
		return existing, nil
	}
	f.products[p.NameLower] = p
	return p, nil
}

func (f *fakeProductRepo) GetByNameLower(nameLower string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[nameLower], nil
}

func (f *fakeProductRepo) UpdatePriceByNameLower(nameLower string, price decimal.Decimal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[nameLower]
	if !ok {
		return false, nil
	}
	p.Price = price
	return true, nil
}

func (f *fakeProductRepo) UpdateImageByNameLower(nameLower, imageURL string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[nameLower]
	if !ok {
		return false, nil
	}
	p.ImageURL = imageURL
	return true, nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func seedProduct(f *fakeProductRepo, name string, price decimal.Decimal, imageURL string) *entity.Product {
	p := &entity.Product{
		ID:        "product-" + textkey.Lower(name),
		Name:      name,
		NameLower: textkey.Lower(name),
		Price:     price,
		ImageURL:  imageURL,
	}
	f.products[p.NameLower] = p
	return p
}

// ── accounts ─────────────────────────────────────────────────────────────────

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account // keyed by PlatformID
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*entity.Account{}}
}

func (f *fakeAccountRepo) Create(a *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[a.PlatformID]; ok {
		return domain.ErrDuplicate
	}
	f.accounts[a.PlatformID] = a
	return nil
}

func (f *fakeAccountRepo) GetByPlatformID(platformID string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[platformID], nil
}

func (f *fakeAccountRepo) UpdateMappedSender(platformID, senderID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[platformID]
	if !ok {
		return false, nil
	}
	a.MappedSenderID = senderID
	return true, nil
}

func (f *fakeAccountRepo) SetOwner(staffPlatformID, ownerPlatformID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[staffPlatformID]
	if !ok {
		return false, nil
	}
	a.OwnerID = ownerPlatformID
	return true, nil
}

func (f *fakeAccountRepo) SearchStaffByName(query string) ([]*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Account
	q := strings.ToLower(query)
	for _, a := range f.accounts {
		if a.Role == entity.RoleStaff && strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) ListStaffByOwner(ownerPlatformID string) ([]*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Account
	for _, a := range f.accounts {
		if a.Role == entity.RoleStaff && a.OwnerID == ownerPlatformID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) Delete(platformID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[platformID]; !ok {
		return false, nil
	}
	delete(f.accounts, platformID)
	return true, nil
}

var _ repository.AccountRepository = (*fakeAccountRepo)(nil)

// ── transaction runner ───────────────────────────────────────────────────────

// fakeTxRunner emulates rollback by restoring the order slice on error.
type fakeTxRunner struct {
	orders   *fakeOrderRepo
	products *fakeProductRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(orders repository.OrderRepository, products repository.ProductRepository) error) error {
	f.orders.mu.Lock()
	snapshot := len(f.orders.orders)
	f.orders.mu.Unlock()

	if err := fn(f.orders, f.products); err != nil {
		f.orders.mu.Lock()
		f.orders.orders = f.orders.orders[:snapshot]
		f.orders.mu.Unlock()
		return err
	}
	return nil
}

// ── outbound ports ───────────────────────────────────────────────────────────

type fakeExtractor struct {
	result *dto.StructuredOrder
	err    error
	calls  int
}

func (f *fakeExtractor) ParseOrderMessage(_ context.Context, _ string) (*dto.StructuredOrder, error) {
	f.calls++
	return f.result, f.err
}

var _ ports.OrderExtractor = (*fakeExtractor)(nil)

type publishedMove struct {
	subject  string
	count    int
	from, to domain.Status
}

type fakeEvents struct {
	mu      sync.Mutex
	created []*entity.Order
	moved   []publishedMove
}

func (f *fakeEvents) OrderCreated(_ context.Context, o *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, o)
	return nil
}

func (f *fakeEvents) OrdersMoved(_ context.Context, subject string, count int, from, to domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moved = append(f.moved, publishedMove{subject: subject, count: count, from: from, to: to})
	return nil
}

var _ ports.OrderEventPublisher = (*fakeEvents)(nil)

type fakeIdentity struct {
	profile *ports.PlatformProfile
	token   string
	err     error
}

func (f *fakeIdentity) LoginURL() string { return "https://example.com/oauth" }

func (f *fakeIdentity) ExchangeCode(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func (f *fakeIdentity) FetchProfile(_ context.Context, _ string) (*ports.PlatformProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

var _ ports.IdentityProvider = (*fakeIdentity)(nil)

type fakeRenderer struct {
	lastData *dto.ReceiptData
}

func (f *fakeRenderer) RenderReceipt(data *dto.ReceiptData) ([]byte, error) {
	f.lastData = data
	return []byte("%PDF-1.7 fake"), nil
}

var _ ports.ReceiptRenderer = (*fakeRenderer)(nil)
