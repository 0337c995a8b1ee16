package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

func newID() string {
	return primitive.NewObjectID().Hex()
}

// store is an in-memory document store shared by the stub repositories.
type store struct {
	mu       sync.Mutex
	admins   map[string]*domain.Admin
	users    map[string]*domain.User
	accounts map[string]*domain.Account
	stocks   map[string]*domain.Stock
	items    map[string]*domain.Item

	// calls counts repository operations of any kind.
	calls int
}

func (s *store) lock() {
	s.mu.Lock()
	s.calls++
}

func (s *store) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newStore() *store {
	return &store{
		admins:   make(map[string]*domain.Admin),
		users:    make(map[string]*domain.User),
		accounts: make(map[string]*domain.Account),
		stocks:   make(map[string]*domain.Stock),
		items:    make(map[string]*domain.Item),
	}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	c.Managers = append([]string(nil), a.Managers...)
	c.Stocks = append([]string(nil), a.Stocks...)
	return &c
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ── admins ───────────────────────────────────────────────────────────────────

type stubAdminRepo struct{ *store }

var _ ports.AdminRepository = stubAdminRepo{}

func (r stubAdminRepo) List(_ context.Context) ([]*domain.Admin, error) {
	r.lock()
	defer r.mu.Unlock()
	out := make([]*domain.Admin, 0, len(r.admins))
	for _, id := range sortedKeys(r.admins) {
		out = append(out, cloneAdmin(r.admins[id]))
	}
	return out, nil
}

func (r stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	r.lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return cloneAdmin(a), nil
}

func (r stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if strings.EqualFold(a.Email, email) {
			return cloneAdmin(a), nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	r.lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if strings.EqualFold(a.Email, admin.Email) || a.Username == admin.Username {
			return nil, domain.ErrAdminExists
		}
	}
	c := cloneAdmin(admin)
	if c.ID == "" {
		c.ID = newID()
	}
	r.admins[c.ID] = c
	return cloneAdmin(c), nil
}

func (r stubAdminRepo) UpdateProfile(_ context.Context, id string, u ports.ProfileUpdate) (*domain.Admin, error) {
	r.lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	for _, other := range r.admins {
		if other.ID != id && (strings.EqualFold(other.Email, u.Email) || other.Username == u.Username) {
			return nil, domain.ErrAdminExists
		}
	}
	a.Username, a.Name, a.Email = u.Username, u.Name, u.Email
	return cloneAdmin(a), nil
}

func (r stubAdminRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.PasswordHash = hash
	a.ResetToken = ""
	a.ResetTokenExpiry = nil
	return nil
}

func (r stubAdminRepo) SetResetToken(_ context.Context, id, tokenHash string, expiry time.Time) error {
	r.lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.ResetToken = tokenHash
	a.ResetTokenExpiry = &expiry
	return nil
}

func (r stubAdminRepo) Delete(_ context.Context, id string) error {
	r.lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[id]; !ok {
		return domain.ErrAdminNotFound
	}
	delete(r.admins, id)
	return nil
}

func (r stubAdminRepo) Count(_ context.Context) (int64, error) {
	r.lock()
	defer r.mu.Unlock()
	return int64(len(r.admins)), nil
}

// ── users ────────────────────────────────────────────────────────────────────

type stubUserRepo struct{ *store }

var _ ports.UserRepository = stubUserRepo{}

func (r stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, id := range sortedKeys(r.users) {
		u := *r.users[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r stubUserRepo) Delete(_ context.Context, id string) error {
	r.lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r stubUserRepo) Count(_ context.Context) (int64, error) {
	r.lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// ── accounts ─────────────────────────────────────────────────────────────────

type stubAccountRepo struct{ *store }

var _ ports.AccountRepository = stubAccountRepo{}

func (r stubAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	r.lock()
	defer r.mu.Unlock()
	out := make([]*domain.Account, 0, len(r.accounts))
	for _, id := range sortedKeys(r.accounts) {
		out = append(out, cloneAccount(r.accounts[id]))
	}
	return out, nil
}

func (r stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r stubAccountRepo) FindDetail(_ context.Context, id string) (*domain.AccountDetail, error) {
	r.lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	d := &domain.AccountDetail{
		ID:       a.ID,
		Name:     a.Name,
		Plan:     a.Plan,
		Managers: []domain.User{},
		Stocks:   []domain.StockDetail{},
	}
	if u, ok := r.users[a.Owner]; ok {
		d.Owner = &domain.OwnerRef{ID: u.ID, Email: u.Email}
	}
	for _, m := range a.Managers {
		if u, ok := r.users[m]; ok {
			d.Managers = append(d.Managers, *u)
		}
	}
	for _, sid := range a.Stocks {
		if s, ok := r.stocks[sid]; ok {
			d.Stocks = append(d.Stocks, r.stockDetail(s))
		}
	}
	return d, nil
}

func (r stubAccountRepo) Delete(_ context.Context, id string) error {
	r.lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r stubAccountRepo) CountByOwner(_ context.Context, userID string) (int64, error) {
	r.lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.accounts {
		if a.Owner == userID {
			n++
		}
	}
	return n, nil
}

func (r stubAccountRepo) CountByPlan(_ context.Context) (map[domain.Plan]int64, error) {
	r.lock()
	defer r.mu.Unlock()
	out := make(map[domain.Plan]int64)
	for _, a := range r.accounts {
		out[a.Plan]++
	}
	return out, nil
}

func (r stubAccountRepo) PullManager(_ context.Context, userID string) error {
	r.lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		a.Managers = without(a.Managers, userID)
	}
	return nil
}

func (r stubAccountRepo) PullStock(_ context.Context, accountID, stockID string) error {
	r.lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[accountID]; ok {
		a.Stocks = without(a.Stocks, stockID)
	}
	return nil
}

func (r stubAccountRepo) Count(_ context.Context) (int64, error) {
	r.lock()
	defer r.mu.Unlock()
	return int64(len(r.accounts)), nil
}

// ── stocks ───────────────────────────────────────────────────────────────────

type stubStockRepo struct{ *store }

var _ ports.StockRepository = stubStockRepo{}

// stockDetail resolves items; the caller holds the lock.
func (s *store) stockDetail(st *domain.Stock) domain.StockDetail {
	d := domain.StockDetail{ID: st.ID, Account: st.Account, Items: []domain.Item{}}
	for _, iid := range st.Items {
		if it, ok := s.items[iid]; ok {
			d.Items = append(d.Items, *it)
		}
	}
	return d
}

func (r stubStockRepo) ListDetails(_ context.Context) ([]*domain.StockDetail, error) {
	r.lock()
	defer r.mu.Unlock()
	out := make([]*domain.StockDetail, 0, len(r.stocks))
	for _, id := range sortedKeys(r.stocks) {
		d := r.stockDetail(r.stocks[id])
		out = append(out, &d)
	}
	return out, nil
}

func (r stubStockRepo) FindByID(_ context.Context, id string) (*domain.Stock, error) {
	r.lock()
	defer r.mu.Unlock()
	s, ok := r.stocks[id]
	if !ok {
		return nil, domain.ErrStockNotFound
	}
	c := *s
	c.Items = append([]string(nil), s.Items...)
	return &c, nil
}

func (r stubStockRepo) FindDetail(_ context.Context, id string) (*domain.StockDetail, error) {
	r.lock()
	defer r.mu.Unlock()
	s, ok := r.stocks[id]
	if !ok {
		return nil, domain.ErrStockNotFound
	}
	d := r.stockDetail(s)
	return &d, nil
}

func (r stubStockRepo) IDsByAccount(_ context.Context, accountID string) ([]string, error) {
	r.lock()
	defer r.mu.Unlock()
	var out []string
	for _, id := range sortedKeys(r.stocks) {
		if r.stocks[id].Account == accountID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r stubStockRepo) Delete(_ context.Context, id string) error {
	r.lock()
	defer r.mu.Unlock()
	if _, ok := r.stocks[id]; !ok {
		return domain.ErrStockNotFound
	}
	delete(r.stocks, id)
	return nil
}

func (r stubStockRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	r.lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.stocks[id]; ok {
			delete(r.stocks, id)
			n++
		}
	}
	return n, nil
}

func (r stubStockRepo) PullItem(_ context.Context, stockID, itemID string) error {
	r.lock()
	defer r.mu.Unlock()
	if s, ok := r.stocks[stockID]; ok {
		s.Items = without(s.Items, itemID)
	}
	return nil
}

func (r stubStockRepo) Count(_ context.Context) (int64, error) {
	r.lock()
	defer r.mu.Unlock()
	return int64(len(r.stocks)), nil
}

// ── items ────────────────────────────────────────────────────────────────────

type stubItemRepo struct{ *store }

var _ ports.ItemRepository = stubItemRepo{}

func (r stubItemRepo) views(match func(*domain.Item) bool) []*domain.ItemView {
	out := []*domain.ItemView{}
	for _, id := range sortedKeys(r.items) {
		it := r.items[id]
		if !match(it) {
			continue
		}
		v := &domain.ItemView{ID: it.ID, Name: it.Name, Quantity: it.Quantity, Price: it.Price, CreatedAt: it.CreatedAt}
		if _, ok := r.stocks[it.Stock]; ok {
			v.Stock = &domain.StockRef{ID: it.Stock}
		}
		out = append(out, v)
	}
	return out
}

func (r stubItemRepo) List(_ context.Context) ([]*domain.ItemView, error) {
	r.lock()
	defer r.mu.Unlock()
	return r.views(func(*domain.Item) bool { return true }), nil
}

func (r stubItemRepo) Search(_ context.Context, query string) ([]*domain.ItemView, error) {
	r.lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	return r.views(func(it *domain.Item) bool {
		return strings.Contains(strings.ToLower(it.Name), q)
	}), nil
}

func (r stubItemRepo) FindByID(_ context.Context, id string) (*domain.Item, error) {
	r.lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	c := *it
	return &c, nil
}

func (r stubItemRepo) Delete(_ context.Context, id string) error {
	r.lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r stubItemRepo) DeleteByStocks(_ context.Context, stockIDs []string) (int64, error) {
	r.lock()
	defer r.mu.Unlock()
	in := make(map[string]bool, len(stockIDs))
	for _, id := range stockIDs {
		in[id] = true
	}
	var n int64
	for id, it := range r.items {
		if in[it.Stock] {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r stubItemRepo) Count(_ context.Context) (int64, error) {
	r.lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

// ── seeding ──────────────────────────────────────────────────────────────────

func (s *store) addUser(email string) *domain.User {
	u := &domain.User{ID: newID(), Username: email, Name: email, Email: email, Role: domain.RoleUser}
	s.users[u.ID] = u
	return u
}

func (s *store) addAccount(name string, plan domain.Plan, owner string, managers ...string) *domain.Account {
	a := &domain.Account{ID: newID(), Name: name, Plan: plan, Owner: owner, Managers: managers}
	s.accounts[a.ID] = a
	return a
}

func (s *store) addStock(account *domain.Account) *domain.Stock {
	st := &domain.Stock{ID: newID(), Account: account.ID}
	s.stocks[st.ID] = st
	account.Stocks = append(account.Stocks, st.ID)
	return st
}

func (s *store) addItem(stock *domain.Stock, name string) *domain.Item {
	it := &domain.Item{ID: newID(), Stock: stock.ID, Name: name, Quantity: 1, Price: 9.5}
	s.items[it.ID] = it
	stock.Items = append(stock.Items, it.ID)
	return it
}

// ── security collaborators ───────────────────────────────────────────────────

// countingHasher records how often each method is called.
type countingHasher struct {
	hashCalls   int
	verifyCalls int
	err         error
}

func (h *countingHasher) Hash(plain string) (string, error) {
	h.hashCalls++
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plain, nil
}

func (h *countingHasher) Verify(plain, hash string) bool {
	h.verifyCalls++
	return hash == "hashed:"+plain
}

type stubSessionCodec struct{}

func (stubSessionCodec) Issue(c domain.SessionClaims) (*domain.Session, error) {
	return &domain.Session{Token: "token-" + c.ID, Claims: c, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (stubSessionCodec) Parse(token string) (*domain.SessionClaims, error) {
	return nil, errors.New("not implemented")
}

type stubResetCodec struct{}

func (stubResetCodec) Issue(adminID, nonce string) (string, error) {
	return adminID + "|" + nonce, nil
}

func (stubResetCodec) Parse(token string) (string, string, error) {
	id, nonce, ok := strings.Cut(token, "|")
	if !ok {
		return "", "", domain.ErrInvalidResetToken
	}
	return id, nonce, nil
}

// stubLimiter keys failures by lowercased email like the Redis limiter.
type stubLimiter struct {
	max      int
	failures map[string]int
	err      error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, failures: make(map[string]int)}
}

func (l *stubLimiter) Blocked(_ context.Context, email string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.failures[strings.ToLower(email)] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures[strings.ToLower(email)]++
	return l.err
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	delete(l.failures, strings.ToLower(email))
	return l.err
}

type recordingNotifier struct {
	tokens []string
	emails []string
}

func (n *recordingNotifier) NotifyReset(_ context.Context, admin *domain.Admin, token string) error {
	n.tokens = append(n.tokens, token)
	n.emails = append(n.emails, admin.Email)
	return nil
}

type recordingSink struct {
	events []domain.AuditEvent
}

func (s *recordingSink) Emit(e domain.AuditEvent) {
	s.events = append(s.events, e)
}

func (s *recordingSink) actions() []domain.AuditAction {
	out := make([]domain.AuditAction, len(s.events))
	for i, e := range s.events {
		out[i] = e.Action
	}
	return out
}
