package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// ListState is a snapshot of a CustomerList
type ListState struct {
	Status        Status
	Query         Query
	Customers     []models.CustomerSummary
	TotalElements int64
	// Err is the failure of the latest fetch; Customers keeps the last good page
	Err error
	// PendingDelete is the customer awaiting delete confirmation
	PendingDelete *models.CustomerSummary
	// ActionErr is the failure of the latest delete attempt
	ActionErr error
}

// CustomerList manages the paginated, sorted and filtered customer listing
type CustomerList struct {
	gateway CustomerGateway
	logger  *slog.Logger
	form    *CustomerForm

	mu            sync.Mutex
	query         Query
	status        Status
	customers     []models.CustomerSummary
	totalElements int64
	err           error
	pendingDelete *models.CustomerSummary
	actionErr     error
	token         uint64
	observer      func(ListState)
}

// NewCustomerList creates a list controller with the default query
func NewCustomerList(gateway CustomerGateway, logger *slog.Logger, pageSize int) *CustomerList {
	l := &CustomerList{
		gateway: gateway,
		logger:  logger,
		query:   NewQuery(pageSize),
	}
	l.form = NewCustomerForm(gateway, logger, func(ctx context.Context, _ *models.Customer) {
		if err := l.Refresh(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
			l.logger.Warn("refresh after save failed", slog.String("error", err.Error()))
		}
	})
	return l
}

// Form returns the create/edit dialog whose saves refresh this list
func (l *CustomerList) Form() *CustomerForm {
	return l.form
}

// SetObserver registers fn to receive every state transition
func (l *CustomerList) SetObserver(fn func(ListState)) {
	l.mu.Lock()
	l.observer = fn
	l.mu.Unlock()
}

// State returns a snapshot of the list
func (l *CustomerList) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Refresh refetches the current query
func (l *CustomerList) Refresh(ctx context.Context) error {
	return l.update(ctx, func(*Query) {})
}

// SetPage moves to a zero-based page
func (l *CustomerList) SetPage(ctx context.Context, page int) error {
	if page < 0 {
		return models.ErrInvalidInput("page must not be negative")
	}
	return l.update(ctx, func(q *Query) { q.Page = page })
}

// SetPageSize changes the page size and returns to the first page
func (l *CustomerList) SetPageSize(ctx context.Context, size int) error {
	if size < 1 || size > models.MaxPageSize {
		return models.ErrInvalidInput("page size must be between 1 and 100")
	}
	return l.update(ctx, func(q *Query) {
		q.Size = size
		q.Page = 0
	})
}

// SortBy selects a sort column, toggling direction when it is already selected
func (l *CustomerList) SortBy(ctx context.Context, field models.SortField) error {
	if !field.IsValid() {
		return models.ErrInvalidInput("unknown sort field: " + string(field))
	}
	return l.update(ctx, func(q *Query) { q.sortBy(field) })
}

// SetSearch sets the free-text search and returns to the first page
func (l *CustomerList) SetSearch(ctx context.Context, text string) error {
	return l.update(ctx, func(q *Query) { q.setSearch(text) })
}

// SetFilter sets the advanced address filter and returns to the first page
func (l *CustomerList) SetFilter(ctx context.Context, filter models.AddressFilter) error {
	return l.update(ctx, func(q *Query) { q.setFilter(filter) })
}

// ClearFilters resets search text, filter and page together
func (l *CustomerList) ClearFilters(ctx context.Context) error {
	return l.update(ctx, func(q *Query) { q.clearCriteria() })
}

// RequestDelete opens the delete confirmation for a listed customer
func (l *CustomerList) RequestDelete(customer models.CustomerSummary) {
	l.mu.Lock()
	l.pendingDelete = &customer
	l.actionErr = nil
	snap, obs := l.snapshotLocked(), l.observer
	l.mu.Unlock()
	notify(obs, snap)
}

// CancelDelete closes the delete confirmation
func (l *CustomerList) CancelDelete() {
	l.mu.Lock()
	l.pendingDelete = nil
	l.actionErr = nil
	snap, obs := l.snapshotLocked(), l.observer
	l.mu.Unlock()
	notify(obs, snap)
}

// ConfirmDelete deletes the pending customer and refetches the list. On
// failure the confirmation stays open and the page is left untouched.
func (l *CustomerList) ConfirmDelete(ctx context.Context) error {
	l.mu.Lock()
	pending := l.pendingDelete
	l.mu.Unlock()
	if pending == nil {
		return nil
	}

	if err := l.gateway.DeleteCustomer(ctx, pending.ID); err != nil {
		l.logger.Error("failed to delete customer",
			slog.Int64("customer_id", pending.ID),
			slog.String("error", err.Error()),
		)
		l.mu.Lock()
		l.actionErr = err
		snap, obs := l.snapshotLocked(), l.observer
		l.mu.Unlock()
		notify(obs, snap)
		return err
	}

	l.logger.Info("customer deleted", slog.Int64("customer_id", pending.ID))

	l.mu.Lock()
	if l.pendingDelete != nil && l.pendingDelete.ID == pending.ID {
		l.pendingDelete = nil
	}
	l.actionErr = nil
	l.mu.Unlock()

	return l.Refresh(ctx)
}

// update applies mutate to the query and fetches the result. Only the most
// recently issued fetch may change the visible page.
func (l *CustomerList) update(ctx context.Context, mutate func(*Query)) error {
	l.mu.Lock()
	mutate(&l.query)
	q := l.query
	l.token++
	token := l.token
	l.status = StatusLoading
	l.err = nil
	snap, obs := l.snapshotLocked(), l.observer
	l.mu.Unlock()
	notify(obs, snap)

	page, err := l.fetch(ctx, q)

	l.mu.Lock()
	if token != l.token {
		l.mu.Unlock()
		l.logger.Debug("discarding stale customer page",
			slog.String("retrieval", q.Retrieval().String()),
			slog.Int("page", q.Page),
		)
		return ErrSuperseded
	}
	if err != nil {
		l.status = StatusError
		l.err = err
	} else {
		l.status = StatusSuccess
		l.customers = page.Content
		l.totalElements = page.TotalElements
	}
	snap, obs = l.snapshotLocked(), l.observer
	l.mu.Unlock()
	notify(obs, snap)

	if err != nil {
		l.logger.Error("failed to fetch customers",
			slog.String("retrieval", q.Retrieval().String()),
			slog.String("error", err.Error()),
		)
	}
	return err
}

func (l *CustomerList) fetch(ctx context.Context, q Query) (*models.Page[models.CustomerSummary], error) {
	req := q.PageRequest()
	switch q.Retrieval() {
	case RetrieveSearch:
		return l.gateway.SearchCustomers(ctx, q.Search, req)
	case RetrieveFilter:
		return l.gateway.AdvancedSearchCustomers(ctx, q.Filter, req)
	default:
		return l.gateway.ListCustomers(ctx, req)
	}
}

func (l *CustomerList) snapshotLocked() ListState {
	s := ListState{
		Status:        l.status,
		Query:         l.query,
		Customers:     append([]models.CustomerSummary(nil), l.customers...),
		TotalElements: l.totalElements,
		Err:           l.err,
		ActionErr:     l.actionErr,
	}
	if l.pendingDelete != nil {
		pending := *l.pendingDelete
		s.PendingDelete = &pending
	}
	return s
}

func notify[T any](fn func(T), state T) {
	if fn != nil {
		fn(state)
	}
}
