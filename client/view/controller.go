package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goldenhive/inventory/client"
	"github.com/goldenhive/inventory/logger"
	"github.com/goldenhive/inventory/models"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultToastTTL = 3 * time.Second
)

// ErrNoProductSelected is returned by ConfirmDelete without an open
// delete confirmation.
var ErrNoProductSelected = errors.New("no product selected for deletion")

// Backend is the slice of *client.Client the controller uses.
type Backend interface {
	ListProducts(ctx context.Context, params client.ListParams) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, payload client.ProductPayload) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uint, payload client.ProductPayload) (*models.Product, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type Controller struct {
	backend  Backend
	debounce time.Duration
	toastTTL time.Duration
	now      func() time.Time
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	state      State
	nextGen    uint64
	nextToast  uint64
	debouncer  *time.Timer
	toastTimer *time.Timer
	listeners  map[int]func(State)
	nextListen int

	// States queued for listeners, in transition order. undelivered also
	// counts the state currently being handed out.
	pending      []State
	undelivered  int
	closed       bool
	drained      *sync.Cond
	wake         chan struct{}
	notifierDone chan struct{}
}

type Option func(*Controller)

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

func WithToastTTL(d time.Duration) Option {
	return func(c *Controller) { c.toastTTL = d }
}

// WithClock overrides the time source used for toast expiry stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func NewController(backend Backend, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		backend:   backend,
		debounce:  DefaultDebounce,
		toastTTL:  DefaultToastTTL,
		now:       time.Now,
		log:       logger.Discard(),
		ctx:       ctx,
		cancel:    cancel,
		state:     State{Products: []models.Product{}, Categories: []string{}},
		listeners: map[int]func(State){},
		wake:      make(chan struct{}, 1),
	}
	c.drained = sync.NewCond(&c.mu)
	c.notifierDone = make(chan struct{})
	for _, opt := range opts {
		opt(c)
	}
	go c.deliver()
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to be called with the new state after every
// transition. Calls happen on a single goroutine in transition order, so a
// slow listener delays later states but never sees them out of order.
// The returned func removes it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextListen
	c.nextListen++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Start loads the product list and the category list immediately.
func (c *Controller) Start() {
	c.Refresh()
	c.refreshCategories()
}

// SetSearch records the search text and schedules a debounced fetch.
func (c *Controller) SetSearch(search string) {
	c.dispatch(SearchChanged{Search: search})
	c.schedule()
}

// SetCategory records the category filter and schedules a debounced fetch.
func (c *Controller) SetCategory(category string) {
	c.dispatch(CategoryChanged{Category: category})
	c.schedule()
}

// Refresh fetches the list right away, superseding any pending debounce.
func (c *Controller) Refresh() {
	c.mu.Lock()
	if c.debouncer != nil && c.debouncer.Stop() {
		c.wg.Done()
	}
	c.debouncer = nil
	c.mu.Unlock()

	c.fetch()
}

func (c *Controller) OpenAdd() {
	c.dispatch(ModalOpened{Modal: Modal{Kind: ModalAdd}})
}

func (c *Controller) OpenEdit(p models.Product) {
	c.dispatch(ModalOpened{Modal: Modal{Kind: ModalEdit, Product: &p}})
}

func (c *Controller) OpenQuantity(p models.Product) {
	c.dispatch(ModalOpened{Modal: Modal{Kind: ModalQuantity, Product: &p}})
}

func (c *Controller) OpenConfirmDelete(p models.Product) {
	c.dispatch(ModalOpened{Modal: Modal{Kind: ModalConfirmDelete, Product: &p}})
}

func (c *Controller) CloseModal() {
	c.dispatch(ModalClosed{})
}

func (c *Controller) SubmitCreate(ctx context.Context, payload client.ProductPayload) error {
	if _, err := c.backend.CreateProduct(ctx, payload); err != nil {
		c.showToast(err.Error(), ToastError)
		return err
	}
	c.afterMutation("Product created", true)
	return nil
}

func (c *Controller) SubmitUpdate(ctx context.Context, id uint, payload client.ProductPayload) error {
	if _, err := c.backend.UpdateProduct(ctx, id, payload); err != nil {
		c.showToast(err.Error(), ToastError)
		return err
	}
	c.afterMutation("Product updated", true)
	return nil
}

func (c *Controller) SubmitQuantity(ctx context.Context, id uint, quantity int) error {
	if _, err := c.backend.UpdateQuantity(ctx, id, quantity); err != nil {
		c.showToast(err.Error(), ToastError)
		return err
	}
	c.afterMutation("Quantity updated", false)
	return nil
}

// ConfirmDelete deletes the product of the open confirmation dialog.
// On failure the dialog stays open.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	modal := c.State().Modal
	if modal.Kind != ModalConfirmDelete || modal.Product == nil {
		return ErrNoProductSelected
	}

	if err := c.backend.DeleteProduct(ctx, modal.Product.ID); err != nil {
		c.log.Warn("delete failed", "id", modal.Product.ID, "error", err)
		c.showToast("Failed to delete product", ToastError)
		return err
	}
	c.afterMutation(fmt.Sprintf("%q deleted", modal.Product.Name), false)
	return nil
}

// Wait blocks until the pending debounce, if any, has fired, every fetch it
// or anything else started has been applied, and listeners have seen the
// resulting states. It must not be called from a listener.
func (c *Controller) Wait() {
	c.wg.Wait()

	c.mu.Lock()
	for c.undelivered > 0 {
		c.drained.Wait()
	}
	c.mu.Unlock()
}

// Close cancels in-flight requests and stops all timers.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.debouncer != nil && c.debouncer.Stop() {
		c.wg.Done()
	}
	c.debouncer = nil
	if c.toastTimer != nil {
		c.toastTimer.Stop()
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	<-c.notifierDone
}

func (c *Controller) afterMutation(message string, categoriesChanged bool) {
	c.dispatch(ModalClosed{})
	c.showToast(message, ToastSuccess)
	c.Refresh()
	if categoriesChanged {
		c.refreshCategories()
	}
}

// schedule (re)arms the debounce timer; only the last call within the
// window triggers a fetch.
func (c *Controller) schedule() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.debouncer != nil && c.debouncer.Stop() {
		c.wg.Done()
	}
	c.wg.Add(1)
	c.debouncer = time.AfterFunc(c.debounce, func() {
		defer c.wg.Done()
		c.fetch()
	})
}

func (c *Controller) fetch() {
	c.mu.Lock()
	c.nextGen++
	gen := c.nextGen
	params := client.ListParams{Search: c.state.Search, Category: c.state.Category}
	c.applyLocked(FetchStarted{Gen: gen})
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()

		products, err := c.backend.ListProducts(c.ctx, params)
		if err != nil {
			if !c.isLatest(gen) {
				return
			}
			c.log.Warn("list products failed", "generation", gen, "error", err)
			c.dispatch(FetchFailed{Gen: gen, Err: err})
			c.showToast("Failed to load products", ToastError)
			return
		}
		c.dispatch(FetchSucceeded{Gen: gen, Products: products})
	}()
}

func (c *Controller) refreshCategories() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		categories, err := c.backend.ListCategories(c.ctx)
		if err != nil {
			c.log.Warn("list categories failed", "error", err)
			return
		}
		c.dispatch(CategoriesLoaded{Categories: categories})
	}()
}

func (c *Controller) isLatest(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Generation == gen
}

// showToast replaces the current toast. Its timer can only dismiss this
// toast, never a newer one.
func (c *Controller) showToast(message string, kind ToastKind) {
	c.mu.Lock()
	c.nextToast++
	id := c.nextToast
	c.applyLocked(ToastShown{Toast: Toast{
		ID:        id,
		Message:   message,
		Kind:      kind,
		ExpiresAt: c.now().Add(c.toastTTL),
	}})
	if c.toastTimer != nil {
		c.toastTimer.Stop()
	}
	c.toastTimer = time.AfterFunc(c.toastTTL, func() {
		c.dispatch(ToastExpired{ID: id})
	})
	c.mu.Unlock()
}

func (c *Controller) dispatch(a Action) {
	c.mu.Lock()
	c.applyLocked(a)
	c.mu.Unlock()
}

// applyLocked runs the reducer and queues the result for listeners; c.mu
// must be held.
func (c *Controller) applyLocked(a Action) {
	c.state = Reduce(c.state, a)
	if c.closed || len(c.listeners) == 0 {
		return
	}
	c.pending = append(c.pending, c.state)
	c.undelivered++
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// deliver is the only goroutine that calls listeners.
func (c *Controller) deliver() {
	defer close(c.notifierDone)
	for {
		select {
		case <-c.wake:
			for c.deliverNext() {
			}
		case <-c.ctx.Done():
			c.mu.Lock()
			c.closed = true
			c.pending = nil
			c.undelivered = 0
			c.drained.Broadcast()
			c.mu.Unlock()
			return
		}
	}
}

func (c *Controller) deliverNext() bool {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return false
	}
	s := c.pending[0]
	c.pending[0] = State{}
	c.pending = c.pending[1:]
	listeners := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}

	c.mu.Lock()
	c.undelivered--
	if c.undelivered == 0 {
		c.drained.Broadcast()
	}
	c.mu.Unlock()
	return true
}
