package router

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/BrandonKowalski/ribs/pkg/ribs/constants"
	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/google/uuid"
)

// Routing is a node of the router tree. Application routers satisfy it by
// embedding *Router.
type Routing interface {
	ID() uuid.UUID
	RouteIdentifier() string
	Screen() Screen
	Mode() Mode
	Interactable() Interactable
	Children() []Routing
	IsAttached() bool
	SetMode(mode Mode)
	Load()
	AttachChild(child Routing)
	DetachChild(child Routing)

	base() *Router
}

// Option configures a Router.
type Option func(*Router)

// WithScreen makes the router viewable. Routers without a screen never take
// part in stack reconciliation.
func WithScreen(screen Screen) Option {
	return func(r *Router) { r.screen = screen }
}

// WithRouteIdentifier overrides the identifier derived from the interactor type.
func WithRouteIdentifier(identifier string) Option {
	return func(r *Router) { r.identifier = identifier }
}

// WithLogger sets the logger used for tree mutations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// WithOnLoad registers a hook that runs once, the first time the router is
// attached or launched.
func WithOnLoad(fn func()) Option {
	return func(r *Router) { r.hooks.load = append(r.hooks.load, fn) }
}

// WithOnAttached registers a hook that runs every time the router enters a
// tree, either attached to a parent or launched as a root.
func WithOnAttached(fn func()) Option {
	return func(r *Router) { r.hooks.attached = append(r.hooks.attached, fn) }
}

// WithOnDetached registers a hook that runs every time the router is detached
// from its parent, after its own subtree is gone.
func WithOnDetached(fn func()) Option {
	return func(r *Router) { r.hooks.detached = append(r.hooks.detached, fn) }
}

type hooks struct {
	load     []func()
	attached []func()
	detached []func()
}

func run(fns []func()) {
	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}

// Router owns a rib's children and drives its interactor's activity.
type Router struct {
	id         uuid.UUID
	identifier string
	interactor Interactable
	screen     Screen
	mode       Mode
	logger     *slog.Logger

	children  []Routing
	attached  bool
	detaching bool
	loaded    bool
	hooks     hooks
	observers []func(child Routing)

	presented *shown
}

// New creates a router for interactor. A nil interactor gets a plain Interactor.
func New(interactor Interactable, opts ...Option) *Router {
	if interactor == nil {
		interactor = NewInteractor(nil)
	}

	r := &Router{
		id:         uuid.New(),
		interactor: interactor,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.identifier == "" {
		r.identifier = TypeIdentifier(interactor)
	}
	if r.logger == nil {
		r.logger = internal.GetInternalLogger()
	}

	return r
}

// TypeIdentifier derives a route identifier from v's type name, trimming a
// trailing "Interactor" ("*checkout.PaymentInteractor" becomes "Payment").
func TypeIdentifier(v any) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
	if ext := path.Ext(name); ext != "" {
		name = ext[1:]
	}
	if trimmed := strings.TrimSuffix(name, constants.RouteIdentifierSuffix); trimmed != "" {
		name = trimmed
	}
	return name
}

func (r *Router) base() *Router { return r }

func (r *Router) ID() uuid.UUID { return r.id }

func (r *Router) RouteIdentifier() string { return r.identifier }

// Screen returns the router's screen, or nil for a router without a view.
func (r *Router) Screen() Screen { return r.screen }

// Mode returns how the router was last shown.
func (r *Router) Mode() Mode { return r.mode }

// SetMode tags how the router is shown. Presentation helpers call it; custom
// presentation code may too.
func (r *Router) SetMode(mode Mode) { r.mode = mode }

func (r *Router) Interactable() Interactable { return r.interactor }

func (r *Router) Logger() *slog.Logger { return r.logger }

// Children returns a copy of the children in attach order.
func (r *Router) Children() []Routing {
	out := make([]Routing, len(r.children))
	copy(out, r.children)
	return out
}

func (r *Router) IsAttached() bool { return r.attached }

// Load runs the load hook once.
func (r *Router) Load() {
	if r.loaded {
		return
	}
	r.loaded = true
	run(r.hooks.load)
}

// ObserveDetach registers an observer that is told about every child this router
// detaches, after the child's subtree is torn down and before it leaves the
// children list.
func (r *Router) ObserveDetach(fn func(child Routing)) {
	if fn != nil {
		r.observers = append(r.observers, fn)
	}
}

// IndexOf returns the position of child among the children, or -1.
func (r *Router) IndexOf(child Routing) int {
	if child == nil {
		return -1
	}
	target := child.base()
	for i, c := range r.children {
		if c.base() == target {
			return i
		}
	}
	return -1
}

func (r *Router) Contains(child Routing) bool {
	return r.IndexOf(child) >= 0
}

// AttachChild appends child.
func (r *Router) AttachChild(child Routing) {
	r.AttachChildAt(child, len(r.children))
}

// AttachChildAt inserts child at index (clamped to the children bounds),
// loads it and activates its subtree if this router is active.
func (r *Router) AttachChildAt(child Routing, index int) {
	if child == nil {
		return
	}

	c := child.base()
	if !internal.Assertf(c != r, "attach", "router %s cannot attach itself", r.identifier) {
		return
	}
	if !internal.Assertf(!c.attached, "attach", "router %s (%s) is already attached", c.identifier, c.id) {
		return
	}
	if !internal.Assertf(!c.isAncestorOf(r), "attach", "attaching %s under %s would create a cycle", c.identifier, r.identifier) {
		return
	}

	if index < 0 {
		index = 0
	}
	if index > len(r.children) {
		index = len(r.children)
	}

	r.children = append(r.children, nil)
	copy(r.children[index+1:], r.children[index:])
	r.children[index] = child
	c.attached = true

	r.logger.Debug("Attached child",
		"parent", r.identifier,
		"child", c.identifier,
		"child_id", c.id.String(),
		"index", index,
	)

	run(c.hooks.attached)
	c.Load()

	if r.interactor.IsActive() {
		c.Activate()
	}
}

// DetachChild tears down child's subtree, children first, then deactivates
// child and removes it. Detaching something that is not a child is a no-op.
func (r *Router) DetachChild(child Routing) {
	if r.IndexOf(child) < 0 {
		return
	}

	c := child.base()
	if c.detaching {
		return
	}
	c.detaching = true
	defer func() { c.detaching = false }()

	for i := len(c.children) - 1; i >= 0; i-- {
		c.DetachChild(c.children[i])
	}

	c.interactor.Deactivate()

	for _, observer := range r.observers {
		observer(child)
	}

	r.logger.Debug("Detached child",
		"parent", r.identifier,
		"child", c.identifier,
		"child_id", c.id.String(),
	)

	if index := r.IndexOf(child); index >= 0 {
		r.children = append(r.children[:index], r.children[index+1:]...)
	}
	c.attached = false
	run(c.hooks.detached)
}

// DetachCurrentChild detaches the most recently attached child, if any.
func (r *Router) DetachCurrentChild() {
	if len(r.children) == 0 {
		return
	}
	r.DetachChild(r.children[len(r.children)-1])
}

// Activate activates this router's interactor and then its subtree.
func (r *Router) Activate() {
	r.interactor.Activate()
	for _, child := range r.Children() {
		child.base().Activate()
	}
}

// Deactivate deactivates the subtree bottom-up and then this router.
func (r *Router) Deactivate() {
	children := r.Children()
	for i := len(children) - 1; i >= 0; i-- {
		children[i].base().Deactivate()
	}
	r.interactor.Deactivate()
}

func (r *Router) isAncestorOf(other *Router) bool {
	for _, child := range r.children {
		c := child.base()
		if c == other || c.isAncestorOf(other) {
			return true
		}
	}
	return false
}

// Walk visits r's subtree depth first, parents before children.
func Walk(r Routing, fn func(Routing)) {
	fn(r)
	for _, child := range r.Children() {
		Walk(child, fn)
	}
}
