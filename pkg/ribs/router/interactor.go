package router

import (
	"github.com/BrandonKowalski/ribs/pkg/ribs/lifecycle"
)

// Interactable is the business-logic half of a rib. Its activity is driven
// by the router tree: a rib is active only while every ancestor is active.
type Interactable interface {
	lifecycle.Live
	IsActive() bool
	Activate()
	Deactivate()
	// CancelOnDeactivate ties c to the current active period.
	CancelOnDeactivate(c lifecycle.Cancellable)
}

// InteractorDelegate receives activity callbacks. It is optional.
type InteractorDelegate interface {
	DidBecomeActive()
	WillResignActive()
}

// Interactor is the default Interactable. Application interactors embed it.
type Interactor struct {
	stream   *lifecycle.Stream
	delegate InteractorDelegate
	period   *lifecycle.Group
}

// NewInteractor creates an inactive interactor. delegate may be nil.
func NewInteractor(delegate InteractorDelegate) *Interactor {
	return &Interactor{
		stream:   lifecycle.NewStream(false),
		delegate: delegate,
	}
}

func (i *Interactor) Liveness() lifecycle.Signal {
	return i.stream
}

func (i *Interactor) IsActive() bool {
	return i.stream.IsActive()
}

func (i *Interactor) Activate() {
	if i.IsActive() {
		return
	}

	i.period = lifecycle.NewGroup()
	i.stream.Set(true)

	if i.delegate != nil {
		i.delegate.DidBecomeActive()
	}
}

func (i *Interactor) Deactivate() {
	if !i.IsActive() {
		return
	}

	if i.delegate != nil {
		i.delegate.WillResignActive()
	}

	i.period.Cancel()
	i.period = nil
	i.stream.Set(false)
}

// CancelOnDeactivate cancels c when the interactor resigns active. If the
// interactor is not active, c is cancelled right away.
func (i *Interactor) CancelOnDeactivate(c lifecycle.Cancellable) {
	if c == nil {
		return
	}
	if i.period == nil {
		c.Cancel()
		return
	}
	i.period.Insert(c)
}
