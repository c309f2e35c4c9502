// Package view holds the inventory screen's state machine. All transitions go
// through Reduce; Controller drives it from user input and backend replies.
package view

import (
	"time"

	"github.com/goldenhive/inventory/models"
)

type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalAdd
	ModalEdit
	ModalQuantity
	ModalConfirmDelete
)

func (k ModalKind) String() string {
	switch k {
	case ModalAdd:
		return "add"
	case ModalEdit:
		return "edit"
	case ModalQuantity:
		return "quantity"
	case ModalConfirmDelete:
		return "confirm-delete"
	default:
		return "none"
	}
}

// Modal is the single open dialog, if any. Product is set for every kind
// except ModalAdd and ModalNone.
type Modal struct {
	Kind    ModalKind
	Product *models.Product
}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

type Toast struct {
	ID        uint64
	Message   string
	Kind      ToastKind
	ExpiresAt time.Time
}

type State struct {
	Products   []models.Product
	Categories []string
	Search     string
	Category   string

	// Loading is true while the fetch tagged Generation is in flight.
	Loading    bool
	Generation uint64

	Modal   Modal
	Toast   *Toast
	Summary Summary
}

// Action is any input accepted by Reduce.
type Action interface {
	isAction()
}

type (
	SearchChanged struct{ Search string }

	CategoryChanged struct{ Category string }

	// FetchStarted marks Gen as the newest list request.
	FetchStarted struct{ Gen uint64 }

	FetchSucceeded struct {
		Gen      uint64
		Products []models.Product
	}

	FetchFailed struct {
		Gen uint64
		Err error
	}

	CategoriesLoaded struct{ Categories []string }

	ModalOpened struct{ Modal Modal }

	ModalClosed struct{}

	ToastShown struct{ Toast Toast }

	// ToastExpired dismisses the toast only if it is still the one with ID.
	ToastExpired struct{ ID uint64 }
)

func (SearchChanged) isAction()    {}
func (CategoryChanged) isAction()  {}
func (FetchStarted) isAction()     {}
func (FetchSucceeded) isAction()   {}
func (FetchFailed) isAction()      {}
func (CategoriesLoaded) isAction() {}
func (ModalOpened) isAction()      {}
func (ModalClosed) isAction()      {}
func (ToastShown) isAction()       {}
func (ToastExpired) isAction()     {}

// Reduce returns the state that follows s after a. Replies tagged with a
// generation other than the newest one leave s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SearchChanged:
		s.Search = a.Search
	case CategoryChanged:
		s.Category = a.Category
	case FetchStarted:
		if a.Gen > s.Generation {
			s.Generation = a.Gen
			s.Loading = true
		}
	case FetchSucceeded:
		if a.Gen != s.Generation {
			return s
		}
		s.Products = a.Products
		if s.Products == nil {
			s.Products = []models.Product{}
		}
		s.Summary = Summarize(s.Products)
		s.Loading = false
	case FetchFailed:
		if a.Gen != s.Generation {
			return s
		}
		s.Loading = false
	case CategoriesLoaded:
		s.Categories = a.Categories
	case ModalOpened:
		s.Modal = a.Modal
	case ModalClosed:
		s.Modal = Modal{}
	case ToastShown:
		t := a.Toast
		s.Toast = &t
	case ToastExpired:
		if s.Toast != nil && s.Toast.ID == a.ID {
			s.Toast = nil
		}
	}
	return s
}
