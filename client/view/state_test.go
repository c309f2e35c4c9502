package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goldenhive/inventory/models"
)

func TestReduceDiscardsStaleGenerations(t *testing.T) {
	stale := []models.Product{{ID: 1, Name: "Acacia Honey"}}
	fresh := []models.Product{{ID: 2, Name: "Acacia Honey 1kg"}}

	s := State{}
	s = Reduce(s, FetchStarted{Gen: 1})
	s = Reduce(s, FetchStarted{Gen: 2})
	assert.True(t, s.Loading)
	assert.Equal(t, uint64(2), s.Generation)

	s = Reduce(s, FetchSucceeded{Gen: 2, Products: fresh})
	assert.False(t, s.Loading)
	assert.Equal(t, fresh, s.Products)

	after := Reduce(s, FetchSucceeded{Gen: 1, Products: stale})
	assert.Equal(t, s, after, "A late reply for an older generation must not change state")

	after = Reduce(s, FetchFailed{Gen: 1, Err: errors.New("late failure")})
	assert.Equal(t, s, after)
}

func TestReduceIgnoresOlderFetchStarted(t *testing.T) {
	s := Reduce(State{}, FetchStarted{Gen: 5})
	s = Reduce(s, FetchSucceeded{Gen: 5})

	s = Reduce(s, FetchStarted{Gen: 3})

	assert.Equal(t, uint64(5), s.Generation)
	assert.False(t, s.Loading)
	assert.NotNil(t, s.Products)
}

func TestReduceFetchFailedKeepsProducts(t *testing.T) {
	loaded := []models.Product{{ID: 1}}
	s := Reduce(State{}, FetchStarted{Gen: 1})
	s = Reduce(s, FetchSucceeded{Gen: 1, Products: loaded})
	s = Reduce(s, FetchStarted{Gen: 2})

	s = Reduce(s, FetchFailed{Gen: 2, Err: errors.New("offline")})

	assert.False(t, s.Loading)
	assert.Equal(t, loaded, s.Products)
}

func TestReduceSummaryFollowsLoadedList(t *testing.T) {
	s := Reduce(State{}, FetchStarted{Gen: 1})
	s = Reduce(s, FetchSucceeded{Gen: 1, Products: []models.Product{
		{Price: 2, Quantity: 3},
		{Price: 1, Quantity: 0},
	}})

	assert.Equal(t, 2, s.Summary.TotalProducts)
	assert.Equal(t, 1, s.Summary.OutOfStock)
	assert.Equal(t, 1, s.Summary.LowStock)
	assert.Equal(t, "6", s.Summary.TotalValue.String())
}

func TestReduceModals(t *testing.T) {
	p := &models.Product{ID: 3, Name: "Pillar Candle"}

	s := Reduce(State{}, ModalOpened{Modal: Modal{Kind: ModalAdd}})
	assert.Equal(t, ModalAdd, s.Modal.Kind)

	s = Reduce(s, ModalOpened{Modal: Modal{Kind: ModalConfirmDelete, Product: p}})
	assert.Equal(t, ModalConfirmDelete, s.Modal.Kind, "Opening a modal replaces the current one")
	assert.Equal(t, p, s.Modal.Product)

	s = Reduce(s, ModalClosed{})
	assert.Equal(t, Modal{}, s.Modal)
	assert.Equal(t, "none", s.Modal.Kind.String())
}

func TestReduceToasts(t *testing.T) {
	s := Reduce(State{}, ToastShown{Toast: Toast{ID: 1, Message: "Product created", Kind: ToastSuccess}})
	s = Reduce(s, ToastShown{Toast: Toast{ID: 2, Message: "Quantity updated", Kind: ToastSuccess}})

	s = Reduce(s, ToastExpired{ID: 1})
	if assert.NotNil(t, s.Toast, "An older timer must not dismiss a newer toast") {
		assert.Equal(t, "Quantity updated", s.Toast.Message)
	}

	s = Reduce(s, ToastExpired{ID: 2})
	assert.Nil(t, s.Toast)
}

func TestReduceFilters(t *testing.T) {
	s := Reduce(State{}, SearchChanged{Search: "hon"})
	s = Reduce(s, CategoryChanged{Category: "Raw Honey"})
	s = Reduce(s, CategoriesLoaded{Categories: []string{"Beeswax", "Raw Honey"}})

	assert.Equal(t, "hon", s.Search)
	assert.Equal(t, "Raw Honey", s.Category)
	assert.Equal(t, []string{"Beeswax", "Raw Honey"}, s.Categories)
}
