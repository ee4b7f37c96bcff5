package state

import (
	"context"
	"slices"

	"github.com/mathenaangeles/socialite/internal/api"
	"github.com/mathenaangeles/socialite/internal/models"
)

const (
	opProductCreate = "product/create"
	opProductGet    = "product/get"
	opProductUpdate = "product/update"
	opProductDelete = "product/delete"
	opProductList   = "product/list"
)

type productAction struct {
	op       string
	phase    Phase
	seq      uint64
	err      string
	product  *models.Product
	products []models.Product
	id       string
}

func reduceProduct(cache ProductCache, a productAction) ProductCache {
	switch a.phase {
	case Pending:
		cache.Loading = true
		cache.Error = ""
	case Rejected:
		cache.Loading = false
		cache.Error = a.err
	case Fulfilled:
		cache.Loading = false
		cache.Error = ""
		switch a.op {
		case opProductCreate:
			cache.Product = a.product
			cache.Products = append(slices.Clone(cache.Products), *a.product)
		case opProductGet:
			cache.Product = a.product
		case opProductUpdate:
			cache.Product = a.product
			cache.Products = replaceProduct(cache.Products, *a.product)
		case opProductDelete:
			cache.Products = removeProduct(cache.Products, a.id)
		case opProductList:
			cache.Products = a.products
		}
	}
	return cache
}

func replaceProduct(list []models.Product, product models.Product) []models.Product {
	out := slices.Clone(list)
	for i := range out {
		if out[i].ID == product.ID {
			out[i] = product
			break
		}
	}
	return out
}

func removeProduct(list []models.Product, id string) []models.Product {
	out := make([]models.Product, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) dispatchProductPending(op string) uint64 {
	s.mu.Lock()
	seq := s.beginLocked(op)
	s.state.Product = reduceProduct(s.state.Product, productAction{op: op, phase: Pending, seq: seq})
	s.finishLocked()
	return seq
}

func (s *Store) dispatchProduct(a productAction) {
	s.mu.Lock()
	if s.staleLocked(a.op, a.seq) {
		s.mu.Unlock()
		dropStale(a.op)
		return
	}
	s.state.Product = reduceProduct(s.state.Product, a)
	s.finishLocked()
}

func (s *Store) runProduct(ctx context.Context, op string, call func(context.Context) (*models.Product, error)) (*models.Product, error) {
	seq := s.dispatchProductPending(op)
	product, err := call(ctx)
	if err != nil {
		s.dispatchProduct(productAction{op: op, phase: Rejected, seq: seq, err: err.Error()})
		return nil, err
	}
	s.dispatchProduct(productAction{op: op, phase: Fulfilled, seq: seq, product: product})
	return product, nil
}

// CreateProduct creates a product and caches it.
func (s *Store) CreateProduct(ctx context.Context, params api.ProductParams) (*models.Product, error) {
	return s.runProduct(ctx, opProductCreate, func(ctx context.Context) (*models.Product, error) {
		return s.api.CreateProduct(ctx, params)
	})
}

// GetProduct fetches one product into the current slot.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.runProduct(ctx, opProductGet, func(ctx context.Context) (*models.Product, error) {
		return s.api.Product(ctx, id)
	})
}

// UpdateProduct updates a product and refreshes the matching list entry.
func (s *Store) UpdateProduct(ctx context.Context, id string, params api.ProductParams) (*models.Product, error) {
	return s.runProduct(ctx, opProductUpdate, func(ctx context.Context) (*models.Product, error) {
		return s.api.UpdateProduct(ctx, id, params)
	})
}

// DeleteProduct deletes a product and drops it from the list.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	seq := s.dispatchProductPending(opProductDelete)
	deletedID, err := s.api.DeleteProduct(ctx, id)
	if err != nil {
		s.dispatchProduct(productAction{op: opProductDelete, phase: Rejected, seq: seq, err: err.Error()})
		return err
	}
	s.dispatchProduct(productAction{op: opProductDelete, phase: Fulfilled, seq: seq, id: deletedID})
	return nil
}

// ListProducts replaces the cached list with the server's.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	seq := s.dispatchProductPending(opProductList)
	products, err := s.api.Products(ctx)
	if err != nil {
		s.dispatchProduct(productAction{op: opProductList, phase: Rejected, seq: seq, err: err.Error()})
		return nil, err
	}
	s.dispatchProduct(productAction{op: opProductList, phase: Fulfilled, seq: seq, products: products})
	return products, nil
}
