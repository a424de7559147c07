package repository

import (
	"context"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/store"

	"github.com/google/uuid"
)

type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
	Save(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo struct {
	store store.Store
}

func NewProductRepo(s store.Store) ProductRepository {
	return &productRepo{store: s}
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var rows []productRow
	err := r.store.SelectAll(ctx, tableProducts, store.Query{
		OrderBy: []store.Sort{{Column: "created_at", Desc: true}},
	}, &rows)
	if err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, toProduct(row))
	}
	return products, nil
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var rows []productRow
	err := r.store.SelectAll(ctx, tableProducts, store.Query{
		Filters: []store.Filter{{Column: "id", Value: id}},
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	p := toProduct(rows[0])
	return &p, nil
}

func (r *productRepo) SKUExists(ctx context.Context, sku string) (bool, error) {
	var rows []productRow
	err := r.store.SelectAll(ctx, tableProducts, store.Query{
		Filters: []store.Filter{{Column: "sku", Value: sku}},
	}, &rows)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Save inserts or overwrites the product and replaces its category tags in one
// transaction. Unknown category labels are added to the categories table.
// product is refreshed with the stored row.
func (r *productRepo) Save(ctx context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	row := fromProduct(*product)

	err := r.store.Transaction(ctx, func(tx store.Store) error {
		ids, err := ensureCategories(ctx, tx, product.Categories)
		if err != nil {
			return err
		}
		tags := make([]productTagRow, 0, len(ids))
		for _, id := range ids {
			tags = append(tags, productTagRow{ProductID: product.ID, CategoryID: id})
		}
		return tx.UpsertWithRelations(ctx, tableProducts, &row, store.Relation{
			Table:      tableProductTags,
			ForeignKey: "product_id",
			ParentID:   product.ID,
			Rows:       &tags,
		})
	})
	if err != nil {
		return err
	}
	*product = toProduct(row)
	return nil
}

// Delete removes the product's images, then its tags, then the product row.
func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteWhere(ctx, tableProductImages, store.Filter{Column: "product_id", Value: id}); err != nil {
			return err
		}
		if err := tx.DeleteWhere(ctx, tableProductTags, store.Filter{Column: "product_id", Value: id}); err != nil {
			return err
		}
		return tx.DeleteByID(ctx, tableProducts, id)
	})
}

func ensureCategories(ctx context.Context, s store.Store, names []string) ([]uuid.UUID, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []categoryRow
	if err := s.SelectAll(ctx, tableCategories, store.Query{}, &rows); err != nil {
		return nil, err
	}
	known := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		known[row.Name] = row.ID
	}

	ids := make([]uuid.UUID, 0, len(names))
	seen := map[uuid.UUID]bool{}
	for _, name := range names {
		id, ok := known[name]
		if !ok {
			row := categoryRow{Name: name}
			if err := s.Insert(ctx, tableCategories, &row); err != nil {
				return nil, err
			}
			id = row.ID
			known[name] = id
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
