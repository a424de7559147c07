package repository

import (
	"context"
	"testing"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type call struct {
	op    string
	table string
}

// recordingStore keeps every call in order and serves canned rows.
type recordingStore struct {
	calls      []call
	products   []productRow
	categories []categoryRow
	relations  []store.Relation
}

func (s *recordingStore) record(op, table string) {
	s.calls = append(s.calls, call{op: op, table: table})
}

func (s *recordingStore) SelectAll(_ context.Context, table string, _ store.Query, dest any) error {
	s.record("select", table)
	switch d := dest.(type) {
	case *[]productRow:
		*d = append(*d, s.products...)
	case *[]categoryRow:
		*d = append(*d, s.categories...)
	}
	return nil
}

func (s *recordingStore) Insert(_ context.Context, table string, row any) error {
	s.record("insert", table)
	if c, ok := row.(*categoryRow); ok {
		c.ID = uuid.New()
	}
	return nil
}

func (s *recordingStore) UpdateByID(_ context.Context, table string, _ any, _ any) error {
	s.record("update", table)
	return nil
}

func (s *recordingStore) DeleteByID(_ context.Context, table string, _ any) error {
	s.record("delete", table)
	return nil
}

func (s *recordingStore) DeleteWhere(_ context.Context, table string, _ store.Filter) error {
	s.record("delete_where", table)
	return nil
}

func (s *recordingStore) UpsertWithRelations(_ context.Context, table string, _ any, rel ...store.Relation) error {
	s.record("upsert", table)
	s.relations = append(s.relations, rel...)
	return nil
}

func (s *recordingStore) Transaction(_ context.Context, fn func(tx store.Store) error) error {
	s.record("begin", "")
	return fn(s)
}

func TestToProduct_CoalescesNulls(t *testing.T) {
	p := toProduct(productRow{ID: uuid.New()})

	assert.Equal(t, "", p.Name)
	assert.Equal(t, 0.0, p.PriceYuan)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, model.ProductPreOrder, p.Status)
	assert.NotNil(t, p.Categories)
	assert.Empty(t, p.Categories)
	assert.NotNil(t, p.Options)
	assert.Empty(t, p.Options)
}

func TestToProduct_QuantityFollowsOptions(t *testing.T) {
	stored := 100
	p := toProduct(productRow{
		ID:       uuid.New(),
		Quantity: &stored,
		Options:  datatypes.JSON(`[{"id":"TOY-1234ABC-01","quantity":2},{"id":"TOY-1234ABC-02","quantity":1}]`),
	})
	assert.Equal(t, 3, p.Quantity)

	plain := toProduct(productRow{ID: uuid.New(), Quantity: &stored})
	assert.Equal(t, 100, plain.Quantity)
}

func TestToProduct_MalformedOptions(t *testing.T) {
	p := toProduct(productRow{
		Category: datatypes.JSON(`["Toys","Gifts"]`),
		Options:  datatypes.JSON(`{"not":"a list"}`),
	})
	assert.Equal(t, []string{"Toys", "Gifts"}, p.Categories)
	assert.Empty(t, p.Options)
}

func TestProductRoundTrip(t *testing.T) {
	in := model.Product{
		ID:         uuid.New(),
		SKU:        "TOY-1234ABC",
		Name:       "Robot",
		Categories: []string{"Toys"},
		Status:     model.ProductReadyToShip,
		Options: []model.ProductOption{
			{ID: "TOY-1234ABC-01", Name: "Red", CostThb: 60, SellingPrice: 100, Quantity: 3, Profit: 40},
		},
	}
	out := toProduct(fromProduct(in))

	assert.Equal(t, in.Options, out.Options)
	assert.Equal(t, in.Categories, out.Categories)
	assert.Equal(t, model.ProductReadyToShip, out.Status)
}

func TestToOrder_DefaultsAndBalance(t *testing.T) {
	net, deposit := 180.0, 50.0
	legacy := "unknown"
	o := toOrder(orderRow{
		ID:                uuid.New(),
		Items:             datatypes.JSON(`[{"productId":"` + uuid.NewString() + `","quantity":2,"sellingPrice":100}]`),
		TotalSellingPrice: &net,
		Deposit:           &deposit,
		Status:            &legacy,
	})

	assert.Equal(t, model.OrderAwaitingPayment, o.Status)
	assert.Equal(t, 130.0, o.RemainingBalance)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "", o.Items[0].OptionID)
}

func TestToOrder_NullItems(t *testing.T) {
	o := toOrder(orderRow{})
	assert.NotNil(t, o.Items)
	assert.Empty(t, o.Items)
}

func TestFromOrder_NormalizesStatusCode(t *testing.T) {
	row := fromOrder(model.Order{Status: "in-transit"})
	assert.Equal(t, string(model.OrderInTransit), *row.Status)
}

func TestProductDelete_Order(t *testing.T) {
	s := &recordingStore{}
	repo := NewProductRepo(s)

	require.NoError(t, repo.Delete(context.Background(), uuid.New()))
	assert.Equal(t, []call{
		{"begin", ""},
		{"delete_where", tableProductImages},
		{"delete_where", tableProductTags},
		{"delete", tableProducts},
	}, s.calls)
}

func TestProductFindByID_NotFound(t *testing.T) {
	repo := NewProductRepo(&recordingStore{})
	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProductSave_TagsCategories(t *testing.T) {
	existing := categoryRow{ID: uuid.New(), Name: "Toys"}
	s := &recordingStore{categories: []categoryRow{existing}}
	repo := NewProductRepo(s)

	p := &model.Product{Name: "Robot", Categories: []string{"Toys", "Gifts", "Toys"}}
	require.NoError(t, repo.Save(context.Background(), p))

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Contains(t, s.calls, call{"insert", tableCategories})
	assert.Contains(t, s.calls, call{"upsert", tableProducts})

	require.Len(t, s.relations, 1)
	tags := *(s.relations[0].Rows.(*[]productTagRow))
	require.Len(t, tags, 2)
	assert.Equal(t, existing.ID, tags[0].CategoryID)
	assert.Equal(t, p.ID, tags[1].ProductID)
}

func TestSKUExists(t *testing.T) {
	s := &recordingStore{products: []productRow{{ID: uuid.New()}}}
	ok, err := NewProductRepo(s).SKUExists(context.Background(), "TOY-0001AAA")
	require.NoError(t, err)
	assert.True(t, ok)
}
