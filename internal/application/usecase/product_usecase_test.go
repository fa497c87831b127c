package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
)

func newProductEnv(t *testing.T) (*fakeProductRepo, *fakeOrderRepo, *usecase.ProductUseCase) {
	t.Helper()
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	return products, orders, usecase.NewProductUseCase(products, orders)
}

func TestResolveCreatesOnceCaseInsensitive(t *testing.T) {
	products, _, uc := newProductEnv(t)

	first, err := uc.Resolve("Blue Shirt")
	require.NoError(t, err)
	assert.Equal(t, "blue shirt", first.NameLower)
	assert.True(t, first.Price.IsZero())

	second, err := uc.Resolve("BLUE shirt")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "one product per case-insensitive name")
	assert.Len(t, products.products, 1)
	assert.Equal(t, "Blue Shirt", second.Name, "original casing preserved")
}

func TestResolveRejectsEmptyName(t *testing.T) {
	_, _, uc := newProductEnv(t)
	_, err := uc.Resolve("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePricePropagatesToOrders(t *testing.T) {
	products, orders, uc := newProductEnv(t)
	seedProduct(products, "Blue Shirt", decimal.NewFromInt(10), "")
	seedOrder(orders, &entity.Order{ID: "o1", ItemName: "Blue Shirt", Status: domain.StatusPickup, Price: decimal.NewFromInt(10)})
	seedOrder(orders, &entity.Order{ID: "o2", ItemName: "Blue Shirt", Status: domain.StatusBilling, Price: decimal.NewFromInt(10)})
	seedOrder(orders, &entity.Order{ID: "o3", ItemName: "Red Hat", Status: domain.StatusPickup, Price: decimal.NewFromInt(7)})

	out, err := uc.UpdatePrice("Blue Shirt", decimal.NewFromInt(30))
	require.NoError(t, err)
	require.NotNil(t, out.Price)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(30)))

	p, _ := products.GetByNameLower("blue shirt")
	assert.True(t, p.Price.Equal(decimal.NewFromInt(30)))

	get := func(id string) *entity.Order { o, _ := orders.GetByID(id); return o }
	assert.True(t, get("o1").Price.Equal(decimal.NewFromInt(30)))
	assert.True(t, get("o2").Price.Equal(decimal.NewFromInt(30)), "propagation ignores phase")
	assert.True(t, get("o3").Price.Equal(decimal.NewFromInt(7)), "other products untouched")
}

func TestUpdatePriceUnknownProduct(t *testing.T) {
	_, _, uc := newProductEnv(t)
	_, err := uc.UpdatePrice("Ghost", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePriceRejectsNegative(t *testing.T) {
	products, _, uc := newProductEnv(t)
	seedProduct(products, "Blue Shirt", decimal.NewFromInt(10), "")

	_, err := uc.UpdatePrice("Blue Shirt", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrNegativePrice)

	p, _ := products.GetByNameLower("blue shirt")
	assert.True(t, p.Price.Equal(decimal.NewFromInt(10)), "price unchanged")
}

func TestUpdateImagePropagatesToOrders(t *testing.T) {
	products, orders, uc := newProductEnv(t)
	seedProduct(products, "Blue Shirt", decimal.NewFromInt(10), "")
	seedOrder(orders, &entity.Order{ID: "o1", ItemName: "Blue Shirt", Status: domain.StatusPickup})

	out, err := uc.UpdateImage("Blue Shirt", "https://img/new.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://img/new.jpg", out.ImageURL)

	o, _ := orders.GetByID("o1")
	assert.Equal(t, "https://img/new.jpg", o.ImageURL)
}

func TestUpdateImageRejectsEmptyURL(t *testing.T) {
	products, _, uc := newProductEnv(t)
	seedProduct(products, "Blue Shirt", decimal.NewFromInt(10), "")

	_, err := uc.UpdateImage("Blue Shirt", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
