package service

import (
	"path/filepath"
	"testing"
	"time"

	"go-commerce-api/internal/apperr"
	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"
	"go-commerce-api/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	catalog   CatalogService
	customers CustomerService
	sales     SalesService
	dashboard DashboardService
	admin     AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "commerce_test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	reportRepo := repository.NewReportRepo(db)

	return &testEnv{
		db:        db,
		catalog:   NewCatalogService(productRepo, nil),
		customers: NewCustomerService(customerRepo),
		sales:     NewSalesService(productRepo, saleRepo, purchaseRepo, db, nil),
		dashboard: NewDashboardService(reportRepo),
		admin:     NewAdminService(db, nil),
	}
}

func (e *testEnv) createProduct(t *testing.T, name string, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:            name,
		Category:        "General",
		PurchasePrice:   5,
		SellingPrice:    10,
		QuantityInStock: stock,
	}
	require.NoError(t, e.catalog.CreateProduct(product))
	return product
}

func (e *testEnv) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	product, err := e.catalog.GetProduct(id)
	require.NoError(t, err)
	return product.QuantityInStock
}

func (e *testEnv) countRows(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}

// The scenario from the drawing board: purchase 20, sell 5 at 10.0,
// then try to sell 100.
func TestPurchaseThenSaleThenOversell(t *testing.T) {
	env := newTestEnv(t)
	widget := env.createProduct(t, "Widget", 0)

	_, err := env.sales.AddPurchase(widget.ID, 20, 5.0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, env.stockOf(t, widget.ID))

	saleID, err := env.sales.AddSale([]SaleItemInput{
		{ProductID: widget.ID, Quantity: 5, PriceAtSale: 10},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, env.stockOf(t, widget.ID))

	sale, err := env.sales.GetSale(saleID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, sale.TotalAmount)

	// Overselling must fail and leave everything untouched.
	_, err = env.sales.AddSale([]SaleItemInput{
		{ProductID: widget.ID, Quantity: 100, PriceAtSale: 10},
	}, nil, nil)
	assert.ErrorIs(t, err, apperr.ErrConstraintViolated)
	assert.Equal(t, 15, env.stockOf(t, widget.ID))
	assert.EqualValues(t, 1, env.countRows(t, &model.Sale{}))
	assert.EqualValues(t, 1, env.countRows(t, &model.SaleItem{}))
}

func TestAddSaleComputesTotalFromLines(t *testing.T) {
	env := newTestEnv(t)
	a := env.createProduct(t, "Product A", 50)
	b := env.createProduct(t, "Product B", 50)

	saleID, err := env.sales.AddSale([]SaleItemInput{
		{ProductID: a.ID, Quantity: 3, PriceAtSale: 2.5},
		{ProductID: b.ID, Quantity: 2, PriceAtSale: 12},
		{ProductID: a.ID, Quantity: 1, PriceAtSale: 2.5},
	}, nil, nil)
	require.NoError(t, err)

	sale, err := env.sales.GetSale(saleID)
	require.NoError(t, err)
	assert.Equal(t, 3*2.5+2*12.0+1*2.5, sale.TotalAmount)
	assert.Len(t, sale.Items, 3)

	// Stock decreases by the summed quantity per product.
	assert.Equal(t, 46, env.stockOf(t, a.ID))
	assert.Equal(t, 48, env.stockOf(t, b.ID))
}

func TestAddSaleRollbackLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	plenty := env.createProduct(t, "Plenty", 100)
	scarce := env.createProduct(t, "Scarce", 1)

	// Second line fails, so the already-inserted first line and the sale
	// row itself must both disappear.
	_, err := env.sales.AddSale([]SaleItemInput{
		{ProductID: plenty.ID, Quantity: 10, PriceAtSale: 1},
		{ProductID: scarce.ID, Quantity: 5, PriceAtSale: 1},
	}, nil, nil)
	assert.ErrorIs(t, err, apperr.ErrConstraintViolated)

	assert.Equal(t, 100, env.stockOf(t, plenty.ID))
	assert.Equal(t, 1, env.stockOf(t, scarce.ID))
	assert.EqualValues(t, 0, env.countRows(t, &model.Sale{}))
	assert.EqualValues(t, 0, env.countRows(t, &model.SaleItem{}))
}

func TestAddSaleValidation(t *testing.T) {
	env := newTestEnv(t)
	widget := env.createProduct(t, "Widget", 10)

	// Empty item list is a validation failure, not a no-op.
	_, err := env.sales.AddSale(nil, nil, nil)
	assert.True(t, apperr.IsValidation(err))
	assert.EqualValues(t, 0, env.countRows(t, &model.Sale{}))

	_, err = env.sales.AddSale([]SaleItemInput{
		{ProductID: widget.ID, Quantity: 0, PriceAtSale: 10},
	}, nil, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.sales.AddSale([]SaleItemInput{
		{ProductID: widget.ID, Quantity: 1, PriceAtSale: -1},
	}, nil, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.sales.AddSale([]SaleItemInput{
		{ProductID: uuid.Nil, Quantity: 1, PriceAtSale: 1},
	}, nil, nil)
	assert.True(t, apperr.IsValidation(err))

	// Nothing above may have touched storage.
	assert.Equal(t, 10, env.stockOf(t, widget.ID))
	assert.EqualValues(t, 0, env.countRows(t, &model.Sale{}))
}

func TestAddSaleUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	// A dangling product reference on insert is a missing target, not a
	// blocked delete.
	_, err := env.sales.AddSale([]SaleItemInput{
		{ProductID: uuid.New(), Quantity: 1, PriceAtSale: 1},
	}, nil, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NotErrorIs(t, err, apperr.ErrReferencedElsewhere)
	assert.False(t, apperr.IsValidation(err))
	assert.EqualValues(t, 0, env.countRows(t, &model.Sale{}))
	assert.EqualValues(t, 0, env.countRows(t, &model.SaleItem{}))
}

func TestAddPurchaseUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sales.AddPurchase(uuid.New(), 5, 1.0, nil, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualValues(t, 0, env.countRows(t, &model.Purchase{}))
}

func TestAddPurchaseValidation(t *testing.T) {
	env := newTestEnv(t)
	widget := env.createProduct(t, "Widget", 0)

	_, err := env.sales.AddPurchase(uuid.Nil, 5, 1.0, nil, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.sales.AddPurchase(widget.ID, 0, 1.0, nil, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.sales.AddPurchase(widget.ID, -3, 1.0, nil, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.sales.AddPurchase(widget.ID, 5, -0.5, nil, nil)
	assert.True(t, apperr.IsValidation(err))

	assert.Equal(t, 0, env.stockOf(t, widget.ID))
	assert.EqualValues(t, 0, env.countRows(t, &model.Purchase{}))
}

func TestDeleteProductReferencedBySaleIsRejected(t *testing.T) {
	env := newTestEnv(t)
	widget := env.createProduct(t, "Widget", 10)

	_, err := env.sales.AddSale([]SaleItemInput{
		{ProductID: widget.ID, Quantity: 1, PriceAtSale: 10},
	}, nil, nil)
	require.NoError(t, err)

	err = env.catalog.DeleteProduct(widget.ID)
	assert.ErrorIs(t, err, apperr.ErrReferencedElsewhere)

	// The product must remain in storage.
	_, err = env.catalog.GetProduct(widget.ID)
	assert.NoError(t, err)
}

func TestDeleteProductCascadesPurchases(t *testing.T) {
	env := newTestEnv(t)
	widget := env.createProduct(t, "Widget", 0)

	_, err := env.sales.AddPurchase(widget.ID, 10, 2.0, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, env.countRows(t, &model.Purchase{}))

	require.NoError(t, env.catalog.DeleteProduct(widget.ID))
	assert.EqualValues(t, 0, env.countRows(t, &model.Purchase{}))
}

func TestDeleteCustomerDetachesSales(t *testing.T) {
	env := newTestEnv(t)
	widget := env.createProduct(t, "Widget", 10)

	customer := &model.Customer{Name: "Alice"}
	require.NoError(t, env.customers.CreateCustomer(customer))

	saleID, err := env.sales.AddSale([]SaleItemInput{
		{ProductID: widget.ID, Quantity: 1, PriceAtSale: 10},
	}, &customer.ID, nil)
	require.NoError(t, err)

	require.NoError(t, env.customers.DeleteCustomer(customer.ID))

	// The sale survives with its customer reference nulled.
	sale, err := env.sales.GetSale(saleID)
	require.NoError(t, err)
	assert.Nil(t, sale.CustomerID)
	assert.Equal(t, 10.0, sale.TotalAmount)
	assert.EqualValues(t, 1, env.countRows(t, &model.Sale{}))
}

func TestDuplicateEntries(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "Widget", 0)

	err := env.catalog.CreateProduct(&model.Product{
		Name: "Widget", Category: "General", PurchasePrice: 1, SellingPrice: 2,
	})
	assert.ErrorIs(t, err, apperr.ErrDuplicateEntry)

	phone := "123-456-7890"
	require.NoError(t, env.customers.CreateCustomer(&model.Customer{Name: "Alice", Phone: &phone}))
	err = env.customers.CreateCustomer(&model.Customer{Name: "Bob", Phone: &phone})
	assert.ErrorIs(t, err, apperr.ErrDuplicateEntry)

	// Customers without phone/email never collide with each other.
	require.NoError(t, env.customers.CreateCustomer(&model.Customer{Name: "Carol"}))
	require.NoError(t, env.customers.CreateCustomer(&model.Customer{Name: "Dave"}))
}

func TestNotFoundIsDistinctFromValidation(t *testing.T) {
	env := newTestEnv(t)

	err := env.catalog.UpdateProduct(uuid.New(), &model.Product{
		Name: "Ghost", Category: "General",
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = env.catalog.UpdateProduct(uuid.New(), &model.Product{Name: ""})
	assert.True(t, apperr.IsValidation(err))

	err = env.customers.DeleteCustomer(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = env.customers.DeleteCustomer(uuid.Nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.catalog.GetProduct(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCustomerValidation(t *testing.T) {
	env := newTestEnv(t)

	err := env.customers.CreateCustomer(&model.Customer{Name: "  "})
	assert.True(t, apperr.IsValidation(err))

	bad := "abc"
	err = env.customers.CreateCustomer(&model.Customer{Name: "Alice", Phone: &bad})
	assert.True(t, apperr.IsValidation(err))

	badMail := "not-an-email"
	err = env.customers.CreateCustomer(&model.Customer{Name: "Alice", Email: &badMail})
	assert.True(t, apperr.IsValidation(err))

	assert.EqualValues(t, 0, env.countRows(t, &model.Customer{}))
}

func TestProductStructRules(t *testing.T) {
	env := newTestEnv(t)

	// These rules live on the model's validate tags.
	err := env.catalog.CreateProduct(&model.Product{
		Name: "Widget", Category: "General", PurchasePrice: -1, SellingPrice: 2,
	})
	assert.True(t, apperr.IsValidation(err))

	err = env.catalog.CreateProduct(&model.Product{
		Name: "Widget", Category: "General", PurchasePrice: 1, SellingPrice: 2,
		QuantityInStock: -5,
	})
	assert.True(t, apperr.IsValidation(err))

	err = env.catalog.CreateProduct(&model.Product{
		Name: "   ", Category: "General", PurchasePrice: 1, SellingPrice: 2,
	})
	assert.True(t, apperr.IsValidation(err))

	assert.EqualValues(t, 0, env.countRows(t, &model.Product{}))
}

func TestProductUpdateDoesNotTouchStock(t *testing.T) {
	env := newTestEnv(t)
	widget := env.createProduct(t, "Widget", 7)

	err := env.catalog.UpdateProduct(widget.ID, &model.Product{
		Name:            "Widget Mk2",
		Category:        "Hardware",
		PurchasePrice:   6,
		SellingPrice:    12,
		QuantityInStock: 999, // must be ignored
	})
	require.NoError(t, err)

	updated, err := env.catalog.GetProduct(widget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget Mk2", updated.Name)
	assert.Equal(t, "Hardware", updated.Category)
	assert.Equal(t, 7, updated.QuantityInStock)
}

func TestSearchAndCategories(t *testing.T) {
	env := newTestEnv(t)

	desc := "Blue anodized aluminium widget"
	require.NoError(t, env.catalog.CreateProduct(&model.Product{
		Name: "Widget", Description: &desc, Category: "Hardware", PurchasePrice: 1, SellingPrice: 2,
	}))
	require.NoError(t, env.catalog.CreateProduct(&model.Product{
		Name: "Gadget", Category: "Electronics", PurchasePrice: 1, SellingPrice: 2,
	}))

	found, err := env.catalog.SearchProducts("widg", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Widget", found[0].Name)

	found, err = env.catalog.SearchProducts("anodized", "")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = env.catalog.SearchProducts("", "Electronics")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Gadget", found[0].Name)

	categories, err := env.catalog.GetAllCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Hardware"}, categories)
}

func TestHistoriesJoinNames(t *testing.T) {
	env := newTestEnv(t)
	widget := env.createProduct(t, "Widget", 0)

	supplier := "ACME"
	_, err := env.sales.AddPurchase(widget.ID, 10, 3.0, &supplier, nil)
	require.NoError(t, err)

	customer := &model.Customer{Name: "Alice"}
	require.NoError(t, env.customers.CreateCustomer(customer))

	saleID, err := env.sales.AddSale([]SaleItemInput{
		{ProductID: widget.ID, Quantity: 2, PriceAtSale: 10},
	}, &customer.ID, nil)
	require.NoError(t, err)

	purchases, err := env.sales.PurchaseHistory(0)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Widget", purchases[0].ProductName)
	require.NotNil(t, purchases[0].Supplier)
	assert.Equal(t, "ACME", *purchases[0].Supplier)

	history, err := env.sales.SalesHistory(0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].CustomerName)
	assert.Equal(t, "Alice", *history[0].CustomerName)
	assert.Equal(t, 20.0, history[0].TotalAmount)

	items, err := env.sales.SaleItems(saleID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].ProductName)
	assert.Equal(t, 2, items[0].Quantity)

	byCustomer, err := env.sales.SalesByCustomer(customer.ID)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 1)
}

func TestDashboardAggregates(t *testing.T) {
	env := newTestEnv(t)
	a := env.createProduct(t, "Product A", 100)
	b := env.createProduct(t, "Product B", 100)

	_, err := env.sales.AddSale([]SaleItemInput{
		{ProductID: a.ID, Quantity: 7, PriceAtSale: 2},
		{ProductID: b.ID, Quantity: 3, PriceAtSale: 4},
	}, nil, nil)
	require.NoError(t, err)

	_, err = env.sales.AddSale([]SaleItemInput{
		{ProductID: b.ID, Quantity: 9, PriceAtSale: 4},
	}, nil, nil)
	require.NoError(t, err)

	top, err := env.dashboard.GetTopSellingProducts(5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Product B", top[0].ProductName)
	assert.Equal(t, 12, top[0].TotalQuantitySold)
	assert.Equal(t, "Product A", top[1].ProductName)
	assert.Equal(t, 7, top[1].TotalQuantitySold)

	trend, err := env.dashboard.GetMonthlySalesTrend(12)
	require.NoError(t, err)
	require.Len(t, trend, 1)
	assert.Equal(t, time.Now().Format("2006-01"), trend[0].Month)
	assert.Equal(t, 7*2.0+3*4.0+9*4.0, trend[0].Total)

	stats, err := env.dashboard.GetDashboardStats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalProducts)
	assert.EqualValues(t, 0, stats.TotalCustomers)
}

func TestResetAllData(t *testing.T) {
	env := newTestEnv(t)
	widget := env.createProduct(t, "Widget", 5)

	_, err := env.sales.AddSale([]SaleItemInput{
		{ProductID: widget.ID, Quantity: 1, PriceAtSale: 10},
	}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, env.admin.ResetAllData())

	assert.EqualValues(t, 0, env.countRows(t, &model.Product{}))
	assert.EqualValues(t, 0, env.countRows(t, &model.Sale{}))
	assert.EqualValues(t, 0, env.countRows(t, &model.SaleItem{}))

	// The schema is back as on a first run, constraints included.
	env.createProduct(t, "Widget", 5)
	_, err = env.sales.AddSale([]SaleItemInput{
		{ProductID: uuid.New(), Quantity: 1, PriceAtSale: 1},
	}, nil, nil)
	assert.Error(t, err)
}
