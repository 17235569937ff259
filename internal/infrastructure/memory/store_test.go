package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-analytics/internal/domain"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
	"github.com/jhoicas/Inventario-analytics/internal/infrastructure/memory"
)

func seedItems(s *memory.Store) {
	s.AddItems(
		entity.InventoryItem{ID: "a", CompanyID: "c1", SKU: "S-2", Name: "Arroz", Category: "granos", Barcode: "036000291452", IsActive: true},
		entity.InventoryItem{ID: "b", CompanyID: "c1", SKU: "S-1", Name: "Aceite", Category: "aceites", IsActive: true},
		entity.InventoryItem{ID: "c", CompanyID: "c1", SKU: "S-3", Name: "Sal", Category: "granos", IsActive: false},
		entity.InventoryItem{ID: "d", CompanyID: "c2", SKU: "S-1", Name: "Azúcar", Category: "dulces", IsActive: true},
	)
}

func TestItemRepo_ListFiltraYOrdena(t *testing.T) {
	s := memory.NewStore()
	seedItems(s)
	repo := memory.NewItemRepository(s)
	ctx := context.Background()

	all, err := repo.List(ctx, "c1", repository.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Aceite", "Arroz", "Sal"}, []string{all[0].Name, all[1].Name, all[2].Name})

	active, err := repo.List(ctx, "c1", repository.ItemFilter{OnlyActive: true, Category: "granos"})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "a", active[0].ID)

	search, err := repo.List(ctx, "c1", repository.ItemFilter{Search: "acei"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "b", search[0].ID)

	page, err := repo.List(ctx, "c1", repository.ItemFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].ID)
}

func TestItemRepo_GetByBarcodeYCategorias(t *testing.T) {
	s := memory.NewStore()
	seedItems(s)
	repo := memory.NewItemRepository(s)
	ctx := context.Background()

	it, err := repo.GetByBarcode(ctx, "c1", "036000291452")
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, "a", it.ID)

	missing, err := repo.GetByBarcode(ctx, "c2", "036000291452")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cats, err := repo.ListCategories(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"aceites", "granos"}, cats)
}

func TestItemRepo_CreateSKUDuplicado(t *testing.T) {
	s := memory.NewStore()
	seedItems(s)
	repo := memory.NewItemRepository(s)

	err := repo.Create(context.Background(), &entity.InventoryItem{CompanyID: "c1", SKU: "S-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	item := &entity.InventoryItem{CompanyID: "c2", SKU: "S-9"}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.NotEmpty(t, item.ID)
}

func TestTxRunner_RevierteSiFalla(t *testing.T) {
	s := memory.NewStore()
	seedItems(s)
	runner := memory.NewTxRunner(s)
	ctx := context.Background()
	now := time.Now()
	boom := errors.New("boom")

	err := runner.Run(ctx, func(items repository.ItemRepository, movs repository.StockMovementRepository, waste repository.WasteLogRepository) error {
		require.NoError(t, items.UpdateStock(ctx, "a", decimal.NewFromInt(99), decimal.Zero, now))
		require.NoError(t, movs.Create(ctx, &entity.StockMovement{CompanyID: "c1", ItemID: "a", CreatedAt: now}))
		require.NoError(t, waste.Create(ctx, &entity.WasteLog{CompanyID: "c1", ItemID: "a", RecordedAt: now}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	it, err := memory.NewItemRepository(s).GetByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, it.CurrentStock.IsZero())
	movs, _ := memory.NewStockMovementRepository(s).ListByCompany(ctx, "c1", now.Add(-time.Hour), now.Add(time.Hour))
	assert.Empty(t, movs)
	logs, _ := memory.NewWasteLogRepository(s).ListByCompany(ctx, "c1", now.Add(-time.Hour), now.Add(time.Hour))
	assert.Empty(t, logs)
}

func TestStockMovementRepo_RangoInclusivoYOrden(t *testing.T) {
	s := memory.NewStore()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	s.AddMovements(
		entity.StockMovement{CompanyID: "c1", ItemID: "a", Reference: "tarde", CreatedAt: base.AddDate(0, 0, 2)},
		entity.StockMovement{CompanyID: "c1", ItemID: "a", Reference: "temprano", CreatedAt: base},
		entity.StockMovement{CompanyID: "c1", ItemID: "b", Reference: "fuera", CreatedAt: base.AddDate(0, 0, 5)},
	)
	repo := memory.NewStockMovementRepository(s)

	list, err := repo.ListByItem(context.Background(), "a", base, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "temprano", list[0].Reference)
	assert.Equal(t, "tarde", list[1].Reference)

	byCompany, err := repo.ListByCompany(context.Background(), "c1", base, base.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Len(t, byCompany, 2)
}

func TestRecipeRepo_ResuelveCostoDelItem(t *testing.T) {
	s := memory.NewStore()
	s.AddItems(entity.InventoryItem{ID: "harina", CompanyID: "c1", Name: "Harina", Unit: "kg",
		CostPrice: decimal.NewFromInt(3), AverageCost: decimal.RequireFromString("2.5")})
	s.AddRecipes(entity.Recipe{ID: "pan", CompanyID: "c1", Name: "Pan", Portions: 10,
		Ingredients: []entity.RecipeIngredient{{ItemID: "harina", Quantity: decimal.NewFromInt(2)}}})

	rec, err := memory.NewRecipeRepository(s).GetByID(context.Background(), "pan")
	require.NoError(t, err)
	require.Len(t, rec.Ingredients, 1)
	assert.Equal(t, "Harina", rec.Ingredients[0].Name)
	assert.Equal(t, "kg", rec.Ingredients[0].Unit)
	assert.True(t, rec.Ingredients[0].Cost.Equal(decimal.RequireFromString("2.5")))

	none, err := memory.NewRecipeRepository(s).GetByID(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestUserRepo_EmailUnico(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewStore())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", CompanyID: "c1", Email: "a@b.co"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "u2", CompanyID: "c2", Email: "a@b.co"}), domain.ErrEmailAlreadyExists)

	u, err := repo.GetByEmailAndCompany(ctx, "a@b.co", "c2")
	require.NoError(t, err)
	assert.Nil(t, u)
	u, err = repo.GetByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}
