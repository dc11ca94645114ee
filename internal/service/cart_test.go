package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovsinka/online_store/internal/models"
	"github.com/ovsinka/online_store/internal/pricing"
	"github.com/ovsinka/online_store/internal/repo"
	"github.com/ovsinka/online_store/internal/transport"
)

type cartEnv struct {
	DB  *gorm.DB
	Svc *CartService
}

func newCartEnv(t *testing.T) *cartEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.ProductOption{}, &models.CartItem{}))

	return &cartEnv{
		DB: db,
		Svc: &CartService{
			Repo: &repo.GormRepo{DB: db},
			Calc: pricing.NewCartCalculator(),
		},
	}
}

func (env *cartEnv) seedOption(t *testing.T, productName, optionName string, price int64) models.ProductOption {
	t.Helper()

	product := models.Product{Name: productName, Description: "d", Price: price}
	require.NoError(t, env.DB.Create(&product).Error)

	option := models.ProductOption{ProductID: product.ID, Name: optionName, Price: price}
	require.NoError(t, env.DB.Create(&option).Error)
	return option
}

func (env *cartEnv) cartLines(t *testing.T, userID uint) []models.CartItem {
	t.Helper()

	var items []models.CartItem
	require.NoError(t, env.DB.Where("user_id = ?", userID).Order("product_option_id ASC").Find(&items).Error)
	return items
}

func TestAddCreatesLine(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1500)

	err := env.Svc.Add(ctx, []transport.CartInsertRequest{{OptionID: opt.ID, Quantity: 2}}, 1)
	require.NoError(t, err)

	lines := env.cartLines(t, 1)
	require.Len(t, lines, 1)
	require.Equal(t, opt.ID, lines[0].ProductOptionID)
	require.Equal(t, int64(2), lines[0].Quantity)

	resp, err := env.Svc.FindAll(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(3000), resp.TotalPrice)
}

func TestAddIsAdditive(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)

	require.NoError(t, env.Svc.Add(ctx, []transport.CartInsertRequest{{OptionID: opt.ID, Quantity: 2}}, 1))
	require.NoError(t, env.Svc.Add(ctx, []transport.CartInsertRequest{{OptionID: opt.ID, Quantity: 3}}, 1))

	lines := env.cartLines(t, 1)
	require.Len(t, lines, 1)
	require.Equal(t, int64(5), lines[0].Quantity)
}

func TestAddZeroQuantityBaseline(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)

	require.NoError(t, env.Svc.Add(ctx, []transport.CartInsertRequest{{OptionID: opt.ID, Quantity: 0}}, 1))

	lines := env.cartLines(t, 1)
	require.Len(t, lines, 1)
	require.Equal(t, int64(0), lines[0].Quantity)

	resp, err := env.Svc.FindAll(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.TotalPrice)
}

func TestAddRejectsNegativeQuantity(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)

	err := env.Svc.Add(ctx, []transport.CartInsertRequest{
		{OptionID: opt.ID, Quantity: 2},
		{OptionID: opt.ID + 100, Quantity: -1},
	}, 1)
	require.ErrorIs(t, err, ErrValidation)

	require.Empty(t, env.cartLines(t, 1), "rejected batch must not write anything")
}

func TestAddRejectsDuplicateOptions(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)

	err := env.Svc.Add(ctx, []transport.CartInsertRequest{
		{OptionID: opt.ID, Quantity: 1},
		{OptionID: opt.ID, Quantity: 2},
	}, 1)
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, env.cartLines(t, 1))
}

func TestAddUnknownOption(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)

	err := env.Svc.Add(ctx, []transport.CartInsertRequest{
		{OptionID: opt.ID, Quantity: 1},
		{OptionID: 999, Quantity: 1},
	}, 1)
	require.ErrorIs(t, err, ErrNotFound)
	require.Empty(t, env.cartLines(t, 1))
}

func TestAddBatchMixesNewAndExisting(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	optA := env.seedOption(t, "keyboard", "black", 1000)
	optB := env.seedOption(t, "mouse", "wired", 500)

	require.NoError(t, env.Svc.Add(ctx, []transport.CartInsertRequest{{OptionID: optA.ID, Quantity: 1}}, 1))
	require.NoError(t, env.Svc.Add(ctx, []transport.CartInsertRequest{
		{OptionID: optA.ID, Quantity: 2},
		{OptionID: optB.ID, Quantity: 4},
	}, 1))

	lines := env.cartLines(t, 1)
	require.Len(t, lines, 2)
	require.Equal(t, int64(3), lines[0].Quantity)
	require.Equal(t, int64(4), lines[1].Quantity)
}

func TestUpdateReplacesQuantity(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)
	line := models.CartItem{UserID: 1, ProductOptionID: opt.ID, Quantity: 2}
	require.NoError(t, env.DB.Create(&line).Error)

	resp, err := env.Svc.Update(ctx, []transport.CartUpdateRequest{{CartID: line.ID, Quantity: 7}}, 1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, line.ID, resp.Items[0].CartID)
	require.Equal(t, "black", resp.Items[0].OptionName)
	require.Equal(t, int64(7), resp.Items[0].Quantity)
	require.Equal(t, int64(7000), resp.Items[0].Price)
	require.Equal(t, int64(7000), resp.TotalPrice)

	lines := env.cartLines(t, 1)
	require.Equal(t, int64(7), lines[0].Quantity, "update replaces, never accumulates")
}

func TestUpdateRejectsNonPositiveQuantity(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)
	line := models.CartItem{UserID: 1, ProductOptionID: opt.ID, Quantity: 2}
	require.NoError(t, env.DB.Create(&line).Error)

	_, err := env.Svc.Update(ctx, []transport.CartUpdateRequest{{CartID: line.ID, Quantity: 0}}, 1)
	require.ErrorIs(t, err, ErrValidation)

	lines := env.cartLines(t, 1)
	require.Equal(t, int64(2), lines[0].Quantity, "store unchanged after rejected update")
}

func TestUpdateEmptyCart(t *testing.T) {
	env := newCartEnv(t)

	_, err := env.Svc.Update(context.Background(), []transport.CartUpdateRequest{{CartID: 1, Quantity: 1}}, 1)
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "cart is empty")
}

func TestUpdateUnknownCartID(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)
	line := models.CartItem{UserID: 1, ProductOptionID: opt.ID, Quantity: 2}
	require.NoError(t, env.DB.Create(&line).Error)

	_, err := env.Svc.Update(ctx, []transport.CartUpdateRequest{{CartID: line.ID + 100, Quantity: 1}}, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRejectsDuplicateIDs(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)
	line := models.CartItem{UserID: 1, ProductOptionID: opt.ID, Quantity: 2}
	require.NoError(t, env.DB.Create(&line).Error)

	_, err := env.Svc.Update(ctx, []transport.CartUpdateRequest{
		{CartID: line.ID, Quantity: 1},
		{CartID: line.ID, Quantity: 5},
	}, 1)
	require.ErrorIs(t, err, ErrValidation)

	lines := env.cartLines(t, 1)
	require.Equal(t, int64(2), lines[0].Quantity)
}

func TestUpdateCannotTouchOtherUsersCart(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)
	mine := models.CartItem{UserID: 1, ProductOptionID: opt.ID, Quantity: 2}
	theirs := models.CartItem{UserID: 2, ProductOptionID: opt.ID, Quantity: 9}
	require.NoError(t, env.DB.Create(&mine).Error)
	require.NoError(t, env.DB.Create(&theirs).Error)

	_, err := env.Svc.Update(ctx, []transport.CartUpdateRequest{{CartID: theirs.ID, Quantity: 1}}, 1)
	require.ErrorIs(t, err, ErrNotFound)

	lines := env.cartLines(t, 2)
	require.Equal(t, int64(9), lines[0].Quantity)
}

func TestDeleteIsIdempotent(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)
	line := models.CartItem{UserID: 1, ProductOptionID: opt.ID, Quantity: 2}
	require.NoError(t, env.DB.Create(&line).Error)

	require.NoError(t, env.Svc.Delete(ctx, []transport.CartDeleteRequest{{CartID: line.ID}, {CartID: 999}}, 1))
	require.Empty(t, env.cartLines(t, 1))

	// deleting again is a no-op, not an error
	require.NoError(t, env.Svc.Delete(ctx, []transport.CartDeleteRequest{{CartID: line.ID}}, 1))
}

func TestFindAllEmptyCart(t *testing.T) {
	env := newCartEnv(t)

	resp, err := env.Svc.FindAll(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.TotalPrice)
	require.Empty(t, resp.Products)
}

func TestFindAllGroupsByProduct(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	product := models.Product{Name: "keyboard", Description: "d", Price: 1000}
	require.NoError(t, env.DB.Create(&product).Error)
	optBlack := models.ProductOption{ProductID: product.ID, Name: "black", Price: 1000}
	optWhite := models.ProductOption{ProductID: product.ID, Name: "white", Price: 1200}
	require.NoError(t, env.DB.Create(&optBlack).Error)
	require.NoError(t, env.DB.Create(&optWhite).Error)

	optMouse := env.seedOption(t, "mouse", "wired", 500)

	require.NoError(t, env.Svc.Add(ctx, []transport.CartInsertRequest{
		{OptionID: optBlack.ID, Quantity: 1},
		{OptionID: optWhite.ID, Quantity: 2},
		{OptionID: optMouse.ID, Quantity: 3},
	}, 1))

	resp, err := env.Svc.FindAll(ctx, 1)
	require.NoError(t, err)

	require.Len(t, resp.Products, 2)
	require.Equal(t, "keyboard", resp.Products[0].ProductName)
	require.Len(t, resp.Products[0].Items, 2)
	require.Equal(t, "mouse", resp.Products[1].ProductName)
	require.Len(t, resp.Products[1].Items, 1)

	black := resp.Products[0].Items[0]
	require.Equal(t, optBlack.ID, black.OptionID)
	require.Equal(t, "black", black.Option.Name)
	require.Equal(t, int64(1000), black.Option.Price)
	require.Equal(t, int64(1000), black.Price)

	require.Equal(t, int64(1000+2400+1500), resp.TotalPrice)
}

func TestFindAllReflectsCatalogPriceChange(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "keyboard", "black", 1000)
	require.NoError(t, env.Svc.Add(ctx, []transport.CartInsertRequest{{OptionID: opt.ID, Quantity: 2}}, 1))

	require.NoError(t, env.DB.Model(&models.ProductOption{}).Where("id = ?", opt.ID).Update("price", 2500).Error)

	resp, err := env.Svc.FindAll(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(5000), resp.TotalPrice, "line price is derived, never cached")
}

func TestFindAllZeroUnitPrice(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	opt := env.seedOption(t, "sticker", "free", 0)
	require.NoError(t, env.Svc.Add(ctx, []transport.CartInsertRequest{{OptionID: opt.ID, Quantity: 5}}, 1))

	resp, err := env.Svc.FindAll(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.TotalPrice)
	require.Len(t, resp.Products, 1)
}
