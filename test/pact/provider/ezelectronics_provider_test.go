//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/LienoPC/EZ-Electronics-sub000/test/pact"

	ezserver "github.com/LienoPC/EZ-Electronics-sub000/go"
	cartcatalog "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/memory"
	cartobs "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/observability"
	cartworkflows "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/workflows"
	cartapp "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/application"
	cartports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
	productmemory "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/adapters/memory"
	productapp "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/application"
	productdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/domain"
	usermemory "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/adapters/memory"
	userapp "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/application"
	userdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateUsersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateCartWithProducts: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedCustomerSession(t)
				app.seedCatalog(t)
				app.seedCart(t)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedCustomerSession(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	cartRepo    cartports.Repository
	cartService cartports.Service
	productRepo *productmemory.Repository
	userRepo    *usermemory.Repository
	sessions    *usermemory.SessionStore
	server      *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	productRepo := productmemory.NewRepository()
	productService := productapp.NewService(productRepo)

	cartRepo := cartmemory.NewRepository(productRepo)
	cartService := cartobs.New(cartapp.NewService(cartRepo, cartcatalog.NewInventoryStore(productRepo)))
	checkout := cartworkflows.NewInlineCheckout(cartService)

	userRepo := usermemory.NewRepository()
	sessions := usermemory.NewSessionStore()
	userService := userapp.NewService(userRepo, sessions)

	handlers := ezserver.ApiHandleFunctions{
		CartAPI:    ezserver.NewCartAPI(cartService, checkout, userService),
		ProductAPI: ezserver.NewProductAPI(productService, userService),
		UserAPI:    ezserver.NewUserAPI(userService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = ezserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		cartRepo:    cartRepo,
		cartService: cartService,
		productRepo: productRepo,
		userRepo:    userRepo,
		sessions:    sessions,
		server:      server,
	}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, a.cartRepo.DeleteAll(ctx))
	require.NoError(t, a.productRepo.DeleteAll(ctx))
	users, err := a.userRepo.List(ctx)
	require.NoError(t, err)
	for _, user := range users {
		_ = a.sessions.Delete(ctx, user.Username)
		_ = a.userRepo.Delete(ctx, user.Username)
	}
}

func (a *contractProviderApp) seedCustomerSession(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	user, err := userdomain.NewUser(0, pacttest.CustomerUsername, pacttest.CustomerPassword, userdomain.RoleCustomer)
	require.NoError(t, err)
	_, err = a.userRepo.Save(ctx, user)
	require.NoError(t, err)
	require.NoError(t, a.sessions.Save(ctx, pacttest.CustomerUsername, pacttest.SessionToken))
}

func (a *contractProviderApp) seedCatalog(t testing.TB) {
	t.Helper()
	product, err := productdomain.NewProduct(
		pacttest.SeededModel,
		productdomain.CategorySmartphone,
		10,
		"128GB, Midnight",
		899.99,
		time.Now().AddDate(0, -1, 0),
	)
	require.NoError(t, err)
	_, err = a.productRepo.Save(context.Background(), product)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedCart(t testing.TB) {
	t.Helper()
	_, err := a.cartService.AddToCart(context.Background(), pacttest.CustomerUsername, pacttest.SeededModel)
	require.NoError(t, err)
}
