//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/LienoPC/EZ-Electronics-sub000/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type cartPayload struct {
	ID       int64             `json:"id"`
	Customer string            `json:"customer"`
	Paid     bool              `json:"paid"`
	Total    float64           `json:"total"`
	Products []lineItemPayload `json:"products"`
}

type lineItemPayload struct {
	Model    string  `json:"model"`
	Quantity int32   `json:"quantity"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

type userPayload struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	userBodyMatcher := matchers.Map{
		"username": matchers.Like(pacttest.CustomerUsername),
		"role":     matchers.Term("Customer", "Customer|Manager|Admin"),
	}
	cartBodyMatcher := matchers.Map{
		"id":       matchers.Like(int64(1)),
		"customer": matchers.Like(pacttest.CustomerUsername),
		"paid":     matchers.Like(false),
		"total":    matchers.Like(899.99),
		"products": matchers.ArrayMinLike(matchers.Map{
			"model":    matchers.Like(pacttest.SeededModel),
			"quantity": matchers.Like(int32(1)),
			"category": matchers.Term("Smartphone", "Smartphone|Laptop|Appliance"),
			"price":    matchers.Like(899.99),
		}, 1),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateUsersBaseline).
		UponReceiving("a request to register a customer").
		WithRequest("POST", "/ezelectronics/users", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"username": matchers.Like(pacttest.CustomerUsername),
				"password": matchers.Like(pacttest.CustomerPassword),
				"role":     matchers.Term("Customer", "Customer|Manager|Admin"),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(userBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateCartWithProducts).
		UponReceiving("a request for the current cart").
		WithRequest("GET", "/ezelectronics/carts", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", matchers.S("Bearer "+pacttest.SessionToken))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(cartBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a request to add a missing product").
		WithRequest("POST", "/ezelectronics/carts", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", matchers.S("Bearer "+pacttest.SessionToken))
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"model": matchers.Like(pacttest.MissingModel)})
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		registered, err := client.RegisterCustomer(ctx, userPayload{
			Username: pacttest.CustomerUsername,
			Password: pacttest.CustomerPassword,
			Role:     "Customer",
		})
		if err != nil {
			return fmt.Errorf("register customer: %w", err)
		}
		if registered == nil || registered.Username == "" {
			return fmt.Errorf("expected registered username to be set")
		}

		cart, err := client.GetCart(ctx, pacttest.SessionToken)
		if err != nil {
			return fmt.Errorf("get cart: %w", err)
		}
		if cart == nil || len(cart.Products) == 0 {
			return fmt.Errorf("expected cart with products, got %+v", cart)
		}

		if _, err := client.AddToCart(ctx, pacttest.SessionToken, pacttest.MissingModel); err == nil {
			return fmt.Errorf("expected 404 for model %q", pacttest.MissingModel)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *storefrontClient) RegisterCustomer(ctx context.Context, user userPayload) (*userPayload, error) {
	body, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ezelectronics/users", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload userPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *storefrontClient) GetCart(ctx context.Context, token string) (*cartPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ezelectronics/carts", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload cartPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *storefrontClient) AddToCart(ctx context.Context, token, model string) (*cartPayload, error) {
	body, err := json.Marshal(map[string]string{"model": model})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ezelectronics/carts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload cartPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
