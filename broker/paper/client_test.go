package paper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optiondesk/broker"
	"optiondesk/order"
)

func testClient(serverURL string) *Client {
	return NewClient(serverURL, 5*time.Second, nil)
}

func f64(v float64) *float64 { return &v }

func TestOpenAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/create", r.URL.Path)
		json.NewEncoder(w).Encode(broker.Account{ID: "accountNEW123", Cash: 10000})
	}))
	defer server.Close()

	acct, err := testClient(server.URL).OpenAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "accountNEW123", acct.ID)
	assert.Equal(t, 10000.0, acct.Cash)
}

func TestGetAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/accountABC", r.URL.Path)
		json.NewEncoder(w).Encode(broker.Account{
			ID:                "accountABC",
			Cash:              8675.30,
			MaintenanceMargin: f64(150),
			Positions: []broker.Position{
				{
					Asset:     broker.Asset{Symbol: "AAPL170217P00119000"},
					Quantity:  -1,
					CostBasis: -120,
					Quote:     broker.Quote{Asset: broker.Asset{Symbol: "AAPL170217P00119000"}, Price: 1.25},
				},
			},
		})
	}))
	defer server.Close()

	acct, err := testClient(server.URL).GetAccount(context.Background(), "accountABC")
	require.NoError(t, err)
	assert.Equal(t, 8675.30, acct.Cash)
	assert.Equal(t, 150.0, acct.Margin())
	require.Len(t, acct.Positions, 1)
	assert.Equal(t, -1.0, acct.Positions[0].Quantity)
	assert.Equal(t, 1.25, acct.Positions[0].Quote.Price)
}

func TestGetAccountRequiresID(t *testing.T) {
	_, err := testClient("http://example.invalid").GetAccount(context.Background(), "")
	assert.Error(t, err)
}

func TestMarginDefaultsToZeroWhenAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No maintenance_margin field at all.
		w.Write([]byte(`{"account_id":"accountX","cash":1000,"positions":[]}`))
	}))
	defer server.Close()

	acct, err := testClient(server.URL).GetAccount(context.Background(), "accountX")
	require.NoError(t, err)
	assert.Nil(t, acct.MaintenanceMargin)
	assert.Equal(t, 0.0, acct.Margin())
}

func TestExpirations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/expirations/AAPL", r.URL.Path)
		json.NewEncoder(w).Encode([]string{"2017-02-17", "2017-03-17"})
	}))
	defer server.Close()

	dates, err := testClient(server.URL).Expirations(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, []string{"2017-02-17", "2017-03-17"}, dates)
}

func TestOptionQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quotes/AAPL/options/2017-02-17", r.URL.Path)
		json.NewEncoder(w).Encode([]broker.Quote{
			{Asset: broker.Asset{Symbol: "AAPL170217P00119000"}, Price: 1.25, Bid: 1.20, Ask: 1.30},
		})
	}))
	defer server.Close()

	quotes, err := testClient(server.URL).OptionQuotes(context.Background(), "AAPL", "2017-02-17")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, 1.25, quotes[0].Price)
}

func TestSimulateOrder(t *testing.T) {
	ord := order.Order{Legs: []order.Leg{
		{Quantity: "1", Side: "buy_to_open", Symbol: "AAPL"},
	}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/accountABC/orders/create", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "true", q.Get("simulate"))
		assert.Equal(t, "1", q.Get("legs[0][quantity]"))
		assert.Equal(t, "buy_to_open", q.Get("legs[0][order_type]"))
		assert.Equal(t, "AAPL", q.Get("legs[0][asset]"))

		json.NewEncoder(w).Encode(broker.OrderImpact{
			Before: broker.Account{ID: "accountABC", Cash: 1000},
			After:  broker.Account{ID: "accountABC", Cash: 850, MaintenanceMargin: f64(150)},
		})
	}))
	defer server.Close()

	impact, err := testClient(server.URL).SimulateOrder(context.Background(), "accountABC", ord)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, impact.Before.Cash)
	assert.Equal(t, 850.0, impact.After.Cash)
	assert.Equal(t, 0.0, impact.Before.Margin())
	assert.Equal(t, 150.0, impact.After.Margin())
}

func TestEnterOrderOmitsSimulateFlag(t *testing.T) {
	ord := order.Order{Legs: []order.Leg{
		{Quantity: "2", Side: "sell_to_open", Symbol: "AAPL170217P00119000"},
	}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/accountABC/orders/create", r.URL.Path)

		q := r.URL.Query()
		assert.False(t, q.Has("simulate"), "commit calls carry no simulate flag")
		assert.Equal(t, "2", q.Get("legs[0][quantity]"))
		assert.Equal(t, "sell_to_open", q.Get("legs[0][order_type]"))
		assert.Equal(t, "AAPL170217P00119000", q.Get("legs[0][asset]"))

		json.NewEncoder(w).Encode(broker.OrderImpact{
			Before: broker.Account{ID: "accountABC", Cash: 1000},
			After:  broker.Account{ID: "accountABC", Cash: 1240},
		})
	}))
	defer server.Close()

	impact, err := testClient(server.URL).EnterOrder(context.Background(), "accountABC", ord)
	require.NoError(t, err)
	assert.Equal(t, 1240.0, impact.After.Cash)
}

func TestMultiLegWireEncoding(t *testing.T) {
	ord := order.Order{Legs: []order.Leg{
		{Quantity: "1", Side: "buy_to_open", Symbol: "AAPL"},
		{Quantity: "1", Side: "sell_to_close", Symbol: "AAPL"},
	}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		// Duplicate symbols with opposite sides are both transmitted.
		assert.Equal(t, "AAPL", q.Get("legs[0][asset]"))
		assert.Equal(t, "AAPL", q.Get("legs[1][asset]"))
		assert.Equal(t, "buy_to_open", q.Get("legs[0][order_type]"))
		assert.Equal(t, "sell_to_close", q.Get("legs[1][order_type]"))

		json.NewEncoder(w).Encode(broker.OrderImpact{})
	}))
	defer server.Close()

	_, err := testClient(server.URL).SimulateOrder(context.Background(), "accountABC", ord)
	require.NoError(t, err)
}

func TestServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("order_type is a required field"))
	}))
	defer server.Close()

	_, err := testClient(server.URL).SimulateOrder(context.Background(), "accountABC", order.Order{
		Legs: []order.Leg{{Symbol: "AAPL"}},
	})
	require.Error(t, err)

	var svcErr *broker.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.Status)
	assert.Contains(t, svcErr.Body, "order_type")
	assert.False(t, broker.IsNetwork(err))
}

func TestNetworkFailureClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	_, err := testClient(server.URL).OpenAccount(context.Background())
	require.Error(t, err)
	assert.True(t, broker.IsNetwork(err))
}
