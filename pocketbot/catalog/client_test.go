package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", PageSize: 50})
}

func cardJSON(id, name string, attack, defense int) string {
	return fmt.Sprintf(`{"id":%q,"name":%q,"attack":%d,"defense":%d,"images":{"small":"https://img/%s.png"}}`,
		id, name, attack, defense, id)
}

func TestClient_FetchCandidates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		fmt.Fprintf(w, `{"data":[%s,%s,%s,%s,%s,%s]}`,
			cardJSON("c1", "Pikachu", 20, 10),
			cardJSON("c2", "Charmander", 30, 10),
			cardJSON("c3", "Squirtle", 20, 20),
			cardJSON("c4", "Bulbasaur", 25, 15),
			cardJSON("c5", "Eevee", 15, 15),
			cardJSON("c6", "Mewtwo", 90, 60),
		)
	})

	cards, err := c.FetchCandidates(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, cards, 6)
	assert.Equal(t, "Pikachu", cards[0].Name)
	assert.Equal(t, "https://img/c1.png", cards[0].ImageURL)
}

func TestClient_FetchCandidates_TooFew(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":[%s]}`, cardJSON("c1", "Pikachu", 20, 10))
	})

	_, err := c.FetchCandidates(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestClient_FetchCandidates_ServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.FetchCandidates(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestClient_FindByID(t *testing.T) {
	var hits atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "/cards/c1", r.URL.Path)
		fmt.Fprintf(w, `{"data":%s}`, cardJSON("c1", "Pikachu", 20, 10))
	})

	card, err := c.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Pikachu", card.Name)
	assert.Equal(t, 20, card.Attack)

	// Second lookup is served from the cache.
	card, err = c.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Pikachu", card.Name)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_FindByID_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestClient_SearchByName(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "q=")
		fmt.Fprintf(w, `{"data":[%s,%s,%s]}`,
			cardJSON("c1", "Charizard", 90, 60),
			cardJSON("c2", "Pikachu", 20, 10),
			cardJSON("c3", "Charmander", 30, 10),
		)
	})

	cards, err := c.SearchByName(context.Background(), "pikachu")
	require.NoError(t, err)
	require.NotEmpty(t, cards)
	assert.Equal(t, "Pikachu", cards[0].Name)
}
