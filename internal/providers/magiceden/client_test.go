package magiceden

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	clierr "github.com/chainkitlabs/chainkit/internal/errors"
	"github.com/chainkitlabs/chainkit/internal/httpx"
	"github.com/chainkitlabs/chainkit/internal/providers"
)

func TestListings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collections/degods/listings", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "2" {
			t.Errorf("unexpected limit: %s", r.URL.Query().Get("limit"))
		}
		_, _ = w.Write([]byte(`[
			{"tokenMint":"mintA","seller":"sellerA","price":35.5,"token":{"name":"DeGod #1"}},
			{"tokenMint":"mintB","seller":"sellerB","price":36.0,"token":{"name":"DeGod #2"}}
		]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(httpx.New(2*time.Second, 0), "")
	c.apiBase = srv.URL
	got, err := c.Listings(context.Background(), providers.NFTListingsRequest{Collection: "degods", Limit: 2})
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}
	if len(got) != 2 || got[0].TokenMint != "mintA" || got[0].Price != 35.5 {
		t.Fatalf("unexpected listings: %+v", got)
	}
	if got[0].Currency != "SOL" {
		t.Fatalf("expected SOL currency, got %s", got[0].Currency)
	}
}

func TestListingsRequiresCollection(t *testing.T) {
	c := New(httpx.New(2*time.Second, 0), "")
	_, err := c.Listings(context.Background(), providers.NFTListingsRequest{})
	cErr, ok := clierr.As(err)
	if !ok || cErr.Code != clierr.CodeUsage {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestCollectionStatsConvertsLamports(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collections/degods/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol":"degods","floorPrice":35500000000,"listedCount":120,"volumeAll":9000000000000}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(httpx.New(2*time.Second, 0), "")
	c.apiBase = srv.URL
	got, err := c.CollectionStats(context.Background(), "degods")
	if err != nil {
		t.Fatalf("CollectionStats failed: %v", err)
	}
	if got.FloorPrice != 35.5 {
		t.Fatalf("floor price not converted: %f", got.FloorPrice)
	}
	if got.ListedCount != 120 || got.VolumeAll != 9000 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestListingsSendsAPIKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collections/degods/listings", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer token")
		}
		_, _ = w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(httpx.New(2*time.Second, 0), "secret")
	c.apiBase = srv.URL
	if _, err := c.Listings(context.Background(), providers.NFTListingsRequest{Collection: "degods"}); err != nil {
		t.Fatalf("Listings failed: %v", err)
	}
}
