package registry

import (
	"strings"
	"testing"
)

func TestNEARRPCURL(t *testing.T) {
	url, ok := NEARRPCURL(" Mainnet ")
	if !ok || !strings.Contains(url, "mainnet") {
		t.Fatalf("unexpected mainnet rpc: %q ok=%v", url, ok)
	}
	if _, ok := NEARRPCURL("betanet"); ok {
		t.Fatal("expected betanet to be unknown")
	}
}

func TestEndpointsAreHTTPS(t *testing.T) {
	for _, url := range []string{MagicEdenBaseURL, OKXDexBaseURL, PondBaseURL} {
		if !strings.HasPrefix(url, "https://") {
			t.Fatalf("endpoint is not https: %s", url)
		}
	}
}
