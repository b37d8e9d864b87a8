package chainsig

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

const mainnetRootKey = "secp256k1:3tFRbMqmoa6AAALMrEFAYCEoHcqKxeW38YptwowBVBtXK1vo36HDbUWuR6EZmoK4JcH6HDkNMGGqP1ouV7VZUWya"

func TestDeriveChildPublicKeyKnownVector(t *testing.T) {
	got, err := DeriveChildPublicKey(mainnetRootKey, "wallet.near", "account-1")
	if err != nil {
		t.Fatalf("DeriveChildPublicKey failed: %v", err)
	}
	want := "04b6383e4e839fe27941973bd2314aee72fa1ba723895c34955542a98eee36816acd4eb1fdc7ab94e1b771b1c7e4e2ce5edd13a53cb88fd8233fa4e8bb65be36d0"
	if got != want {
		t.Fatalf("derived key mismatch:\n got %s\nwant %s", got, want)
	}

	// The public key and address fixtures must agree with each other.
	addr, err := EncodeAddress(got, AddressTypeEVM)
	if err != nil {
		t.Fatalf("EncodeAddress failed: %v", err)
	}
	if addr != "0x5cf7ac588d5cdb35d8a9ed3d884f1a4245338db7" {
		t.Fatalf("public key does not encode to the known address, got %s", addr)
	}
}

func TestDeriveAddressKnownVectors(t *testing.T) {
	cases := []struct {
		accountID string
		path      string
		want      string
	}{
		{"wallet.near", "account-1", "0x5cf7ac588d5cdb35d8a9ed3d884f1a4245338db7"},
		{"omnitester.near", "account-1", "0x9ee8197e1a04cc53ee976894082449d2f450ae34"},
	}
	for _, tc := range cases {
		got, err := DeriveAddress(mainnetRootKey, tc.accountID, tc.path, AddressTypeEVM)
		if err != nil {
			t.Fatalf("DeriveAddress(%s) failed: %v", tc.accountID, err)
		}
		if got.Address != tc.want {
			t.Fatalf("address mismatch for %s:\n got %s\nwant %s", tc.accountID, got.Address, tc.want)
		}
	}
}

func TestDeriveChildPublicKeyDeterministic(t *testing.T) {
	first, err := DeriveChildPublicKey(mainnetRootKey, "wallet.near", "account-1")
	if err != nil {
		t.Fatalf("first derivation failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := DeriveChildPublicKey(mainnetRootKey, "wallet.near", "account-1")
		if err != nil {
			t.Fatalf("repeat derivation failed: %v", err)
		}
		if again != first {
			t.Fatalf("derivation not deterministic: %s vs %s", again, first)
		}
	}
}

func TestDeriveChildPublicKeySensitivity(t *testing.T) {
	inputs := []struct{ accountID, path string }{
		{"wallet.near", "account-1"},
		{"wallet.near", "account-2"},
		{"wallet.near", ""},
		{"wallet2.near", "account-1"},
		{"omnitester.near", "account-1"},
		{"wallet.near,account-1", ""},
	}
	seen := map[string]string{}
	for _, in := range inputs {
		key, err := DeriveChildPublicKey(mainnetRootKey, in.accountID, in.path)
		if err != nil {
			t.Fatalf("derivation failed for %+v: %v", in, err)
		}
		label := in.accountID + "|" + in.path
		if prior, dup := seen[key]; dup {
			t.Fatalf("distinct inputs collided: %q and %q -> %s", prior, label, key)
		}
		seen[key] = label
	}
}

func TestDeriveChildPublicKeyFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^04[0-9a-f]{128}$`)
	for _, path := range []string{"", "account-1", "bitcoin-1", "some/longer/path"} {
		key, err := DeriveChildPublicKey(mainnetRootKey, "formatcheck.near", path)
		if err != nil {
			t.Fatalf("derivation failed for path %q: %v", path, err)
		}
		if len(key) != 130 || !pattern.MatchString(key) {
			t.Fatalf("derived key has unexpected format: %q", key)
		}
	}
}

func TestDeriveAddressEVMFormat(t *testing.T) {
	got, err := DeriveAddress(mainnetRootKey, "formatcheck.near", "account-1", AddressTypeEVM)
	if err != nil {
		t.Fatalf("DeriveAddress failed: %v", err)
	}
	if len(got.Address) != 42 || !strings.HasPrefix(got.Address, "0x") {
		t.Fatalf("unexpected address shape: %q", got.Address)
	}
	if got.Address != strings.ToLower(got.Address) {
		t.Fatalf("address is not lowercase hex: %q", got.Address)
	}
}

func TestDeriveAddressRejectsBitcoinVariants(t *testing.T) {
	variants := []AddressType{
		AddressTypeBitcoinMainnetLegacy,
		AddressTypeBitcoinMainnetSegwit,
		AddressTypeBitcoinTestnetLegacy,
		AddressTypeBitcoinTestnetSegwit,
	}
	for _, v := range variants {
		_, err := DeriveAddress(mainnetRootKey, "wallet.near", "bitcoin-1", v)
		var unsupported *UnsupportedAddressTypeError
		if !errors.As(err, &unsupported) {
			t.Fatalf("expected UnsupportedAddressTypeError for %s, got %v", v, err)
		}
		if unsupported.AddressType != string(v) {
			t.Fatalf("error should carry the offending type, got %q", unsupported.AddressType)
		}
	}
}

func TestDeriveChildPublicKeyMalformedRoot(t *testing.T) {
	cases := []string{
		"",
		"3tFRbMqmoa6AAALMrEFAYCEoHcqKxeW38YptwowBVBtX",
		"secp256k1:notbase58!!!",
		"secp256k1:3tFRbMqmoa6",
		"ed25519:3tFRbMqmoa6AAALMrEFAYCEoHcqKxeW38YptwowBVBtXK1vo36HDbUWuR6EZmoK4JcH6HDkNMGGqP1ouV7VZUWya",
	}
	for _, root := range cases {
		_, err := DeriveChildPublicKey(root, "wallet.near", "account-1")
		var malformed *MalformedRootKeyError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected MalformedRootKeyError for %q, got %v", root, err)
		}
	}
}
