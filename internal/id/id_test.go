package id

import "testing"

func TestParseAccountIDValid(t *testing.T) {
	for _, in := range []string{"wallet.near", "omnitester.testnet", "a-b_c.d.near", "98793cd91a3f870fb126f66285808c7e094afcfc4eda8a970f6648cdf0dbd6de"} {
		got, err := ParseAccountID(in)
		if err != nil {
			t.Fatalf("ParseAccountID(%q) failed: %v", in, err)
		}
		if got != in {
			t.Fatalf("account id mutated: %q -> %q", in, got)
		}
	}
}

func TestParseAccountIDInvalid(t *testing.T) {
	for _, in := range []string{"", "a", "Wallet.near", "wallet..near", "-wallet.near", "wallet.near-", "has space.near"} {
		if _, err := ParseAccountID(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParsePath(t *testing.T) {
	got, err := ParsePath(" account-1 ")
	if err != nil {
		t.Fatalf("ParsePath failed: %v", err)
	}
	if got != "account-1" {
		t.Fatalf("unexpected path: %q", got)
	}

	if got, err := ParsePath(""); err != nil || got != "" {
		t.Fatalf("empty path should be accepted, got %q err=%v", got, err)
	}

	for _, in := range []string{"-leading", "has space", "päth"} {
		if _, err := ParsePath(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseEVMAddress(t *testing.T) {
	got, err := ParseEVMAddress("0x5CF7ac588D5cdb35d8A9ED3d884F1a4245338DB7")
	if err != nil {
		t.Fatalf("ParseEVMAddress failed: %v", err)
	}
	if got != "0x5cf7ac588d5cdb35d8a9ed3d884f1a4245338db7" {
		t.Fatalf("address not lowercased: %s", got)
	}

	for _, in := range []string{"", "0x123", "5cf7ac588d5cdb35d8a9ed3d884f1a4245338db7", "0xzzf7ac588d5cdb35d8a9ed3d884f1a4245338db7"} {
		if _, err := ParseEVMAddress(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseNetwork(t *testing.T) {
	got, err := ParseNetwork(" Mainnet ")
	if err != nil {
		t.Fatalf("ParseNetwork failed: %v", err)
	}
	if got != "mainnet" {
		t.Fatalf("unexpected network: %q", got)
	}
	if _, err := ParseNetwork("main net"); err == nil {
		t.Fatal("expected error for network with whitespace")
	}
}
