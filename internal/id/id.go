package id

import (
	"fmt"
	"regexp"
	"strings"

	clierr "github.com/chainkitlabs/chainkit/internal/errors"
)

var (
	nearAccountPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)
	evmAddressPattern  = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	pathPattern        = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)
)

// ParseAccountID validates a NEAR account identifier (NEP-0006 rules: 2-64
// characters, lowercase alphanumeric segments separated by . - _).
func ParseAccountID(input string) (string, error) {
	account := strings.TrimSpace(input)
	if account == "" {
		return "", clierr.New(clierr.CodeUsage, "account is required")
	}
	if len(account) < 2 || len(account) > 64 {
		return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("account id must be 2-64 characters: %s", input))
	}
	if !nearAccountPattern.MatchString(account) {
		return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid NEAR account id: %s", input))
	}
	return account, nil
}

// ParsePath validates a derivation path. The empty path is legal (it selects
// the account's default child key); anything else must stay within the
// printable charset derivation paths use in practice.
func ParsePath(input string) (string, error) {
	path := strings.TrimSpace(input)
	if path == "" {
		return "", nil
	}
	if len(path) > 255 {
		return "", clierr.New(clierr.CodeUsage, "derivation path exceeds 255 characters")
	}
	if !pathPattern.MatchString(path) {
		return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid derivation path: %s", input))
	}
	return path, nil
}

// ParseEVMAddress validates and lowercases a 0x-prefixed EVM address.
func ParseEVMAddress(input string) (string, error) {
	address := strings.TrimSpace(input)
	if address == "" {
		return "", clierr.New(clierr.CodeUsage, "address is required")
	}
	if !evmAddressPattern.MatchString(address) {
		return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid EVM address: %s", input))
	}
	return strings.ToLower(address), nil
}

// ParseNetwork normalizes a NEAR network identifier. Registry membership is
// checked later by the root-key registry; this only rejects obvious garbage.
func ParseNetwork(input string) (string, error) {
	network := strings.ToLower(strings.TrimSpace(input))
	if network == "" {
		return "", clierr.New(clierr.CodeUsage, "network is required")
	}
	if strings.ContainsAny(network, " \t:/") {
		return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid network identifier: %s", input))
	}
	return network, nil
}
