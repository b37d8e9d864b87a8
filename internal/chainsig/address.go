package chainsig

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// AddressType selects the target-chain encoding of a derived public key.
type AddressType string

const (
	AddressTypeEVM                  AddressType = "evm"
	AddressTypeBitcoinMainnetLegacy AddressType = "bitcoin-mainnet-legacy"
	AddressTypeBitcoinMainnetSegwit AddressType = "bitcoin-mainnet-segwit"
	AddressTypeBitcoinTestnetLegacy AddressType = "bitcoin-testnet-legacy"
	AddressTypeBitcoinTestnetSegwit AddressType = "bitcoin-testnet-segwit"
)

// ParseAddressType maps a user-supplied string onto a known address type.
// Unknown strings fail with UnsupportedAddressTypeError.
func ParseAddressType(input string) (AddressType, error) {
	switch AddressType(strings.ToLower(strings.TrimSpace(input))) {
	case AddressTypeEVM:
		return AddressTypeEVM, nil
	case AddressTypeBitcoinMainnetLegacy:
		return AddressTypeBitcoinMainnetLegacy, nil
	case AddressTypeBitcoinMainnetSegwit:
		return AddressTypeBitcoinMainnetSegwit, nil
	case AddressTypeBitcoinTestnetLegacy:
		return AddressTypeBitcoinTestnetLegacy, nil
	case AddressTypeBitcoinTestnetSegwit:
		return AddressTypeBitcoinTestnetSegwit, nil
	default:
		return "", &UnsupportedAddressTypeError{AddressType: input}
	}
}

// EncodeAddress converts an uncompressed child public key into a
// chain-specific address string.
//
// Only EVM encoding is implemented. The Bitcoin variants are part of the
// enumerated type but deliberately fail with UnsupportedAddressTypeError:
// the upstream MPC signer enumerates them without encoders, and silently
// inventing an encoding here would produce addresses nothing else agrees on.
func EncodeAddress(uncompressedPublicKeyHex string, addrType AddressType) (string, error) {
	switch addrType {
	case AddressTypeEVM:
		return encodeEVMAddress(uncompressedPublicKeyHex)
	case AddressTypeBitcoinMainnetLegacy,
		AddressTypeBitcoinMainnetSegwit,
		AddressTypeBitcoinTestnetLegacy,
		AddressTypeBitcoinTestnetSegwit:
		return "", &UnsupportedAddressTypeError{AddressType: string(addrType)}
	default:
		return "", &UnsupportedAddressTypeError{AddressType: string(addrType)}
	}
}

// encodeEVMAddress applies the standard Ethereum rule: Keccak-256 over the
// raw 64-byte point (x||y, no 04 prefix), last 20 bytes, lowercase 0x hex.
func encodeEVMAddress(uncompressedPublicKeyHex string) (string, error) {
	if _, err := parseUncompressedPoint(uncompressedPublicKeyHex); err != nil {
		return "", err
	}
	raw, err := hex.DecodeString(uncompressedPublicKeyHex[2:])
	if err != nil {
		return "", err
	}
	digest := crypto.Keccak256(raw)
	return "0x" + hex.EncodeToString(digest[12:]), nil
}
