package chainsig

import "fmt"

// UnsupportedAddressTypeError is returned when an address type is outside the
// known set or has no encoder implemented. Deterministic; never retried.
type UnsupportedAddressTypeError struct {
	AddressType string
}

func (e *UnsupportedAddressTypeError) Error() string {
	return fmt.Sprintf("unsupported address type: %s", e.AddressType)
}

// UnsupportedNetworkError is returned when a network identifier has no entry
// in the root-key registry.
type UnsupportedNetworkError struct {
	Network string
}

func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("unsupported network: %s", e.Network)
}

// MalformedRootKeyError is returned when a root public key string fails to
// decode. Root keys are compiled-in constants, so hitting this at runtime
// signals a corrupted constant or a caller passing a hand-built key.
type MalformedRootKeyError struct {
	Key    string
	Reason string
}

func (e *MalformedRootKeyError) Error() string {
	return fmt.Sprintf("malformed root public key %q: %s", e.Key, e.Reason)
}
