package chainsig

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

const rootKeyPrefix = "secp256k1:"

// decodeRootPublicKey converts a NEAR-format root public key
// ("secp256k1:<base58 point>") into the 130-character uncompressed hex form
// ("04" + x + y) used by the deriver.
func decodeRootPublicKey(rootPublicKey string) (string, error) {
	if !strings.HasPrefix(rootPublicKey, rootKeyPrefix) {
		return "", &MalformedRootKeyError{Key: rootPublicKey, Reason: "missing secp256k1: prefix"}
	}
	raw, err := base58.Decode(strings.TrimPrefix(rootPublicKey, rootKeyPrefix))
	if err != nil {
		return "", &MalformedRootKeyError{Key: rootPublicKey, Reason: "invalid base58 payload"}
	}
	if len(raw) != 64 {
		return "", &MalformedRootKeyError{Key: rootPublicKey, Reason: "decoded point is not 64 bytes"}
	}
	point, err := parseUncompressedPoint("04" + hex.EncodeToString(raw))
	if err != nil {
		return "", err
	}
	if !crypto.S256().IsOnCurve(point.x, point.y) {
		return "", &MalformedRootKeyError{Key: rootPublicKey, Reason: "point is not on secp256k1"}
	}
	return point.uncompressedHex(), nil
}
