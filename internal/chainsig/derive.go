package chainsig

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
)

// curvePoint is an affine secp256k1 point. Points are never mutated after
// construction; derivation only combines them into new points.
type curvePoint struct {
	x, y *big.Int
}

func parseUncompressedPoint(uncompressedHex string) (curvePoint, error) {
	if len(uncompressedHex) != 130 || uncompressedHex[:2] != "04" {
		return curvePoint{}, fmt.Errorf("public key is not a 04-prefixed uncompressed point")
	}
	x, okX := new(big.Int).SetString(uncompressedHex[2:66], 16)
	y, okY := new(big.Int).SetString(uncompressedHex[66:130], 16)
	if !okX || !okY {
		return curvePoint{}, fmt.Errorf("public key coordinates are not valid hex")
	}
	return curvePoint{x: x, y: y}, nil
}

func (p curvePoint) uncompressedHex() string {
	return fmt.Sprintf("04%064x%064x", p.x, p.y)
}

// Derived is the result of a full address derivation: the chain-specific
// address plus the uncompressed child public key it encodes.
type Derived struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
}

// DeriveChildPublicKey computes the MPC child public key for (accountID, path)
// under the given NEAR-format root public key and returns it as 130-character
// uncompressed hex. The derivation is pure: identical inputs always produce
// identical output.
//
// The child point is P + epsilon(accountID, path)·G where P is the decoded
// root point and G the secp256k1 generator (non-hardened hierarchical
// derivation, as performed by the NEAR chain-signatures MPC network).
func DeriveChildPublicKey(rootPublicKey, accountID, path string) (string, error) {
	parentHex, err := decodeRootPublicKey(rootPublicKey)
	if err != nil {
		return "", err
	}
	return deriveChildFromUncompressed(parentHex, accountID, path)
}

func deriveChildFromUncompressed(parentUncompressedHex, accountID, path string) (string, error) {
	parent, err := parseUncompressedPoint(parentUncompressedHex)
	if err != nil {
		return "", err
	}

	curve := crypto.S256()
	scalar := epsilonScalar(accountID, path)
	scalar.Mod(scalar, curve.Params().N)

	epsX, epsY := curve.ScalarBaseMult(scalar.Bytes())
	childX, childY := curve.Add(parent.x, parent.y, epsX, epsY)

	// P + eps·G can only be the point at infinity if eps·G = -P, which would
	// require finding the discrete log of the root key. Treat as fatal.
	if childX.Sign() == 0 && childY.Sign() == 0 {
		return "", fmt.Errorf("derived child key is the point at infinity")
	}

	return curvePoint{x: childX, y: childY}.uncompressedHex(), nil
}

// DeriveAddress derives the child public key for (accountID, path) under the
// given root public key and encodes it as an address of the requested type.
func DeriveAddress(rootPublicKey, accountID, path string, addrType AddressType) (Derived, error) {
	publicKey, err := DeriveChildPublicKey(rootPublicKey, accountID, path)
	if err != nil {
		return Derived{}, err
	}
	address, err := EncodeAddress(publicKey, addrType)
	if err != nil {
		return Derived{}, err
	}
	return Derived{Address: address, PublicKey: publicKey}, nil
}
