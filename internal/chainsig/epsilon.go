package chainsig

import (
	"math/big"

	"golang.org/x/crypto/sha3"
)

// epsilonDerivationTag is the versioned preimage prefix fixed by the NEAR
// MPC recovery protocol. Any change here silently derives different,
// non-interoperable keys, so it must match the deployed signer byte for byte.
const epsilonDerivationTag = "near-mpc-recovery v0.1.0 epsilon derivation:"

// epsilonScalar computes the deterministic per-(account, path) offset scalar:
// SHA3-256("near-mpc-recovery v0.1.0 epsilon derivation:<accountID>,<path>").
// The result is interpreted as a big-endian integer; reduction mod the curve
// order happens at the point of scalar multiplication.
func epsilonScalar(accountID, path string) *big.Int {
	h := sha3.New256()
	h.Write([]byte(epsilonDerivationTag + accountID + "," + path))
	return new(big.Int).SetBytes(h.Sum(nil))
}
