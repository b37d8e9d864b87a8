package chainsig

import (
	"encoding/json"
	"fmt"
)

// SignRequest is the argument payload for the MPC signer contract's sign
// method. This package only constructs the request; submitting it (and the
// attached deposit) is the caller's concern.
type SignRequest struct {
	Payload    []byte
	Path       string
	KeyVersion uint32
}

type signRequestArgs struct {
	Request struct {
		Payload    []int  `json:"payload"`
		Path       string `json:"path"`
		KeyVersion uint32 `json:"key_version"`
	} `json:"request"`
}

// ContractArgs serializes the request into the JSON argument shape the signer
// contract expects: a 32-byte payload rendered as a byte array plus the
// derivation path and key version.
func (r SignRequest) ContractArgs() ([]byte, error) {
	if len(r.Payload) != 32 {
		return nil, fmt.Errorf("sign payload must be exactly 32 bytes, got %d", len(r.Payload))
	}
	var args signRequestArgs
	args.Request.Payload = make([]int, len(r.Payload))
	for i, b := range r.Payload {
		args.Request.Payload[i] = int(b)
	}
	args.Request.Path = r.Path
	args.Request.KeyVersion = r.KeyVersion
	return json.Marshal(args)
}
