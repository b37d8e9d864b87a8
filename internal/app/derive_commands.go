package app

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/chainkitlabs/chainkit/internal/chainsig"
	clierr "github.com/chainkitlabs/chainkit/internal/errors"
	"github.com/chainkitlabs/chainkit/internal/id"
	"github.com/chainkitlabs/chainkit/internal/model"
	"github.com/chainkitlabs/chainkit/internal/registry"
	"github.com/spf13/cobra"
)

func (s *runtimeState) newDeriveCommand() *cobra.Command {
	root := &cobra.Command{Use: "derive", Short: "Deterministic chain-signature derivation"}

	var networkArg, accountArg, pathArg, typeArg string
	addressCmd := &cobra.Command{
		Use:   "address",
		Short: "Derive the chain address controlled by (network, account, path)",
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := id.ParseNetwork(networkArg)
			if err != nil {
				return err
			}
			account, err := id.ParseAccountID(accountArg)
			if err != nil {
				return err
			}
			path, err := id.ParsePath(pathArg)
			if err != nil {
				return err
			}
			addrType, err := chainsig.ParseAddressType(typeArg)
			if err != nil {
				return mapDerivationError(err)
			}
			cfg, err := s.networks.Lookup(network)
			if err != nil {
				return mapDerivationError(err)
			}
			derived, err := chainsig.DeriveAddress(cfg.RootPublicKey, account, path, addrType)
			if err != nil {
				return mapDerivationError(err)
			}
			result := model.DerivedAddress{
				Network:            cfg.Network,
				AccountID:          account,
				Path:               path,
				AddressType:        string(addrType),
				Address:            derived.Address,
				PublicKey:          derived.PublicKey,
				MPCSignerAccountID: cfg.MPCSignerAccountID,
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), result, nil, cacheMetaBypass(), nil, false)
		},
	}
	addressCmd.Flags().StringVar(&networkArg, "network", "mainnet", "NEAR network (mainnet|testnet)")
	addressCmd.Flags().StringVar(&accountArg, "account", "", "NEAR account that controls the derived key")
	addressCmd.Flags().StringVar(&pathArg, "path", "", "Derivation path (e.g. ethereum-1)")
	addressCmd.Flags().StringVar(&typeArg, "type", "evm", "Address type (evm)")
	_ = addressCmd.MarkFlagRequired("account")

	var pkNetworkArg, pkAccountArg, pkPathArg string
	pubkeyCmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Derive the uncompressed child public key for (network, account, path)",
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := id.ParseNetwork(pkNetworkArg)
			if err != nil {
				return err
			}
			account, err := id.ParseAccountID(pkAccountArg)
			if err != nil {
				return err
			}
			path, err := id.ParsePath(pkPathArg)
			if err != nil {
				return err
			}
			cfg, err := s.networks.Lookup(network)
			if err != nil {
				return mapDerivationError(err)
			}
			publicKey, err := chainsig.DeriveChildPublicKey(cfg.RootPublicKey, account, path)
			if err != nil {
				return mapDerivationError(err)
			}
			result := model.DerivedPublicKey{
				Network:   cfg.Network,
				AccountID: account,
				Path:      path,
				PublicKey: publicKey,
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), result, nil, cacheMetaBypass(), nil, false)
		},
	}
	pubkeyCmd.Flags().StringVar(&pkNetworkArg, "network", "mainnet", "NEAR network (mainnet|testnet)")
	pubkeyCmd.Flags().StringVar(&pkAccountArg, "account", "", "NEAR account that controls the derived key")
	pubkeyCmd.Flags().StringVar(&pkPathArg, "path", "", "Derivation path (e.g. ethereum-1)")
	_ = pubkeyCmd.MarkFlagRequired("account")

	root.AddCommand(addressCmd)
	root.AddCommand(pubkeyCmd)
	return root
}

func (s *runtimeState) newNetworksCommand() *cobra.Command {
	root := &cobra.Command{Use: "networks", Short: "Supported NEAR MPC networks"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List networks with their root public keys and MPC signer accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			configs := s.networks.Networks()
			infos := make([]model.NetworkInfo, 0, len(configs))
			for _, cfg := range configs {
				rpcURL, _ := registry.NEARRPCURL(cfg.Network)
				infos = append(infos, model.NetworkInfo{
					Network:            cfg.Network,
					RootPublicKey:      cfg.RootPublicKey,
					MPCSignerAccountID: cfg.MPCSignerAccountID,
					RPCURL:             rpcURL,
				})
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), infos, nil, cacheMetaBypass(), nil, false)
		},
	}
	root.AddCommand(list)
	return root
}

func (s *runtimeState) newSignRequestCommand() *cobra.Command {
	root := &cobra.Command{Use: "sign-request", Short: "MPC signer contract request helpers"}

	var networkArg, payloadArg, pathArg string
	var keyVersion uint32
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build the signer contract argument JSON for a 32-byte payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := id.ParseNetwork(networkArg)
			if err != nil {
				return err
			}
			path, err := id.ParsePath(pathArg)
			if err != nil {
				return err
			}
			payloadHex := strings.TrimPrefix(strings.TrimSpace(payloadArg), "0x")
			payload, err := hex.DecodeString(payloadHex)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "decode payload hex", err)
			}
			if len(payload) != 32 {
				return clierr.Newf(clierr.CodeUsage, "payload must be exactly 32 bytes, got %d", len(payload))
			}
			cfg, err := s.networks.Lookup(network)
			if err != nil {
				return mapDerivationError(err)
			}
			req := chainsig.SignRequest{Payload: payload, Path: path, KeyVersion: keyVersion}
			argsJSON, err := req.ContractArgs()
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "build sign request", err)
			}
			rpcURL, _ := registry.NEARRPCURL(cfg.Network)
			result := model.SignRequestPreview{
				Network:            cfg.Network,
				MPCSignerAccountID: cfg.MPCSignerAccountID,
				RPCURL:             rpcURL,
				Method:             "sign",
				ArgsJSON:           string(argsJSON),
				PayloadHex:         payloadHex,
				Path:               path,
				KeyVersion:         keyVersion,
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), result, nil, cacheMetaBypass(), nil, false)
		},
	}
	buildCmd.Flags().StringVar(&networkArg, "network", "mainnet", "NEAR network (mainnet|testnet)")
	buildCmd.Flags().StringVar(&payloadArg, "payload", "", "32-byte payload hash as hex")
	buildCmd.Flags().StringVar(&pathArg, "path", "", "Derivation path the signature is requested under")
	buildCmd.Flags().Uint32Var(&keyVersion, "key-version", 0, "MPC key version")
	_ = buildCmd.MarkFlagRequired("payload")

	root.AddCommand(buildCmd)
	return root
}

// mapDerivationError translates the chainsig error taxonomy onto CLI error
// codes. A malformed compiled-in root key is a build defect, not user input.
func mapDerivationError(err error) error {
	if err == nil {
		return nil
	}
	var addrErr *chainsig.UnsupportedAddressTypeError
	if errors.As(err, &addrErr) {
		return clierr.Wrap(clierr.CodeUnsupported, "unsupported address type", err)
	}
	var netErr *chainsig.UnsupportedNetworkError
	if errors.As(err, &netErr) {
		return clierr.Wrap(clierr.CodeUnsupported, "unsupported network", err)
	}
	var keyErr *chainsig.MalformedRootKeyError
	if errors.As(err, &keyErr) {
		return clierr.Wrap(clierr.CodeInternal, "malformed root public key", err)
	}
	return clierr.Wrap(clierr.CodeInternal, "derive key", err)
}
