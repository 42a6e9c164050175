// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package zkvm

import (
	"fmt"

	"github.com/lux-zk/zkmips/internal/onchain"
	"github.com/lux-zk/zkmips/internal/stark"
)

// Verify implements spec.md §4.6 `verify(verifying_key, receipt) -> ok |
// ErrorKind`, dispatching on receipt.Mode.
func Verify(vk *VerifyingKey, receipt *Receipt) error {
	if receipt.ProgramDigest != vk.ProgramDigest {
		return newError(KindVerifierSelectorMismatch, "receipt program digest does not match verifying key", nil)
	}

	switch receipt.Mode {
	case ModeCore:
		for _, sp := range receipt.Shards {
			if err := stark.Verify(vk.Stark, sp.Proof); err != nil {
				return newError(KindProofInvalid, fmt.Sprintf("shard %d", sp.ShardIndex), err)
			}
		}
		return nil

	case ModeCompressed:
		if receipt.Reduced == nil {
			return newError(KindProofInvalid, "compressed receipt missing its reduce proof", nil)
		}
		if err := stark.Verify(vk.Stark, receipt.Reduced.Proof); err != nil {
			return newError(KindProofInvalid, "compressed proof", err)
		}
		return nil

	case ModeGroth16:
		if vk.Groth16 == nil {
			return newError(KindSetupArtifactCorrupted, "verifying key has no groth16 component", nil)
		}
		return VerifyBytes(&onchain.Groth16Verifier{VK: vk.Groth16}, receipt.PublicValues, receipt.SNARK)

	case ModePlonk:
		if vk.Plonk == nil {
			return newError(KindSetupArtifactCorrupted, "verifying key has no plonk component", nil)
		}
		return VerifyBytes(&onchain.PlonkVerifier{VK: vk.Plonk}, receipt.PublicValues, receipt.SNARK)

	default:
		return newError(KindProofInvalid, fmt.Sprintf("unknown proof mode %d", receipt.Mode), nil)
	}
}

// VerifyBytes implements spec.md §4.6 `verify_bytes(verifying_key_digest,
// public_values_bytes, proof_bytes) -> ok | ErrorKind`, the SNARK-flavor
// entry point a caller holding only a verifier and raw bytes (no typed
// Receipt) uses — the shape spec.md §6 "On-chain interface" names
// (`verifyProof`, `VERIFIER_HASH()`), here taking an onchain.Verifier
// directly rather than a bare digest since the digest alone can't select
// which proof system to dispatch to.
func VerifyBytes(verifier onchain.Verifier, publicValuesBytes, proofBytes []byte) error {
	if err := verifier.VerifyProof(verifier.VerifierHash(), publicValuesBytes, proofBytes); err != nil {
		return newError(KindProofInvalid, "SNARK receipt verification failed", err)
	}
	return nil
}
