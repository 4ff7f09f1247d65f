/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fab defines the contracts between the transaction coordinator and
// the network: endorsers, the committer, the block event stream and the
// signing identity.
package fab

// IdentityContext is the signing identity a transaction is created for. It is
// immutable for the duration of an operation.
type IdentityContext interface {
	// MSPID is the membership service provider of the identity
	MSPID() string
	// Identity returns the serialized identity used as transaction creator
	Identity() ([]byte, error)
	// Sign signs msg with the identity's private key
	Sign(msg []byte) ([]byte, error)
}
