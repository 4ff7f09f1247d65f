/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package identity provides an X.509 signing identity backed by an ECDSA key
// read from PEM files, as produced by cryptogen or a Fabric CA enrollment.
package identity

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"io/ioutil"
	"math/big"

	"github.com/golang/protobuf/proto"
	mspproto "github.com/hyperledger/fabric-protos-go/msp"
	"github.com/pkg/errors"
)

// curveHalfOrders are the curve group orders halved, signatures are
// normalized so that S is at most the half order.
var curveHalfOrders = map[elliptic.Curve]*big.Int{
	elliptic.P224(): new(big.Int).Rsh(elliptic.P224().Params().N, 1),
	elliptic.P256(): new(big.Int).Rsh(elliptic.P256().Params().N, 1),
	elliptic.P384(): new(big.Int).Rsh(elliptic.P384().Params().N, 1),
	elliptic.P521(): new(big.Int).Rsh(elliptic.P521().Params().N, 1),
}

type ecdsaSignature struct {
	R, S *big.Int
}

// SigningIdentity implements fab.IdentityContext
type SigningIdentity struct {
	mspID string
	cert  []byte
	key   *ecdsa.PrivateKey
}

// New creates a signing identity from a PEM encoded certificate and private key
func New(mspID string, certPEM, keyPEM []byte) (*SigningIdentity, error) {
	if mspID == "" {
		return nil, errors.New("MSP ID is required")
	}

	block, _ := pem.Decode(certPEM)
	if block == nil {
		return nil, errors.New("certificate is not PEM encoded")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse certificate")
	}

	key, err := parsePrivateKey(keyPEM)
	if err != nil {
		return nil, err
	}

	pub, ok := cert.PublicKey.(*ecdsa.PublicKey)
	if !ok || pub.X.Cmp(key.PublicKey.X) != 0 || pub.Y.Cmp(key.PublicKey.Y) != 0 {
		return nil, errors.New("private key does not match certificate")
	}

	return &SigningIdentity{mspID: mspID, cert: certPEM, key: key}, nil
}

// FromFiles reads the certificate and private key of a signing identity
func FromFiles(mspID, certPath, keyPath string) (*SigningIdentity, error) {
	certPEM, err := ioutil.ReadFile(certPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read certificate %s", certPath)
	}
	keyPEM, err := ioutil.ReadFile(keyPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read private key %s", keyPath)
	}
	return New(mspID, certPEM, keyPEM)
}

func parsePrivateKey(keyPEM []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, errors.New("private key is not PEM encoded")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, errors.Errorf("unsupported private key type %T", key)
		}
		return ecKey, nil
	}

	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}
	return key, nil
}

// MSPID returns the MSP of the identity
func (id *SigningIdentity) MSPID() string {
	return id.mspID
}

// Identity returns the serialized identity
func (id *SigningIdentity) Identity() ([]byte, error) {
	serialized, err := proto.Marshal(&mspproto.SerializedIdentity{Mspid: id.mspID, IdBytes: id.cert})
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize identity")
	}
	return serialized, nil
}

// Sign signs the SHA-256 digest of msg, the signature is ASN.1 encoded with a low S value
func (id *SigningIdentity) Sign(msg []byte) ([]byte, error) {
	if len(msg) == 0 {
		return nil, errors.New("object (to sign) required")
	}

	digest := sha256.Sum256(msg)
	r, s, err := ecdsa.Sign(rand.Reader, id.key, digest[:])
	if err != nil {
		return nil, errors.Wrap(err, "signing failed")
	}

	s, err = toLowS(&id.key.PublicKey, s)
	if err != nil {
		return nil, err
	}
	return asn1.Marshal(ecdsaSignature{R: r, S: s})
}

func toLowS(k *ecdsa.PublicKey, s *big.Int) (*big.Int, error) {
	halfOrder, ok := curveHalfOrders[k.Curve]
	if !ok {
		return nil, errors.Errorf("curve not recognized [%s]", k.Curve.Params().Name)
	}
	if s.Cmp(halfOrder) == 1 {
		s.Sub(k.Params().N, s)
	}
	return s, nil
}
