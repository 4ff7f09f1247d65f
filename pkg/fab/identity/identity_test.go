/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"io/ioutil"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	mspproto "github.com/hyperledger/fabric-protos-go/msp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCertAndKey(t *testing.T) ([]byte, []byte, *ecdsa.PrivateKey) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "User1@org1.example.com"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}),
		key
}

func TestNew(t *testing.T) {
	certPEM, keyPEM, _ := newCertAndKey(t)

	_, err := New("", certPEM, keyPEM)
	assert.Error(t, err)
	_, err = New("Org1MSP", []byte("junk"), keyPEM)
	assert.Error(t, err)
	_, err = New("Org1MSP", certPEM, []byte("junk"))
	assert.Error(t, err)

	_, otherKeyPEM, _ := newCertAndKey(t)
	_, err = New("Org1MSP", certPEM, otherKeyPEM)
	assert.EqualError(t, err, "private key does not match certificate")

	id, err := New("Org1MSP", certPEM, keyPEM)
	require.NoError(t, err)
	assert.Equal(t, "Org1MSP", id.MSPID())

	serialized, err := id.Identity()
	require.NoError(t, err)
	sid := &mspproto.SerializedIdentity{}
	require.NoError(t, proto.Unmarshal(serialized, sid))
	assert.Equal(t, "Org1MSP", sid.Mspid)
	assert.Equal(t, certPEM, sid.IdBytes)
}

func TestSign(t *testing.T) {
	certPEM, keyPEM, key := newCertAndKey(t)
	id, err := New("Org1MSP", certPEM, keyPEM)
	require.NoError(t, err)

	_, err = id.Sign(nil)
	assert.Error(t, err)

	msg := []byte("proposal bytes")
	halfOrder := new(big.Int).Rsh(elliptic.P256().Params().N, 1)
	for i := 0; i < 10; i++ {
		sig, err := id.Sign(msg)
		require.NoError(t, err)

		parsed := ecdsaSignature{}
		_, err = asn1.Unmarshal(sig, &parsed)
		require.NoError(t, err)
		assert.True(t, parsed.S.Cmp(halfOrder) <= 0, "signature must be low-S")

		digest := sha256.Sum256(msg)
		assert.True(t, ecdsa.Verify(&key.PublicKey, digest[:], parsed.R, parsed.S))
	}
}

func TestFromFiles(t *testing.T) {
	certPEM, keyPEM, _ := newCertAndKey(t)

	dir, err := ioutil.TempDir("", "identity")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key_sk")
	require.NoError(t, ioutil.WriteFile(certPath, certPEM, 0600))
	require.NoError(t, ioutil.WriteFile(keyPath, keyPEM, 0600))

	id, err := FromFiles("Org1MSP", certPath, keyPath)
	require.NoError(t, err)
	assert.Equal(t, "Org1MSP", id.MSPID())

	_, err = FromFiles("Org1MSP", filepath.Join(dir, "missing"), keyPath)
	assert.Error(t, err)
}
