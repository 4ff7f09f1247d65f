/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fabtxn drives chaincode transactions through endorsement, ordering
// and commit confirmation on a Hyperledger Fabric channel.
//
// Packages for end developer usage
//
// pkg/client/transaction: Builds, evaluates and submits a transaction. Submit
// collects endorsements, applies the installed result interceptor, sends the
// transaction to an orderer and waits until it is committed.
// Reference: https://godoc.org/github.com/hyperledger-labs/fabric-txn-go/pkg/client/transaction
//
// pkg/client/transaction/invoke: The handler chain behind Evaluate and Submit,
// and the EndorseAll and policy interceptors.
// Reference: https://godoc.org/github.com/hyperledger-labs/fabric-txn-go/pkg/client/transaction/invoke
//
// pkg/fab/events/blockstream: Fetches a single block, the newest block, the
// next committed block, or the status of a transaction from an event hub.
// Reference: https://godoc.org/github.com/hyperledger-labs/fabric-txn-go/pkg/fab/events/blockstream
//
// pkg/core/config: Loads the client configuration.
// Reference: https://godoc.org/github.com/hyperledger-labs/fabric-txn-go/pkg/core/config
//
// Basic workflow
//
//      1) Load a TxnConfig with config.Load and create the signing identity,
//         endorsing peers (pkg/fab/peer) and orderer (pkg/fab/orderer).
//      2) Create a Transaction with transaction.New, passing an event hub
//         provider such as one returning deliverclient.New clients.
//      3) Call Build with the chaincode name and, optionally, an interceptor.
//      4) Call Evaluate for queries, or Submit to order and confirm the transaction.
//         Call Build again before every new Submit.
//
// The fabtxn command (cmd/fabtxn) wraps this workflow for the command line.
//
package fabtxn
