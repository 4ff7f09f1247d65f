/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// fabtxn evaluates and submits chaincode transactions and reads blocks from
// the channel named in its configuration file.
package main

import (
	"os"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/logging"
)

var logger = logging.NewLogger("fabtxn/cmd")

func main() {
	if err := newRootCmd(connect, os.Stdout).Execute(); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}
