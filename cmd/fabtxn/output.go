/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
)

type responseOutput struct {
	Endorser string `yaml:"endorser"`
	Status   int32  `yaml:"status"`
	Message  string `yaml:"message,omitempty"`
	Payload  string `yaml:"payload,omitempty"`
}

type txOutput struct {
	TxID      string           `yaml:"txID"`
	Status    string           `yaml:"status,omitempty"`
	Responses []responseOutput `yaml:"responses"`
}

type blockOutput struct {
	Number       uint64 `yaml:"number"`
	Source       string `yaml:"source,omitempty"`
	PreviousHash string `yaml:"previousHash,omitempty"`
	DataHash     string `yaml:"dataHash,omitempty"`
	Transactions int    `yaml:"transactions"`
}

func newTxOutput(result *fab.EndorsementResult, status string) *txOutput {
	out := &txOutput{TxID: string(result.TxnID()), Status: status}
	for _, r := range result.Responses {
		ro := responseOutput{Endorser: r.Endorser, Status: r.Status}
		if r.ProposalResponse != nil && r.ProposalResponse.Response != nil {
			ro.Message = r.ProposalResponse.Response.Message
			ro.Payload = string(r.ProposalResponse.Response.Payload)
		}
		out.Responses = append(out.Responses, ro)
	}
	return out
}

func newBlockOutput(event *fab.BlockEvent) *blockOutput {
	out := &blockOutput{Source: event.SourceURL}
	if h := event.Block.GetHeader(); h != nil {
		out.Number = h.Number
		out.PreviousHash = hex.EncodeToString(h.PreviousHash)
		out.DataHash = hex.EncodeToString(h.DataHash)
	}
	out.Transactions = len(event.Block.GetData().GetData())
	return out
}

func writeYAML(w io.Writer, v interface{}) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding output failed")
	}
	_, err = w.Write(raw)
	return errors.Wrap(err, "writing output failed")
}
