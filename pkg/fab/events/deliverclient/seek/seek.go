/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package seek builds the positions sent to the deliver service.
package seek

import (
	"math"

	ab "github.com/hyperledger/fabric-protos-go/orderer"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
)

var (
	newestPos = &ab.SeekPosition{Type: &ab.SeekPosition_Newest{Newest: &ab.SeekNewest{}}}
	maxPos    = &ab.SeekPosition{Type: &ab.SeekPosition_Specified{Specified: &ab.SeekSpecified{Number: math.MaxUint64}}}
)

// InfoNewest returns a SeekInfo struct that indicates to the deliver server
// that we want the latest block and every following one
func InfoNewest() *ab.SeekInfo {
	return newSeekInfo(newestPos, maxPos)
}

// InfoRange returns a SeekInfo struct that indicates to the deliver server
// that we want blocks start through end
func InfoRange(start, end uint64) *ab.SeekInfo {
	return newSeekInfo(specifiedPos(start), specifiedPos(end))
}

// Info returns the SeekInfo for a subscription range
func Info(r fab.SeekRange) *ab.SeekInfo {
	if r.Newest {
		return InfoNewest()
	}
	return InfoRange(r.Start, r.End)
}

func specifiedPos(number uint64) *ab.SeekPosition {
	return &ab.SeekPosition{
		Type: &ab.SeekPosition_Specified{
			Specified: &ab.SeekSpecified{
				Number: number,
			},
		},
	}
}

func newSeekInfo(start *ab.SeekPosition, stop *ab.SeekPosition) *ab.SeekInfo {
	return &ab.SeekInfo{
		Start:    start,
		Stop:     stop,
		Behavior: ab.SeekInfo_BLOCK_UNTIL_READY,
	}
}
