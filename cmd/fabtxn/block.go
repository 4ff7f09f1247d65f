/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/options"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/events/blockstream"
)

type blockFlags struct {
	number   uint64
	newest   bool
	wait     bool
	tolerant bool
}

func newBlockCmd(s *settings) *cobra.Command {
	f := &blockFlags{}

	cmd := &cobra.Command{
		Use:   "block",
		Short: "Read a block from the event source",
		Long: "Read a block from the event source: block --number N, the newest block " +
			"with --newest, or the next block to be committed with --wait.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := 0
			for _, name := range []string{"number", "newest", "wait"} {
				if cmd.Flags().Changed(name) {
					selected++
				}
			}
			if selected != 1 {
				return errors.New("exactly one of --number, --newest or --wait is required")
			}

			return s.run(nil, func(ctx context.Context, sess *session) error {
				event, err := f.fetch(ctx, cmd.Flags().Changed("number"), sess)
				if err != nil {
					return err
				}
				return writeYAML(s.out, newBlockOutput(event))
			})
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&f.number, "number", 0, "number of the block to read")
	flags.BoolVar(&f.newest, "newest", false, "read the newest block")
	flags.BoolVar(&f.wait, "wait", false, "wait for the next block")
	flags.BoolVar(&f.tolerant, "tolerate-errors", false, "keep waiting for block --number when the stream reports an error")

	return cmd
}

func (f *blockFlags) fetch(ctx context.Context, byNumber bool, sess *session) (*fab.BlockEvent, error) {
	hub, err := sess.network.eventHubs(sess.cfg.EventOptions())
	if err != nil {
		return nil, errors.WithMessage(err, "creating event hub failed")
	}
	defer hub.Disconnect()

	opts := []options.Opt{blockstream.WithLogger(logger)}

	switch {
	case byNumber:
		if f.tolerant {
			opts = append(opts, blockstream.WithErrorTolerance())
		}
		return blockstream.GetSingleBlock(ctx, hub, sess.network.identity, f.number, opts...)
	case f.newest:
		return blockstream.GetLastBlock(ctx, hub, sess.network.identity, opts...)
	default:
		return blockstream.WaitForBlock(ctx, hub, sess.network.identity, opts...)
	}
}
