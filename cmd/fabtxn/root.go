/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/client/transaction"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/config"
)

const defaultTimeout = 2 * time.Minute

type settings struct {
	configFile string
	timeout    time.Duration
	connect    connector
	out        io.Writer
}

// session holds what a single command needs: the loaded configuration, the
// network connections and the metrics endpoint.
type session struct {
	cfg     *config.TxnConfig
	network *network
	metrics *metricsServer
}

func newRootCmd(connect connector, out io.Writer) *cobra.Command {
	s := &settings{connect: connect, out: out}

	root := &cobra.Command{
		Use:           "fabtxn",
		Short:         "Evaluate and submit chaincode transactions on a channel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVarP(&s.configFile, "config", "c", "", "client configuration file")
	flags.DurationVar(&s.timeout, "timeout", defaultTimeout, "deadline of the whole command")

	root.AddCommand(
		newEvaluateCmd(s),
		newSubmitCmd(s),
		newBlockCmd(s),
	)

	return root
}

// run loads the configuration, lets prepare adjust it, connects and calls fn
// within the command deadline.
func (s *settings) run(prepare func(cfg *config.TxnConfig) error, fn func(ctx context.Context, sess *session) error) error {
	cfg, err := config.Load(config.FromFile(s.configFile))
	if err != nil {
		return err
	}
	if prepare != nil {
		if err := prepare(cfg); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return errors.WithMessage(err, "invalid configuration")
	}

	nw, err := s.connect(cfg)
	if err != nil {
		return errors.WithMessage(err, "connecting to the network failed")
	}

	ms, err := startMetrics(cfg.Metrics)
	if err != nil {
		return err
	}
	defer ms.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	return fn(ctx, &session{cfg: cfg, network: nw, metrics: ms})
}

func (sess *session) transaction() (*transaction.Transaction, error) {
	return transaction.New(sess.network.endorsers, sess.network.identity, sess.cfg.Channel, sess.network.eventHubs,
		transaction.WithLogger(logger),
		transaction.WithMetrics(transaction.NewMetrics(sess.metrics.provider)),
		transaction.WithProposalOptions(sess.cfg.ProposalOptions()),
		transaction.WithCommitOptions(sess.cfg.CommitOptions()),
		transaction.WithEventOptions(sess.cfg.EventOptions()),
	)
}
