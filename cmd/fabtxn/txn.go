/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/client/transaction"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/client/transaction/invoke"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/errors/retry"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/core/config"
)

type txnFlags struct {
	chaincode string
	policy    string
	transient map[string]string
	init      bool
}

func (f *txnFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.chaincode, "chaincode", "n", "", "chaincode name, overrides the configured one")
	flags.StringVar(&f.policy, "policy", "", "endorsement policy expression, overrides the configured one")
	flags.StringToStringVar(&f.transient, "transient", nil, "transient data as key=value pairs")
}

func (f *txnFlags) prepare(cfg *config.TxnConfig) error {
	if f.chaincode != "" {
		cfg.Chaincode = f.chaincode
	}
	if f.policy != "" {
		cfg.Policy = f.policy
	}
	if cfg.Chaincode == "" {
		return errors.New("chaincode is required")
	}
	return nil
}

func (f *txnFlags) request(args []string) transaction.Request {
	req := transaction.Request{Fcn: args[0], IsInit: f.init}
	for _, arg := range args[1:] {
		req.Args = append(req.Args, []byte(arg))
	}
	if len(f.transient) > 0 {
		req.TransientMap = make(map[string]interface{}, len(f.transient))
		for k, v := range f.transient {
			req.TransientMap[k] = v
		}
	}
	return req
}

// interceptor returns the policy validator when a policy is configured,
// otherwise fallback
func interceptor(policy string, fallback invoke.ResultInterceptor) (invoke.ResultInterceptor, error) {
	if policy == "" {
		return fallback, nil
	}
	v, err := invoke.NewPolicyValidator(policy)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid endorsement policy")
	}
	return v, nil
}

func newEvaluateCmd(s *settings) *cobra.Command {
	f := &txnFlags{}

	cmd := &cobra.Command{
		Use:   "evaluate <fcn> [args...]",
		Short: "Evaluate a transaction on the endorsers without ordering it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(f.prepare, func(ctx context.Context, sess *session) error {
				tr, err := sess.transaction()
				if err != nil {
					return err
				}
				i, err := interceptor(sess.cfg.Policy, nil)
				if err != nil {
					return err
				}
				if err := tr.Build(sess.cfg.Chaincode, i); err != nil {
					return err
				}

				result, err := tr.Evaluate(ctx, f.request(args))
				if err != nil {
					return err
				}
				return writeYAML(s.out, newTxOutput(result, ""))
			})
		},
	}
	f.register(cmd)

	return cmd
}

func newSubmitCmd(s *settings) *cobra.Command {
	f := &txnFlags{}

	cmd := &cobra.Command{
		Use:   "submit <fcn> [args...]",
		Short: "Endorse, order and confirm a transaction",
		Long: "Endorse, order and confirm a transaction. Transient failures are retried " +
			"according to the retry section of the configuration, each attempt with a new transaction ID.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(f.prepare, func(ctx context.Context, sess *session) error {
				tr, err := sess.transaction()
				if err != nil {
					return err
				}
				i, err := interceptor(sess.cfg.Policy, invoke.EndorseAllInterceptor())
				if err != nil {
					return err
				}

				invoker := retry.NewInvoker(retry.New(sess.cfg.RetryOpts()),
					retry.WithBeforeRetry(func(err error) {
						logger.Warnf("submit failed, retrying: %s", err)
					}),
				)

				req := f.request(args)
				resp, err := invoker.Invoke(ctx, func(ctx context.Context) (interface{}, error) {
					if err := tr.Build(sess.cfg.Chaincode, i); err != nil {
						return nil, err
					}
					return tr.Submit(ctx, req, sess.network.committer)
				})
				if err != nil {
					return err
				}
				return writeYAML(s.out, newTxOutput(resp.(*fab.EndorsementResult), "VALID"))
			})
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&f.init, "init", false, "invoke the chaincode init function")

	return cmd
}
