package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/engine/command"
	engineibc "github.com/solo-machine/solo-machine/engine/ibc"
	"github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/module"
	"github.com/solo-machine/solo-machine/rpc/gateway"
	bstorage "github.com/solo-machine/solo-machine/storage/badger"
)

const (
	flagMemo          = "memo"
	flagNewPublicKey  = "new-public-key"
	flagPublicKeyAlgo = "public-key-algo"
	flagRetries       = "gateway-retries"
)

var ibcCmd = &cobra.Command{
	Use:   "ibc",
	Short: "Used to connect, mint tokens and burn tokens on IBC enabled chain",
}

var connectCmd = &cobra.Command{
	Use:   "connect <chain-id>",
	Short: "Establishes connection with an IBC enabled chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, err := ibc.NewChainID(args[0])
		if err != nil {
			return err
		}
		return runIBC(cmd, command.Connect{ChainID: chainID, Memo: viper.GetString(flagMemo)})
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <chain-id> <amount> <denom> [receiver]",
	Short: "Sends some tokens to IBC enabled chain",
	Long: "Sends some tokens to IBC enabled chain. If no receiver address is provided, " +
		"tokens are sent to the signer's address.",
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, amount, receiver, err := transferArgs(args)
		if err != nil {
			return err
		}
		return runIBC(cmd, command.Send{
			ChainID:  chainID,
			Amount:   amount,
			Denom:    args[2],
			Receiver: receiver,
			Memo:     viper.GetString(flagMemo),
		})
	},
}

var receiveCmd = &cobra.Command{
	Use:   "receive <chain-id> <amount> <denom> [receiver]",
	Short: "Receives some tokens from IBC enabled chain",
	Long: "Receives some tokens from IBC enabled chain. If no receiver address is provided, " +
		"tokens are received to the signer's address.",
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, amount, receiver, err := transferArgs(args)
		if err != nil {
			return err
		}
		return runIBC(cmd, command.Receive{
			ChainID:  chainID,
			Amount:   amount,
			Denom:    args[2],
			Receiver: receiver,
			Memo:     viper.GetString(flagMemo),
		})
	},
}

var updateSignerCmd = &cobra.Command{
	Use:   "update-signer <chain-id>",
	Short: "Updates signer's public key on IBC enabled chain for future messages from solo machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, err := ibc.NewChainID(args[0])
		if err != nil {
			return err
		}
		newPublicKey := viper.GetString(flagNewPublicKey)
		if newPublicKey == "" {
			return fmt.Errorf("--%s (or SOLO_NEW_PUBLIC_KEY) is required", flagNewPublicKey)
		}
		return runIBC(cmd, command.UpdateSigner{
			ChainID:       chainID,
			NewPublicKey:  newPublicKey,
			PublicKeyAlgo: viper.GetString(flagPublicKeyAlgo),
			Memo:          viper.GetString(flagMemo),
		})
	},
}

func init() {
	rootCmd.AddCommand(ibcCmd)
	ibcCmd.AddCommand(connectCmd, sendCmd, receiveCmd, updateSignerCmd)

	addGatewayFlags(ibcCmd.PersistentFlags())
	for _, cmd := range []*cobra.Command{connectCmd, sendCmd, receiveCmd, updateSignerCmd} {
		addMemoFlag(cmd.Flags())
	}
	updateSignerCmd.Flags().String(flagNewPublicKey, "", "hex encoded public key [env: SOLO_NEW_PUBLIC_KEY]")
	updateSignerCmd.Flags().String(flagPublicKeyAlgo, crypto.Secp256k1Name,
		fmt.Sprintf("type of public key %v [env: SOLO_PUBLIC_KEY_ALGO]", crypto.PublicKeyAlgoNames))
}

func addMemoFlag(flags *pflag.FlagSet) {
	flags.String(flagMemo, engineibc.DefaultMemo, "memo to include in transactions [env: SOLO_MEMO]")
}

func addGatewayFlags(flags *pflag.FlagSet) {
	flags.Uint64(flagRetries, gateway.DefaultMaxRetries, "retries of failed gateway requests [env: SOLO_GATEWAY_RETRIES]")
}

func transferArgs(args []string) (ibc.ChainID, uint64, string, error) {
	chainID, err := ibc.NewChainID(args[0])
	if err != nil {
		return "", 0, "", err
	}
	amount, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return "", 0, "", fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	var receiver string
	if len(args) == 4 {
		receiver = args[3]
	}
	return chainID, amount, receiver, nil
}

func runIBC(cmd *cobra.Command, ibcCommand command.IBCCommand) (err error) {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, env.Close())
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	chains := bstorage.NewChains(env.db)
	ibcStore := bstorage.NewIBC(env.db)
	factory := gateway.NewFactory(env.log, env.signer,
		gateway.WithMetrics(env.collector),
		gateway.WithRetries(viper.GetUint64(flagRetries), gateway.DefaultRetryBase),
	)
	locks := engineibc.NewChainLocks()

	return command.ExecuteIBC(ctx, env.dispatcher, env.sink, ibcCommand, func(emitter module.EventEmitter) command.IBCService {
		return engineibc.NewService(env.log, chains, ibcStore, factory, env.signer, emitter,
			engineibc.WithMetrics(env.collector),
			engineibc.WithChainLocks(locks),
		)
	})
}
