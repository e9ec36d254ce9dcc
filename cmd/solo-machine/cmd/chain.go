package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/solo-machine/solo-machine/engine/chain"
	"github.com/solo-machine/solo-machine/engine/command"
	"github.com/solo-machine/solo-machine/module"
	"github.com/solo-machine/solo-machine/module/output"
	bstorage "github.com/solo-machine/solo-machine/storage/badger"
)

const (
	flagGateway        = "gateway"
	flagFeeAmount      = "fee-amount"
	flagFeeDenom       = "fee-denom"
	flagGasLimit       = "gas-limit"
	flagTrustingPeriod = "trusting-period"
	flagMaxClockDrift  = "max-clock-drift"
	flagRPCTimeout     = "rpc-timeout"
	flagDiversifier    = "diversifier"
	flagPortID         = "port-id"
	flagOutput         = "output"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Used to manage IBC enabled chain details",
}

var addChainCmd = &cobra.Command{
	Use:   "add <chain-id>",
	Short: "Adds metadata for a new IBC enabled chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		req := chain.AddChainRequest{
			ChainID:        args[0],
			GatewayAddr:    viper.GetString(flagGateway),
			FeeAmount:      viper.GetUint64(flagFeeAmount),
			FeeDenom:       viper.GetString(flagFeeDenom),
			GasLimit:       viper.GetUint64(flagGasLimit),
			TrustingPeriod: viper.GetDuration(flagTrustingPeriod),
			MaxClockDrift:  viper.GetDuration(flagMaxClockDrift),
			RPCTimeout:     viper.GetDuration(flagRPCTimeout),
			Diversifier:    viper.GetString(flagDiversifier),
			PortID:         viper.GetString(flagPortID),
		}

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
		return command.ExecuteAddChain(ctx, env.dispatcher, env.sink, req, func(emitter module.EventEmitter) command.ChainService {
			return chain.NewService(env.log, chains, env.signer, emitter, chain.WithMetrics(env.collector))
		})
	},
}

var showChainCmd = &cobra.Command{
	Use:   "show <chain-id>",
	Short: "Displays details of an IBC enabled chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) (err error) {
		env, err := newEnvironment()
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, env.Close())
		}()

		service := chain.NewService(env.log, bstorage.NewChains(env.db), env.signer, module.NoopEmitter{})
		return command.ShowChain(service, env.sink, args[0], viper.GetString(flagOutput))
	},
}

var listChainsCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the IBC enabled chains added to the solo machine",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		env, err := newEnvironment()
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, env.Close())
		}()

		chains, err := chain.NewService(env.log, bstorage.NewChains(env.db), env.signer, module.NoopEmitter{}).Chains()
		if err != nil {
			return err
		}
		rows := make([]output.Row, 0, len(chains))
		for _, c := range chains {
			status := "not connected"
			if c.IsConnected() {
				status = fmt.Sprintf("connected over %s", c.ConnectionDetails.SoloMachineChannelID)
			}
			rows = append(rows, output.NewRow(c.ID.String(), status))
		}
		if len(rows) == 0 {
			return env.sink.Line("No chains added")
		}
		return env.sink.Table(rows...)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
	chainCmd.AddCommand(addChainCmd, showChainCmd, listChainsCmd)

	defaults := chain.DefaultAddChainRequest("", "")
	flags := addChainCmd.Flags()
	flags.String(flagGateway, "http://0.0.0.0:1317", "base URL of the chain's transaction gateway [env: SOLO_GATEWAY]")
	flags.Uint64(flagFeeAmount, defaults.FeeAmount, "fee amount paid for every transaction [env: SOLO_FEE_AMOUNT]")
	flags.String(flagFeeDenom, defaults.FeeDenom, "fee denom [env: SOLO_FEE_DENOM]")
	flags.Uint64(flagGasLimit, defaults.GasLimit, "gas limit of every transaction [env: SOLO_GAS_LIMIT]")
	flags.Duration(flagTrustingPeriod, defaults.TrustingPeriod, "trusting period of the tendermint client [env: SOLO_TRUSTING_PERIOD]")
	flags.Duration(flagMaxClockDrift, defaults.MaxClockDrift, "max clock drift of the tendermint client [env: SOLO_MAX_CLOCK_DRIFT]")
	flags.Duration(flagRPCTimeout, defaults.RPCTimeout, "timeout of requests to the gateway [env: SOLO_RPC_TIMEOUT]")
	flags.String(flagDiversifier, defaults.Diversifier, "diversifier of solo machine signatures [env: SOLO_DIVERSIFIER]")
	flags.String(flagPortID, defaults.PortID, "port ID of the transfer module [env: SOLO_PORT_ID]")

	showChainCmd.Flags().StringP(flagOutput, "o", command.FormatTable, "output format: table or yaml [env: SOLO_OUTPUT]")
}
