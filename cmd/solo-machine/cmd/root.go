package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/module/output"
)

// envPrefix is prepended to every flag name to form its environment variable, so
// that `--memo` may be set with SOLO_MEMO.
const envPrefix = "SOLO"

const (
	flagHome          = "home"
	flagMnemonic      = "mnemonic"
	flagHDPath        = "hd-path"
	flagAccountPrefix = "account-prefix"
	flagSignerAlgo    = "signer-algo"
	flagColor         = "color"
	flagLogLevel      = "log-level"
	flagMetricsFile   = "metrics-file"
)

var rootCmd = &cobra.Command{
	Use:           "solo-machine",
	Short:         "Solo machine: a single signer acting as a chain over IBC",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	addRootFlags(rootCmd.PersistentFlags())
	cobra.OnInitialize(initConfig)
}

func addRootFlags(flags *pflag.FlagSet) {
	flags.String(flagHome, defaultHome(), "directory of the solo machine database [env: SOLO_HOME]")
	flags.String(flagMnemonic, "", "mnemonic of the signer [env: SOLO_MNEMONIC]")
	flags.String(flagHDPath, crypto.DefaultHDPath, "HD derivation path of the signer's key [env: SOLO_HD_PATH]")
	flags.String(flagAccountPrefix, crypto.DefaultAccountPrefix, "bech32 prefix of account addresses [env: SOLO_ACCOUNT_PREFIX]")
	flags.String(flagSignerAlgo, crypto.Secp256k1Name, fmt.Sprintf("public key algorithm of the signer %v [env: SOLO_SIGNER_ALGO]", crypto.PublicKeyAlgoNames))
	flags.String(flagColor, output.ColorAuto.String(), "when to color output: auto, always or never [env: SOLO_COLOR]")
	flags.String(flagLogLevel, zerolog.InfoLevel.String(), "log level [env: SOLO_LOG_LEVEL]")
	flags.String(flagMetricsFile, "", "write prometheus metrics to this file on exit [env: SOLO_METRICS_FILE]")
}

// initConfig resolves every flag as: command line, then environment, then default.
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".solo-machine"
	}
	return filepath.Join(home, ".solo-machine")
}
