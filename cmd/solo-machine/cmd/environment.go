package cmd

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/engine/command"
	"github.com/solo-machine/solo-machine/module/metrics"
	"github.com/solo-machine/solo-machine/module/output"
	bstorage "github.com/solo-machine/solo-machine/storage/badger"
)

// environment holds what every command needs, resolved once per invocation.
type environment struct {
	log         zerolog.Logger
	db          *badger.DB
	signer      crypto.Signer
	sink        *output.Sink
	registry    *prometheus.Registry
	collector   *metrics.SoloMachineCollector
	dispatcher  *command.Dispatcher
	metricsFile string
}

func newEnvironment() (*environment, error) {
	log, err := newLogger(viper.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}

	color, err := output.ParseColorChoice(viper.GetString(flagColor))
	if err != nil {
		return nil, err
	}

	signer, err := newSigner()
	if err != nil {
		return nil, err
	}

	home := viper.GetString(flagHome)
	err = os.MkdirAll(home, 0700)
	if err != nil {
		return nil, fmt.Errorf("could not create home directory %s: %w", home, err)
	}
	db, err := bstorage.Open(home, log)
	if err != nil {
		return nil, fmt.Errorf("could not open database in %s: %w", home, err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewSoloMachineCollector(registry)

	return &environment{
		log:         log,
		db:          db,
		signer:      signer,
		sink:        output.NewSink(os.Stdout, color),
		registry:    registry,
		collector:   collector,
		dispatcher:  command.NewDispatcher(log, collector),
		metricsFile: viper.GetString(flagMetricsFile),
	}, nil
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).Level(lvl).With().Timestamp().Logger(), nil
}

func newSigner() (crypto.Signer, error) {
	mnemonic := viper.GetString(flagMnemonic)
	if mnemonic == "" {
		return nil, fmt.Errorf("a mnemonic is required (--%s or SOLO_MNEMONIC)", flagMnemonic)
	}
	algo, err := crypto.ParsePublicKeyAlgo(viper.GetString(flagSignerAlgo))
	if err != nil {
		return nil, err
	}
	signer, err := crypto.NewMnemonicSigner(mnemonic, viper.GetString(flagHDPath), viper.GetString(flagAccountPrefix), algo)
	if err != nil {
		return nil, fmt.Errorf("could not create signer: %w", err)
	}
	return signer, nil
}

// Close flushes metrics and closes the database.
func (e *environment) Close() error {
	var err error
	if e.metricsFile != "" {
		err = multierr.Append(err, prometheus.WriteToTextfile(e.metricsFile, e.registry))
	}
	err = multierr.Append(err, e.db.Close())
	return err
}
