package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/MixinNetwork/sigbench/bench"
	"github.com/MixinNetwork/sigbench/config"
	"github.com/MixinNetwork/sigbench/crypto"
	"github.com/MixinNetwork/sigbench/logger"
	"github.com/urfave/cli/v2"
)

func benchCmd(c *cli.Context) error {
	runtime.GOMAXPROCS(runtime.NumCPU())

	custom, err := loadCustom(c)
	if err != nil {
		return err
	}
	logger.SetLevel(custom.Log.Level)
	logger.SetLimiter(custom.Log.Limiter)
	err = logger.SetFilter(custom.Log.Filter)
	if err != nil {
		return err
	}

	provider, err := crypto.NewProvider(custom.Provider.Name)
	if err != nil {
		return err
	}
	h, err := bench.NewHarness(custom, provider, c.App.Writer)
	if err != nil {
		return err
	}
	defer h.Close()

	samples, err := h.Run()
	if err != nil {
		return err
	}
	if p := c.String("dump"); p != "" {
		err = bench.WriteDump(p, samples)
		if err != nil {
			return err
		}
		logger.Printf("bench run %s dumped %d samples to %s", h.RunId(), len(samples), p)
	}
	return nil
}

// loadCustom reads the optional config file, then applies the flags that
// were set explicitly on the command line.
func loadCustom(c *cli.Context) (*config.Custom, error) {
	custom := config.Default()
	if f := c.String("config"); f != "" {
		cf, err := config.Initialize(f)
		if err != nil {
			return nil, err
		}
		custom = cf
	}
	if c.IsSet("provider") {
		custom.Provider.Name = c.String("provider")
	}
	if c.IsSet("workers") {
		custom.Pool.Workers = c.Int("workers")
	}
	if c.IsSet("queue") {
		custom.Pool.QueueLimit = c.Int("queue")
	}
	if c.IsSet("operation") {
		custom.Bench.Operations = c.StringSlice("operation")
	}
	if c.IsSet("batch") {
		custom.Bench.BatchSizes = c.IntSlice("batch")
	}
	if c.IsSet("mode") {
		custom.Bench.Modes = c.StringSlice("mode")
	}
	if c.IsSet("signals") {
		custom.Bench.Signals = c.String("signals")
	}
	if c.IsSet("log") {
		custom.Log.Level = c.Int("log")
	}
	if c.IsSet("filter") {
		custom.Log.Filter = c.String("filter")
	}
	if c.IsSet("limiter") {
		custom.Log.Limiter = c.Int("limiter")
	}
	return custom, custom.Validate()
}

type signedMessage struct {
	Public    crypto.PublicKey `json:"public"`
	Message   string           `json:"message"`
	Signature crypto.Signature `json:"signature"`
}

func signCmd(c *cli.Context) error {
	seed, err := hex.DecodeString(c.String("seed"))
	if err != nil {
		return err
	}
	pair, err := crypto.NewKeyPairFromSeed(seed)
	if err != nil {
		return err
	}
	message, err := hex.DecodeString(c.String("message"))
	if err != nil {
		return err
	}
	provider, err := crypto.NewProvider(c.String("provider"))
	if err != nil {
		return err
	}
	sig, err := provider.Sign(message, pair)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return printJSON(c, signedMessage{pair.Public, hex.EncodeToString(message), sig})
	}
	fmt.Fprintf(c.App.Writer, "public:\t\t%s\n", pair.Public)
	fmt.Fprintf(c.App.Writer, "signature:\t%s\n", sig)
	return nil
}

func verifyCmd(c *cli.Context) error {
	sm, err := readSignedMessage(c)
	if err != nil {
		return err
	}
	message, err := hex.DecodeString(sm.Message)
	if err != nil {
		return err
	}
	provider, err := crypto.NewProvider(c.String("provider"))
	if err != nil {
		return err
	}
	err = provider.Verify(&sm.Signature, message, &sm.Public)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "valid")
	return nil
}

func readSignedMessage(c *cli.Context) (*signedMessage, error) {
	var sm signedMessage
	if c.IsSet("json") {
		err := json.Unmarshal([]byte(c.String("json")), &sm)
		return &sm, err
	}
	key, err := crypto.PublicKeyFromString(c.String("key"))
	if err != nil {
		return nil, err
	}
	sig, err := crypto.SignatureFromString(c.String("signature"))
	if err != nil {
		return nil, err
	}
	sm.Public, sm.Message, sm.Signature = key, c.String("message"), sig
	return &sm, nil
}

func keygenCmd(c *cli.Context) error {
	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return printJSON(c, map[string]interface{}{
			"seed":    hex.EncodeToString(pair.Private.Seed()),
			"private": pair.Private.String(),
			"public":  pair.Public,
		})
	}
	fmt.Fprintf(c.App.Writer, "seed:\t\t%x\n", pair.Private.Seed())
	fmt.Fprintf(c.App.Writer, "private:\t%s\n", pair.Private)
	fmt.Fprintf(c.App.Writer, "public:\t\t%s\n", pair.Public)
	return nil
}

func printJSON(c *cli.Context, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}

func reportCmd(c *cli.Context) error {
	samples, err := bench.ReadDump(c.String("dump"))
	if err != nil {
		return err
	}
	var mode bench.Mode
	for _, s := range samples {
		if s.Cell.Mode != mode {
			mode = s.Cell.Mode
			logger.Printf("bench run %s mode %s", s.RunId, mode)
		}
		err = s.WriteReport(c.App.Writer)
		if err != nil {
			return err
		}
	}
	return nil
}

func providersCmd(c *cli.Context) error {
	for _, name := range crypto.ProviderNames() {
		fmt.Fprintln(c.App.Writer, name)
	}
	return nil
}
