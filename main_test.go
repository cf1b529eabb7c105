package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MixinNetwork/sigbench/crypto"
	"github.com/stretchr/testify/require"
)

const (
	testSeed      = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	testPublic    = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	testSignature = "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b"
)

func runApp(args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"sigbench"}, args...))
	return out.String(), err
}

func TestSignVerifyCmd(t *testing.T) {
	require := require.New(t)

	for _, name := range crypto.ProviderNames() {
		out, err := runApp("sign", "--seed", testSeed, "--provider", name)
		require.Nil(err)
		require.Contains(out, testPublic)
		require.Contains(out, testSignature)

		out, err = runApp("verify", "-k", testPublic, "-s", testSignature, "--provider", name)
		require.Nil(err)
		require.Equal("valid\n", out)

		_, err = runApp("verify", "-k", testPublic, "-s", testSignature, "-m", "00", "--provider", name)
		require.ErrorIs(err, crypto.ErrVerificationFailed)
	}

	_, err := runApp("sign", "--seed", testSeed[:32])
	require.NotNil(err)
	_, err = runApp("sign", "--seed", testSeed, "--provider", "sodium")
	require.ErrorIs(err, crypto.ErrUnknownProvider)
}

func TestSignVerifyJSONCmd(t *testing.T) {
	require := require.New(t)

	out, err := runApp("sign", "--seed", testSeed, "--message", "", "--json")
	require.Nil(err)
	require.Equal(`{"public":"`+testPublic+`","message":"","signature":"`+testSignature+`"}`+"\n", out)

	var sm signedMessage
	require.Nil(json.Unmarshal([]byte(out), &sm))
	require.Equal(testPublic, sm.Public.String())
	require.Equal(testSignature, sm.Signature.String())

	for _, name := range crypto.ProviderNames() {
		res, err := runApp("verify", "--json", out, "--provider", name)
		require.Nil(err)
		require.Equal("valid\n", res)
	}

	tampered := strings.Replace(out, `"message":""`, `"message":"00"`, 1)
	_, err = runApp("verify", "--json", tampered)
	require.ErrorIs(err, crypto.ErrVerificationFailed)

	short := strings.Replace(out, testSignature, testSignature[:126], 1)
	_, err = runApp("verify", "--json", short)
	require.NotNil(err)

	out, err = runApp("keygen", "--json")
	require.Nil(err)
	var pair struct {
		Seed    string           `json:"seed"`
		Private string           `json:"private"`
		Public  crypto.PublicKey `json:"public"`
	}
	require.Nil(json.Unmarshal([]byte(out), &pair))
	seed, err := hex.DecodeString(pair.Seed)
	require.Nil(err)
	derived, err := crypto.NewKeyPairFromSeed(seed)
	require.Nil(err)
	require.Equal(derived.Public, pair.Public)
	require.Equal(derived.Private.String(), pair.Private)
}

func TestKeygenProvidersCmd(t *testing.T) {
	require := require.New(t)

	out, err := runApp("keygen")
	require.Nil(err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(lines, 3)
	public := strings.TrimSpace(strings.TrimPrefix(lines[2], "public:"))
	key, err := crypto.PublicKeyFromString(public)
	require.Nil(err)
	require.True(key.CheckKey())

	out, err = runApp("providers")
	require.Nil(err)
	require.Equal("circl\nconsensus\nvoi\n", out)
}

func TestBenchReportCmd(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	conf := filepath.Join(dir, "config.toml")
	err := os.WriteFile(conf, []byte(`
[bench]
operations = ["verify", "accumulator"]
batch-sizes = [64, 1]
modes = ["inline", "pooled"]
inline-operation-count = 256
pooled-operation-count = 512
signals = "task"

[pool]
workers = 2
`), 0644)
	require.Nil(err)
	dump := filepath.Join(dir, "samples.dump")

	out, err := runApp("bench", "--config", conf, "--provider", "consensus", "--dump", dump)
	require.Nil(err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(lines, 16)
	require.True(strings.HasPrefix(lines[0], "verify(1): took "))
	require.True(strings.HasPrefix(lines[3], "verify(64): "))
	require.True(strings.HasPrefix(lines[4], "accumulator(1): took "))
	require.True(strings.HasPrefix(lines[8], "verify(1): took "))
	for _, l := range lines {
		require.NotContains(l, "pooled")
	}
	require.True(strings.HasSuffix(lines[15], " signatures/sec"))

	report, err := runApp("report", "--dump", dump)
	require.Nil(err)
	require.Equal(out, report)

	out, err = runApp("--config", conf, "--mode", "inline", "--operation", "sign", "--batch", "4")
	require.Nil(err)
	require.Len(strings.Split(strings.TrimSpace(out), "\n"), 2)
	require.True(strings.HasPrefix(out, "sign(4): took "))

	out, err = runApp("bench", "--config", conf, "--batch", "3")
	require.NotNil(err)
	require.Equal("", out)

	_, err = runApp("report", "--dump", filepath.Join(dir, "missing.dump"))
	require.NotNil(err)
}
