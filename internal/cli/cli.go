// Package cli implements the regdbd driver: environment configuration, the
// load, verify, lookup, encode, dispatch pipeline, and terminal error
// mapping. Each stage is a one-way gate; the first failure aborts the run
// and no later stage executes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nlreg/regdbd/internal/logctx"
	"github.com/nlreg/regdbd/pkg/humanfmt"
	"github.com/nlreg/regdbd/pkg/logging"
	"github.com/nlreg/regdbd/pkg/nl80211"
	"github.com/nlreg/regdbd/pkg/regdb"
)

// Compiled-in defaults, overridable through the environment.
const (
	DefaultDBPath = "/usr/lib/regdbd/regulatory.bin"
	DefaultKeyDir = "/usr/lib/regdbd/pubkeys"
)

// Dispatcher delivers an encoded regulatory payload to the kernel.
type Dispatcher interface {
	SetRegulatory(payload []byte) error
	Close() error
}

// Config collects the environment-derived settings for one run.
type Config struct {
	Alpha2 [2]byte
	DBPath string
	KeyDir string
	Debug  bool
}

// ParseConfig reads configuration from the environment. COUNTRY is
// required and must be two uppercase ASCII letters or the world code "00";
// any other shape is rejected before the pipeline runs.
func ParseConfig(getenv func(string) string) (Config, error) {
	country := getenv("COUNTRY")
	if country == "" {
		return Config{}, errors.New("COUNTRY environment variable not set")
	}
	if !isAlpha2(country) && !isWorldRegdom(country) {
		return Config{}, fmt.Errorf("invalid COUNTRY %q: want two uppercase letters or 00", country)
	}

	cfg := Config{
		DBPath: DefaultDBPath,
		KeyDir: DefaultKeyDir,
		Debug:  getenv("REGDB_DEBUG") == "1",
	}
	copy(cfg.Alpha2[:], country)
	if p := getenv("REGDB_PATH"); p != "" {
		cfg.DBPath = p
	}
	if d := getenv("REGDB_PUBKEY_DIR"); d != "" {
		cfg.KeyDir = d
	}
	return cfg, nil
}

func isAlpha2(s string) bool {
	return len(s) == 2 && isUpper(s[0]) && isUpper(s[1])
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isWorldRegdom(s string) bool {
	return s == "00"
}

// Run executes one regulatory update. The binary takes no arguments; the
// country comes from the environment. dial opens the kernel transport and
// is injectable for tests.
func Run(args []string, getenv func(string) string, dial func() (Dispatcher, error)) error {
	if len(args) != 0 {
		return errors.New("usage: regdbd (no arguments; set COUNTRY)")
	}

	cfg, err := ParseConfig(getenv)
	if err != nil {
		return err
	}
	logging.Init(cfg.Debug, false)

	logger := logging.L().With().Str("country", string(cfg.Alpha2[:])).Logger()
	ctx := logctx.WithStr(logctx.WithLogger(context.Background(), logger), "db", cfg.DBPath)
	return run(ctx, cfg, dial)
}

func run(ctx context.Context, cfg Config, dial func() (Dispatcher, error)) error {
	start := time.Now()
	logger := logctx.FromContext(ctx)

	ring, err := regdb.LoadKeyring(cfg.KeyDir)
	if err != nil {
		return err
	}

	db, err := regdb.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.DBPath, err)
	}
	defer db.Close()
	// Unverified content: log byte counts only.
	loadLog := logging.WithStage("load")
	loadLog.Debug().
		Str("size", humanfmt.Bytes(db.Size())).
		Str("authenticated", humanfmt.Bytes(int64(db.AuthenticatedLen()))).
		Msg("database header validated")

	if err := db.Verify(ring); err != nil {
		return fmt.Errorf("verify %s: %w", cfg.DBPath, err)
	}
	verifyLog := logging.WithStage("verify")
	verifyLog.Debug().Int("keys", ring.Len()).Msg("database signature verified")

	country, err := db.FindCountry(cfg.Alpha2)
	if err != nil {
		return err
	}

	rules, err := db.Rules(country)
	if err != nil {
		return err
	}

	payload, err := nl80211.EncodeSetReg(country.Alpha2, rules)
	if err != nil {
		return err
	}
	encodeLog := logging.WithStage("encode")
	encodeLog.Debug().Int("payload_bytes", len(payload)).Msg("message encoded")

	d, err := dial()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.SetRegulatory(payload); err != nil {
		return err
	}

	logger.Info().
		Str("rules", humanfmt.Count(int64(len(rules)))).
		Str("elapsed", humanfmt.Duration(time.Since(start))).
		Msg("regulatory domain set")
	return nil
}

// DialKernel opens the real nl80211 transport.
func DialKernel() (Dispatcher, error) {
	return nl80211.Dial()
}
