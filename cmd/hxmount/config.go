package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pthm/hxmount"
	"github.com/pthm/hxmount/lib/dom"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/html"
)

const envPrefix = "HXMOUNT"

// loadConfig layers the --config file, HXMOUNT_* environment variables and
// flags into one viper instance. Explicitly set flags win.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return v, nil
}

// newLogger returns a stderr logger; --verbose enables debug records.
func newLogger(cmd *cobra.Command, v *viper.Viper) *slog.Logger {
	level := slog.LevelWarn
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// newEncoder builds the stamp encoder from the configured key.
func newEncoder(v *viper.Viper) (*hxmount.Encoder, error) {
	key := v.GetString("key")
	if key == "" {
		return nil, fmt.Errorf("a key is required (--key or %s_KEY)", envPrefix)
	}
	return hxmount.NewEncoder([]byte(key))
}

// readDocument parses the named file, or stdin when name is "-".
func readDocument(cmd *cobra.Command, name string) (*html.Node, error) {
	var r io.Reader
	if name == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return dom.Parse(r)
}
