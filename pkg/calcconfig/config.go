// Package calcconfig layers environment variables and an optional config file
// under the command-line flags of the calcsvc binaries, and builds their
// loggers.
package calcconfig

import (
	"flag"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ConfigFlag is the name of the flag that, when defined on a FlagSet and set,
// points Parse at a config file (any format viper reads: yaml, json, toml).
const ConfigFlag = "config"

// Parse parses args into fs. Every flag not given on the command line is then
// looked up in the environment, as PREFIX_NAME with dashes and dots turned
// into underscores, and then in the config file, if any. Flags win over the
// environment, the environment wins over the file, the file wins over flag
// defaults.
func Parse(fs *flag.FlagSet, args []string, envPrefix string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if f := fs.Lookup(ConfigFlag); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", f.Value.String())
		}
	}

	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if err != nil || explicit[f.Name] || f.Name == ConfigFlag || !v.IsSet(f.Name) {
			return
		}
		if setErr := fs.Set(f.Name, v.GetString(f.Name)); setErr != nil {
			err = errors.Wrapf(setErr, "invalid value for %s", f.Name)
		}
	})
	return err
}
