// Command `yamlnode` reads and edits YAML configuration files through dotted
// paths.
//
// Usage:
//
//	yamlnode get <file> <path> [--type T] [--default V]  - Read a value
//	yamlnode set <file> <path> <value> [--type T]       - Write a value
//	yamlnode rm <file> <path>                          - Remove a value
//	yamlnode keys <file> [path]                        - List a mapping's entries
//	yamlnode fmt <file> [--format F] [--diff]          - Re-encode a file
//	yamlnode init <file>                               - Create an empty document
//	yamlnode check <file>...                           - Validate files
//	yamlnode watch <file> <path>                       - Print a value on every change
//
// Examples:
//
//	yamlnode get server.yaml limits.max --type int --default 10
//	yamlnode set server.yaml spawn "{x: 1, y: 64, z: -3}"
//	yamlnode keys server.yaml limits
//
// Settings live in ~/.yamlnode/config.yaml and are created on first run.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lc/yamlnode/internal/buildinfo"
	"github.com/lc/yamlnode/internal/config"
	"github.com/lc/yamlnode/internal/filesys"
	"github.com/lc/yamlnode/internal/log"
)

// errNotFound is returned when a path holds no usable value.
var errNotFound = errors.New("no value")

// app carries state shared by every subcommand.
type app struct {
	settingsPath string
	verbose      bool
	settings     config.Settings
}

// open loads file with the user's settings applied.
func (a *app) open(file string, extra ...config.Option) (*config.Store, error) {
	opts := append(a.settings.StoreOptions(), extra...)
	st := config.New(filesys.OS(), file, opts...)
	if err := st.Load(); err != nil {
		return nil, err
	}
	return st, nil
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "yamlnode",
		Short: "Read and edit YAML configuration through dotted paths",
		Long: `yamlnode reads and edits YAML configuration files through dotted paths
such as "limits.max". Values are converted leniently: numbers read as ints
or floats, anything reads as a string, and only real booleans read as bools.`,
		Version:      buildinfo.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.verbose {
				log.SetLevel(zap.DebugLevel)
			}
			s, err := config.LoadSettings(filesys.OS(), a.settingsPath)
			if err != nil {
				return err
			}
			a.settings = s
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.settingsPath, "settings", config.DefaultSettingsFile(), "settings file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.getCmd(),
		a.setCmd(),
		a.rmCmd(),
		a.keysCmd(),
		a.fmtCmd(),
		a.initCmd(),
		a.checkCmd(),
		a.watchCmd(),
		versionCmd(),
	)
	return root
}

func main() {
	err := newRootCmd(&app{}).ExecuteContext(context.Background())
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}
