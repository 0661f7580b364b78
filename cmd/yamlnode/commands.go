package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/lc/yamlnode/internal/buildinfo"
	"github.com/lc/yamlnode/internal/config"
	"github.com/lc/yamlnode/internal/document"
	"github.com/lc/yamlnode/internal/filesys"
	"github.com/lc/yamlnode/internal/node"
)

// _checkConcurrency bounds how many files check decodes at once.
const _checkConcurrency = 8

// getCmd prints the value at a path, writing a --default back when the
// settings enable it.
func (a *app) getCmd() *cobra.Command {
	var typ, def string
	cmd := &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Read the value at a path",
		Long: `Read the value at a dotted path.

Types: string (default), int, float, bool, uuid, vector, list, keys, node.
With --default, a missing value prints the default instead; if the settings
enable defaults.write, the default is also written into the file.`,
		Example: "yamlnode get server.yaml limits.max --type int --default 10",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open(args[0])
			if err != nil {
				return err
			}
			lines, err := readValue(st.Root(), args[1], typ, def, cmd.Flags().Changed("default"))
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}

			saved, err := st.SaveIfModified()
			if err != nil {
				return err
			}
			if saved {
				color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "✓ default written to %s\n", args[1])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "string", "value type")
	cmd.Flags().StringVarP(&def, "default", "d", "", "value to use when the path is missing")
	return cmd
}

// setCmd stores a parsed value at a path and saves the file.
func (a *app) setCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "set <file> <path> <value>",
		Short: "Write a value at a path",
		Long: `Write a value at a dotted path, creating intermediate mappings.

Any non-mapping value standing where an intermediate mapping is needed is
replaced. With --type auto (the default) the value is parsed as YAML, so
"[1, 2]" stores a list and "{x: 1}" a mapping.`,
		Example: `yamlnode set server.yaml spawn "{x: 1, y: 64, z: -3}"`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValue(args[2], typ)
			if err != nil {
				return err
			}
			st, err := a.open(args[0])
			if err != nil {
				return err
			}
			st.Root().SetProperty(args[1], v)
			if err := st.Save(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ set ")
			color.New(color.FgHiGreen, color.Bold).Fprintf(out, "%s\n", args[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "auto", "value type (auto, string, int, float, bool, uuid, vector)")
	return cmd
}

// rmCmd removes the value at a path. The file is only rewritten when
// something was removed.
func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file> <path>",
		Short: "Remove the value at a path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open(args[0])
			if err != nil {
				return err
			}
			st.Root().RemoveProperty(args[1])
			if !st.Modified() {
				color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "nothing at %s\n", args[1])
				return nil
			}
			if err := st.Save(); err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(), "✓ removed %s\n", args[1])
			return nil
		},
	}
}

// keysCmd lists a mapping's entries as a table.
func (a *app) keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <file> [path]",
		Short: "List the entries of a mapping",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open(args[0])
			if err != nil {
				return err
			}
			target := st.Root()
			if len(args) == 2 && args[1] != "" {
				sub, ok := target.Node(args[1])
				if !ok {
					return fmt.Errorf("%w: %s is not a mapping", errNotFound, args[1])
				}
				target = sub
			}
			if target.Map().Len() == 0 {
				color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No entries.")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Key", "Kind", "Value"})
			table.SetHeaderColor(
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
			)
			table.SetBorder(false)
			table.SetColumnColor(
				tablewriter.Colors{tablewriter.FgHiWhiteColor},
				tablewriter.Colors{tablewriter.FgYellowColor},
				tablewriter.Colors{tablewriter.FgGreenColor},
			)
			target.Map().Range(func(k string, v node.Value) bool {
				table.Append([]string{k, v.Kind().String(), summarize(v)})
				return true
			})
			table.Render()
			return nil
		},
	}
}

// summarize renders scalars in full and collections by size.
func summarize(v node.Value) string {
	if items, ok := v.Items(); ok {
		return fmt.Sprintf("(%d items)", len(items))
	}
	if m, ok := v.Mapping(); ok {
		return fmt.Sprintf("(%d keys)", m.Len())
	}
	return v.String()
}

// fmtCmd re-encodes a file, or with --diff reports what re-encoding would
// change.
func (a *app) fmtCmd() *cobra.Command {
	var (
		format string
		diff   bool
	)
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Re-encode a file in the configured layout",
		Long: `Re-encode a file in the configured layout.

With --diff the file is left untouched and the lines that would change are
printed instead; the command fails if there are any.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := a.settings.Format
			if format != "" {
				var err error
				if f, err = document.ParseFormat(format); err != nil {
					return err
				}
			}
			st, err := a.open(args[0], config.WithFormat(f))
			if err != nil {
				return err
			}
			if diff {
				return showDiff(cmd.OutOrStdout(), st)
			}
			if err := st.Save(); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ formatted %s (%s)\n", args[0], f)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "extended or compact (default from settings)")
	cmd.Flags().BoolVar(&diff, "diff", false, "print the changes instead of writing them")
	return cmd
}

// showDiff prints to w how saving st would change its file.
func showDiff(w io.Writer, st *config.Store) error {
	current, err := os.ReadFile(st.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	encoded, err := st.Encode()
	if err != nil {
		return err
	}
	if !writeDiff(w, lineDiff(string(current), string(encoded))) {
		return nil
	}
	return fmt.Errorf("%s is not formatted", st.Path())
}

// initCmd writes an empty document, leaving an existing file alone.
func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <file>",
		Short: "Create an empty document unless the file exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := document.Encode(node.NewMapping(), document.Options{
				Format: a.settings.Format,
				Indent: a.settings.Indent,
				Header: a.settings.Header,
			})
			if err != nil {
				return err
			}
			st := config.New(filesys.OS(), args[0])
			created, err := st.CreateDefault(data)
			if err != nil {
				return err
			}
			if !created {
				color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "%s already exists\n", args[0])
				return nil
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ created %s\n", args[0])
			return nil
		},
	}
}

// checkCmd decodes every file concurrently and reports all failures
// together.
func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate that files decode as configuration documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				mu   sync.Mutex
				errs error
				out  = cmd.OutOrStdout()
			)
			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(_checkConcurrency)
			for _, file := range args {
				g.Go(func() error {
					err := checkFile(file)
					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						errs = multierr.Append(errs, err)
						color.New(color.FgRed).Fprintf(out, "✗ %s\n", file)
						return nil
					}
					color.New(color.FgGreen).Fprintf(out, "✓ %s\n", file)
					return nil
				})
			}
			_ = g.Wait()

			if errs == nil {
				return nil
			}
			failed := multierr.Errors(errs)
			for _, err := range failed {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			return fmt.Errorf("%d of %d files invalid", len(failed), len(args))
		},
	}
}

func checkFile(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := document.DecodeReader(f); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}

// watchCmd prints the value at a path now and after every reload until
// interrupted.
func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file> <path>",
		Short: "Print the value at a path every time the file changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := a.open(args[0])
			if err != nil {
				return err
			}
			path, out := args[1], cmd.OutOrStdout()
			show := func(root *node.Node) {
				gen := color.New(color.FgHiBlack).Sprintf("[#%d]", st.Loads())
				v, ok := root.Property(path)
				if !ok {
					fmt.Fprintf(out, "%s %s: %s\n", gen, path, color.YellowString("<absent>"))
					return
				}
				fmt.Fprintf(out, "%s %s: %s\n", gen, path, v)
			}
			show(st.Root())
			if err := st.Watch(ctx, show); err != nil {
				return err
			}
			<-ctx.Done()
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\n", buildinfo.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", buildinfo.Commit)
		},
	}
}
