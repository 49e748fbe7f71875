// regionnames: localized region display names from CLDR locale tables.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/minios-linux/regionnames/config"
	"github.com/minios-linux/regionnames/i18n"
	"github.com/minios-linux/regionnames/langmeta"
	"github.com/minios-linux/regionnames/localeid"
	"github.com/minios-linux/regionnames/regions"
	"github.com/minios-linux/regionnames/resource"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags and state
// ---------------------------------------------------------------------------

var (
	rootDir string
	dataDir string

	cfg      *config.Config
	registry *regions.Registry
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "regionnames",
		Short: "Localized region display names from CLDR locale tables",
		Long: `regionnames: localized region display names from CLDR locale tables.

Looks up country and area names (ISO 3166-1 alpha-2 and UN M.49 codes) for
a locale, walking the locale inheritance chain up to root. Tables come from
the built-in dataset or from a directory of per-locale JSON/YAML files.

Commands:
  name        Print the display name of a region
  regions     List region codes in display order
  table       Dump the effective name table of a locale
  locales     List known locales and their inheritance chains
  check       Audit the locale tables

Configuration is read from .regionnames.yaml in the project root and from
REGIONNAMES_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().StringVar(&dataDir, "data", "", "Directory with locale resource files (default: built-in tables)")

	root.AddCommand(
		newNameCmd(),
		newRegionsCmd(),
		newTableCmd(),
		newLocalesCmd(),
		newCheckCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// setup loads configuration, selects the message language and configures
// logging. The registry itself is opened lazily by the commands that need it.
func setup() error {
	c, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	cfg = c
	registry = nil

	i18n.Init(cfg.UILang)

	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.Level())
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return nil
}

// openRegistry builds the registry from --data, the configured data_dir or
// the embedded tables, in that order.
func openRegistry() (*regions.Registry, error) {
	if registry != nil {
		return registry, nil
	}

	dir := dataDir
	if dir == "" && cfg != nil {
		dir = cfg.DataDir
	}

	var (
		resources []*resource.Resource
		err       error
	)
	if dir == "" {
		resources, err = resource.Embedded()
	} else {
		log.WithField("dir", dir).Debug("loading locale tables")
		resources, err = resource.LoadDir(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("loading locale tables"), err)
	}

	r, err := regions.New(resources, regions.WithLogger(log.StandardLogger()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("building registry"), err)
	}
	registry = r
	return r, nil
}

// localeArg returns the locale argument or the configured default.
func localeArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg != nil {
		return cfg.DefaultLocale
	}
	return config.DefaultLocale
}

// describe rewrites registry failures into user-facing messages.
func describe(err error, locale, region string) error {
	switch {
	case errors.Is(err, regions.ErrLocaleNotFound):
		return fmt.Errorf("%s: %s", i18n.T("Unknown locale"), locale)
	case errors.Is(err, regions.ErrRegionNotFound):
		return fmt.Errorf("%s: %s (%s)", i18n.T("Unknown region"), region, locale)
	}
	return err
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "regionnames version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// name (single lookup)
// ---------------------------------------------------------------------------

func newNameCmd() *cobra.Command {
	var fallback bool

	cmd := &cobra.Command{
		Use:   "name LOCALE REGION",
		Short: "Print the display name of a region",
		Long: `Print the display name of REGION in LOCALE.

The locale's own table is consulted first, then each ancestor up to root.
With --fallback a missing name prints the region code instead of failing.`,
		Example: `  regionnames name fr_CA CA
  regionnames name es-MX 419`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRegistry()
			if err != nil {
				return err
			}
			locale, region := args[0], args[1]

			if fallback {
				fmt.Fprintln(cmd.OutOrStdout(), r.DisplayName(locale, region))
				return nil
			}
			name, err := r.ResolveName(locale, region)
			if err != nil {
				return describe(err, locale, region)
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fallback, "fallback", false, "Print the region code when no name is known")
	return cmd
}

// ---------------------------------------------------------------------------
// regions (sorted listing)
// ---------------------------------------------------------------------------

func newRegionsCmd() *cobra.Command {
	var likely bool

	cmd := &cobra.Command{
		Use:   "regions [LOCALE]",
		Short: "List region codes in display order",
		Long: `List the region codes of LOCALE in the order a region picker shows them,
with flag and display name. --likely lists only the regions where the
locale's language is most commonly used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRegistry()
			if err != nil {
				return err
			}
			locale := localeArg(args)

			var codes []string
			if likely {
				codes, err = r.LikelyRegionCodes(locale)
			} else {
				codes, err = r.SortedRegionCodes(locale)
			}
			if err != nil {
				return describe(err, locale, "")
			}
			if len(codes) == 0 {
				logWarning("%s: %s", i18n.T("No likely regions declared"), locale)
				return nil
			}
			return printRegions(cmd.OutOrStdout(), r, locale, codes)
		},
	}

	cmd.Flags().BoolVar(&likely, "likely", false, "List likely regions only")
	return cmd
}

func printRegions(w io.Writer, r *regions.Registry, locale string, codes []string) error {
	width := codeColumnWidth(codes)
	for _, code := range codes {
		flag := langmeta.Flag(code)
		if flag == "" {
			flag = "  "
		}
		if _, err := fmt.Fprintf(w, "%-*s %s %s\n", width, code, flag, r.DisplayName(locale, code)); err != nil {
			return err
		}
	}
	return nil
}

func codeColumnWidth(codes []string) int {
	width := 0
	for _, c := range codes {
		if len(c) > width {
			width = len(c)
		}
	}
	return width
}

// ---------------------------------------------------------------------------
// table (effective table as a resource file)
// ---------------------------------------------------------------------------

func newTableCmd() *cobra.Command {
	var (
		format resource.Format
		output string
	)

	cmd := &cobra.Command{
		Use:   "table [LOCALE]",
		Short: "Dump the effective name table of a locale",
		Long: `Print the fully inherited name table of LOCALE as a resource file:
every region known to the locale chain, the effective sort order and the
likely regions. The output can be loaded back with --data.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRegistry()
			if err != nil {
				return err
			}
			locale := localeArg(args)

			res, err := effectiveResource(r, locale)
			if err != nil {
				return describe(err, locale, "")
			}

			if output != "" {
				if !cmd.Flags().Changed("format") {
					if f, err := resource.FormatFromPath(output); err == nil {
						format = f
					}
				}
				data, err := res.Marshal(format)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				logSuccess("%s %s", i18n.T("Wrote"), output)
				return nil
			}

			data, err := res.Marshal(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().VarP(&format, "format", "f", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

// effectiveResource flattens the chain of locale into a standalone resource.
func effectiveResource(r *regions.Registry, locale string) (*resource.Resource, error) {
	table, err := r.EffectiveNameTable(locale)
	if err != nil {
		return nil, err
	}
	order, err := r.SortedRegionCodes(locale)
	if err != nil {
		return nil, err
	}
	likely, err := r.LikelyRegionCodes(locale)
	if err != nil {
		return nil, err
	}
	return &resource.Resource{
		Locale:    localeid.Canonicalize(locale),
		Names:     table.Map(),
		SortOrder: order,
		Likely:    likely,
	}, nil
}

// ---------------------------------------------------------------------------
// locales (known locales and chains)
// ---------------------------------------------------------------------------

func newLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List known locales and their inheritance chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRegistry()
			if err != nil {
				return err
			}
			return printLocales(cmd.OutOrStdout(), r)
		},
	}
}

func printLocales(w io.Writer, r *regions.Registry) error {
	ids := r.Locales()
	width := codeColumnWidth(ids)

	for _, id := range ids {
		chain, err := r.Chain(id)
		if err != nil {
			return err
		}
		likely, _ := r.LikelyRegionCodes(id)
		meta := langmeta.Resolve(id, likely...)
		flag := meta.Flag
		if flag == "" {
			flag = "  "
		}
		table, err := r.EffectiveNameTable(id)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-*s %s %-24s %4d  %s\n",
			width, id, flag, meta.Name, table.Len(), strings.Join(chain, " → ")); err != nil {
			return err
		}
	}

	logInfo("%d %s", len(ids), i18n.N("locale", "locales", len(ids)))
	return nil
}

// ---------------------------------------------------------------------------
// check (audit)
// ---------------------------------------------------------------------------

func newCheckCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit the locale tables",
		Long: `Check every locale for sort orders or likely regions that reference
unnamed codes, named codes missing from the sort order, and names that merely
repeat the inherited value.

Exits with a non-zero status when an error is found, or on any finding with
--strict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRegistry()
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), r, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	return cmd
}

func runCheck(w io.Writer, r *regions.Registry, strict bool) error {
	problems := r.Audit()
	for _, p := range problems {
		color := colorYellow
		if p.Severity == regions.SeverityError {
			color = colorRed
		}
		fmt.Fprintf(w, "%s%-7s%s %-8s %-4s %s\n", color, p.Severity, colorReset, p.Locale, p.Region, p.Kind)
	}

	errs := regions.Errors(problems)
	switch {
	case len(errs) > 0:
		return fmt.Errorf("%d %s", len(errs), i18n.N("error found", "errors found", len(errs)))
	case strict && len(problems) > 0:
		return fmt.Errorf("%d %s", len(problems), i18n.N("warning found", "warnings found", len(problems)))
	case len(problems) > 0:
		logWarning("%d %s", len(problems), i18n.N("warning found", "warnings found", len(problems)))
	default:
		root, _ := filepath.Abs(rootDir)
		logSuccess("%s (%s)", i18n.T("Locale tables are consistent"), root)
	}
	return nil
}
