// Command hdlsel binds and evaluates select and member-access
// expressions against a set of declarations.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hdlc/binding"
	"hdlc/elab"
	"hdlc/trace"
)

// Set via -ldflags at build time.
var version = "dev"

// config is the resolved flag and environment state shared by all
// subcommands
type config struct {
	declFile   string
	trace      bool
	filters    []string
	procedural bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hdlsel",
		Short:         "Bind and evaluate selects and member accesses",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("hdlsel version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.String("decl-file", "", "Declaration file, plain source or YAML (env HDLSEL_DECLS)")
	flags.Bool("trace", false, "Trace select evaluation to stderr (env HDLSEL_TRACE)")
	flags.String("trace-filter", "", "Comma-separated glob patterns limiting traced expressions")
	flags.Bool("procedural", true, "Bind as procedural code; false binds as a continuous assignment")

	root.AddCommand(newEvalCmd(), newCheckCmd(), newSuiteCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves flags, falling back to the environment
func loadConfig(cmd *cobra.Command) config {
	cfg := config{declFile: os.Getenv("HDLSEL_DECLS")}
	if v, _ := cmd.Flags().GetString("decl-file"); v != "" {
		cfg.declFile = v
	}

	// HDLSEL_TRACE is "1" or "true" to trace everything, or a filter list
	if env := os.Getenv("HDLSEL_TRACE"); env != "" {
		cfg.trace = true
		if env != "1" && env != "true" {
			cfg.filters = splitFilters(env)
		}
	}
	if v, _ := cmd.Flags().GetBool("trace"); v {
		cfg.trace = true
	}
	if v, _ := cmd.Flags().GetString("trace-filter"); v != "" {
		cfg.filters = splitFilters(v)
	}

	cfg.procedural, _ = cmd.Flags().GetBool("procedural")
	return cfg
}

func splitFilters(s string) []string {
	filters := strings.Split(s, ",")
	for i := range filters {
		filters[i] = strings.TrimSpace(filters[i])
	}
	return filters
}

// bindFlags converts the procedural setting to bind flags
func (c config) bindFlags() binding.Flags {
	if c.procedural {
		return 0
	}
	return binding.NonProcedural
}

// setup initializes tracing and loads the design
func (c config) setup(cmd *cobra.Command) (*elab.Design, error) {
	if c.trace {
		trace.Init(true, c.filters, cmd.ErrOrStderr())
		log.Printf("Tracing enabled (filters: %v)", c.filters)
	} else {
		trace.Init(false, nil, nil)
	}

	if c.declFile == "" {
		return elab.Elaborate("")
	}
	d, err := elab.LoadFile(c.declFile)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded declarations from %s", c.declFile)
	return d, nil
}
