package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/opg"
	"github.com/npillmayer/opg/config"
	"github.com/npillmayer/opg/grammar"
	"github.com/npillmayer/opg/grammar/ggl"
	"github.com/npillmayer/opg/op"
	"github.com/npillmayer/opg/vt"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// app holds the state shared by all sub-commands.
type app struct {
	conf       *config.Config
	configFile string
	traceLevel string
	gen        genFlags
}

// genFlags are the options for table generation.
type genFlags struct {
	classicEqual   bool
	endMarkerEqual bool
	order          string
}

func (f genFlags) options() []op.Option {
	return []op.Option{
		op.ClassicEqual(f.classicEqual),
		op.EndMarkerEqual(f.endMarkerEqual),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "opg",
		Short:         "Operator precedence table generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.traceLevel, "trace", "", "trace level [Debug|Info|Error]")
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "configuration file (YAML)")
	root.AddCommand(newTableCmd(a), newVTCmd(a), newReplCmd(a))
	return root
}

// setup reads the configuration and configures tracing.
func (a *app) setup() error {
	conf, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.traceLevel != "" {
		conf.SetTraceLevel(a.traceLevel)
	}
	if err := config.Setup(conf); err != nil {
		return err
	}
	a.conf = conf
	tracer().Debugf("configuration keys: %v", conf.Keys())
	return nil
}

func (a *app) ordering() (op.Ordering, error) {
	if a.gen.order != "" {
		return op.ParseOrdering(a.gen.order)
	}
	return op.ParseOrdering(a.conf.GetString("opg.order"))
}

// --- table -----------------------------------------------------------------

func newTableCmd(a *app) *cobra.Command {
	var output, htmlFile string
	var allConflicts bool
	cmd := &cobra.Command{
		Use:   "table <grammar-file>",
		Short: "Create the operator precedence table for a grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				output = a.conf.GetString("opg.output")
			}
			order, err := a.ordering()
			if err != nil {
				return err
			}
			g, err := ggl.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if allConflicts {
				return reportConflicts(out, g, a.gen, order)
			}
			table, err := generate(g, a.gen)
			if err != nil {
				return err
			}
			if err := printTable(out, table, order); err != nil {
				return err
			}
			if output != "" {
				if err := writeFile(output, table, order, op.TableAsText); err != nil {
					return err
				}
				tracer().Infof("precedence table written to %s", output)
			}
			if htmlFile != "" {
				return writeFile(htmlFile, table, order, op.TableAsHTML)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "text output file, empty for none (default from opg.output)")
	cmd.Flags().StringVar(&htmlFile, "html", "", "HTML output file")
	cmd.Flags().BoolVar(&allConflicts, "all-conflicts", false, "report all conflicts instead of the first one")
	addGenFlags(cmd, &a.gen)
	return cmd
}

func addGenFlags(cmd *cobra.Command, f *genFlags) {
	cmd.Flags().StringVar(&f.order, "order", "", "ordering of terminals [grammar|lex] (default from opg.order)")
	cmd.Flags().BoolVar(&f.classicEqual, "classic-equal", false, "relate '=' only for terminals at most one non-terminal apart")
	cmd.Flags().BoolVar(&f.endMarkerEqual, "endmarker-equal", false, "derive ($,$) = '=' from the augmented start rule")
}

// generate analyses a grammar and creates its precedence table.
func generate(g *grammar.Grammar, f genFlags) (*op.Table, error) {
	ga, err := vt.Analysis(g)
	if err != nil {
		return nil, err
	}
	gen := op.NewTableGenerator(ga, f.options()...)
	if err := gen.CreateTable(); err != nil {
		return nil, err
	}
	return gen.Table(), nil
}

func reportConflicts(w io.Writer, g *grammar.Grammar, f genFlags, order op.Ordering) error {
	ga, err := vt.Analysis(g)
	if err != nil {
		return err
	}
	conflicts, table := op.NewTableGenerator(ga, f.options()...).Diagnose()
	if err := printTable(w, table, order); err != nil {
		return err
	}
	if len(conflicts) == 0 {
		fmt.Fprint(w, pterm.Info.Sprintln("no conflicts"))
		return nil
	}
	for _, c := range conflicts {
		fmt.Fprint(w, pterm.Error.Sprintln(c.Error()))
	}
	return fmt.Errorf("grammar %s has %d conflicts: %w", g.Name, len(conflicts), opg.ErrAmbiguousGrammar)
}

func printTable(w io.Writer, table *op.Table, order op.Ordering) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(table.Render(order)).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	return nil
}

func writeFile(path string, table *op.Table, order op.Ordering,
	export func(io.Writer, *op.Table, op.Ordering) error) error {
	//
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export(f, table, order); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// --- vt --------------------------------------------------------------------

func newVTCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vt <grammar-file>",
		Short: "Print FIRSTVT and LASTVT sets of a grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := ggl.LoadFile(args[0])
			if err != nil {
				return err
			}
			ga, err := vt.Analysis(g)
			if err != nil {
				return err
			}
			return printVT(cmd.OutOrStdout(), ga)
		},
	}
}

func printVT(w io.Writer, ga *vt.GrammarAnalysis) error {
	rows := [][]string{{"", vt.First.String(), vt.Last.String()}}
	for _, A := range ga.Grammar().NonTerminals() {
		rows = append(rows, []string{
			A.Name,
			symbolSet(ga.FirstVT().Of(A)),
			symbolSet(ga.LastVT().Of(A)),
		})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	for _, dir := range []vt.Direction{vt.First, vt.Last} {
		sets := ga.VT(dir)
		for c := 0; c < sets.Categories(); c++ {
			if members := sets.Members(c); len(members) > 1 {
				fmt.Fprint(w, pterm.Info.Sprintf("%s category %d: %s\n", dir, c, symbolSet(members)))
			}
		}
	}
	return nil
}

func symbolSet(syms []*grammar.Symbol) string {
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return "{" + strings.Join(names, ", ") + "}"
}
