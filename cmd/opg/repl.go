package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/opg/grammar"
	"github.com/npillmayer/opg/grammar/ggl"
	"github.com/npillmayer/opg/op"
	"github.com/npillmayer/opg/vt"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const replHelp = `Enter productions, e.g. "E -> E + T | T", or one of the commands
  :table [grammar|lex]   print the precedence table
  :vt                    print FIRSTVT and LASTVT sets
  :dump                  list the productions entered so far
  :load <file>           replace the productions by those of a grammar file
  :clear                 remove all productions
  :help                  print this message
  :quit                  leave the session (or <ctrl>D)`

func newReplCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl [grammar-file]",
		Short: "Interactive session for developing a grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.ordering()
			if err != nil {
				return err
			}
			rl, err := readline.New("opg> ")
			if err != nil {
				return err
			}
			defer rl.Close()
			intp := NewIntp(cmd.OutOrStdout(), a.gen, order)
			intp.repl = rl
			if len(args) > 0 {
				if _, err := intp.Eval(":load " + args[0]); err != nil {
					return err
				}
			}
			intp.REPL()
			return nil
		},
	}
	addGenFlags(cmd, &a.gen)
	return cmd
}

// Intp is our interpreter object. It collects productions and creates
// precedence tables on demand. Tables are cached by the fingerprint of
// the productions.
type Intp struct {
	out     io.Writer
	repl    *readline.Instance
	flags   genFlags
	order   op.Ordering
	prods   []grammar.Production
	tables  map[string]cachedTable
	lastLHS string
}

type cachedTable struct {
	table *op.Table
	err   error
}

// NewIntp creates an interpreter writing to out.
func NewIntp(out io.Writer, flags genFlags, order op.Ordering) *Intp {
	return &Intp{
		out:    out,
		flags:  flags,
		order:  order,
		tables: make(map[string]cachedTable),
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	fmt.Fprint(intp.out, pterm.Info.Sprintln("Welcome to OPG, enter :help for help"))
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			fmt.Fprint(intp.out, pterm.Error.Sprintln(err.Error()))
			continue
		}
		if quit {
			break
		}
	}
	fmt.Fprintln(intp.out, "Good bye!")
}

// Eval evaluates a line of input, either a command or productions.
// It returns true if the session should end.
func (intp *Intp) Eval(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return false, intp.addProductions(line)
	}
	args := strings.Fields(line)
	tracer().Debugf("command %v", args)
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":help":
		fmt.Fprintln(intp.out, replHelp)
	case ":clear":
		intp.prods, intp.lastLHS = nil, ""
	case ":dump":
		for i, p := range intp.prods {
			fmt.Fprintf(intp.out, "%3d: %s\n", i, p)
		}
	case ":load":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :load <file>")
		}
		return false, intp.load(args[1])
	case ":table":
		order := intp.order
		if len(args) > 1 {
			o, err := op.ParseOrdering(args[1])
			if err != nil {
				return false, err
			}
			order = o
		}
		table, err := intp.table()
		if err != nil {
			return false, err
		}
		return false, printTable(intp.out, table, order)
	case ":vt":
		g, err := intp.grammar()
		if err != nil {
			return false, err
		}
		ga, err := vt.Analysis(g)
		if err != nil {
			return false, err
		}
		return false, printVT(intp.out, ga)
	default:
		return false, fmt.Errorf("unknown command %s, try :help", args[0])
	}
	return false, nil
}

// A line starting with '|' continues the productions of the previous line.
func (intp *Intp) addProductions(line string) error {
	if strings.HasPrefix(line, "|") && intp.lastLHS != "" {
		line = intp.lastLHS + " -> " + line[1:]
	}
	prods, err := ggl.Parse("input", strings.NewReader(line))
	if err != nil {
		return err
	}
	intp.prods = append(intp.prods, prods...)
	intp.lastLHS = prods[len(prods)-1].Left
	tracer().Infof("%d productions", len(intp.prods))
	return nil
}

func (intp *Intp) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	prods, err := ggl.Parse(path, f)
	if err != nil {
		return err
	}
	intp.prods = prods
	intp.lastLHS = prods[len(prods)-1].Left
	fmt.Fprint(intp.out, pterm.Info.Sprintf("loaded %d productions from %s\n", len(prods), path))
	return nil
}

func (intp *Intp) grammar() (*grammar.Grammar, error) {
	if len(intp.prods) == 0 {
		return nil, fmt.Errorf("no productions entered yet")
	}
	return grammar.NewGrammar("repl", intp.prods)
}

// table returns the precedence table for the current productions, either
// from the cache or freshly created.
func (intp *Intp) table() (*op.Table, error) {
	g, err := intp.grammar()
	if err != nil {
		return nil, err
	}
	key := g.Hash()
	if c, ok := intp.tables[key]; ok {
		tracer().Debugf("using cached table for %s", key)
		return c.table, c.err
	}
	table, err := generate(g, intp.flags)
	intp.tables[key] = cachedTable{table: table, err: err}
	return table, err
}
