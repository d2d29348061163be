package vt

import (
	"errors"

	"github.com/npillmayer/opg/grammar"
	"golang.org/x/sync/errgroup"
)

// GrammarAnalysis holds FIRSTVT and LASTVT of a grammar.
type GrammarAnalysis struct {
	g     *grammar.Grammar
	first *VT
	last  *VT
}

// Analysis computes FIRSTVT and LASTVT for a grammar. Both directions are
// computed concurrently, each on its own relations.
func Analysis(g *grammar.Grammar) (*GrammarAnalysis, error) {
	if g == nil {
		return nil, errors.New("vt: analysis of nil grammar")
	}
	ga := &GrammarAnalysis{g: g}
	var eg errgroup.Group
	eg.Go(func() error {
		ga.first = Closure(Extract(g, First))
		return nil
	})
	eg.Go(func() error {
		ga.last = Closure(Extract(g, Last))
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return ga, nil
}

// Grammar returns the grammar this analysis is for.
func (ga *GrammarAnalysis) Grammar() *grammar.Grammar {
	return ga.g
}

// FirstVT returns the FIRSTVT sets.
func (ga *GrammarAnalysis) FirstVT() *VT {
	return ga.first
}

// LastVT returns the LASTVT sets.
func (ga *GrammarAnalysis) LastVT() *VT {
	return ga.last
}

// VT returns the sets for direction dir.
func (ga *GrammarAnalysis) VT(dir Direction) *VT {
	if dir == Last {
		return ga.last
	}
	return ga.first
}

// Dump is a debugging helper: dump FIRSTVT and LASTVT to the tracer.
func (ga *GrammarAnalysis) Dump() {
	ga.first.Dump()
	ga.last.Dump()
}
