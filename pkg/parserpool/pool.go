// Package parserpool provides a pool of gnparser instances for concurrent
// parsing of bird names. Birds follow the zoological code, so only
// zoological parsers are kept.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides parsers that are safe for concurrent use.
type Pool interface {
	// Parse parses a scientific name. It waits for a free parser if all
	// of them are busy.
	Parse(nameString string) parsed.Parsed

	// Genus returns the genus of a scientific name. If the name cannot
	// be parsed, the first word of the name is returned.
	Genus(nameString string) string

	// Close shuts down the pool. The pool must not be used after Close.
	Close()
}

type pool struct {
	ch chan gnparser.GNparser
}

// NewPool creates a pool with jobsNum parsers. If jobsNum is 0 or less,
// runtime.NumCPU() parsers are created.
func NewPool(jobsNum int) Pool {
	if jobsNum <= 0 {
		jobsNum = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Zoological),
	)
	return &pool{ch: gnparser.NewPool(cfg, jobsNum)}
}

func (p *pool) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *pool) Genus(nameString string) string {
	nameString = strings.TrimSpace(nameString)
	if nameString == "" {
		return ""
	}

	res := p.Parse(nameString)
	if res.Parsed && res.Canonical != nil {
		if words := strings.Fields(res.Canonical.Simple); len(words) > 0 {
			return words[0]
		}
	}
	return strings.Fields(nameString)[0]
}

func (p *pool) Close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	for range p.ch {
	}
	p.ch = nil
}
