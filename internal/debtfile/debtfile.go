// Package debtfile reads settlement problems from YAML files.
//
// A problem lists the number of participants and their debts, either as
// directed edges or as signed pair amounts:
//
//	participants: 3
//	names: [Alice, Bob, Carol]
//	debts:
//	  - {from: 1, to: 2, amount: 10}
//	  - {from: 2, to: 3, amount: 10}
//
//	participants: 3
//	pairs:
//	  - {a: 1, b: 2, amount: 10}   # 1 owes 2
//	  - {a: 2, b: 3, amount: -5}   # 3 owes 2
package debtfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/settleup/internal/settlement"
)

var (
	ErrNoParticipants = errors.New("participants must be positive")
	ErrMixedInput     = errors.New("use either debts or pairs, not both")
	ErrTooManyNames   = errors.New("more names than participants")
)

type document struct {
	Participants int       `yaml:"participants"`
	Names        []string  `yaml:"names"`
	Debts        []debtDoc `yaml:"debts"`
	Pairs        []pairDoc `yaml:"pairs"`
}

type debtDoc struct {
	From   int   `yaml:"from"`
	To     int   `yaml:"to"`
	Amount int64 `yaml:"amount"`
}

type pairDoc struct {
	A      int   `yaml:"a"`
	B      int   `yaml:"b"`
	Amount int64 `yaml:"amount"`
}

// Problem is a parsed, validated settlement problem.
type Problem struct {
	Participants int
	Names        []string
	Edges        []settlement.DebtEdge
}

// Name returns the display name of participant id, falling back to "Person id".
func (p *Problem) Name(id settlement.Participant) string {
	if id >= 1 && id <= len(p.Names) && p.Names[id-1] != "" {
		return p.Names[id-1]
	}
	return fmt.Sprintf("Person %d", id)
}

// Load reads and parses the problem file at path.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML problem. Pairs may be given in either order; they are
// normalized so the lower id comes first before being resolved into edges.
func Parse(data []byte) (*Problem, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse problem: %w", err)
	}

	if doc.Participants <= 0 {
		return nil, ErrNoParticipants
	}
	if len(doc.Names) > doc.Participants {
		return nil, ErrTooManyNames
	}
	if len(doc.Debts) > 0 && len(doc.Pairs) > 0 {
		return nil, ErrMixedInput
	}

	p := &Problem{Participants: doc.Participants, Names: doc.Names}

	if len(doc.Pairs) > 0 {
		pairs := make([]settlement.Pair, len(doc.Pairs))
		for i, d := range doc.Pairs {
			pair := settlement.Pair{Low: d.A, High: d.B, Amount: d.Amount}
			if pair.Low > pair.High {
				pair = settlement.Pair{Low: d.B, High: d.A, Amount: -d.Amount}
			}
			pairs[i] = pair
		}
		edges, err := settlement.EdgesFromPairs(doc.Participants, pairs)
		if err != nil {
			return nil, err
		}
		p.Edges = edges
		return p, nil
	}

	p.Edges = make([]settlement.DebtEdge, len(doc.Debts))
	for i, d := range doc.Debts {
		p.Edges[i] = settlement.DebtEdge{From: d.From, To: d.To, Amount: d.Amount}
	}
	if err := settlement.Validate(doc.Participants, p.Edges); err != nil {
		return nil, err
	}
	return p, nil
}
