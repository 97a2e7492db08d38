package resolver

import (
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/graph"
)

// resolveInheritance is the inheritance & cycle checker (spec §4.2, §8
// scenario 2): it runs Tarjan SCC over the model-parent graph and the
// state-from graph independently, flagging every declaration on a cycle.
func (r *resolver) resolveInheritance() {
	r.checkModelCycles()
	r.checkStateCycles()
}

func (r *resolver) checkModelCycles() {
	n := len(r.contract.Models)
	adj := make([][]int, n)
	for i, m := range r.contract.Models {
		if m.Parent != nil {
			adj[i] = append(adj[i], m.Parent.Index)
		}
	}
	recursive := graph.RecursiveNodes(n, adj)
	for i, m := range r.contract.Models {
		if recursive[i] {
			m.RecursiveParent = true
			r.contract.Diagnostics.Push(diag.SemanticError(m.Sp, "This model inheritance is cyclic."))
		}
	}
}

func (r *resolver) checkStateCycles() {
	n := len(r.contract.States)
	adj := make([][]int, n)
	for i, s := range r.contract.States {
		if s.From != nil {
			adj[i] = append(adj[i], s.From.Index)
		}
	}
	recursive := graph.RecursiveNodes(n, adj)
	for i, s := range r.contract.States {
		if recursive[i] {
			s.RecursiveParent = true
			r.contract.Diagnostics.Push(diag.SemanticError(s.Sp, "This state transition graph is cyclic."))
		}
	}
}
