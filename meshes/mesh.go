package meshes

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gocell/utils"
)

/*
Mesh maps domain names to submeshes. Insertion order declares the
adjacency of domains: Combine may only concatenate domains that were
added consecutively and whose submeshes share the interface edge.
*/
type Mesh struct {
	order     []string
	submeshes map[string]*SubMesh
}

func NewMesh() *Mesh {
	return &Mesh{submeshes: make(map[string]*SubMesh)}
}

func (m *Mesh) Add(domain string, sm *SubMesh) error {
	if _, ok := m.submeshes[domain]; ok {
		return fmt.Errorf("mesh already contains domain %q", domain)
	}
	m.order = append(m.order, domain)
	m.submeshes[domain] = sm
	return nil
}

func (m *Mesh) Domains() []string { return m.order }

func (m *Mesh) SubMesh(domain string) (*SubMesh, error) {
	sm, ok := m.submeshes[domain]
	if !ok {
		return nil, fmt.Errorf("mesh has no submesh for domain %q", domain)
	}
	return sm, nil
}

// Product replicates the submesh of domain once per cell of the
// secondary domain, producing the 2-D index layout used for
// position-dependent microscale domains. The replicated submesh is a
// fresh value: a *SubMesh obtained before the call keeps its layout,
// and a domain may be laid out as a product only once.
func (m *Mesh) Product(domain, secondary string) error {
	sm, err := m.SubMesh(domain)
	if err != nil {
		return err
	}
	sec, err := m.SubMesh(secondary)
	if err != nil {
		return err
	}
	if sm.Repeats != 1 {
		return fmt.Errorf("domain %q already has a product layout", domain)
	}
	m.submeshes[domain] = &SubMesh{
		Nodes:   sm.Nodes,
		Edges:   sm.Edges,
		Coord:   sm.Coord,
		Repeats: sec.NumCells(),
	}
	return nil
}

// Combine concatenates the submeshes of contiguous domains into one
// index space. The domains must appear consecutively, in order, in the
// mesh's declared adjacency, and each pair must share its interface
// edge. The interface then carries a single uniform face, so no
// special interface stencil is needed downstream.
func (m *Mesh) Combine(domains ...string) (*SubMesh, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("combine requires at least one domain")
	}
	first, err := m.SubMesh(domains[0])
	if err != nil {
		return nil, err
	}
	if len(domains) == 1 {
		return first, nil
	}
	pos := -1
	for i, d := range m.order {
		if d == domains[0] {
			pos = i
		}
	}
	nodes := first.Nodes.Copy()
	edges := first.Edges.Copy()
	prev := first
	for k, domain := range domains[1:] {
		if pos+k+1 >= len(m.order) || m.order[pos+k+1] != domain {
			return nil, fmt.Errorf("domains %q are not contiguous in the mesh ordering %v",
				strings.Join(domains, "+"), m.order)
		}
		sm, err := m.SubMesh(domain)
		if err != nil {
			return nil, err
		}
		if sm.Coord != prev.Coord {
			return nil, fmt.Errorf("cannot combine %q (%s) with %q (%s): coordinate systems differ",
				domains[k], prev.Coord, domain, sm.Coord)
		}
		if sm.Repeats != prev.Repeats {
			return nil, fmt.Errorf("cannot combine %q with %q: product layouts differ", domains[k], domain)
		}
		left := edges.AtVec(edges.Len() - 1)
		right := sm.Edges.AtVec(0)
		if math.Abs(left-right) > utils.NODETOL {
			return nil, fmt.Errorf("domains %q and %q do not share an interface edge: %g != %g",
				domains[k], domain, left, right)
		}
		nodes = nodes.Concat(sm.Nodes)
		edges = edges.Concat(utils.NewVector(sm.Edges.Len()-1, sm.Edges.Data()[1:]))
		prev = sm
	}
	return &SubMesh{Nodes: nodes, Edges: edges, Coord: first.Coord, Repeats: first.Repeats}, nil
}
