package scene

// NodeKind tags a shading node in a material's node graph.
type NodeKind int

const (
	NodeOther NodeKind = iota
	NodePrincipled
	NodeDiffuse
	NodeImageTexture
	NodeNormalMap
	NodeDisplacement
)

// Link is an upstream connection feeding a node input.
type Link struct {
	FromNode *Node
}

// Input is a named node socket with a static default value and an optional
// upstream link. Default holds up to 4 channels; scalar inputs use Default[0].
type Input struct {
	Name    string
	Default []float64
	Link    *Link
}

// Node is one shading node. Image is set for image-texture nodes only.
type Node struct {
	Kind   NodeKind
	Name   string
	Inputs []*Input
	Image  *Image
}

// Input returns the named input socket, or nil.
func (n *Node) Input(name string) *Input {
	for _, in := range n.Inputs {
		if in.Name == name {
			return in
		}
	}
	return nil
}

// Material is a host material: either a node graph (UseNodes) or a flat
// RGBA color. Nodes keeps the host's insertion order; every traversal in the
// exporter walks it front to back, which makes name-heuristic matches (the AO
// probe) deterministic.
type Material struct {
	Name     string
	UseNodes bool
	Nodes    []*Node
	Color    [4]float64
}

// FindNode returns the first node of the given kind in insertion order, or nil.
func (m *Material) FindNode(kind NodeKind) *Node {
	for _, n := range m.Nodes {
		if n.Kind == kind {
			return n
		}
	}
	return nil
}
