package extract

import "github.com/paulmach/osm"

// NodeChain is an ordered run of nodes sharing one set of road attributes.
// The first and last nodes are the chain's ends; interior nodes were not
// vertices in the producing storage's vertex set when the chain was built.
type NodeChain struct {
	// WayID is the originating way, zero once chains have been coupled
	// across way boundaries.
	WayID    osm.WayID
	Nodes    []osm.NodeID
	Category RoadCat
	Lanes    uint8
	OneWay   OneWay
	MaxSpeed MaxSpeed
}

// Ends returns the chain's two endpoint nodes.
func (nc *NodeChain) Ends() [2]osm.NodeID {
	return [2]osm.NodeID{nc.Nodes[0], nc.Nodes[len(nc.Nodes)-1]}
}

// Couple joins two chains at a shared endpoint into a single simple path.
// It fails when oneway, category or lanes differ, or when the chains share
// no endpoint. MaxSpeed is not compared; the result takes the receiver's.
// The shared node appears exactly once in the result, and the result's
// WayID is cleared since it no longer belongs to a single way.
func (nc *NodeChain) Couple(other *NodeChain) (*NodeChain, bool) {
	if nc.OneWay != other.OneWay || nc.Category != other.Category || nc.Lanes != other.Lanes {
		return nil, false
	}

	se := nc.Ends()
	oe := other.Ends()
	mine := nc.Nodes
	their := other.Nodes

	var nodes []osm.NodeID
	switch {
	case se[0] == oe[0]:
		nodes = append(reversed(mine[1:]), their...)
	case se[0] == oe[1]:
		nodes = append(append(nodes, their...), mine[1:]...)
	case se[1] == oe[0]:
		nodes = append(append(nodes, mine...), their[1:]...)
	case se[1] == oe[1]:
		nodes = append(append(nodes, mine[:len(mine)-1]...), reversed(their)...)
	default:
		return nil, false
	}

	return &NodeChain{
		Nodes:    nodes,
		Category: nc.Category,
		Lanes:    nc.Lanes,
		OneWay:   nc.OneWay,
		MaxSpeed: nc.MaxSpeed,
	}, true
}

func reversed(ids []osm.NodeID) []osm.NodeID {
	out := make([]osm.NodeID, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
