package cluster

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/thebyteslayer/sodium/pkg/log"
)

// ManifestPath is where the cluster manifest is written at startup.
const ManifestPath = "cluster.json"

const (
	nodeIDCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
	nodeIDLength  = 7
)

// slotMax is the highest slot in the fixed range a single node owns.
const slotMax = 16383

// Node describes one cluster member in the manifest.
type Node struct {
	NodeID         string    `json:"node_id"`
	NodeValidation uint32    `json:"node_validation"`
	Address        string    `json:"address"`
	Slots          [2]uint32 `json:"slots"`
}

// Manifest is the cluster.json document.
type Manifest struct {
	ClusterValidation uint32 `json:"cluster_validation"`
	Nodes             []Node `json:"nodes"`
}

// NewNodeID returns a fresh 7-character node identifier drawn uniformly
// from [a-z0-9]. A new id is generated on every manifest emission.
func NewNodeID() string {
	id := make([]byte, nodeIDLength)
	for i := range id {
		id[i] = nodeIDCharset[rand.IntN(len(nodeIDCharset))]
	}
	return string(id)
}

// NewManifest builds a single-node manifest advertising the full slot range.
func NewManifest(address string) Manifest {
	return Manifest{
		ClusterValidation: 0,
		Nodes: []Node{
			{
				NodeID:         NewNodeID(),
				NodeValidation: 0,
				Address:        address,
				Slots:          [2]uint32{0, slotMax},
			},
		},
	}
}

// WriteManifest emits the cluster manifest for this node to path.
func WriteManifest(path, address string) error {
	manifest := NewManifest(address)

	content, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cluster manifest: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write cluster manifest: %w", err)
	}

	log.WithComponent("cluster").Info().
		Str("node_id", manifest.Nodes[0].NodeID).
		Str("address", address).
		Msg("Cluster manifest written")
	return nil
}
