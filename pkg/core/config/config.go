// Package config provides the processor's read-only view of network
// and milestone parameters, loaded from TOML, mirroring the design's
// ConfigManager.getMilestone / .get("network.pubKeyHash") contract.
package config

import (
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Milestone is a configuration epoch keyed by block height.
type Milestone struct {
	Height            uint32 `toml:"height"`
	BlockTime         uint64 `toml:"blockTime"`
	MaxTransactionAge uint32 `toml:"maxTransactionAge"`
}

// Network carries the chain-identifying parameters.
type Network struct {
	PubKeyHash uint8 `toml:"pubKeyHash"`
}

// Mempool carries the admission-processor-facing options recognised
// per §6: maxTransactionBytes and maxTransactionAge. Milestone also
// has a maxTransactionAge field; the expiration gate reads the value
// here, not the milestone's.
type Mempool struct {
	MaxTransactionBytes      uint32 `toml:"maxTransactionBytes"`
	MaxTransactionAge        uint32 `toml:"maxTransactionAge"`
	MaxTransactionsPerSender uint32 `toml:"maxTransactionsPerSender"`
	MaxPoolSize              uint32 `toml:"maxPoolSize"`
}

// Manager is the concrete ConfigManager: milestones plus network
// parameters, loaded once at composition-root time.
type Manager struct {
	Network    Network     `toml:"network"`
	Mempool    Mempool     `toml:"mempool"`
	Milestones []Milestone `toml:"milestones"`
}

// Load decodes a Manager from TOML bytes (teacher dependency:
// BurntSushi/toml).
func Load(data []byte) (*Manager, error) {
	var m Manager
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, errors.Wrap(err, "config: decode toml")
	}
	sort.Slice(m.Milestones, func(i, j int) bool {
		return m.Milestones[i].Height < m.Milestones[j].Height
	})
	return &m, nil
}

// GetMilestone returns the milestone active at height: the last
// configured milestone whose Height is <= height.
func (m *Manager) GetMilestone(height uint32) Milestone {
	active := Milestone{}
	for _, ms := range m.Milestones {
		if ms.Height > height {
			break
		}
		active = ms
	}
	return active
}

// NetworkPubKeyHash returns the active network id, equivalent to
// ConfigManager.get("network.pubKeyHash").
func (m *Manager) NetworkPubKeyHash() uint8 {
	return m.Network.PubKeyHash
}
