package agents

import "marketsim/internal/simtypes"

// Stats is a point-in-time read of one agent's externally visible state.
type Stats struct {
	ID        simtypes.OrderID
	Name      string
	PnL       float64
	Inventory simtypes.Qty
}

// Manager owns an ordered population of agents and fans step/trade
// notifications out to them in registration order.
type Manager struct {
	agents []Agent
	lookup map[simtypes.OrderID]Agent
}

// NewManager builds an empty agent population.
func NewManager() *Manager {
	return &Manager{lookup: make(map[simtypes.OrderID]Agent)}
}

// Add registers an agent. A nil agent is ignored.
func (m *Manager) Add(a Agent) {
	if a == nil {
		return
	}
	m.agents = append(m.agents, a)
	m.lookup[a.ID()] = a
}

// Get returns the agent registered under id, if any.
func (m *Manager) Get(id simtypes.OrderID) (Agent, bool) {
	a, ok := m.lookup[id]
	return a, ok
}

// Step calls every agent's Step in registration order and concatenates
// their emitted events in that order.
func (m *Manager) Step(ts simtypes.Timestamp) []simtypes.Event {
	var all []simtypes.Event
	for _, a := range m.agents {
		all = append(all, a.Step(ts)...)
	}
	return all
}

// NotifyTrade calls every agent's OnTrade in registration order.
func (m *Manager) NotifyTrade(trade simtypes.Trade) {
	for _, a := range m.agents {
		a.OnTrade(trade)
	}
}

// GetStats snapshots every agent's (id, name, pnl, inventory) in
// registration order.
func (m *Manager) GetStats() []Stats {
	stats := make([]Stats, len(m.agents))
	for i, a := range m.agents {
		stats[i] = Stats{ID: a.ID(), Name: a.Name(), PnL: a.PnL(), Inventory: a.Inventory()}
	}
	return stats
}

// Reset resets every registered agent.
func (m *Manager) Reset() {
	for _, a := range m.agents {
		a.Reset()
	}
}
