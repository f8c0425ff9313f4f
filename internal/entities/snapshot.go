package entities

// SnapshotVersion is bumped whenever the save layout changes shape.
const SnapshotVersion = 1

// Snapshot is the persisted game state: the full player model plus the
// world-progress state that is not derivable from content. Monster
// instances deliberately respawn from content on load.
//
// Serialization must be deterministic so that save -> load -> save is
// byte-identical: map keys marshal sorted, and every slice keeps its
// in-game order.
type Snapshot struct {
	Version int `json:"version"`

	Player Player `json:"player"`

	TurnsElapsed int `json:"turns_elapsed"`

	// MerchantStock carries each merchant's decayed stock and gold,
	// keyed by NPC id.
	MerchantStock map[string]MerchantState `json:"merchant_stock,omitempty"`

	// GroundItems carries items dropped or left in each location,
	// keyed by location id, where they differ from content.
	GroundItems map[string][]string `json:"ground_items,omitempty"`
}
