package entities

// EffectKind is the layer an effect belongs to. The stat resolver folds
// layers in a fixed order so the temporary layer stays inspectable on top.
type EffectKind string

// Effect kinds, in resolution order
const (
	EffectClass     EffectKind = "class"
	EffectPassive   EffectKind = "passive"
	EffectEquipment EffectKind = "equipment"
	EffectStatus    EffectKind = "status"
)

// EffectOp says how a magnitude combines with the running stat total
type EffectOp string

// Effect operations
const (
	// OpAdd adds the magnitude to the running total.
	OpAdd EffectOp = "add"
	// OpMultiply scales the running total by (1 + magnitude).
	OpMultiply EffectOp = "multiply"
)

// EffectTemplate is the read-only definition an effect instance is stamped
// from. Templates are owned by the effect registry; characters own their
// instances.
type EffectTemplate struct {
	ID        string     `json:"id"`
	Kind      EffectKind `json:"kind"`
	Stat      Stat       `json:"stat,omitempty"` // empty for marker effects such as stun
	Op        EffectOp   `json:"op,omitempty"`
	Magnitude float64    `json:"magnitude,omitempty"`
	// Duration in turns for status effects; 0 means the effect lasts until
	// its source is removed (class, passive, equipment).
	Duration int `json:"duration,omitempty"`
}

// Marker effect ids with engine-level meaning
const (
	// EffectIDStun incapacitates a combatant for its duration.
	EffectIDStun = "stun"
	// EffectIDFireResistance negates volcanic hazard damage.
	EffectIDFireResistance = "fire_resistance"
)

// ActiveEffect is one live effect instance on a character. Duration counts
// down once per turn; the instance is removed when it reaches zero.
type ActiveEffect struct {
	TemplateID string     `json:"template_id"`
	Kind       EffectKind `json:"kind"`
	Stat       Stat       `json:"stat,omitempty"`
	Op         EffectOp   `json:"op,omitempty"`
	Magnitude  float64    `json:"magnitude,omitempty"`
	Permanent  bool       `json:"permanent,omitempty"`
	Remaining  int        `json:"remaining,omitempty"`
	// Source is the id of the skill, class, or item that attached this
	// effect, so removing the source can remove its effects.
	Source string `json:"source,omitempty"`
}

// Expired reports whether the effect has run out
func (e ActiveEffect) Expired() bool {
	return !e.Permanent && e.Remaining <= 0
}
