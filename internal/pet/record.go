package pet

import "time"

// MaxNameLen is the single name-length limit enforced on every entry path.
const MaxNameLen = 15

// StatField names a bounded stat column. Money is handled separately since
// it has no upper bound.
type StatField string

const (
	Satiety StatField = "satiety"
	Energy  StatField = "energy"
	Mood    StatField = "mood"
)

// Record is one user's pet. Stats are integers clamped to [0,100] by every
// mutation; money saturates at 0 and is unbounded above.
type Record struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`

	Money   int `json:"money"`
	Satiety int `json:"satiety"`
	Energy  int `json:"energy"`
	Mood    int `json:"mood"`

	// States is an opaque key→value map owned by callers; the engine never
	// interprets it.
	States map[string]string `json:"states,omitempty"`

	// PetInventory is the worn accessory set. Business rule: at most one
	// item at a time, adding replaces the whole set.
	PetInventory []string `json:"pet_inventory,omitempty"`
	// UserInventory is everything owned, worn or not. The store does not
	// deduplicate; buying twice through the raw API yields two entries.
	UserInventory []string `json:"user_inventory,omitempty"`

	LastSatietyCheck time.Time `json:"last_satiety_check,omitzero"`
	LastEnergyCheck  time.Time `json:"last_energy_check,omitzero"`
	LastMoodCheck    time.Time `json:"last_mood_check,omitzero"`
	LastNewsCheck    time.Time `json:"last_news_check,omitzero"`

	// Warn-once-until-recovered flags, one per monitored stat. Set when a
	// low-stat alert goes out, cleared the first time the stat is observed
	// back above threshold.
	WarnedSatiety bool `json:"warned_satiety,omitempty"`
	WarnedMood    bool `json:"warned_mood,omitempty"`
	WarnedEnergy  bool `json:"warned_energy,omitempty"`
}

// NewRecord creates a pet with starting stats.
func NewRecord(userID, name string) *Record {
	return &Record{
		UserID:  userID,
		Name:    name,
		Money:   100,
		Satiety: 100,
		Energy:  100,
		Mood:    100,
	}
}

// Stat returns the value of a bounded stat field.
func (r *Record) Stat(f StatField) int {
	switch f {
	case Satiety:
		return r.Satiety
	case Energy:
		return r.Energy
	case Mood:
		return r.Mood
	}
	return 0
}

func (r *Record) setStat(f StatField, v int) {
	switch f {
	case Satiety:
		r.Satiety = v
	case Energy:
		r.Energy = v
	case Mood:
		r.Mood = v
	}
}

// Worn returns the currently worn accessory, or "" if nothing is worn.
func (r *Record) Worn() string {
	if len(r.PetInventory) == 0 {
		return ""
	}
	return r.PetInventory[0]
}

// Owns reports whether the user inventory contains item.
func (r *Record) Owns(item string) bool {
	for _, it := range r.UserInventory {
		if it == item {
			return true
		}
	}
	return false
}

// clone returns a deep copy so callers never alias store-internal state.
func (r *Record) clone() *Record {
	cp := *r
	if r.States != nil {
		cp.States = make(map[string]string, len(r.States))
		for k, v := range r.States {
			cp.States[k] = v
		}
	}
	cp.PetInventory = append([]string(nil), r.PetInventory...)
	cp.UserInventory = append([]string(nil), r.UserInventory...)
	return &cp
}

// clamp saturates v to [0,100].
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// RecoveryAmount is the energy gained by one rest or recovery tick:
// proportional to satiety, never less than 1. A starving pet recovers slowly.
func RecoveryAmount(satiety int) int {
	rec := 10 * satiety / 100
	if rec < 1 {
		rec = 1
	}
	return rec
}
