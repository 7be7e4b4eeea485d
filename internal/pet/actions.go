package pet

// Accessory prices and the shop catalog. Every accessory costs the same.
const AccessoryPrice = 100

// Catalog lists the accessories the shop sells, in display order.
var Catalog = []Accessory{
	{ID: "finance", Label: "Money Sweater", Emoji: "\U0001F4B0"},
	{ID: "gaming", Label: "Gamer Headphones", Emoji: "\U0001F3A7"},
	{ID: "weather", Label: "Weather Umbrella", Emoji: "☂️"},
}

// Accessory is a wearable shop item.
type Accessory struct {
	ID    string
	Label string
	Emoji string
}

// AccessoryByID looks up a catalog entry.
func AccessoryByID(id string) (Accessory, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Accessory{}, false
}

// SourcesFor returns the news sources unlocked by a worn accessory.
func SourcesFor(accessory string) []string {
	switch accessory {
	case "finance":
		return []string{"forbes", "ria_finance", "ria_politics", "mix"}
	case "gaming":
		return []string{"stopgame"}
	default:
		return nil
	}
}

// Actions implements the game rules on top of the raw store operations.
type Actions struct {
	store *Store
}

// NewActions wraps a store.
func NewActions(store *Store) *Actions {
	return &Actions{store: store}
}

// Feed spends 1 coin for +10 satiety.
func (a *Actions) Feed(userID string) (*Record, error) {
	rec, err := a.store.Get(userID)
	if err != nil {
		return nil, err
	}
	if rec.Satiety >= 100 {
		return nil, ErrAlreadyFull
	}
	if rec.Money < 1 {
		return nil, ErrNotEnoughMoney
	}
	return a.store.Update(userID, func(r *Record) {
		r.Money = max(0, r.Money-1)
		r.Satiety = clamp(r.Satiety + 10)
	})
}

// Play trades 10 energy for +10 mood and earns 5 coins.
func (a *Actions) Play(userID string) (*Record, error) {
	rec, err := a.store.Get(userID)
	if err != nil {
		return nil, err
	}
	if rec.Mood >= 100 {
		return nil, ErrAlreadyFull
	}
	if rec.Energy < 10 {
		return nil, ErrNotEnoughEnergy
	}
	return a.store.Update(userID, func(r *Record) {
		r.Energy = clamp(r.Energy - 10)
		r.Mood = clamp(r.Mood + 10)
		r.Money += 5
	})
}

// Sleep restores energy proportionally to satiety, at least 1.
func (a *Actions) Sleep(userID string) (*Record, error) {
	rec, err := a.store.Get(userID)
	if err != nil {
		return nil, err
	}
	if rec.Energy >= 100 {
		return nil, ErrAlreadyFull
	}
	return a.store.Update(userID, func(r *Record) {
		r.Energy = clamp(r.Energy + RecoveryAmount(r.Satiety))
	})
}

// Buy purchases a catalog accessory for AccessoryPrice coins. The bot entry
// path refuses duplicates; the raw AddUserItem operation does not.
func (a *Actions) Buy(userID, item string) (*Record, error) {
	if _, ok := AccessoryByID(item); !ok {
		return nil, ErrItemNotFound
	}
	rec, err := a.store.Get(userID)
	if err != nil {
		return nil, err
	}
	if rec.Owns(item) {
		return nil, ErrAlreadyOwned
	}
	if rec.Money < AccessoryPrice {
		return nil, ErrNotEnoughMoney
	}
	return a.store.Update(userID, func(r *Record) {
		r.Money = max(0, r.Money-AccessoryPrice)
		r.UserInventory = append(r.UserInventory, item)
	})
}

// ToggleWear puts an owned accessory on the pet, or takes it off if it is
// already worn. Wearing replaces whatever was worn before. Returns the
// updated record and whether the item ended up worn.
func (a *Actions) ToggleWear(userID, item string) (*Record, bool, error) {
	rec, err := a.store.Get(userID)
	if err != nil {
		return nil, false, err
	}
	if !rec.Owns(item) {
		return nil, false, ErrNotWearable
	}
	if rec.Worn() == item {
		rec, err = a.store.Update(userID, func(r *Record) { r.PetInventory = nil })
		return rec, false, err
	}
	rec, err = a.store.AddPetItem(userID, item)
	return rec, true, err
}
