package recall

import "time"

// Card represents the forgetting-curve state of one (learner, item) pair.
type Card struct {
	ItemID     int64      `json:"item_id"`
	State      State      `json:"state"`
	Step       *int       `json:"step"`       // nil outside Learning/Relearning.
	Stability  *float64   `json:"stability"`  // nil before first review; days.
	Difficulty *float64   `json:"difficulty"` // nil before first review; [1, 10].
	Reps       int        `json:"reps"`
	Lapses     int        `json:"lapses"`
	Due        time.Time  `json:"due"`
	LastReview *time.Time `json:"last_review"` // nil before first review.
}

// NewCard creates a new card in the New state with the given item ID.
// Due is set to now (immediately reviewable).
func NewCard(id int64) Card {
	return Card{
		ItemID: id,
		State:  New,
		Due:    time.Now(),
	}
}

// clone returns a deep copy of the card. Pointer fields are copied by value.
func (c Card) clone() Card {
	out := c
	if c.Step != nil {
		v := *c.Step
		out.Step = &v
	}
	if c.Stability != nil {
		v := *c.Stability
		out.Stability = &v
	}
	if c.Difficulty != nil {
		v := *c.Difficulty
		out.Difficulty = &v
	}
	if c.LastReview != nil {
		v := *c.LastReview
		out.LastReview = &v
	}
	return out
}

func (c *Card) setStability(s float64) {
	c.Stability = &s
}

func (c *Card) setDifficulty(d float64) {
	c.Difficulty = &d
}

func (c *Card) setStep(step int) {
	c.Step = &step
}

func (c *Card) clearStep() {
	c.Step = nil
}
