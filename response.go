package recall

import "time"

// Response records one raw attempt at an item, as delivered by the external
// response-evaluation boundary. It is the common input of the memory model,
// the ability estimator, and the bottleneck detector.
type Response struct {
	ItemID         int64         `json:"item_id"`
	Component      ComponentType `json:"component"`
	Correct        bool          `json:"correct"`
	CueLevel       int           `json:"cue_level"` // 0 = unassisted recall.
	ResponseTimeMs int           `json:"response_time_ms"`
	Timestamp      time.Time     `json:"timestamp"`
}

// ReviewLog records a single scheduled review of a card.
type ReviewLog struct {
	ItemID         int64     `json:"item_id"`
	Rating         Rating    `json:"rating"`
	ReviewDatetime time.Time `json:"review_datetime"`
	ReviewDuration *int      `json:"review_duration,omitempty"` // milliseconds, optional.
}
