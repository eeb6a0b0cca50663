package bowlingtypes

// FrameScore is one regular frame of a score card.
type FrameScore struct {
	Number     int    `json:"number"`
	Marks      string `json:"marks"`
	Pins       []int  `json:"pins"`
	Cumulative int    `json:"cumulative"`
}

// ScoreCard is a scored game broken down per frame. Bonus holds the marks of
// the bonus frame, empty when none was thrown.
type ScoreCard struct {
	Notation string       `json:"notation"`
	Score    int          `json:"score"`
	Frames   []FrameScore `json:"frames"`
	Bonus    string       `json:"bonus,omitempty"`
	Strategy string       `json:"strategy"`
}

// Cumulative returns the running totals of the card in frame order.
func (c ScoreCard) Cumulative() []int {
	totals := make([]int, 0, len(c.Frames))
	for _, f := range c.Frames {
		totals = append(totals, f.Cumulative)
	}
	return totals
}
