package entity

// Solution is the optimal move for one board as computed by a search algorithm.
type Solution struct {
	Board     Board  `json:"board"`
	Action    Action `json:"action"`
	Value     int    `json:"value"`
	Algorithm string `json:"algorithm"`
}
