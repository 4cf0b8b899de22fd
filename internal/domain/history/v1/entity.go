package historyv1

// LevelSnapshot is one visible book level at snapshot time.
type LevelSnapshot struct {
	Level string  `json:"level"`
	Price float64 `json:"price"`
	Size  int64   `json:"size"`
}

// Entry is one immutable book snapshot, appended after every processed
// order. Asks and Bids are ordered nearest-to-market-first.
type Entry struct {
	Seq    int64           `json:"seq"`
	Time   float64         `json:"time"`
	Asks   []LevelSnapshot `json:"asks"`
	Bids   []LevelSnapshot `json:"bids"`
	Spread float64         `json:"spread"`
}
