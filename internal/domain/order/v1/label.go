package orderv1

import (
	"fmt"
	"strconv"
	"strings"
)

// Label names one book level, nearest-to-market-first: Ask_L1 is the best
// ask, Bid_L2 the second-best bid. The synthetic flow model keys its
// per-level queue generation by this label.
type Label struct {
	Side  Side
	Index int // 1-based
}

func (l Label) String() string {
	return fmt.Sprintf("%s_L%d", l.Side, l.Index)
}

// ParseLabel parses strings of the form "Ask_L1" / "Bid_L2".
func ParseLabel(s string) (Label, error) {
	side, idx, ok := strings.Cut(s, "_L")
	if !ok {
		return Label{}, fmt.Errorf("malformed level label %q", s)
	}

	var label Label
	switch side {
	case "Ask":
		label.Side = SideAsk
	case "Bid":
		label.Side = SideBid
	default:
		return Label{}, fmt.Errorf("malformed level label %q", s)
	}

	n, err := strconv.Atoi(idx)
	if err != nil || n < 1 {
		return Label{}, fmt.Errorf("malformed level label %q", s)
	}
	label.Index = n

	return label, nil
}
