package portfolio

import (
	"fmt"
	"strings"
)

// Side BUY or SELL
type Side int

const (
	BUY  Side = 1
	SELL Side = -1
)

func (s Side) String() string {
	switch s {
	case BUY:
		return "BUY"
	case SELL:
		return "SELL"
	default:
		return "unknown"
	}
}

func (s Side) MarshalText() ([]byte, error) {
	switch s {
	case BUY, SELL:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid side %d", int(s))
	}
}

func (s *Side) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "BUY":
		*s = BUY
	case "SELL":
		*s = SELL
	default:
		return fmt.Errorf("invalid side %q", string(text))
	}
	return nil
}

// ========================================================

// ProductType of the traded instrument
type ProductType int

const (
	Future ProductType = iota
	Option
	Swap
)

func (pt ProductType) String() string {
	switch pt {
	case Future:
		return "FUTURE"
	case Option:
		return "OPTION"
	case Swap:
		return "SWAP"
	default:
		return "unknown"
	}
}

func (pt ProductType) MarshalText() ([]byte, error) {
	if pt < Future || pt > Swap {
		return nil, fmt.Errorf("invalid product type %d", int(pt))
	}
	return []byte(pt.String()), nil
}

func (pt *ProductType) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "FUTURE":
		*pt = Future
	case "OPTION":
		*pt = Option
	case "SWAP":
		*pt = Swap
	default:
		return fmt.Errorf("invalid product type %q", string(text))
	}
	return nil
}
