package common

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateID generates a dash-free UUID, prefixed with "<prefix>_" when prefix is set
func GenerateID(prefix string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	if prefix != "" {
		return fmt.Sprintf("%s_%s", prefix, id)
	}
	return id
}

// GenerateTradeID generates a trade ID with "trd" prefix
func GenerateTradeID() string {
	return GenerateID("trd")
}

// GeneratePositionID generates a position ID with "pos" prefix
func GeneratePositionID() string {
	return GenerateID("pos")
}
