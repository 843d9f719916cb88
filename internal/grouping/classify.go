package grouping

import (
	"strings"
)

// Storage-zone naming convention: a fixed prefix segment and an exact
// suffix token. Zones matching it are reported separately and never join
// the normal area grouping.
const (
	storagePrefix = "00XB1:"
	storageSuffix = "STORAGE"
)

// IsStorageZone reports whether the zone ID follows the reserved
// storage-zone naming convention.
func IsStorageZone(zoneID string) bool {
	return strings.HasPrefix(zoneID, storagePrefix) &&
		strings.HasSuffix(zoneID, storageSuffix)
}

// ExtractAreaID derives the building-area identifier from a zone ID. The
// convention is "FF:NN..." where the two digits after the colon are the
// area; a non-digit remainder is used whole. ok is false when the zone ID
// matches no known pattern, in which case the zone belongs in the
// unassigned bucket — never guessed into an arbitrary area.
func ExtractAreaID(zoneID string) (string, bool) {
	_, rest, found := strings.Cut(zoneID, ":")
	if !found || rest == "" {
		return "", false
	}
	if len(rest) >= 2 && isDigit(rest[0]) && isDigit(rest[1]) {
		return rest[:2], true
	}
	return rest, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
