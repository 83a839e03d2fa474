package chunk

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// archiveTagLen is the number of hash bytes appended to the index.
// Four bytes (eight hex characters) is enough to defeat URL guessing;
// collisions between indexes don't matter because the plain index is
// part of the identifier.
const archiveTagLen = 4

// ArchiveID derives the stable, unguessable identifier for the archive
// chunk at the given 1-based index (index 1 = oldest chunk). The same
// (index, secret) pair always produces the same identifier, across runs
// and process restarts, so published archive URLs never move.
//
// The identifier leads with the plain index — the existence and position
// of a chunk is not secret, only its URL — followed by an underscore and
// a SHAKE128 tag over the index concatenated with the secret.
func ArchiveID(index int, secret string) string {
	tag := make([]byte, archiveTagLen)
	sha3.ShakeSum128(tag, []byte(strconv.Itoa(index)+secret))
	return fmt.Sprintf("%d_%s", index, hex.EncodeToString(tag))
}
