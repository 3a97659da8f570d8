package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// contentHashLen is the number of hex characters of the content hash
// carried in a chunk identifier.
const contentHashLen = 12

// chunkIDNamespace scopes the UUIDs derived from chunk identifiers.
var chunkIDNamespace = uuid.MustParse("7a0bfa6d-2f14-4ae5-9d4c-5c1e0e6b8f21")

// ChunkID derives the content-addressed identifier for a chunk:
// {document_id}_chunk_{index}_{hash}. The hash component makes repeated
// runs idempotent on unchanged content, while a content change at the
// same index produces a new identifier instead of silently overwriting
// the old entry with stale metadata. The superseded entry is left
// orphaned; recreating the collection is the only way to clear it.
func ChunkID(documentID string, index int, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s_chunk_%d_%s", documentID, index, hex.EncodeToString(sum[:])[:contentHashLen])
}

// PointID converts a chunk identifier into the UUID form the vector
// store requires for point IDs. The mapping is deterministic, so the
// idempotence of ChunkID carries through to upserts.
func PointID(chunkID string) string {
	return uuid.NewSHA1(chunkIDNamespace, []byte(chunkID)).String()
}
