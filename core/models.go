package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or assigned from corpus order.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Intent names a query category the router can classify into.
type Intent string

const (
	// IntentFAQ routes to retrieval-augmented FAQ answering.
	IntentFAQ Intent = "faq"
	// IntentProduct routes to the structured product-query handler.
	IntentProduct Intent = "product"
	// IntentChitchat routes to the casual-conversation handler.
	IntentChitchat Intent = "chitchat"
)

// FAQEntry is one indexed question/answer pair.
// The Vector is populated at ingestion time and stored normalized,
// so a dot product against a normalized query vector equals cosine similarity.
type FAQEntry struct {
	Id       ID
	Position int // Row position in the source corpus; preserves ingestion order
	Question string
	Answer   string
	Vector   []float32
}

// ScoredEntry is an FAQ entry paired with its similarity to a query.
type ScoredEntry struct {
	Entry *FAQEntry
	Score float32
}

// Classification is the result of routing a query to an intent.
type Classification struct {
	Intent Intent
	Score  float32
}
