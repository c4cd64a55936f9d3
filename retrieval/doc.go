// Package retrieval provides top-K nearest-neighbor search over the FAQ
// vector index.
//
// A Retriever is bound to one collection. It embeds the query text,
// normalizes the vector, and asks the storage layer for the k entries with
// the highest cosine similarity. Scores are returned unfiltered; deciding
// whether a score is good enough to answer from belongs to the synthesis
// layer.
package retrieval
