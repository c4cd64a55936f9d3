// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package routing classifies natural-language queries into intents.
//
// A Router holds a fixed set of named routes, each with example utterances.
// The utterances are embedded once at construction; a query is classified by
// cosine similarity of its embedding against each route's utterance vectors.
// The best route wins only when its score clears a configurable acceptance
// threshold, otherwise the query is left unrouted and the caller falls back
// to its default handler.
//
// Scoring aggregates per-route similarities with max-over-examples by
// default; mean (centroid-like) aggregation is available via
// WithAggregation. Routes within epsilon of the top score resolve to the
// first-registered route, keeping classification deterministic.
//
// The router performs no retries: an embedding failure during Classify is
// returned to the caller, which owns the retry-or-fallback decision.
package routing
