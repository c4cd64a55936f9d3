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


package routing

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoRoutes is returned when a router is built without routes.
	ErrNoRoutes = errors.New("at least one route required")

	// ErrNoUtterances is returned when a route has no example utterances.
	ErrNoUtterances = errors.New("route has no utterances")

	// ErrDuplicateRoute is returned when two routes share a name.
	ErrDuplicateRoute = errors.New("duplicate route name")

	// ErrInvalidThreshold is returned for thresholds outside [-1, 1].
	ErrInvalidThreshold = errors.New("threshold must be within [-1, 1]")

	// ErrInvalidEpsilon is returned for negative tie-break margins.
	ErrInvalidEpsilon = errors.New("epsilon cannot be negative")
)
