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


// Package ingestion loads FAQ corpora and builds the vector index.
//
// A corpus is a CSV file of (question, answer) rows. The pipeline embeds
// every question on a worker pool, normalizes the vectors, and stores the
// entries under a collection named after the corpus identity. Malformed
// rows are skipped during loading; an embedding failure aborts the batch
// before the collection marker is written, so a failed run never leaves a
// partially built index.
//
// Ingestion is idempotent. Within a process, a mutex serializes the
// exists-embed-create-put sequence; across processes, the storage layer's
// atomic create-if-absent marker ensures only one ingestor ever populates
// a collection.
package ingestion
