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


// Package storage defines the persistence interfaces for the FAQ vector
// index and the serialization helpers shared by its backends.
//
// A collection is an ingested corpus identified by a stable name. The
// collection marker is created atomically (create-if-absent), which is what
// makes corpus ingestion idempotent under concurrent startup: only one
// caller ever observes the marker as newly created.
//
// The storage/badger sub-package provides the production BadgerDB backend,
// including an in-memory mode used by tests.
package storage
