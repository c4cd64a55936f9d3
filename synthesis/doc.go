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

// Package synthesis turns routed queries into user-facing text.
//
// Synthesizer produces grounded answers from retrieved FAQ context, while
// Chitchat covers casual conversation with a fixed persona. Both always
// return text: service failures are logged and replaced with fallback
// strings rather than surfaced as errors.
package synthesis
