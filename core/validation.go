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


package core

import "fmt"

// ValidateFAQEntry validates an FAQEntry according to domain rules.
//
// Validation rules:
//   - Question must not be empty
//   - Answer must not be empty
//   - Position must not be negative
//
// NOT validated (populated by the ingestion pipeline):
//   - Vector (can be empty until the question is embedded)
//   - ID (0 is a legal content hash)
func ValidateFAQEntry(entry *FAQEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidFAQEntry)
	}

	if entry.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFAQEntry, ErrEmptyQuestion)
	}

	if entry.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFAQEntry, ErrEmptyAnswer)
	}

	if entry.Position < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFAQEntry, ErrNegativePosition)
	}

	return nil
}
