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


package storage

import (
	"github.com/poiesic/shopassist/core"
)

// MarshalFAQEntry serializes an FAQEntry to bytes.
func MarshalFAQEntry(entry *core.FAQEntry) []byte {
	buf := make([]byte, core.FAQEntryMUS.Size(*entry))
	core.FAQEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalFAQEntry deserializes an FAQEntry from bytes.
func UnmarshalFAQEntry(data []byte) (*core.FAQEntry, error) {
	entry, _, err := core.FAQEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
