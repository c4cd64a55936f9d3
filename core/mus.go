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

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types persisted in storage.
// Field order is part of the storage format; append-only.
var (
	// IDMUS serializes an ID with varint encoding.
	IDMUS = idMUS{}

	// FAQEntryMUS serializes an FAQEntry.
	FAQEntryMUS = faqEntryMUS{}

	vectorMUS = ord.NewSliceSer[float32](varint.Float32)
)

var (
	_ mus.Serializer[ID]       = IDMUS
	_ mus.Serializer[FAQEntry] = FAQEntryMUS
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type faqEntryMUS struct{}

func (faqEntryMUS) Marshal(e FAQEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(e.Id, bs)
	n += varint.Int.Marshal(e.Position, bs[n:])
	n += ord.String.Marshal(e.Question, bs[n:])
	n += ord.String.Marshal(e.Answer, bs[n:])
	n += vectorMUS.Marshal(e.Vector, bs[n:])
	return
}

func (faqEntryMUS) Unmarshal(bs []byte) (e FAQEntry, n int, err error) {
	var n1 int
	e.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	e.Position, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Question, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Answer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (faqEntryMUS) Size(e FAQEntry) (size int) {
	size = IDMUS.Size(e.Id)
	size += varint.Int.Size(e.Position)
	size += ord.String.Size(e.Question)
	size += ord.String.Size(e.Answer)
	size += vectorMUS.Size(e.Vector)
	return
}

func (faqEntryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	return
}
