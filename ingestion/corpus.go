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


package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// QAPair is one question/answer row from an FAQ corpus.
type QAPair struct {
	Question string
	Answer   string
}

// LoadCSVCorpus reads a question/answer corpus from a CSV file.
// The first row is treated as a header when its first column is "question".
// Malformed rows (missing question or answer) are skipped and counted, not
// fatal to the whole batch. Returns the valid pairs in file order and the
// number of skipped rows.
func LoadCSVCorpus(path string) ([]QAPair, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open corpus %q: %w", path, err)
	}
	defer f.Close()

	return readCorpus(f, path)
}

func readCorpus(r io.Reader, name string) ([]QAPair, int, error) {
	logger := slog.Default().With("component", "corpus-loader")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row shape is validated per row below

	var pairs []QAPair
	skipped := 0
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A ragged or unquotable row is a per-row problem.
			logger.Warn("skipping unreadable row", "corpus", name, "row", row, "err", err)
			skipped++
			row++
			continue
		}

		if row == 0 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "question") {
			row++
			continue
		}
		row++

		if len(record) < 2 || strings.TrimSpace(record[0]) == "" || strings.TrimSpace(record[1]) == "" {
			logger.Warn("skipping malformed row", "corpus", name, "row", row-1)
			skipped++
			continue
		}

		pairs = append(pairs, QAPair{
			Question: strings.TrimSpace(record[0]),
			Answer:   strings.TrimSpace(record[1]),
		})
	}

	logger.Debug("loaded corpus", "corpus", name, "rows", len(pairs), "skipped", skipped)
	return pairs, skipped, nil
}
