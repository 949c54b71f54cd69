// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JSONWriter collects records and emits them as a single indented JSON
// array when closed. Unlike Writer it holds every record in memory, which
// is acceptable for command output but not for unbounded streams.
type JSONWriter struct {
	mu      sync.Mutex
	output  io.Writer
	records []interface{}
	count   int
}

// NewJSONWriter creates a writer that renders all records as one JSON
// array on Close.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		output:  w,
		records: []interface{}{},
	}
}

// Write buffers a single record for the final array.
func (w *JSONWriter) Write(record interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.records = append(w.records, record)
	w.count++
	return nil
}

// Count returns the number of records buffered so far.
func (w *JSONWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close renders the buffered records and writes them to the output.
// An empty record set renders as [].
func (w *JSONWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.MarshalIndent(w.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render records: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.output.Write(data); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
