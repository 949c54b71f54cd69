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
	"fmt"
	"io"
)

// OutputWriter defines the interface for writing pull request data.
// This abstraction allows different output formats (NDJSON, a single JSON
// document, CSV, etc.) to be implemented without changing the command logic.
type OutputWriter interface {
	// Write writes a single record to the output.
	Write(record interface{}) error

	// Close flushes any buffered output and releases resources.
	// This should be called when all writing is complete.
	Close() error
}

// NewFormatWriter returns an OutputWriter for the named machine-readable
// format writing to w. Supported formats are "ndjson" and "json".
func NewFormatWriter(w io.Writer, format string) (OutputWriter, error) {
	switch format {
	case "ndjson":
		return NewWriter(w), nil
	case "json":
		return NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
