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

// Package output provides utilities for writing pull request records in
// machine-readable formats. NDJSON (Newline Delimited JSON) is the default:
// each line contains one valid JSON object, which makes the output easy to
// pipe into jq, import into Dolt tables, or append to log files. A JSON
// writer is also available for consumers that want a single document.
//
// The primary type is Writer, which provides thread-safe streaming of JSON
// records to an io.Writer or file without accumulating records in memory.
//
// Example usage:
//
//	// Write to a file
//	w, err := output.NewFileWriter("pulls.ndjson")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	// Write records
//	for _, pull := range pulls {
//	    if err := w.Write(pull); err != nil {
//	        log.Printf("Failed to write record: %v", err)
//	    }
//	}
//
//	fmt.Printf("Wrote %d records\n", w.Count())
package output
