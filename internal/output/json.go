package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	options *Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts *Options) *JSONFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &JSONFormatter{
		options: opts,
	}
}

// Format outputs a single data item as JSON
func (f *JSONFormatter) Format(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// FormatResults outputs task results as JSON
func (f *JSONFormatter) FormatResults(w io.Writer, results []TaskResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resultMaps(results))
}

// resultMaps converts results to a structure both encoders can serialize,
// with errors flattened to strings
func resultMaps(results []TaskResult) []map[string]interface{} {
	out := make([]map[string]interface{}, len(results))

	for i, result := range results {
		item := map[string]interface{}{
			"name":     result.Name,
			"duration": result.Duration.String(),
		}

		if result.Err != nil {
			item["status"] = "failed"
			item["error"] = result.Err.Error()
		} else {
			item["status"] = "success"
			if result.Data != nil {
				item["data"] = result.Data
			}
		}

		out[i] = item
	}

	return out
}
