package persist

import "fmt"

// NewGateway constructs a Gateway by kind: "memory" or "file".
// For the file gateway, provide the state file path; for memory, path is ignored.
func NewGateway(kind, path string) (Gateway, error) {
	switch kind {
	case "memory", "mem":
		return NewMemoryGateway(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("file path required for file gateway")
		}
		return NewFileGateway(path), nil
	default:
		return nil, fmt.Errorf("unknown gateway kind: %s", kind)
	}
}
