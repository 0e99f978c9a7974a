package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ChartVersion computes a deterministic version for a chart:
// the first 8 bytes of SHA256 over its JSON encoding.
func ChartVersion(chart Chart) string {
	data, err := json.Marshal(chart)
	if err != nil {
		return "invalid"
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
