package coding

import (
	"fmt"
	"strings"

	"elevate-backend/internal/normalize"
)

// FormatRunOutput renders an execution result as console text.
func FormatRunOutput(stdin string, result map[string]any) string {
	lines := []string{"Running Code..."}
	if in := strings.TrimSpace(stdin); in != "" {
		lines = append(lines, "Input:\n"+in)
	}

	if normalize.IsFallback(result) {
		raw, _ := result[normalize.RawKey].(string)
		lines = append(lines, "Output:\n"+normalize.StripFences(raw), "Status: Success")
		return strings.Join(lines, "\n")
	}

	if out, ok := result["stdout"].(string); ok && out != "" {
		lines = append(lines, "Output:\n"+strings.TrimSpace(out))
	}
	if errText, ok := result["stderr"].(string); ok && strings.TrimSpace(errText) != "" {
		lines = append(lines, "Error: "+strings.TrimSpace(errText))
	}
	if t := result["time"]; t != nil && t != "" {
		lines = append(lines, fmt.Sprintf("Execution Time: %vs", t))
	}
	status := "Accepted"
	if st, ok := result["status"].(map[string]any); ok {
		if d, ok := st["description"].(string); ok && d != "" {
			status = d
		}
	}
	if status == "Accepted" {
		status = "Success"
	}
	lines = append(lines, "Status: "+status)
	return strings.Join(lines, "\n")
}
