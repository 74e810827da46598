package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/evalstudio/eval-studio/internal/store"
)

// JSONFilename returns the download filename for a user's structured export.
func JSONFilename(user string) string {
	return "evaluation_" + strings.ToLower(user) + ".json"
}

// WriteJSON writes the whole store verbatim, pretty-printed with two-space
// indentation. No flattening, no field renaming.
func WriteJSON(w io.Writer, s store.Store) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("write json export: %w", err)
	}
	return nil
}
