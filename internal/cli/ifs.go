package cli

import "os"

// DefaultIFS is the field separator used when $IFS is unset or empty.
const DefaultIFS = ":"

// IFS returns a reasonable default field separator: $IFS verbatim when set
// and non-empty, ":" otherwise.
func IFS() string {
	if ifs := os.Getenv("IFS"); ifs != "" {
		return ifs
	}
	return DefaultIFS
}
