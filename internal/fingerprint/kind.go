package fingerprint

import (
	"fmt"
	"strings"
)

// Kind names a fingerprint family as stored in the cache file.
type Kind string

const (
	Ashlock          Kind = "Ashlock"
	Transitive       Kind = "Transitive"
	TransitiveVShort Kind = "Transitive_v_short"
)

// Kinds returns every kind in report order.
func Kinds() []Kind {
	return []Kind{Ashlock, Transitive, TransitiveVShort}
}

// Prefix is prepended to artifact file names of the kind.
func (k Kind) Prefix() string {
	switch k {
	case Transitive:
		return "transitive_"
	case TransitiveVShort:
		return "transitive_v_short_"
	default:
		return ""
	}
}

// Title is the caption used for the kind's image in reports.
func (k Kind) Title(name string) string {
	switch k {
	case Transitive:
		return "Transitive fingerprint of " + name
	case TransitiveVShort:
		return "Transitive fingerprint of " + name + " against short run time"
	default:
		return "fingerprint of " + name
	}
}

// ParseKind resolves a kind from its cache name, ignoring case.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown fingerprint kind %q", s)
}
