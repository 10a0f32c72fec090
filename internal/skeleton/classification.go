package skeleton

import (
	"fmt"
	"strings"
)

// Classification is the closed set of skeleton types the solver knows about.
type Classification int

const (
	Other Classification = iota
	Humanoid
	Quadruped
	Bird
	Dragon
)

var classificationNames = map[Classification]string{
	Other:     "other",
	Humanoid:  "humanoid",
	Quadruped: "quadruped",
	Bird:      "bird",
	Dragon:    "dragon",
}

func (c Classification) String() string {
	if s, ok := classificationNames[c]; ok {
		return s
	}
	return fmt.Sprintf("classification(%d)", int(c))
}

// ParseClassification accepts the lower-case names above ("human" is an
// alias for humanoid). The empty string parses as Other.
func ParseClassification(s string) (Classification, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "other", "none":
		return Other, nil
	case "human":
		return Humanoid, nil
	}
	for c, name := range classificationNames {
		if name == s {
			return c, nil
		}
	}
	return Other, fmt.Errorf("skeleton: unknown classification %q", s)
}
