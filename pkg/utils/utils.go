package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ColoredString takes a string and a colour attribute and returns a colored
// string with that attribute
func ColoredString(str string, colorAttribute color.Attribute) string {
	colour := color.New(colorAttribute)
	return ColoredStringDirect(str, colour)
}

// ColoredStringDirect used for aggregating a few color attributes rather than
// just sending a single one
func ColoredStringDirect(str string, colour *color.Color) string {
	return colour.SprintFunc()(fmt.Sprint(str))
}

// SplitParamList splits a parameter list of the form "{a, b, c}" or "a,b,c"
// into its trimmed elements. An empty list yields nil.
func SplitParamList(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "{")
	raw = strings.TrimSuffix(raw, "}")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ParseInt32List parses every element of a parameter list as a signed
// 32-bit integer.
func ParseInt32List(raw string) ([]int32, error) {
	parts := SplitParamList(raw)
	out := make([]int32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseInt(p, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("unparsable number %q", p)
		}
		out = append(out, int32(v))
	}
	return out, nil
}
