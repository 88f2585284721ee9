package spec

import (
	"fmt"
	"strconv"
	"strings"
)

func ParseLabels(input string) (map[string]string, error) {
	labels := map[string]string{}
	if strings.TrimSpace(input) == "" {
		return labels, nil
	}
	pairs := strings.Split(input, ",")
	for _, pair := range pairs {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid label %q", pair)
		}
		labels[parts[0]] = parts[1]
	}
	return labels, nil
}

// ParseMinutes reads "svc=12.5,other=3" overrides. Range checks happen in
// the downtime source.
func ParseMinutes(input string) (map[string]float64, error) {
	pairs, err := ParseLabels(input)
	if err != nil {
		return nil, err
	}
	out := map[string]float64{}
	for name, raw := range pairs {
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid minutes for %s: %q", name, raw)
		}
		out[name] = value
	}
	return out, nil
}

// ParseCounts reads "svc=3,other=7" event counts.
func ParseCounts(input string) (map[string]int, error) {
	pairs, err := ParseLabels(input)
	if err != nil {
		return nil, err
	}
	out := map[string]int{}
	for name, raw := range pairs {
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid event count for %s: %q", name, raw)
		}
		out[name] = value
	}
	return out, nil
}
