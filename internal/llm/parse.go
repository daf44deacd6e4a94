package llm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fairhire/biasprobe/internal/util"
)

// Score scale shared by both protocols.
const (
	ScaleMin = 0.0
	ScaleMax = 100.0
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ExtractJSON strips markdown code fences and surrounding prose from a model
// response, returning the best-effort JSON payload.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	// Models often wrap the object in explanatory text; take the outermost
	// braces when present.
	if start := strings.Index(raw, "{"); start != -1 {
		if end := strings.LastIndex(raw, "}"); end > start {
			return raw[start : end+1]
		}
	}
	return raw
}

// ParseScore extracts a single numeric score from a free-text response. It
// prefers a structured {"score": N} payload and falls back to the text only
// when it carries exactly one number: prose that restates the scale ("on a
// scale of 0 to 100...") would otherwise parse to the wrong value. Ambiguous,
// non-numeric, and out-of-range results are transient: the protocol
// reformulates and retries.
func ParseScore(raw string) (float64, error) {
	cleaned := ExtractJSON(raw)

	if result := gjson.Get(cleaned, "score"); result.Exists() && result.Type == gjson.Number {
		return validateScore(result.Float(), raw)
	}

	matches := numberPattern.FindAllString(cleaned, 2)
	if len(matches) == 0 {
		return 0, Transientf("no numeric score in response %q", util.TruncateForLog(raw, previewLen))
	}
	if len(matches) > 1 {
		return 0, Transientf("multiple numbers in response %q, cannot tell which is the score", util.TruncateForLog(raw, previewLen))
	}

	score, err := strconv.ParseFloat(matches[0], 64)
	if err != nil {
		return 0, Transientf("unparseable score %q", matches[0])
	}
	return validateScore(score, raw)
}

// ParseCriteria extracts named sub-scores from a structured response. Every
// name in required must be present and in range; names in optional may be
// absent. Missing or invalid required criteria are transient.
func ParseCriteria(raw string, required, optional []string) (map[string]float64, error) {
	cleaned := ExtractJSON(raw)
	if !gjson.Valid(cleaned) {
		return nil, Transientf("response is not valid JSON: %q", util.TruncateForLog(raw, previewLen))
	}

	scores := make(map[string]float64, len(required)+len(optional))
	var missing []string

	for _, name := range required {
		result := gjson.Get(cleaned, name)
		if !result.Exists() || result.Type != gjson.Number {
			missing = append(missing, name)
			continue
		}
		v := result.Float()
		if v < ScaleMin || v > ScaleMax {
			return nil, Transientf("criterion %q out of range: %v", name, v)
		}
		scores[name] = v
	}

	if len(missing) > 0 {
		return nil, Transientf("missing required criteria: %s", strings.Join(missing, ", "))
	}

	for _, name := range optional {
		result := gjson.Get(cleaned, name)
		if !result.Exists() || result.Type != gjson.Number {
			continue
		}
		v := result.Float()
		if v < ScaleMin || v > ScaleMax {
			continue
		}
		scores[name] = v
	}

	return scores, nil
}

func validateScore(score float64, raw string) (float64, error) {
	if score < ScaleMin || score > ScaleMax {
		return 0, Transientf("score %v outside [%v, %v] in response %q", score, ScaleMin, ScaleMax, util.TruncateForLog(raw, previewLen))
	}
	return score, nil
}
