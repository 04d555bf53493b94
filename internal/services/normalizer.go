package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"conductum/ats-api/internal/models"
)

// ProfileNormalizer coerces a model completion into the fixed profile schema.
// It is a total function: any input, parseable or not, yields a profile with
// every scalar a string and every list a list. A malformed model response
// must never block an application, so parse failures degrade to all-defaults
// instead of erroring.
type ProfileNormalizer struct{}

func NewProfileNormalizer() *ProfileNormalizer {
	return &ProfileNormalizer{}
}

func (n *ProfileNormalizer) Normalize(response string) *models.ExtractedProfile {
	profile := models.EmptyProfile()

	raw := extractJSON(response)
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return profile
	}

	profile.Email = coerceString(data["email"])
	profile.Telephone = coerceString(data["telephone"])
	profile.Linkedin = coerceString(data["linkedin"])
	profile.Github = coerceString(data["github"])
	profile.Facebook = coerceString(data["facebook"])
	profile.Twitter = coerceString(data["twitter"])
	profile.Dribbble = coerceString(data["dribbble"])
	profile.Behance = coerceString(data["behance"])
	profile.Skills = coerceStringSlice(data["skills"])
	profile.Experience = coerceExperience(data["experience"])
	profile.Education = coerceEducation(data["education"])

	return profile
}

// extractJSON strips markdown fences and isolates the outermost JSON value.
// LLMs wrap their output more often than not.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return text
}

func coerceString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return ""
	}
}

func coerceStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			result = append(result, s)
		}
	}

	return result
}

func coerceExperience(v interface{}) []models.Experience {
	items, ok := v.([]interface{})
	if !ok {
		return []models.Experience{}
	}

	result := make([]models.Experience, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		result = append(result, models.Experience{
			Company:      coerceString(entry["company"]),
			Title:        coerceString(entry["title"]),
			Period:       coerceString(entry["period"]),
			Achievements: coerceStringSlice(entry["achievements"]),
		})
	}

	return result
}

func coerceEducation(v interface{}) []models.Education {
	items, ok := v.([]interface{})
	if !ok {
		return []models.Education{}
	}

	result := make([]models.Education, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		result = append(result, models.Education{
			Institution: coerceString(entry["institution"]),
			Degree:      coerceString(entry["degree"]),
			Year:        coerceString(entry["year"]),
		})
	}

	return result
}
