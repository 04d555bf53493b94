package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildExtractionPrompt([]string{"John Doe", "Skills: Go, Rust"})

	assert.Contains(t, prompt, "Extract the candidate's professional profile")
	assert.Contains(t, prompt, `return an empty string "", NOT null or undefined`)
	assert.Contains(t, prompt, "John Doe\n\n---\n\nSkills: Go, Rust")

	// Chunks come after the instruction block.
	assert.Less(t, strings.Index(prompt, "Mapping Rules"), strings.Index(prompt, "John Doe"))
}

func TestBuildScoringPromptSectionOrder(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildScoringPrompt(`{"resume":{}}`, "Go and Postgres", "Backend role")

	resumeIdx := strings.Index(prompt, "[Resume]")
	reqIdx := strings.Index(prompt, "[Job Requirements] Go and Postgres")
	descIdx := strings.Index(prompt, "[Job Description] Backend role")

	assert.Greater(t, resumeIdx, 0)
	assert.Greater(t, reqIdx, resumeIdx)
	assert.Greater(t, descIdx, reqIdx)
}

func TestBuildScreeningPromptSectionOrder(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildScreeningPrompt("flag duplicate submissions", "Go and Postgres", `[{"name":"Ada"}]`)

	assert.Contains(t, prompt, "Senior Recruitment AI Specialist")
	assert.Contains(t, prompt, `"summary"`)

	instructionIdx := strings.Index(prompt, "[instruction] flag duplicate submissions")
	reqIdx := strings.Index(prompt, "[Job_Requirements] Go and Postgres")
	poolIdx := strings.Index(prompt, `[applicants] [{"name":"Ada"}]`)

	assert.Greater(t, instructionIdx, 0)
	assert.Greater(t, reqIdx, instructionIdx)
	assert.Greater(t, poolIdx, reqIdx)
}
