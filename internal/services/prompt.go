package services

import (
	"fmt"
	"strings"
)

// extractionSystemInstruction pins the assistant persona for profile
// extraction.
const extractionSystemInstruction = "You are a Senior Technical Recruiter and Data Specialist."

// chunkSeparator joins retrieved chunks inside the extraction prompt.
const chunkSeparator = "\n\n---\n\n"

// extractionInstructions is a compatibility surface: the field-by-field rules
// drive extraction quality, so changes here change output quality directly.
const extractionInstructions = `Extract the candidate's professional profile into the exact JSON schema provided.

Follow these Data Structure Mapping Rules:
- telephone. Standardize phone to international format if possible.
- email. Extract full URIs only example name@gmail.com.
- linkedin. Extract full linkedin URIs only eg https://www.linkedin.com/in/name-012345/.
- github. Extract full URIs only eg https://github.com/name.
- facebook. Extract full URIs only eg https://web.facebook.com/name.
- twitter. Extract full URIs only eg https://x.com/name.
- dribbble. Extract full URIs only eg https://dribbble.com/name.
- behance. Extract full URIs only eg https://behance.com/name.
- Work and Professional Experience: Get full work experience including locations worked, period worked, tasks and achievements. Split achievements into an array of strings; remove bullet characters. Map to experience with company, title, period.
- Schooling: education. Map to institution, degree, and year.
- Null Safety: If a field is not found, return an empty string "", NOT null or undefined.
- Date Normalization: Ensure the period field in experience remains as string text (e.g. "2021 - Present").
- skills: An array of all skills written.`

// scoringInstructions is the fixed ATS suitability rubric applied when a
// candidate applies to a job.
const scoringInstructions = `Role: Act as an expert Senior Technical Recruiter and ATS Parser.

Task: Compare the provided [Resume] against the [Job Description] and [Job Requirements]. Assign a total Suitability Score out of 100 based on the following weighted criteria:

Core Hard Skills (40%): Does the candidate possess the "Must-Have" technical tools and certifications? Do the skills match the context of their experience or projects?

Experience Level & Seniority (30%): Does the candidate's years of experience and previous job titles align with the role's requirements?

Quantifiable Achievements (20%): Does the resume show impact (e.g., "Increased revenue by 20%" vs. "Responsible for sales")?

Industry Relevance & Education (10%): Relevant degree or experience within the specific sector (e.g., FinTech, FMCG).

Output Format:

Total Score: [X/100]

Match Category: [Strong Match / Potential Match / Low Match]

Key Strengths: (3 bullet points)

Missing Gaps: (List specific missing keywords or experiences)

Constraint: Be objective. If a skill is not explicitly stated or implied by context, do not award points for it.
Do not give recommendations or opinions`

// screeningInstructions is the recruiter chatbot persona applied when a
// recruiter asks for an analysis of a job's applicant pool.
const screeningInstructions = `Role: You are a Senior Recruitment AI Specialist with deep expertise in the West African labor market. Your task is to act as a high-level screening assistant for Recruitment Managers.

Task: Analyze the provided [Job_Requirements] and the list of [applicants]. You must filter for the most qualified candidates while simultaneously flagging any anomalies, red flags (e.g., fraud, resume padding, duplicate submissions), or exceptional cultural fits.

Evaluation Criteria:

Skill Match: Compare technical skills and years of experience against the JD.

Contextual Relevance: Note candidates with experience in relevant regional industries or reputable local/international institutions.

Integrity Check: Identify patterns that suggest "gaming the system," such as multiple submissions under slight variations of the same name or inconsistent career timelines.

Constraint: You must return your analysis strictly in the following JSON format:

{
"summary": "A high-level overview of the applicant pool, highlighting overall quality and any major concerns or trends found.",
"applicants": [
    {
    "id": "Unique applicant ID",
    "name": "Full name of the applicant",
    "description": "A concise justification for why this applicant was selected or flagged. Mention specific strengths or specific red flags."
    }
]
}`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildExtractionPrompt merges the fixed extraction rules with the retrieved
// resume chunks.
func (pb *PromptBuilder) BuildExtractionPrompt(chunks []string) string {
	return fmt.Sprintf(`%s

Here is the parsed context from the resume:
%s`, extractionInstructions, strings.Join(chunks, chunkSeparator))
}

// BuildScoringPrompt assembles the suitability-scoring prompt for one
// applicant against one job posting.
func (pb *PromptBuilder) BuildScoringPrompt(resumeJSON, jobRequirements, jobDescription string) string {
	parts := []string{
		scoringInstructions,
		fmt.Sprintf("[Resume] %s", resumeJSON),
		fmt.Sprintf("[Job Requirements] %s", jobRequirements),
		fmt.Sprintf("[Job Description] %s", jobDescription),
	}

	return strings.Join(parts, "\n\n")
}

// BuildScreeningPrompt assembles the recruiter chatbot prompt: the fixed
// screening rubric, the recruiter's free-form instruction, and the applicant
// pool for one job.
func (pb *PromptBuilder) BuildScreeningPrompt(instruction, jobRequirements, applicantsJSON string) string {
	parts := []string{
		screeningInstructions,
		fmt.Sprintf("[instruction] %s", instruction),
		fmt.Sprintf("[Job_Requirements] %s", jobRequirements),
		fmt.Sprintf("[applicants] %s", applicantsJSON),
	}

	return strings.Join(parts, "\n\n")
}
