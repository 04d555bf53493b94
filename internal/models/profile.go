package models

// ExtractedProfile is the validated output of the resume extraction pipeline.
// Every field is always present and type-correct: anything the model did not
// find comes back as "" or an empty list, never null or a missing key.
type ExtractedProfile struct {
	Email      string       `json:"email"`
	Telephone  string       `json:"telephone"`
	Linkedin   string       `json:"linkedin"`
	Github     string       `json:"github"`
	Facebook   string       `json:"facebook"`
	Twitter    string       `json:"twitter"`
	Dribbble   string       `json:"dribbble"`
	Behance    string       `json:"behance"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

type Experience struct {
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	Period       string   `json:"period"`
	Achievements []string `json:"achievements"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// EmptyProfile returns a profile with every field at its typed default.
func EmptyProfile() *ExtractedProfile {
	return &ExtractedProfile{
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
	}
}
