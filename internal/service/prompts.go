package service

import (
	"fmt"
	"strings"

	"github.com/dwalbeck/job-tracker/internal/domain"
)

// Required keys the extractor verifies on each operation's model output.
var (
	analysisRequiredKeys = []string{"job_qualification", "keywords"}
	letterRequiredKeys   = []string{"letter_content"}
)

const analysisSystemPrompt = `You are an experienced technical recruiter reviewing job postings.
Respond with a single JSON object and nothing else. The object must contain:
- "job_qualification": a short paragraph assessing what kind of candidate the posting is looking for
- "keywords": an array of the most important skills and technologies named in the posting`

const letterSystemPrompt = `You are a professional career writer producing cover letters.
Respond with a single JSON object and nothing else. The object must contain:
- "letter_content": the full text of the cover letter`

func buildAnalysisPrompt(job *domain.Job) string {
	return fmt.Sprintf(
		"Analyze the following job posting.\n\nCompany: %s\nTitle: %s\n\nPosting:\n%s",
		job.Company, job.Title, job.Description)
}

func buildLetterPrompt(job *domain.Job, template string, keywords []string) string {
	return fmt.Sprintf(
		"Write a cover letter in the %q style for the following job posting. "+
			"Work these keywords into the letter naturally: %s.\n\n"+
			"Company: %s\nTitle: %s\n\nPosting:\n%s",
		template, strings.Join(keywords, ", "),
		job.Company, job.Title, job.Description)
}
