// Package assessments provides standardized self-report screening
// instruments (PHQ-9, GAD-7, DASS-21) with sum scoring and severity bands.
package assessments

import (
	"fmt"

	pkgerrors "moodlog-backend/pkg/errors"
)

// Responses use a fixed four point scale per item
const (
	OptionMin = 0
	OptionMax = 3
)

// Question is one item of an instrument
type Question struct {
	ID     int
	Text   string
	Prompt string
}

// severityBand maps scores up to and including Max to a label. The final
// band of an instrument is open ended (Max < 0).
type severityBand struct {
	Max   int
	Label string
}

// Assessment is a screening instrument with its items and scoring bands
type Assessment struct {
	ID        string
	Name      string
	label     string
	questions []Question
	bands     []severityBand
}

// Questions returns a copy of the instrument's items
func (a *Assessment) Questions() []Question {
	out := make([]Question, len(a.questions))
	copy(out, a.questions)
	return out
}

// severity returns the band label for a total score
func (a *Assessment) severity(score int) string {
	for _, band := range a.bands {
		if band.Max >= 0 && score <= band.Max {
			return band.Label
		}
	}
	return a.bands[len(a.bands)-1].Label
}

// Result is a scored assessment
type Result struct {
	AssessmentID   string
	Score          int
	Severity       string
	Interpretation string
}

// Catalog holds the available instruments in a stable listing order
type Catalog struct {
	byID  map[string]*Assessment
	order []string
}

// NewCatalog builds the built-in instrument catalog
func NewCatalog() *Catalog {
	catalog := &Catalog{byID: make(map[string]*Assessment)}
	for _, a := range []*Assessment{phq9(), gad7(), dass21()} {
		catalog.byID[a.ID] = a
		catalog.order = append(catalog.order, a.ID)
	}
	return catalog
}

// List returns all instruments in registration order
func (c *Catalog) List() []*Assessment {
	out := make([]*Assessment, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Get returns the instrument with the given ID
func (c *Catalog) Get(id string) (*Assessment, error) {
	assessment, ok := c.byID[id]
	if !ok {
		return nil, pkgerrors.NewUnknownAssessmentError(id)
	}
	return assessment, nil
}

// Score sums the responses to an instrument and interprets the total.
// Every item must be answered and each response must be on the option scale.
func (c *Catalog) Score(id string, responses []int) (*Result, error) {
	assessment, err := c.Get(id)
	if err != nil {
		return nil, err
	}

	if len(responses) != len(assessment.questions) {
		return nil, pkgerrors.NewResponsesError(fmt.Sprintf(
			"expected %d responses, got %d", len(assessment.questions), len(responses)))
	}

	total := 0
	for i, response := range responses {
		if response < OptionMin || response > OptionMax {
			return nil, pkgerrors.NewResponsesError(fmt.Sprintf(
				"response %d is out of range: %d", i+1, response))
		}
		total += response
	}

	severity := assessment.severity(total)
	return &Result{
		AssessmentID:   id,
		Score:          total,
		Severity:       severity,
		Interpretation: fmt.Sprintf("%s Score: %d (%s)", assessment.label, total, severity),
	}, nil
}

func phq9() *Assessment {
	const prompt = "Over the last 2 weeks, how often have you been bothered by:"
	return &Assessment{
		ID:    "phq9",
		Name:  "PHQ-9 Depression Assessment",
		label: "PHQ-9 Depression",
		questions: []Question{
			{ID: 1, Text: "Little interest or pleasure in doing things", Prompt: prompt},
			{ID: 2, Text: "Feeling down, depressed, or hopeless", Prompt: prompt},
			{ID: 3, Text: "Trouble falling or staying asleep, or sleeping too much", Prompt: prompt},
			{ID: 4, Text: "Feeling tired or having little energy", Prompt: prompt},
			{ID: 5, Text: "Poor appetite or overeating", Prompt: prompt},
		},
		bands: []severityBand{
			{Max: 4, Label: "Minimal"},
			{Max: 9, Label: "Mild"},
			{Max: 14, Label: "Moderate"},
			{Max: 19, Label: "Moderately Severe"},
			{Max: -1, Label: "Severe"},
		},
	}
}

func gad7() *Assessment {
	const prompt = "Over the last 2 weeks, how often have you been bothered by:"
	return &Assessment{
		ID:    "gad7",
		Name:  "GAD-7 Anxiety Assessment",
		label: "GAD-7 Anxiety",
		questions: []Question{
			{ID: 1, Text: "Feeling nervous, anxious, or on edge", Prompt: prompt},
			{ID: 2, Text: "Not being able to stop or control worrying", Prompt: prompt},
			{ID: 3, Text: "Worrying too much about different things", Prompt: prompt},
		},
		bands: []severityBand{
			{Max: 4, Label: "Minimal"},
			{Max: 9, Label: "Mild"},
			{Max: 14, Label: "Moderate"},
			{Max: -1, Label: "Severe"},
		},
	}
}

func dass21() *Assessment {
	const prompt = "Please read each statement and select how much it applied to you over the past week"
	return &Assessment{
		ID:    "dass21",
		Name:  "DASS-21 Stress Assessment",
		label: "DASS-21 Stress",
		questions: []Question{
			{ID: 1, Text: "I found it hard to wind down", Prompt: prompt},
			{ID: 2, Text: "I was aware of dryness of my mouth", Prompt: prompt},
		},
		bands: []severityBand{
			{Max: 7, Label: "Normal"},
			{Max: 9, Label: "Mild"},
			{Max: 12, Label: "Moderate"},
			{Max: 16, Label: "Severe"},
			{Max: -1, Label: "Extremely Severe"},
		},
	}
}
