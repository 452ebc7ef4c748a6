// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "slices"

// PresentDate is the sentinel end date for an ongoing role
const PresentDate = "Present"

// Resume represents a JSON Resume style document
type Resume struct {
	Basics         *Basics         `json:"basics,omitempty"`
	Work           []Work          `json:"work,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         []Skill         `json:"skills,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`

	// JobAnalysis is attached by ranking so renderers never re-derive signals
	JobAnalysis *JobSignals `json:"jobAnalysis,omitempty"`
}

// Basics holds the candidate header information
type Basics struct {
	Name     string    `json:"name,omitempty"`
	Label    string    `json:"label,omitempty"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Website  string    `json:"website,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Location *Location `json:"location,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}

// Location is the candidate postal location
type Location struct {
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Profile is a link to an external profile (LinkedIn, GitHub, ...)
type Profile struct {
	Network  string `json:"network,omitempty"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Work represents a single position held
type Work struct {
	Company    string   `json:"company,omitempty"`
	Position   string   `json:"position,omitempty"`
	Website    string   `json:"website,omitempty"`
	StartDate  string   `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate    string   `json:"endDate,omitempty"`   // YYYY-MM-DD or "Present"
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}

// Education represents a degree or course of study
type Education struct {
	Institution string   `json:"institution,omitempty"`
	Area        string   `json:"area,omitempty"`
	StudyType   string   `json:"studyType,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	GPA         string   `json:"gpa,omitempty"`
	Courses     []string `json:"courses,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Skill represents a skill category with its keywords
type Skill struct {
	Name     string   `json:"name,omitempty"`
	Level    string   `json:"level,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Project represents a side or professional project
type Project struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	URL         string   `json:"url,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
}

// Certification represents a professional certification
type Certification struct {
	Name     string   `json:"name,omitempty"`
	Date     string   `json:"date,omitempty"`
	Issuer   string   `json:"issuer,omitempty"`
	URL      string   `json:"url,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Clone returns a deep copy of the resume. Nil sections stay nil.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}

	out := &Resume{
		Basics:      r.Basics.Clone(),
		JobAnalysis: r.JobAnalysis.Clone(),
	}

	if r.Work != nil {
		out.Work = make([]Work, len(r.Work))
		for i, w := range r.Work {
			out.Work[i] = w.Clone()
		}
	}
	if r.Education != nil {
		out.Education = make([]Education, len(r.Education))
		for i, e := range r.Education {
			e.Courses = slices.Clone(e.Courses)
			e.Keywords = slices.Clone(e.Keywords)
			out.Education[i] = e
		}
	}
	if r.Skills != nil {
		out.Skills = make([]Skill, len(r.Skills))
		for i, s := range r.Skills {
			out.Skills[i] = s.Clone()
		}
	}
	if r.Projects != nil {
		out.Projects = make([]Project, len(r.Projects))
		for i, p := range r.Projects {
			out.Projects[i] = p.Clone()
		}
	}
	if r.Certifications != nil {
		out.Certifications = make([]Certification, len(r.Certifications))
		for i, c := range r.Certifications {
			c.Keywords = slices.Clone(c.Keywords)
			out.Certifications[i] = c
		}
	}

	return out
}

// Clone returns a deep copy of the basics block
func (b *Basics) Clone() *Basics {
	if b == nil {
		return nil
	}
	out := *b
	if b.Location != nil {
		loc := *b.Location
		out.Location = &loc
	}
	out.Profiles = slices.Clone(b.Profiles)
	return &out
}

// Clone returns a deep copy of the work entry
func (w Work) Clone() Work {
	w.Highlights = slices.Clone(w.Highlights)
	w.Keywords = slices.Clone(w.Keywords)
	return w
}

// Clone returns a deep copy of the skill entry
func (s Skill) Clone() Skill {
	s.Keywords = slices.Clone(s.Keywords)
	return s
}

// Clone returns a deep copy of the project entry
func (p Project) Clone() Project {
	p.Highlights = slices.Clone(p.Highlights)
	p.Keywords = slices.Clone(p.Keywords)
	return p
}
