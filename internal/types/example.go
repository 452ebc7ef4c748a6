package types

// ExampleResume returns the starter template written by `resume_tailor init`
func ExampleResume() *Resume {
	return &Resume{
		Basics: &Basics{
			Name:    "Your Name",
			Label:   "Your Title",
			Email:   "your.email@example.com",
			Phone:   "(555) 555-5555",
			Website: "https://yourwebsite.com",
			Summary: "Experienced professional with skills in X, Y, and Z.",
			Location: &Location{
				Address:     "123 Main St",
				City:        "Anytown",
				Region:      "State",
				PostalCode:  "12345",
				CountryCode: "US",
			},
			Profiles: []Profile{
				{Network: "LinkedIn", Username: "yourname", URL: "https://linkedin.com/in/yourname"},
				{Network: "GitHub", Username: "yourusername", URL: "https://github.com/yourusername"},
			},
		},
		Work: []Work{
			{
				Company:   "Company Name",
				Position:  "Job Title",
				Website:   "https://company.com",
				StartDate: "2018-01-01",
				EndDate:   "2021-01-01",
				Summary:   "Brief description of your role",
				Highlights: []string{
					"Accomplished X resulting in Y improvement",
					"Managed team of X people",
					"Developed X using Y technology",
				},
				Keywords: []string{"leadership", "python", "teamwork"},
			},
		},
		Education: []Education{
			{
				Institution: "University Name",
				Area:        "Major",
				StudyType:   "Bachelor",
				StartDate:   "2014-01-01",
				EndDate:     "2018-01-01",
				GPA:         "3.8",
				Courses:     []string{"Course 1", "Course 2"},
				Keywords:    []string{"research", "thesis", "academic"},
			},
		},
		Skills: []Skill{
			{Name: "Web Development", Level: "Advanced", Keywords: []string{"HTML", "CSS", "JavaScript"}},
			{Name: "Programming", Level: "Advanced", Keywords: []string{"Python", "Java", "C++"}},
		},
		Projects: []Project{
			{
				Name:        "Project Name",
				Description: "Project description",
				Highlights:  []string{"Developed X feature", "Implemented Y technology"},
				Keywords:    []string{"python", "machine learning", "data analysis"},
				URL:         "https://project.com",
			},
		},
		Certifications: []Certification{
			{
				Name:     "Certification Name",
				Date:     "2020-01-01",
				Issuer:   "Certification Authority",
				URL:      "https://certification.com",
				Keywords: []string{"technical", "skill"},
			},
		},
	}
}
