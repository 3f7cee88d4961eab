package portfolio

// SeedStore returns a store populated with fixture data, used for local
// runs and tests until a durable collaborator is wired in.
func SeedStore() *Store {
	profile := Profile{
		Name:            "Alex Arvell",
		Title:           "Full-stack engineer",
		Summary:         "Builds web products end to end, from data model to deployed UI.",
		Skills:          []string{"javascript", "typescript", "python", "go"},
		Technologies:    []string{"react", "node.js", "postgresql", "redis", "docker", "aws", "graphql"},
		YearsExperience: 9,
		Location:        "Remote (EU)",
		Links: map[string]string{
			"github": "https://github.com/arvell",
		},
	}

	projects := []Project{
		{
			ID:           "voicedesk",
			Title:        "VoiceDesk",
			Summary:      "Realtime voice assistant for customer support with live transcription.",
			Technologies: []string{"typescript", "node.js", "websocket", "redis"},
			Role:         "Lead engineer",
			Year:         2025,
			Path:         "/projects/voicedesk",
			Highlights:   []string{"Sub-second round-trip latency", "40k sessions per month"},
		},
		{
			ID:           "shoplens",
			Title:        "ShopLens",
			Summary:      "Product search and recommendation platform for mid-size retailers.",
			Technologies: []string{"python", "django", "postgresql", "elasticsearch", "aws"},
			Role:         "Backend engineer",
			Year:         2024,
			Path:         "/projects/shoplens",
			Highlights:   []string{"Search latency cut by 70%"},
		},
		{
			ID:           "gridwatch",
			Title:        "GridWatch",
			Summary:      "Monitoring dashboard for distributed energy assets.",
			Technologies: []string{"go", "react", "graphql", "docker", "kubernetes"},
			Role:         "Full-stack engineer",
			Year:         2023,
			Path:         "/projects/gridwatch",
			Highlights:   []string{"Streams 1M datapoints per hour"},
		},
	}

	return NewStore(profile, projects)
}
