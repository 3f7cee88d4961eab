package portfolio

import (
	"sort"
	"strings"
	"sync"
)

// Profile is the candidate profile the job-spec matcher scores against.
type Profile struct {
	Name            string            `json:"name"`
	Title           string            `json:"title"`
	Summary         string            `json:"summary"`
	Skills          []string          `json:"skills"`
	Technologies    []string          `json:"technologies"`
	YearsExperience int               `json:"yearsExperience"`
	Location        string            `json:"location"`
	Links           map[string]string `json:"links,omitempty"`
}

// Project is one portfolio entry.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies"`
	Role         string   `json:"role"`
	Year         int      `json:"year"`
	Path         string   `json:"path"`
	Highlights   []string `json:"highlights,omitempty"`
}

// Store is an in-memory, read-mostly view of the portfolio.
type Store struct {
	mu       sync.RWMutex
	profile  Profile
	projects []Project
}

// NewStore creates a store over the given data.
func NewStore(profile Profile, projects []Project) *Store {
	return &Store{profile: profile, projects: projects}
}

// Profile returns the candidate profile.
func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.profile
}

// Projects returns a copy of all projects, newest first.
func (s *Store) Projects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// Project looks up a project by id.
func (s *Store) Project(id string) (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// Search returns the projects whose title, summary or technologies contain
// every token of the query, case-insensitively. Results keep the newest-first
// ordering of Projects.
func (s *Store) Search(query string) []Project {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []Project{}
	}

	matched := []Project{}
	for _, p := range s.Projects() {
		haystack := strings.ToLower(p.Title + " " + p.Summary + " " + strings.Join(p.Technologies, " "))
		all := true
		for _, tok := range tokens {
			if !strings.Contains(haystack, tok) {
				all = false
				break
			}
		}
		if all {
			matched = append(matched, p)
		}
	}
	return matched
}
