package jobmatch

import (
	"regexp"
	"strings"
)

// Requirements is the structured view of a job specification. Derived per
// call, never stored.
type Requirements struct {
	Skills             []string `json:"skills"`
	Technologies       []string `json:"technologies"`
	ExperienceMentions []string `json:"experienceMentions"`
	Keywords           []string `json:"keywords"`
}

const maxKeywords = 20

// Fixed lexical pattern groups, matched case-insensitively. Languages feed
// the skills set; the remaining groups feed the technologies set.
var (
	languageTerms = []string{
		"javascript", "typescript", "python", "java", "c#", "c++", "go", "golang",
		"rust", "ruby", "php", "swift", "kotlin", "scala", "elixir",
	}
	frameworkTerms = []string{
		"react", "angular", "vue", "svelte", "next.js", "node.js", "express",
		"django", "flask", "fastapi", "spring", "rails", "laravel", ".net",
	}
	datastoreTerms = []string{
		"sql", "mysql", "postgresql", "postgres", "mongodb", "redis",
		"elasticsearch", "sqlite", "dynamodb", "cassandra",
	}
	cloudDevopsTerms = []string{
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes",
		"terraform", "ansible", "jenkins", "github actions", "ci/cd",
	}
	toolingTerms = []string{
		"git", "jira", "agile", "scrum", "rest", "graphql", "grpc",
		"microservices", "tdd", "oauth", "websocket",
	}
)

// experiencePattern catches "5 years", "3+ years" and similar duration mentions.
var experiencePattern = regexp.MustCompile(`(?i)\d+\s*\+?\s*years?`)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"are": true, "our": true, "will": true, "have": true, "has": true,
	"this": true, "that": true, "from": true, "your": true, "who": true,
	"can": true, "not": true, "all": true, "about": true, "into": true,
	"their": true, "they": true, "them": true, "was": true, "were": true,
	"been": true, "being": true, "but": true, "per": true, "etc": true,
	"within": true, "must": true, "should": true, "would": true, "able": true,
	"work": true, "working": true, "team": true, "role": true, "years": true,
	"experience": true, "required": true, "requirements": true, "candidate": true,
	"looking": true, "ideal": true, "strong": true, "plus": true, "skills": true,
}

var wordSplitter = regexp.MustCompile(`[^a-z0-9+#.]+`)

// ExtractRequirements builds the structured requirements for a job
// specification text.
func ExtractRequirements(text string) Requirements {
	lower := strings.ToLower(text)

	req := Requirements{
		Skills:             matchTerms(lower, languageTerms),
		ExperienceMentions: experiencePattern.FindAllString(text, -1),
		Keywords:           extractKeywords(lower),
	}

	for _, group := range [][]string{frameworkTerms, datastoreTerms, cloudDevopsTerms, toolingTerms} {
		req.Technologies = append(req.Technologies, matchTerms(lower, group)...)
	}
	if req.Technologies == nil {
		req.Technologies = []string{}
	}
	return req
}

// matchTerms returns the lexicon terms present in the lowercased text.
// Purely alphanumeric terms require word boundaries; terms carrying symbols
// (c#, next.js, ci/cd) fall back to plain containment.
func matchTerms(lower string, terms []string) []string {
	found := []string{}
	for _, term := range terms {
		if containsTerm(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

var termPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, group := range [][]string{languageTerms, frameworkTerms, datastoreTerms, cloudDevopsTerms, toolingTerms} {
		for _, term := range group {
			if isWordLike(term) {
				termPatterns[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
			}
		}
	}
}

func isWordLike(term string) bool {
	for _, r := range term {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ') {
			return false
		}
	}
	return true
}

func containsTerm(lower, term string) bool {
	if re, ok := termPatterns[term]; ok {
		return re.MatchString(lower)
	}
	return strings.Contains(lower, term)
}

// extractKeywords is the stop-word-filtered fallback, capped at maxKeywords,
// first occurrence order preserved.
func extractKeywords(lower string) []string {
	seen := map[string]bool{}
	keywords := []string{}

	for _, word := range wordSplitter.Split(lower, -1) {
		word = strings.Trim(word, ".")
		if len(word) < 3 || stopWords[word] || seen[word] {
			continue
		}
		if isNumeric(word) {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
