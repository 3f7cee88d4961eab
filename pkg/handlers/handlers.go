package handlers

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arvell/portico/pkg/accessgate"
	"github.com/arvell/portico/pkg/dispatch"
	"github.com/arvell/portico/pkg/portfolio"
)

// Deps carries the collaborators the handlers read from and write to.
type Deps struct {
	Portfolio  *portfolio.Store
	Navigation *NavigationLog
	Contact    ContactSink
	Files      FileStore
	Usage      accessgate.UsageTracker
	Logger     zerolog.Logger
}

// Table builds the dispatcher's explicit name-to-handler table. Premium
// requirements are declared here and re-checked inside the premium handlers.
func Table(deps Deps) (map[string]dispatch.HandlerSpec, error) {
	if deps.Portfolio == nil {
		return nil, fmt.Errorf("portfolio store is required")
	}
	if deps.Navigation == nil {
		deps.Navigation = NewNavigationLog(0)
	}
	if deps.Contact == nil {
		deps.Contact = LogContactSink{Logger: deps.Logger}
	}
	if deps.Files == nil {
		deps.Files = NewMemoryFileStore()
	}

	h := &handlerSet{deps: deps}

	return map[string]dispatch.HandlerSpec{
		"get_project_context":    {Handler: h.getProjectContext},
		"load_profile":           {Handler: h.loadProfile},
		"search_projects":        {Handler: h.searchProjects},
		"summarize_projects":     {Handler: h.summarizeProjects},
		"open_project":           {Handler: h.openProject},
		"process_job_spec":       {Handler: h.processJobSpec, MinAccess: accessgate.AccessPremium},
		"classify_intent":        {Handler: h.classifyIntent},
		"suggest_navigation":     {Handler: h.suggestNavigation},
		"get_navigation_history": {Handler: h.getNavigationHistory},
		"submit_contact_form":    {Handler: h.submitContactForm},
		"process_uploaded_file":  {Handler: h.processUploadedFile, MinAccess: accessgate.AccessPremium},
	}, nil
}

type handlerSet struct {
	deps Deps
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}
