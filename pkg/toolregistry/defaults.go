package toolregistry

// Static tool tables. The client table describes UI capabilities resolved in
// the visitor's browser; the server table describes handlers dispatched in
// the backend. Both feed the same catalog.

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

// DefaultClientTools returns the static client-side tool table.
func DefaultClientTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:             "navigate_to_page",
			Description:      "Navigate the visitor's browser to a page or section of the site.",
			ExecutionContext: ExecClient,
			Parameters: objectSchema(map[string]interface{}{
				"path": stringProp("Site-relative path to navigate to, e.g. /projects"),
			}, "path"),
		},
		{
			Name:             "scroll_to_section",
			Description:      "Scroll the current page to a named section.",
			ExecutionContext: ExecClient,
			Parameters: objectSchema(map[string]interface{}{
				"section": stringProp("Section anchor id, e.g. experience"),
			}, "section"),
		},
		{
			Name:             "highlight_project",
			Description:      "Visually highlight a project card on the current page.",
			ExecutionContext: ExecClient,
			Parameters: objectSchema(map[string]interface{}{
				"projectId": stringProp("Identifier of the project to highlight"),
			}, "projectId"),
		},
		{
			Name:             "clear_highlights",
			Description:      "Remove any active project highlights.",
			ExecutionContext: ExecClient,
			Parameters:       objectSchema(map[string]interface{}{}),
		},
		{
			Name:             "set_theme",
			Description:      "Switch the site theme.",
			ExecutionContext: ExecClient,
			Parameters: objectSchema(map[string]interface{}{
				"theme": map[string]interface{}{
					"type":        "string",
					"description": "Theme name",
					"enum":        []interface{}{"light", "dark"},
				},
			}, "theme"),
		},
		{
			Name:             "show_contact_form",
			Description:      "Open the contact form overlay, optionally prefilled.",
			ExecutionContext: ExecClient,
			Parameters: objectSchema(map[string]interface{}{
				"subject": stringProp("Optional prefilled subject line"),
			}),
		},
	}
}

// DefaultServerTools returns the static server-side tool table. Every name
// here has a matching entry in the dispatcher's handler table.
func DefaultServerTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:             "get_project_context",
			Description:      "Load full context for one project: summary, role, technologies, highlights.",
			ExecutionContext: ExecServer,
			Parameters: objectSchema(map[string]interface{}{
				"projectId": stringProp("Identifier of the project"),
			}, "projectId"),
		},
		{
			Name:             "load_profile",
			Description:      "Load the candidate profile: skills, technologies, experience.",
			ExecutionContext: ExecServer,
			Parameters:       objectSchema(map[string]interface{}{}),
		},
		{
			Name:             "search_projects",
			Description:      "Search projects by keyword across title, summary and technologies.",
			ExecutionContext: ExecServer,
			Parameters: objectSchema(map[string]interface{}{
				"query": stringProp("Search query"),
				"limit": numberProp("Maximum number of results (default 5)"),
			}, "query"),
		},
		{
			Name:             "summarize_projects",
			Description:      "Aggregate the project portfolio: counts by technology and top highlights.",
			ExecutionContext: ExecServer,
			Parameters:       objectSchema(map[string]interface{}{}),
		},
		{
			Name:             "open_project",
			Description:      "Find the best-matching project for a query and resolve it to a navigable reference.",
			ExecutionContext: ExecServer,
			Parameters: objectSchema(map[string]interface{}{
				"query": stringProp("Free-text description of the project to open"),
			}, "query"),
		},
		{
			Name:             "process_job_spec",
			Description:      "Extract requirements from a job specification and score the candidate profile against them. Requires premium access.",
			ExecutionContext: ExecServer,
			Parameters: objectSchema(map[string]interface{}{
				"text": stringProp("Job specification free text"),
			}, "text"),
		},
		{
			Name:             "classify_intent",
			Description:      "Classify a visitor message into an intent category.",
			ExecutionContext: ExecServer,
			Parameters: objectSchema(map[string]interface{}{
				"message": stringProp("Visitor message to classify"),
			}, "message"),
		},
		{
			Name:             "suggest_navigation",
			Description:      "Suggest site sections to visit next, given an intent and the current page.",
			ExecutionContext: ExecServer,
			Parameters: objectSchema(map[string]interface{}{
				"intent":      stringProp("Classified visitor intent"),
				"currentPage": stringProp("Path of the page the visitor is on"),
			}),
		},
		{
			Name:             "get_navigation_history",
			Description:      "Return the pages visited in this session, most recent first.",
			ExecutionContext: ExecServer,
			Parameters: objectSchema(map[string]interface{}{
				"limit": numberProp("Maximum number of entries (default 10)"),
			}),
		},
		{
			Name:             "submit_contact_form",
			Description:      "Submit a contact message on the visitor's behalf. Not safely retryable.",
			ExecutionContext: ExecServer,
			Parameters: objectSchema(map[string]interface{}{
				"name":    stringProp("Sender name"),
				"email":   stringProp("Sender email address"),
				"message": stringProp("Message body"),
				"subject": stringProp("Optional subject line"),
			}, "name", "email", "message"),
		},
		{
			Name:             "process_uploaded_file",
			Description:      "Analyze an uploaded document and return its text statistics. Requires premium access.",
			ExecutionContext: ExecServer,
			Parameters: objectSchema(map[string]interface{}{
				"fileId":       stringProp("Identifier of the uploaded file"),
				"analysisType": stringProp("Analysis to run: stats or preview (default stats)"),
			}, "fileId"),
		},
	}
}
