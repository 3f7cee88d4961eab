package handlers

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arvell/portico/pkg/accessgate"
	"github.com/arvell/portico/pkg/dispatch"
)

// processUploadedFile analyzes an uploaded document. Premium only; the
// coarse gate result is re-checked here.
func (h *handlerSet) processUploadedFile(ctx context.Context, execCtx dispatch.ExecutionContext, args map[string]interface{}) (interface{}, error) {
	if err := dispatch.RequirePremium(execCtx, "file processing"); err != nil {
		return nil, err
	}

	fileID := stringArg(args, "fileId")
	if fileID == "" {
		return nil, fmt.Errorf("fileId is required")
	}
	analysisType := stringArg(args, "analysisType")
	if analysisType == "" {
		analysisType = "stats"
	}

	file, err := h.deps.Files.Get(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	text := string(file.Content)
	out := map[string]interface{}{
		"fileId":       file.ID,
		"name":         file.Name,
		"mime":         file.MIME,
		"sizeBytes":    len(file.Content),
		"analysisType": analysisType,
	}

	switch analysisType {
	case "stats":
		out["words"] = len(strings.Fields(text))
		out["lines"] = strings.Count(text, "\n") + 1
		out["characters"] = utf8.RuneCountInString(text)
	case "preview":
		const previewLen = 500
		if len(text) > previewLen {
			text = text[:previewLen]
		}
		out["preview"] = text
	default:
		return nil, fmt.Errorf("unknown analysis type: %s", analysisType)
	}

	if h.deps.Usage != nil && execCtx.ReflinkID != "" {
		ev := accessgate.UsageEvent{
			Type:     accessgate.UsageLLMRequest,
			Tokens:   int64(len(file.Content) / 4),
			Endpoint: "process_uploaded_file",
		}
		if err := h.deps.Usage.TrackUsage(ctx, execCtx.ReflinkID, ev); err != nil {
			h.deps.Logger.Warn().
				Err(err).
				Str("reflink_id", execCtx.ReflinkID).
				Msg("Failed to track file processing usage")
		}
	}

	return out, nil
}
