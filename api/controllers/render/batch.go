package render_controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sunthewhat/easy-cert-render/common/util"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/payload"
	"github.com/sunthewhat/easy-cert-render/type/response"
)

func (ctrl *RenderController) Batch(c *fiber.Ctx) error {
	var body payload.BatchRenderPayload
	if err := c.BodyParser(&body); err != nil {
		slog.Warn("Render Batch invalid request body", "error", err)
		return response.SendFailed(c, "Invalid request body")
	}

	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, "Invalid request", util.GetValidationErrors(err))
	}
	if problems := duplicateItemIDs(body.Items); len(problems) > 0 {
		return response.SendFailed(c, "Invalid request", problems)
	}

	items := make([]renderer.BatchItem, len(body.Items))
	for i, item := range body.Items {
		items[i] = renderer.BatchItem{ID: item.ID, Config: item.Template, Context: item.Context}
	}

	batchID := uuid.NewString()
	result := ctrl.pipeline.GenerateBatch(c.UserContext(), items)
	summary := ctrl.storeBatch(c.UserContext(), batchID, util.BatchPrefix+batchID, result, body.Archive)

	slog.Info("Render Batch completed",
		"batch_id", batchID,
		"succeeded", len(summary.Succeeded),
		"failed", len(summary.Failed))

	return response.SendSuccess(c, "Batch rendered", summary)
}

// storeBatch uploads every rendered artifact under prefix. An upload failure
// turns that item into a failure of the summary.
func (ctrl *RenderController) storeBatch(ctx context.Context, batchID string, prefix string, result *renderer.BatchResult, archive bool) *response.BatchSummary {
	summary := &response.BatchSummary{
		BatchID:   batchID,
		Succeeded: []response.RenderedArtifact{},
		Failed:    []response.FailedArtifact{},
	}

	var entries []util.ArchiveEntry
	used := make(map[string]bool, len(result.Succeeded))
	for _, success := range result.Succeeded {
		filename := fmt.Sprintf("%s.%s", objectName(used, success.ItemID), extension(success.Result.MimeType))
		url, err := ctrl.store.Put(ctx, prefix+"/"+filename, success.Result.Bytes, success.Result.MimeType)
		if err != nil {
			slog.Error("Render Upload failed", "error", err, "item_id", success.ItemID)
			summary.Failed = append(summary.Failed, response.FailedArtifact{
				ID:       success.ItemID,
				Error:    fmt.Sprintf("failed to store certificate: %v", err),
				Attempts: success.Result.Attempts,
			})
			continue
		}

		summary.Succeeded = append(summary.Succeeded, response.RenderedArtifact{
			ID:           success.ItemID,
			URL:          url,
			Backend:      success.Result.Backend,
			MimeType:     success.Result.MimeType,
			Attempts:     success.Result.Attempts,
			Degradations: success.Result.Degradations,
		})
		entries = append(entries, util.ArchiveEntry{Name: "certificate_" + filename, Data: success.Result.Bytes})
	}

	for _, failure := range result.Failed {
		summary.Failed = append(summary.Failed, failedArtifact(failure))
	}

	if archive && len(entries) > 0 {
		zipBytes, err := util.CreateZipArchive(entries)
		if err != nil {
			slog.Error("Render Archive failed", "error", err, "batch_id", batchID)
			return summary
		}
		url, err := ctrl.store.Put(ctx, prefix+"/certificates.zip", zipBytes, "application/zip")
		if err != nil {
			slog.Error("Render Archive upload failed", "error", err, "batch_id", batchID)
			return summary
		}
		summary.ArchiveURL = url
	}

	return summary
}

// objectName returns a key segment for id that no earlier item of the batch
// has taken.
func objectName(used map[string]bool, id string) string {
	base := util.SafeObjectName(id)
	name := base
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	used[name] = true
	return name
}

func duplicateItemIDs(items []payload.BatchRenderItem) []string {
	var problems []string
	seen := make(map[string]int, len(items))
	for i, item := range items {
		if item.ID == "" {
			continue
		}
		if first, ok := seen[item.ID]; ok {
			problems = append(problems, fmt.Sprintf("BatchRenderPayload.Items[%d].ID duplicates Items[%d].ID", i, first))
			continue
		}
		seen[item.ID] = i
	}
	return problems
}

func failedArtifact(failure renderer.BatchFailure) response.FailedArtifact {
	artifact := response.FailedArtifact{
		ID:    failure.Item.ID,
		Error: failure.Err.Error(),
	}

	var configErr *renderer.ConfigInvalidError
	if errors.As(failure.Err, &configErr) {
		artifact.Problems = configErr.Problems
	}

	var exhausted *renderer.ChainExhaustedError
	if errors.As(failure.Err, &exhausted) {
		artifact.Attempts = exhausted.Attempts
	}
	return artifact
}
