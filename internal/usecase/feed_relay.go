package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"page-relay/internal/domain/failure"
	"page-relay/internal/domain/model"
	"page-relay/internal/domain/ports"
)

const (
	DeletionNotice     = "🗑️ A post was deleted from the Facebook page."
	TitleNewPost       = "📢 New Facebook Post"
	TitlePostUpdated   = "✏️ Post Updated"
	PlaceholderMessage = "No text content"
	FooterText         = "Facebook Page Update"

	ColorAdd    = 0x1877f2 // Facebook blue
	ColorUpdate = 0xffa500 // orange

	videoFieldName  = "🎥 Video"
	videoFieldValue = "This post contains a video. Click the link above to view."
	albumFieldName  = "🖼️ Photo Album"
)

// FeedRelay turns page feed changes into chat notifications.
type FeedRelay struct {
	posts    ports.PostProvider
	notifier ports.Notifier
	metrics  ports.Metrics
	logger   ports.Logger
}

// NewFeedRelay constructs a FeedRelay use case.
func NewFeedRelay(posts ports.PostProvider, notifier ports.Notifier, metrics ports.Metrics, logger ports.Logger) *FeedRelay {
	return &FeedRelay{
		posts:    posts,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// Process handles every feed change of event, one after another in arrival order.
// Only envelope problems are returned as errors; per-change failures are reported
// in the results and never abort the batch.
func (r *FeedRelay) Process(ctx context.Context, event model.PageEvent) ([]model.ChangeResult, error) {
	if event.Object != model.ObjectPage {
		return nil, failure.UnknownObject(event.Object)
	}
	if event.Entries == nil {
		return nil, failure.Validation(nil, "page event has no entry list")
	}

	start := time.Now()
	var results []model.ChangeResult
	for _, entry := range event.Entries {
		for _, change := range entry.Changes {
			if change.Field != model.FieldFeed {
				continue
			}

			var feed model.FeedChange
			if err := json.Unmarshal(change.Value, &feed); err != nil {
				result := model.ChangeResult{
					Outcome: model.OutcomeRejected,
					Err:     failure.Validation(err, "decode feed change"),
				}
				r.logger.Warn(ctx, "skipping undecodable feed change", "page_id", entry.ID, "error", err)
				r.observe(result)
				results = append(results, result)
				continue
			}

			results = append(results, r.HandleChange(ctx, feed))
		}
	}

	r.logger.Info(ctx, "page event processed",
		"entries", len(event.Entries),
		"feed_changes", len(results),
		"duration", time.Since(start))
	return results, nil
}

// HandleChange relays a single feed change. Errors are logged and folded into the
// returned result.
func (r *FeedRelay) HandleChange(ctx context.Context, change model.FeedChange) model.ChangeResult {
	result := model.ChangeResult{PostID: change.PostID, Verb: change.Verb}

	var notification model.Notification
	if change.Verb.IsRemoval() {
		notification = model.Notification{Content: DeletionNotice}
	} else {
		post, err := r.posts.GetPost(ctx, change.PostID)
		if err != nil {
			result.Outcome = model.OutcomeEnrichmentFailed
			result.Err = failure.Enrichment(err, change.PostID)
			r.logFailure(ctx, "failed to fetch post details", result, err)
			r.observe(result)
			return result
		}
		notification = buildNotification(change.Verb, post)
	}

	if err := r.notifier.Send(ctx, notification); err != nil {
		result.Outcome = model.OutcomeDeliveryFailed
		result.Err = failure.Delivery(err)
		r.logFailure(ctx, "failed to send notification", result, err)
		r.metrics.ObserveDelivery(false)
		r.observe(result)
		return result
	}

	result.Outcome = model.OutcomeNotified
	r.metrics.ObserveDelivery(true)
	r.observe(result)
	return result
}

func (r *FeedRelay) observe(result model.ChangeResult) {
	r.metrics.ObserveChange(result.Verb, result.Outcome)
}

func (r *FeedRelay) logFailure(ctx context.Context, msg string, result model.ChangeResult, err error) {
	r.logger.Error(ctx, msg,
		"post_id", result.PostID,
		"verb", string(result.Verb),
		"text_code", failure.TextCode(result.Err),
		"error", err)
}

func buildNotification(verb model.FeedVerb, post *model.Post) model.Notification {
	embed := model.Embed{
		Title:       TitlePostUpdated,
		Description: post.Message,
		URL:         post.PermalinkURL,
		Color:       ColorUpdate,
		Timestamp:   post.CreatedTime,
		Footer:      FooterText,
		ImageURL:    post.FullPicture,
	}
	if verb.IsAdd() {
		embed.Title = TitleNewPost
		embed.Color = ColorAdd
	}
	if embed.Description == "" {
		embed.Description = PlaceholderMessage
	}

	if field, ok := attachmentField(post.Attachments); ok {
		embed.Fields = append(embed.Fields, field)
	}

	return model.Notification{Embeds: []model.Embed{embed}}
}

// attachmentField describes the first attachment only.
func attachmentField(attachments []model.Attachment) (model.NotificationField, bool) {
	if len(attachments) == 0 {
		return model.NotificationField{}, false
	}

	first := attachments[0]
	switch first.Type {
	case model.AttachmentInlineVideo:
		return model.NotificationField{Name: videoFieldName, Value: videoFieldValue}, true
	case model.AttachmentAlbum:
		count := "multiple"
		if first.MediaCount > 0 {
			count = strconv.Itoa(first.MediaCount)
		}
		return model.NotificationField{
			Name:  albumFieldName,
			Value: fmt.Sprintf("This post contains %s photos.", count),
		}, true
	default:
		return model.NotificationField{}, false
	}
}
