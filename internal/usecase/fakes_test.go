package usecase

import (
	"context"
	"errors"

	"page-relay/internal/domain/model"
	"page-relay/internal/domain/ports"
)

type fakePosts struct {
	posts map[string]*model.Post
	err   error
	calls []string
}

func (f *fakePosts) GetPost(_ context.Context, postID string) (*model.Post, error) {
	f.calls = append(f.calls, postID)
	if f.err != nil {
		return nil, f.err
	}
	post, ok := f.posts[postID]
	if !ok {
		return nil, errors.New("post not found")
	}
	return post, nil
}

type fakeNotifier struct {
	sent []model.Notification
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, n model.Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

type changeKey struct {
	verb    model.FeedVerb
	outcome model.ChangeOutcome
}

type fakeMetrics struct {
	changes    map[changeKey]int
	deliveries map[bool]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{changes: map[changeKey]int{}, deliveries: map[bool]int{}}
}

func (f *fakeMetrics) ObserveChange(verb model.FeedVerb, outcome model.ChangeOutcome) {
	f.changes[changeKey{verb, outcome}]++
}

func (f *fakeMetrics) ObserveDelivery(ok bool) { f.deliveries[ok]++ }

type logEntry struct {
	level string
	msg   string
}

type fakeLogger struct {
	entries []logEntry
}

func (f *fakeLogger) Info(_ context.Context, msg string, _ ...any) {
	f.entries = append(f.entries, logEntry{"info", msg})
}

func (f *fakeLogger) Warn(_ context.Context, msg string, _ ...any) {
	f.entries = append(f.entries, logEntry{"warn", msg})
}

func (f *fakeLogger) Error(_ context.Context, msg string, _ ...any) {
	f.entries = append(f.entries, logEntry{"error", msg})
}

func (f *fakeLogger) count(level string) int {
	n := 0
	for _, e := range f.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

type fakeInspector struct {
	identity *ports.PageIdentity
	err      error
}

func (f *fakeInspector) InspectToken(context.Context) (*ports.PageIdentity, error) {
	return f.identity, f.err
}
