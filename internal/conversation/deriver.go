// Package conversation turns the flat, append-only chat log into views:
// a buyer's transcript with the admin, and the admin's index of all
// conversations. Functions here are pure and never modify their input.
package conversation

import (
	"slices"

	"digital_market/internal/domain"

	"github.com/samber/lo"
)

// DeriveTranscript returns the exchange between viewer and the privileged
// identity, oldest first. Messages with equal timestamps keep log order.
// An empty viewer, or a viewer equal to privileged, yields an empty transcript.
func DeriveTranscript(messages []domain.ChatMessage, viewer, privileged string) []domain.ChatMessage {
	if viewer == "" || privileged == "" || viewer == privileged {
		return []domain.ChatMessage{}
	}

	transcript := lo.Filter(messages, func(m domain.ChatMessage, _ int) bool {
		return (m.SenderEmail == viewer && m.ConversationWith == privileged) ||
			(m.SenderEmail == privileged && m.ConversationWith == viewer)
	})
	sortBySentAt(transcript)
	return transcript
}

// DeriveConversationIndex groups the log by counterparty and orders the
// conversations by their most recent message, newest first. Records that
// cannot be attributed to a counterparty are skipped.
func DeriveConversationIndex(messages []domain.ChatMessage, privileged string) []domain.ConversationSummary {
	if privileged == "" {
		return []domain.ConversationSummary{}
	}

	attributable := lo.Filter(messages, func(m domain.ChatMessage, _ int) bool {
		_, ok := counterpartyOf(m, privileged)
		return ok
	})
	key := func(m domain.ChatMessage) string {
		who, _ := counterpartyOf(m, privileged)
		return who
	}

	// порядок первого появления нужен для стабильной сортировки при равных временах
	order := lo.Uniq(lo.Map(attributable, func(m domain.ChatMessage, _ int) string { return key(m) }))
	groups := lo.GroupBy(attributable, key)

	summaries := make([]domain.ConversationSummary, 0, len(order))
	for _, who := range order {
		thread := groups[who]
		sortBySentAt(thread)
		summaries = append(summaries, domain.ConversationSummary{
			CounterpartyEmail: who,
			Messages:          thread,
			LastMessage:       thread[len(thread)-1],
		})
	}

	slices.SortStableFunc(summaries, func(a, b domain.ConversationSummary) int {
		return b.LastMessage.Timestamp.Compare(a.LastMessage.Timestamp)
	})
	return summaries
}

func counterpartyOf(m domain.ChatMessage, privileged string) (string, bool) {
	var who string
	switch {
	case m.SenderEmail == privileged:
		who = m.ConversationWith
	case m.ConversationWith == privileged:
		who = m.SenderEmail
	default:
		return "", false
	}
	if who == "" || who == privileged {
		return "", false
	}
	return who, true
}

func sortBySentAt(messages []domain.ChatMessage) {
	slices.SortStableFunc(messages, func(a, b domain.ChatMessage) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}
