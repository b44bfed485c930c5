package chatview

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybe-social/vybe/internal/domain"
)

func strptr(s string) *string { return &s }

func newTestView() (*View, uuid.UUID, uuid.UUID) {
	self := uuid.New()
	other := uuid.New()
	v := NewView(self)
	v.Open(other, nil)
	return v, self, other
}

func msgFrom(sender uuid.UUID, body string) domain.Message {
	return domain.Message{
		ID:       uuid.New(),
		SenderID: sender,
		Body:     strptr(body),
	}
}

func TestApplyNewFromOtherParticipant(t *testing.T) {
	v, _, other := newTestView()

	v.ApplyNew(msgFrom(other, "hey"))

	msgs := v.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "hey", *msgs[0].Body)
}

func TestApplyNewFromUnrelatedUserIsDropped(t *testing.T) {
	v, _, _ := newTestView()

	v.ApplyNew(msgFrom(uuid.New(), "wrong room"))

	assert.Empty(t, v.Messages())
}

func TestApplyNewDuplicateIDIgnored(t *testing.T) {
	v, _, other := newTestView()

	msg := msgFrom(other, "once")
	v.ApplyNew(msg)
	v.ApplyNew(msg)

	assert.Len(t, v.Messages(), 1)
}

func TestAppendSentThenEchoStaysSingle(t *testing.T) {
	v, self, _ := newTestView()

	msg := msgFrom(self, "mine")
	v.AppendSent(msg)
	v.ApplyNew(msg)

	assert.Len(t, v.Messages(), 1)
}

func TestApplyUpdatedReplacesBodyInPlace(t *testing.T) {
	v, _, other := newTestView()

	first := msgFrom(other, "first")
	second := msgFrom(other, "second")
	v.ApplyNew(first)
	v.ApplyNew(second)

	edited := first
	edited.Body = strptr("edited")
	v.ApplyUpdated(edited)

	msgs := v.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "edited", *msgs[0].Body)
	assert.Equal(t, first.ID, msgs[0].ID)
	assert.Equal(t, "second", *msgs[1].Body)
}

func TestApplyUpdatedUnknownMessageIgnored(t *testing.T) {
	v, _, other := newTestView()

	v.ApplyNew(msgFrom(other, "kept"))
	v.ApplyUpdated(msgFrom(other, "never seen"))

	msgs := v.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "kept", *msgs[0].Body)
}

func TestApplyDeletedRemovesAndIsIdempotent(t *testing.T) {
	v, _, other := newTestView()

	msg := msgFrom(other, "doomed")
	keeper := msgFrom(other, "keeper")
	v.ApplyNew(msg)
	v.ApplyNew(keeper)

	v.ApplyDeleted(msg.ID)
	v.ApplyDeleted(msg.ID)

	msgs := v.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, keeper.ID, msgs[0].ID)
}

func TestOpenReplacesHistory(t *testing.T) {
	v, _, other := newTestView()
	v.ApplyNew(msgFrom(other, "stale"))

	newOther := uuid.New()
	history := []domain.Message{msgFrom(newOther, "fresh")}
	v.Open(newOther, history)

	msgs := v.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "fresh", *msgs[0].Body)
	assert.Equal(t, newOther, v.Other())

	// events for the new conversation land, old participant is dropped
	v.ApplyNew(msgFrom(other, "late echo"))
	assert.Len(t, v.Messages(), 1)
}

func TestMessagesReturnsCopy(t *testing.T) {
	v, _, other := newTestView()
	v.ApplyNew(msgFrom(other, "original"))

	msgs := v.Messages()
	msgs[0].Body = strptr("mutated")

	assert.Equal(t, "original", *v.Messages()[0].Body)
}
