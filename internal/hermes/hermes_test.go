package hermes

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func (m *mockClient) Close() {}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "macmatch.profile.u-1.imported", SubjectProfileImported("u-1"))
	assert.Equal(t, "macmatch.profile.u-1.deleted", SubjectProfileDeleted("u-1"))
	assert.Equal(t, "macmatch.recommendation.r-9.computed", SubjectRecommendationComputed("r-9"))
	assert.Equal(t, "macmatch.recommendation.r-9.unmatched", SubjectRecommendationUnmatched("r-9"))
}

func TestSubjects_EscapeUserID(t *testing.T) {
	assert.Equal(t, "macmatch.profile.jane%2Edoe@example%2Ecom.imported", SubjectProfileImported("jane.doe@example.com"))
	assert.Equal(t, "macmatch.profile.a%2A%3E%20b%25.deleted", SubjectProfileDeleted("a*> b%"))
	assert.Equal(t, "macmatch.profile._.imported", SubjectProfileImported(""))

	for _, id := range []string{"jane.doe@example.com", "a b", "x*", "y>", "tab\tid"} {
		tokens := strings.Split(SubjectProfileImported(id), ".")
		assert.Len(t, tokens, 4, id)
		assert.NotContains(t, tokens[2], "*")
		assert.NotContains(t, tokens[2], ">")
		assert.NotContains(t, tokens[2], " ")
	}
	assert.NotEqual(t, SubjectProfileImported("a.b"), SubjectProfileImported("a%2Eb"))
}

func TestSubjectsCoveredByStream(t *testing.T) {
	subjects := []string{
		SubjectProfileImported("a"),
		SubjectProfileDeleted("a"),
		SubjectRecommendationComputed("b"),
		SubjectRecommendationUnmatched("b"),
	}
	for _, s := range subjects {
		covered := false
		for _, pattern := range StreamSubjects {
			if strings.HasPrefix(s, strings.TrimSuffix(pattern, ">")) {
				covered = true
			}
		}
		assert.True(t, covered, s)
	}

	_, err := time.ParseDuration(StreamMaxAge)
	assert.NoError(t, err)
}

func TestEmit(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := &mockClient{}
	evt := ProfileImportedEvent{UserID: "u-1", Source: "csv"}
	c.On("Publish", "macmatch.profile.u-1.imported", evt).Return(nil).Once()
	c.On("Publish", "macmatch.profile.u-2.imported", mock.Anything).Return(errors.New("nats down")).Once()

	Emit(c, logger, SubjectProfileImported("u-1"), evt)
	Emit(c, logger, SubjectProfileImported("u-2"), evt)

	c.AssertExpectations(t)
	assert.Contains(t, buf.String(), "event publish failed")
	assert.Contains(t, buf.String(), "nats down")
}

func TestEmit_NilClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.NotPanics(t, func() {
		Emit(nil, logger, SubjectProfileDeleted("x"), ProfileDeletedEvent{UserID: "x"})
	})
}
