package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLLM(t *testing.T) {
	ok := testutil.ToFloat64(llmRequestsTotal.WithLabelValues("tutor", "success"))
	failed := testutil.ToFloat64(llmRequestsTotal.WithLabelValues("tutor", "error"))
	in := testutil.ToFloat64(llmTokensTotal.WithLabelValues("input"))

	ObserveLLM("tutor", true, 200*time.Millisecond, 120, 30)
	ObserveLLM("tutor", false, time.Second, 0, 0)

	assert.Equal(t, ok+1, testutil.ToFloat64(llmRequestsTotal.WithLabelValues("tutor", "success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(llmRequestsTotal.WithLabelValues("tutor", "error")))
	assert.Equal(t, in+120, testutil.ToFloat64(llmTokensTotal.WithLabelValues("input")))
}

func TestObserveAnswerAndCompletion(t *testing.T) {
	right := testutil.ToFloat64(answersTotal.WithLabelValues("correct"))
	wrong := testutil.ToFloat64(answersTotal.WithLabelValues("wrong"))
	done := testutil.ToFloat64(questsCompletedTotal)

	ObserveAnswer(true)
	ObserveAnswer(false)
	ObserveAnswer(false)
	QuestCompleted()

	assert.Equal(t, right+1, testutil.ToFloat64(answersTotal.WithLabelValues("correct")))
	assert.Equal(t, wrong+2, testutil.ToFloat64(answersTotal.WithLabelValues("wrong")))
	assert.Equal(t, done+1, testutil.ToFloat64(questsCompletedTotal))
}
