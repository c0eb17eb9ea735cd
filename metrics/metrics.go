// Package metrics collects and exposes Prometheus metrics for the forum.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements forum.Recorder on top of Prometheus counters.
type Collector struct {
	questionsCreated prometheus.Counter
	commentsAdded    prometheus.Counter
	likes            *prometheus.CounterVec
	answersAccepted  *prometheus.CounterVec
	authAttempts     *prometheus.CounterVec
}

// NewCollector builds a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		questionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academicoqa_questions_created_total",
			Help: "Questions created.",
		}),
		commentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academicoqa_comments_added_total",
			Help: "Comments added to questions.",
		}),
		likes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academicoqa_like_toggles_total",
			Help: "Like toggles by target and direction.",
		}, []string{"target", "direction"}),
		answersAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academicoqa_answer_accept_toggles_total",
			Help: "Accepted answer toggles by resulting state.",
		}, []string{"accepted"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academicoqa_auth_attempts_total",
			Help: "Login and register attempts by outcome.",
		}, []string{"op", "result"}),
	}

	reg.MustRegister(
		c.questionsCreated,
		c.commentsAdded,
		c.likes,
		c.answersAccepted,
		c.authAttempts,
	)
	return c
}

func (c *Collector) RecordQuestionCreated() {
	c.questionsCreated.Inc()
}

func (c *Collector) RecordCommentAdded() {
	c.commentsAdded.Inc()
}

func (c *Collector) RecordLike(target string, liked bool) {
	direction := "unlike"
	if liked {
		direction = "like"
	}
	c.likes.WithLabelValues(target, direction).Inc()
}

func (c *Collector) RecordAnswerAccepted(accepted bool) {
	c.answersAccepted.WithLabelValues(strconv.FormatBool(accepted)).Inc()
}

func (c *Collector) RecordAuthAttempt(op string, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	c.authAttempts.WithLabelValues(op, result).Inc()
}

// Handler serves the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
