package tourtests

import (
	"net/http"
	"strings"

	"github.com/odysseywalk/tour-contract-tests/boundary"
	"github.com/odysseywalk/tour-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

const minAnswerLength = 20

// qaSession is the tour context that questions are asked about.
type qaSession struct {
	sessionID, poiID, poiScript, intro string
}

// placeholderSession is used when no tour could be generated to ask questions about.
var placeholderSession = qaSession{
	sessionID: "test-session",
	poiID:     "poi-1",
	poiScript: "This is a test location.",
	intro:     "Welcome to the tour.",
}

func DoQATests(t *T) {
	session := newQASession(t)

	t.Run("valid question", func(t *T) {
		resp := t.QA(servicedef.QAParams{
			SessionID:    session.sessionID,
			POIID:        session.poiID,
			QuestionText: "What makes this place special?",
			Context: &servicedef.QAContext{
				CurrentPOIScript: session.poiScript,
				TourIntro:        session.intro,
				Theme:            "history",
			},
		})
		t.RequireAvailable(resp, dependencyQA)
		t.RequireStatus(resp, http.StatusOK)
		answer := t.RequireProperty(resp, "answerText").String()
		assert.Greater(t, len(answer), minAnswerLength, "answer is too short: %q", answer)
	})

	t.Run("question without context", func(t *T) {
		resp := t.QA(servicedef.QAParams{QuestionText: "What is this?"})
		t.RequireAvailable(resp, dependencyQA)
		t.RequireStatus(resp, http.StatusOK)
		t.RequireProperty(resp, "answerText")
	})

	t.Run("empty question", func(t *T) {
		resp := t.QA(session.question("", &servicedef.QAContext{}))
		t.RequireAvailable(resp, dependencyQA)
		t.AcceptUnderdetermined(resp, http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})

	t.Run("very long question", func(t *T) {
		question := "What is " + strings.Repeat("very interesting about ", 50) + "this place?"
		resp := t.QA(session.question(question, &servicedef.QAContext{CurrentPOIScript: session.poiScript}))
		t.RequireAvailable(resp, dependencyQA)
		t.ExpectStatusOrWarn(resp, http.StatusOK)
	})

	t.Run("empty context is handled gracefully", func(t *T) {
		resp := t.QA(session.question("Tell me more", &servicedef.QAContext{}))
		t.RequireAvailable(resp, dependencyQA)
		t.ExpectStatusOrWarn(resp, http.StatusOK)
	})

	t.Run("unknown session", func(t *T) {
		s := session
		s.sessionID = "invalid-session-12345"
		resp := t.QA(s.question("Test", &servicedef.QAContext{}))
		t.RequireAvailable(resp, dependencyQA)
		t.AcceptUnderdetermined(resp, http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})

	t.Run("special characters in question", func(t *T) {
		resp := t.QA(session.question("What's @#$% special?", &servicedef.QAContext{CurrentPOIScript: session.poiScript}))
		t.RequireAvailable(resp, dependencyQA)
		t.ExpectStatusOrWarn(resp, http.StatusOK)
	})

	t.Run("unicode question", func(t *T) {
		resp := t.QA(session.question(boundary.UnicodeText+"?", &servicedef.QAContext{CurrentPOIScript: session.poiScript}))
		t.RequireAvailable(resp, dependencyQA)
		t.ExpectStatusOrWarn(resp, http.StatusOK)
	})
}

// newQASession generates a tour so that questions can refer to a real session and stop. If
// that is not possible, the questions are asked about a placeholder instead; the tour
// generation tests report why.
func newQASession(t *T) qaSession {
	resp := t.GenerateTour(tourFrom(sanFrancisco, "SF", "history", 25))
	if !resp.StatusIn(http.StatusOK) || resp.Get("pois.#").Int() == 0 {
		t.Debug("could not generate a tour for Q&A context, using a placeholder session")
		return placeholderSession
	}
	return qaSession{
		sessionID: resp.Get("sessionId").String(),
		poiID:     resp.Get("pois.0.poiId").String(),
		poiScript: resp.Get("pois.0.script").String(),
		intro:     resp.Get("tourPlan.intro").String(),
	}
}

func (s qaSession) question(text string, context *servicedef.QAContext) servicedef.QAParams {
	return servicedef.QAParams{
		SessionID:    s.sessionID,
		POIID:        s.poiID,
		QuestionText: text,
		Context:      context,
	}
}
