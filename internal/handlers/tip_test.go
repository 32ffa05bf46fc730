package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/josetomecore/P6-Quiz/internal/models"
	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuiz(t *testing.T, app *testApp) *models.Quiz {
	t.Helper()
	quiz, err := app.quizzes.CreateQuiz("Capital of Spain", "Madrid")
	require.NoError(t, err)
	return quiz
}

func TestCreateTipAnonymous(t *testing.T) {
	app := newTestApp(t)
	quiz := seedQuiz(t, app)

	w := app.form(http.MethodPost, fmt.Sprintf("/quizzes/%d/tips", quiz.ID), url.Values{"text": {"Starts with M"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/quizzes/%d", quiz.ID), w.Header().Get("Location"))

	stored, err := app.quizzes.GetQuiz(quiz.ID)
	require.NoError(t, err)
	require.Len(t, stored.Tips, 1)
	assert.Zero(t, stored.Tips[0].AuthorID)
	assert.False(t, stored.Tips[0].Accepted)
	assert.Equal(t, []string{"Tip created successfully."}, app.flashes()[session.FlashSuccess])
}

func TestCreateTipUsesSessionAuthorAndReferer(t *testing.T) {
	app := newTestApp(t)
	quiz := seedQuiz(t, app)
	app.user = &services.Identity{ID: 4, Username: "pepe"}

	body := url.Values{"text": {"Ends with d"}}
	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quizzes/%d/tips", quiz.ID), body)
	req.Header.Set("Referer", "/quizzes/1/play")
	w := app.do(req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/quizzes/1/play", w.Header().Get("Location"))

	stored, err := app.quizzes.GetQuiz(quiz.ID)
	require.NoError(t, err)
	require.Len(t, stored.Tips, 1)
	assert.EqualValues(t, 4, stored.Tips[0].AuthorID)
}

func TestCreateTipValidationRedirectsBack(t *testing.T) {
	app := newTestApp(t)
	quiz := seedQuiz(t, app)

	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quizzes/%d/tips", quiz.ID), url.Values{"text": {""}})
	req.Header.Set("Referer", "/quizzes/1")
	w := app.do(req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/quizzes/1", w.Header().Get("Location"))

	assert.Equal(t,
		[]string{"There are errors in the form:", "Text must not be empty."},
		app.flashes()[session.FlashError])
}

func TestTipAuthorFlow(t *testing.T) {
	app := newTestApp(t)
	quiz := seedQuiz(t, app)
	tip, err := app.tips.CreateTip(quiz.ID, 4, "Starts with M")
	require.NoError(t, err)
	tipPath := fmt.Sprintf("/quizzes/%d/tips/%d", quiz.ID, tip.ID)

	app.user = &services.Identity{ID: 4}

	app.get("/quizzes")
	w := app.get(tipPath + "/accept")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/quizzes/%d", quiz.ID), w.Header().Get("Location"))
	stored, err := app.tips.GetTip(tip.ID)
	require.NoError(t, err)
	assert.True(t, stored.Accepted)

	app.get(tipPath + "/edit")
	assert.Equal(t, "tips/edit", app.view.last().name)

	w = app.form(http.MethodPut, tipPath, url.Values{"text": {"Ends with d"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/goback", w.Header().Get("Location"))
	stored, err = app.tips.GetTip(tip.ID)
	require.NoError(t, err)
	assert.False(t, stored.Accepted)
	assert.Equal(t, "Ends with d", stored.Text)

	w = app.get("/goback")
	assert.Equal(t, "/quizzes", w.Header().Get("Location"))

	w = app.form(http.MethodPut, tipPath, url.Values{"text": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "tips/edit", app.view.last().name)

	w = app.do(newRequest(http.MethodDelete, tipPath))
	require.Equal(t, http.StatusFound, w.Code)
	_, err = app.tips.GetTip(tip.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestTipGuardDeniesStrangers(t *testing.T) {
	app := newTestApp(t)
	quiz := seedQuiz(t, app)
	tip, err := app.tips.CreateTip(quiz.ID, 4, "Starts with M")
	require.NoError(t, err)
	tipPath := fmt.Sprintf("/quizzes/%d/tips/%d", quiz.ID, tip.ID)

	app.user = &services.Identity{ID: 5}
	w := app.get(tipPath + "/accept")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(newRequest(http.MethodDelete, tipPath))
	assert.Equal(t, http.StatusForbidden, w.Code)

	stored, err := app.tips.GetTip(tip.ID)
	require.NoError(t, err)
	assert.False(t, stored.Accepted)

	app.user = &services.Identity{ID: 9, IsAdmin: true}
	w = app.get(tipPath + "/accept")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestTipOfAnotherQuizIsNotFound(t *testing.T) {
	app := newTestApp(t)
	quiz := seedQuiz(t, app)
	other, err := app.quizzes.CreateQuiz("Capital of Italy", "Rome")
	require.NoError(t, err)
	tip, err := app.tips.CreateTip(quiz.ID, 0, "hint")
	require.NoError(t, err)
	app.user = &services.Identity{ID: 1, IsAdmin: true}

	w := app.get(fmt.Sprintf("/quizzes/%d/tips/%d/accept", other.ID, tip.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTipIgnoresForeignReferer(t *testing.T) {
	app := newTestApp(t)
	quiz := seedQuiz(t, app)

	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quizzes/%d/tips", quiz.ID), url.Values{"text": {"Starts with M"}})
	req.Header.Set("Referer", "https://evil.test/phish")
	w := app.do(req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/quizzes/%d", quiz.ID), w.Header().Get("Location"))
}

func TestBackTarget(t *testing.T) {
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/fallback"},
		{"/quizzes/1/play", "/quizzes/1/play"},
		{"http://example.com/quizzes/2?answer=x", "/quizzes/2?answer=x"},
		{"http://EXAMPLE.com/quizzes", "/quizzes"},
		{"https://evil.test/quizzes", "/fallback"},
		{"//evil.test/quizzes", "/fallback"},
		{"http://example.com//evil.test", "/fallback"},
		{"javascript:alert(1)", "/fallback"},
		{"quizzes", "/fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.referer, func(t *testing.T) {
			req := newRequest(http.MethodPost, "/quizzes/1/tips")
			req.Header.Set("Referer", tt.referer)
			assert.Equal(t, tt.want, backTarget(req, "/fallback"))
		})
	}
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/quizzes/3", safeRedirect("/quizzes/3", "/goback"))
	assert.Equal(t, "/goback", safeRedirect("https://evil.test", "/goback"))
	assert.Equal(t, "/goback", safeRedirect("//evil.test", "/goback"))
	assert.Equal(t, "/goback", safeRedirect("/\\evil.test", "/goback"))
	assert.Equal(t, "/goback", safeRedirect("", "/goback"))
}
