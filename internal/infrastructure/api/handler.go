package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"pulse-core-targeting-api/internal/application"
	"pulse-core-targeting-api/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// The handler depends on narrow views of the application services so tests
// can stand in lightweight fakes.

// PersonResolver finds or creates the person behind an email.
type PersonResolver interface {
	FindOrCreateByEmail(ctx context.Context, email string) (*domain.Person, error)
}

// ProfileProvider serves the widget-facing company profile.
type ProfileProvider interface {
	Profile(ctx context.Context, companyID string) (*domain.Profile, error)
}

// QuestionFlow walks, probes and prunes a person's question sequence.
type QuestionFlow interface {
	NextQuestion(ctx context.Context, in application.NextQuestionInput) (*domain.FormattedQuestion, error)
	HasNextQuestion(ctx context.Context, companyID, personID, path string) (bool, error)
	PruneAnswers(ctx context.Context, companyID, personID, path string) error
}

// AnswerSubmitter records widget answer submissions.
type AnswerSubmitter interface {
	SubmitAnswer(ctx context.Context, in application.SubmitAnswerInput) error
}

// AdFlow serves ads and tracks interactions with them.
type AdFlow interface {
	NextAd(ctx context.Context, companyID, personID, path string) (*domain.AdView, error)
	RecordStatus(ctx context.Context, companyID, personID, adID string, status domain.AdStatus) error
}

// EventRecorder counts daily widget funnel outcomes.
type EventRecorder interface {
	RecordEvent(ctx context.Context, companyID, pathID string, status domain.AnalyticsStatus, personID string) error
}

// WidgetHandler owns every route the embedded widget calls.
type WidgetHandler struct {
	people    PersonResolver
	companies ProfileProvider
	questions QuestionFlow
	answers   AnswerSubmitter
	ads       AdFlow
	analytics EventRecorder
	logger    zerolog.Logger
}

// NewWidgetHandler creates a new widget handler
func NewWidgetHandler(
	people PersonResolver,
	companies ProfileProvider,
	questions QuestionFlow,
	answers AnswerSubmitter,
	ads AdFlow,
	analytics EventRecorder,
	logger zerolog.Logger,
) *WidgetHandler {
	return &WidgetHandler{
		people:    people,
		companies: companies,
		questions: questions,
		answers:   answers,
		ads:       ads,
		analytics: analytics,
		logger:    logger,
	}
}

// Register mounts the widget routes. The session middleware has already
// bound a company id to the context by the time these run.
func (h *WidgetHandler) Register(r chi.Router) {
	r.Get("/ad", h.GetAd)
	r.Post("/ad/status", h.PostAdStatus)
	r.Post("/analytics", h.PostAnalytics)
	r.Post("/answer", h.PostAnswer)
	r.Get("/data", h.GetData)
	r.Get("/question", h.GetQuestion)
	r.Get("/question/check", h.GetQuestionCheck)
	r.Post("/question/delete", h.PostQuestionDelete)
}

// resolvePerson turns the email query parameter into a person, creating the
// document on first contact.
func (h *WidgetHandler) resolvePerson(r *http.Request) (*domain.Person, error) {
	email := r.URL.Query().Get("email")
	if email == "" {
		return nil, domain.ErrBadRequest
	}
	return h.people.FindOrCreateByEmail(r.Context(), email)
}

// GetAd returns the next ad the person may see on the path, or null.
func (h *WidgetHandler) GetAd(w http.ResponseWriter, r *http.Request) {
	companyID := domain.CompanyIDFromContext(r.Context())

	person, err := h.resolvePerson(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ad, err := h.ads.NextAd(r.Context(), companyID, person.ID, r.URL.Query().Get("path"))
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to pick next ad")
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"ad": ad})
}

type adStatusRequest struct {
	AdID   string `json:"ad_id"`
	Status string `json:"status"`
}

// PostAdStatus records how the person interacted with an ad.
func (h *WidgetHandler) PostAdStatus(w http.ResponseWriter, r *http.Request) {
	companyID := domain.CompanyIDFromContext(r.Context())

	var req adStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrBadRequest)
		return
	}

	person, err := h.resolvePerson(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.ads.RecordStatus(r.Context(), companyID, person.ID, req.AdID, domain.AdStatus(req.Status)); err != nil {
		h.logger.Warn().Err(err).Str("ad_id", req.AdID).Msg("failed to record ad status")
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

type analyticsRequest struct {
	IntegrationPathID string `json:"integration_path_id"`
	Status            string `json:"status"`
}

// PostAnalytics counts a widget funnel outcome for today.
func (h *WidgetHandler) PostAnalytics(w http.ResponseWriter, r *http.Request) {
	companyID := domain.CompanyIDFromContext(r.Context())

	var req analyticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrBadRequest)
		return
	}

	person, err := h.resolvePerson(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.analytics.RecordEvent(r.Context(), companyID, req.IntegrationPathID, domain.AnalyticsStatus(req.Status), person.ID); err != nil {
		h.logger.Warn().Err(err).Str("integration_path_id", req.IntegrationPathID).Msg("failed to record analytics event")
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

type answerRequest struct {
	QuestionID string          `json:"question_id"`
	Answer     json.RawMessage `json:"answer_given_to_question"`
}

// PostAnswer records an answer submission. The answer field is either a
// string or, for multiple-choice questions, an array of strings.
func (h *WidgetHandler) PostAnswer(w http.ResponseWriter, r *http.Request) {
	companyID := domain.CompanyIDFromContext(r.Context())

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrBadRequest)
		return
	}

	input := application.SubmitAnswerInput{
		CompanyID:  companyID,
		QuestionID: req.QuestionID,
	}
	var single string
	var many []string
	switch {
	case json.Unmarshal(req.Answer, &single) == nil:
		input.Answer = single
	case json.Unmarshal(req.Answer, &many) == nil:
		input.Answers = many
		input.Multiple = true
	default:
		writeError(w, domain.ErrBadRequest)
		return
	}

	person, err := h.resolvePerson(r)
	if err != nil {
		writeError(w, err)
		return
	}
	input.PersonID = person.ID

	if err := h.answers.SubmitAnswer(r.Context(), input); err != nil {
		h.logger.Warn().Err(err).Str("question_id", req.QuestionID).Msg("failed to submit answer")
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// GetData returns the widget-facing profile of the session's company.
func (h *WidgetHandler) GetData(w http.ResponseWriter, r *http.Request) {
	companyID := domain.CompanyIDFromContext(r.Context())

	profile, err := h.companies.Profile(r.Context(), companyID)
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to load company profile")
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"company": profile})
}

// GetQuestion returns the next unanswered question for the person on the
// path, or null when they are fully profiled.
func (h *WidgetHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	companyID := domain.CompanyIDFromContext(r.Context())

	person, err := h.resolvePerson(r)
	if err != nil {
		writeError(w, err)
		return
	}

	input := application.NextQuestionInput{
		CompanyID: companyID,
		PersonID:  person.ID,
		Path:      r.URL.Query().Get("path"),
	}
	if raw := r.URL.Query().Get("last_question"); raw != "" {
		last, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, domain.ErrBadRequest)
			return
		}
		input.LastQuestionNumber = &last
	}

	question, err := h.questions.NextQuestion(r.Context(), input)
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to pick next question")
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"question": question})
}

// GetQuestionCheck reports whether the path would serve a question. Without
// an email it only probes for any active question, which is what the widget
// does before prompting for one.
func (h *WidgetHandler) GetQuestionCheck(w http.ResponseWriter, r *http.Request) {
	companyID := domain.CompanyIDFromContext(r.Context())
	path := r.URL.Query().Get("path")

	personID := ""
	if r.URL.Query().Get("email") != "" {
		person, err := h.resolvePerson(r)
		if err != nil {
			writeError(w, err)
			return
		}
		personID = person.ID
	}

	result, err := h.questions.HasNextQuestion(r.Context(), companyID, personID, path)
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to check next question")
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"result": result})
}

type questionDeleteRequest struct {
	Path string `json:"path"`
}

// PostQuestionDelete withdraws the person's answers to the company's
// questions on the path.
func (h *WidgetHandler) PostQuestionDelete(w http.ResponseWriter, r *http.Request) {
	companyID := domain.CompanyIDFromContext(r.Context())

	var req questionDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrBadRequest)
		return
	}

	person, err := h.resolvePerson(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.questions.PruneAnswers(r.Context(), companyID, person.ID, req.Path); err != nil {
		h.logger.Warn().Err(err).Msg("failed to prune answers")
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
