// forum/handlers.go
package forum

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
)

const likesKey = "likes"

// QuestionView is a question as one viewer sees it.
type QuestionView struct {
	Question
	ContentHTML string `json:"content_html"`
	Liked       bool   `json:"liked"`
	LastSeenAgo string `json:"last_activity_display"`
}

type CommentView struct {
	Comment
	ContentHTML string `json:"content_html"`
	Liked       bool   `json:"liked"`
	CreatedAgo  string `json:"created_display"`
}

// QuestionsViewData is the body of the question list.
type QuestionsViewData struct {
	Questions []QuestionView `json:"questions"`
	Count     int            `json:"count"`
	Tags      []string       `json:"tags"`
	Filter    FilterConfig   `json:"filter"`
}

// QuestionViewData is the body of a single question page.
type QuestionViewData struct {
	Question  QuestionView  `json:"question"`
	Comments  []CommentView `json:"comments"`
	CanAccept bool          `json:"can_accept"`
}

type HandlersConfig struct {
	Content   *ContentStore
	Directory *Directory
	Sessions  *scs.SessionManager
	Logger    *slog.Logger
	Recorder  Recorder
	AuthDelay time.Duration
	// AuthRateLimit is the number of login/register attempts per minute per client.
	AuthRateLimit int
	Now           func() time.Time
}

type Handlers struct {
	Session *scs.SessionManager

	content   *ContentStore
	dir       *Directory
	logger    *slog.Logger
	recorder  Recorder
	authDelay time.Duration
	limiter   *RateLimiter
	sanitizer *Sanitizer
	now       func() time.Time
}

func NewHandlers(cfg HandlersConfig) *Handlers {
	h := &Handlers{
		Session:   cfg.Sessions,
		content:   cfg.Content,
		dir:       cfg.Directory,
		logger:    cfg.Logger,
		recorder:  cfg.Recorder,
		authDelay: cfg.AuthDelay,
		limiter:   NewRateLimiter(cfg.AuthRateLimit),
		sanitizer: NewSanitizer(),
		now:       cfg.Now,
	}
	if h.Session == nil {
		h.Session = scs.New()
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.recorder == nil {
		h.recorder = nopRecorder{}
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.With(h.limiter.Middleware).Post("/login", h.login)
		r.With(h.limiter.Middleware).Post("/register", h.register)
		r.Post("/logout", h.logout)
		r.Get("/me", h.me)
	})

	r.Route("/api/questions", func(r chi.Router) {
		r.Get("/", h.listQuestions)
		r.With(h.requireIdentity).Post("/", h.createQuestion)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.showQuestion)
			r.Post("/like", h.likeQuestion)
			r.With(h.requireIdentity).Post("/comments", h.createComment)
			r.Post("/comments/{commentID}/like", h.likeComment)
			r.With(h.requireIdentity).Post("/comments/{commentID}/accept", h.acceptAnswer)
		})
	})

	r.Get("/api/tags", h.listTags)
	r.Post("/api/tags/suggest", h.suggestTags)
}

func (h *Handlers) viewerSession(ctx context.Context) *Session {
	return NewSession(ctx, h.dir, ScsStorage{Manager: h.Session},
		WithAuthDelay(h.authDelay),
		WithLogger(h.logger),
		WithSessionRecorder(h.recorder),
	)
}

func (h *Handlers) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.viewerSession(r.Context()).Current()
		if !ok {
			writeError(w, http.StatusUnauthorized, NewUnauthenticatedError())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
	})
}

func (h *Handlers) likes(ctx context.Context) *LikeSet {
	ls := NewLikeSet()
	if data := h.Session.GetBytes(ctx, likesKey); data != nil {
		if err := ls.UnmarshalBinary(data); err != nil {
			h.logger.Warn("discarding malformed like set", slog.String("error", err.Error()))
			return NewLikeSet()
		}
	}
	return ls
}

func (h *Handlers) saveLikes(ctx context.Context, ls *LikeSet) {
	data, err := ls.MarshalBinary()
	if err != nil {
		h.logger.Error("like set not saved", slog.String("error", err.Error()))
		return
	}
	h.Session.Put(ctx, likesKey, data)
}

// --- Auth ---

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.viewerSession(r.Context())
	if !s.Login(r.Context(), req.Email, req.Password) {
		writeError(w, http.StatusUnauthorized, &APIError{
			Code:     "LOGIN_FAILED",
			Message:  "email ou senha inválidos",
			Category: "auth",
		})
		return
	}
	id, _ := s.Current()
	writeJSON(w, http.StatusOK, id)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.viewerSession(r.Context())
	if !s.Register(r.Context(), req.Name, req.Email, req.Password, req.Role) {
		writeError(w, http.StatusConflict, &APIError{
			Code:     "REGISTER_FAILED",
			Message:  "não foi possível criar a conta",
			Category: "auth",
			Action:   "Verifique se o email já está cadastrado.",
		})
		return
	}
	id, _ := s.Current()
	writeJSON(w, http.StatusCreated, id)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.viewerSession(r.Context()).Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	id, ok := h.viewerSession(r.Context()).Current()
	if !ok {
		writeError(w, http.StatusUnauthorized, NewUnauthenticatedError())
		return
	}
	writeJSON(w, http.StatusOK, id)
}

// --- Questions ---

func (h *Handlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, err := ParseStatus(q.Get("status"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sortKey, err := ParseSortKey(q.Get("sort"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cfg := FilterConfig{
		SearchTerm:  q.Get("q"),
		SelectedTag: q.Get("tag"),
		Status:      status,
		SortKey:     sortKey,
	}
	if cfg.SelectedTag == "" {
		cfg.SelectedTag = AllTags
	}

	all := h.content.Questions()
	visible := VisibleQuestions(all, cfg)
	likes := h.likes(r.Context())
	now := h.now()

	data := QuestionsViewData{
		Questions: make([]QuestionView, 0, len(visible)),
		Count:     len(visible),
		Tags:      TagVocabulary(all),
		Filter:    cfg,
	}
	for _, question := range visible {
		data.Questions = append(data.Questions, h.questionView(question, likes, now))
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handlers) createQuestion(w http.ResponseWriter, r *http.Request) {
	var d Draft
	if !decodeJSON(w, r, &d) {
		return
	}
	author, _ := IdentityFromContext(r.Context())
	question, err := h.content.CreateQuestion(d, author)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("question created",
		slog.Int64("question_id", question.ID),
		slog.Int64("user_id", author.ID),
	)
	writeJSON(w, http.StatusCreated, h.questionView(question, h.likes(r.Context()), h.now()))
}

func (h *Handlers) showQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	question, err := h.content.Question(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	comments, err := h.content.Comments(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	viewer, _ := h.viewerSession(r.Context()).Current()
	writeJSON(w, http.StatusOK, h.questionPage(question, comments, viewer, h.likes(r.Context())))
}

func (h *Handlers) likeQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	likes := h.likes(r.Context())
	question, err := h.content.ToggleLikeQuestion(id, likes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.saveLikes(r.Context(), likes)
	writeJSON(w, http.StatusOK, h.questionView(question, likes, h.now()))
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *Handlers) createComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	author, _ := IdentityFromContext(r.Context())
	comment, err := h.content.AddComment(id, req.Content, author)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.commentView(comment, h.likes(r.Context()), h.now()))
}

func (h *Handlers) likeComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentID")
	if !ok {
		return
	}
	likes := h.likes(r.Context())
	comment, err := h.content.ToggleLikeComment(id, commentID, likes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.saveLikes(r.Context(), likes)
	writeJSON(w, http.StatusOK, h.commentView(comment, likes, h.now()))
}

// acceptAnswer answers with the question page either way; a non-author
// simply gets it back unchanged.
func (h *Handlers) acceptAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentID")
	if !ok {
		return
	}
	actor, _ := IdentityFromContext(r.Context())
	question, comments, err := h.content.ToggleAcceptAnswer(id, commentID, actor)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.questionPage(question, comments, actor, h.likes(r.Context())))
}

// --- Tags ---

func (h *Handlers) listTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tags": h.content.Tags()})
}

type suggestRequest struct {
	Content string   `json:"content"`
	Chosen  []string `json:"chosen"`
}

func (h *Handlers) suggestTags(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"suggestions": SuggestTags(req.Content, h.content.Tags(), req.Chosen),
	})
}

// --- Views and helpers ---

func (h *Handlers) questionView(q Question, likes *LikeSet, now time.Time) QuestionView {
	return QuestionView{
		Question:    q,
		ContentHTML: h.sanitizer.HTML(q.Content),
		Liked:       likes.LikesQuestion(q.ID),
		LastSeenAgo: FormatDisplayDate(q.LastActivity, now),
	}
}

func (h *Handlers) commentView(c Comment, likes *LikeSet, now time.Time) CommentView {
	return CommentView{
		Comment:     c,
		ContentHTML: h.sanitizer.HTML(c.Content),
		Liked:       likes.LikesComment(c.QuestionID, c.ID),
		CreatedAgo:  FormatDisplayDate(c.CreatedAt, now),
	}
}

func (h *Handlers) questionPage(q Question, comments []Comment, viewer Identity, likes *LikeSet) QuestionViewData {
	now := h.now()
	data := QuestionViewData{
		Question:  h.questionView(q, likes, now),
		Comments:  make([]CommentView, 0, len(comments)),
		CanAccept: viewer.Name != "" && viewer.Name == q.Author,
	}
	for _, c := range comments {
		data.Comments = append(data.Comments, h.commentView(c, likes, now))
	}
	return data
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	var apiErr *APIError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":   ErrCodeValidation,
			"fields": verr.Fields,
		})
	case IsNotFound(err):
		writeError(w, http.StatusNotFound, err)
	case errors.As(err, &apiErr) && apiErr.Category == "validation":
		writeError(w, http.StatusBadRequest, apiErr)
	default:
		h.logger.Error("request failed",
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, &APIError{
			Code:     "INTERNAL_ERROR",
			Message:  "erro interno",
			Category: "system",
		})
	}
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, &APIError{
			Code:     "NOT_FOUND",
			Message:  "recurso não encontrado",
			Category: "content",
		})
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, &APIError{
			Code:     "INVALID_BODY",
			Message:  "corpo da requisição inválido",
			Category: "validation",
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = &APIError{Code: "ERROR", Message: err.Error(), Category: "system"}
	}
	writeJSON(w, status, map[string]*APIError{"error": apiErr})
}
