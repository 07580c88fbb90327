// Package v1 holds the server-rendered HTML surface of the blog.
package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fransbask/Gamehub/internal/core/domain"
	logicv1 "github.com/fransbask/Gamehub/internal/logic/v1"
	"github.com/fransbask/Gamehub/middleware"
)

// User-visible messages, matching the views' language.
const (
	msgRegisterSuccess = "Onnistuneesti rekisteröitynyt! Voit nyt kirjautua sisään"
	msgRegisterFailed  = "Rekisteröityminen epäonnistui. Käyttäjänimi voi olla jo käytössä."
	msgLoginFailed     = "Kirjautuminen epäonnistui. Väärä käyttäjänimi tai salasana."
	msgPostNotFound    = "Postausta ei löydy"
)

// AuthService is the slice of the auth logic the handlers use.
type AuthService interface {
	Register(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

// BlogService is the slice of the post logic the handlers use.
type BlogService interface {
	CreatePost(ctx context.Context, fields domain.PostFields) (*domain.PostRow, error)
	ListPosts(ctx context.Context) ([]domain.PostRow, error)
	GetPost(ctx context.Context, id int64) (*domain.PostRow, error)
}

// Handler groups the HTML handlers for the blog.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth       AuthService
	blog       BlogService
	sessionTTL time.Duration
}

// NewHandler creates a new Handler with the given services. sessionTTL
// bounds the session cookie lifetime; the server-side expiry is what
// actually ends the session.
func NewHandler(auth AuthService, blog BlogService, sessionTTL time.Duration) *Handler {
	return &Handler{auth: auth, blog: blog, sessionTTL: sessionTTL}
}

// RegisterRoutes registers the blog routes on the given engine.
// The authorization gate protects only post creation and the new-post
// form; everything else is public.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	r.GET("/", h.Index)
	r.GET("/posts", h.ListPosts)
	r.GET("/kirjoitukset", h.ListPosts)
	r.GET("/post/:id", h.ShowPost)

	r.POST("/posts", middleware.RequireAuth("/login"), h.CreatePost)
	r.GET("/new", middleware.RequireAuth("/register"), h.ShowNewPost)
}

// viewData merges per-view fields with the ambient data every template
// gets: the signed-in username, or empty for anonymous.
func viewData(c *gin.Context, data gin.H) gin.H {
	username := ""
	if ident := middleware.IdentityFromContext(c); ident != nil {
		username = ident.Username
	}
	out := gin.H{"Username": username}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// ShowRegister renders the registration form.
func (h *Handler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", viewData(c, gin.H{"Message": ""}))
}

// Register handles the registration form submission.
// Any failure, duplicate username included, re-renders the form with one
// generic message; the distinction lives only in the server-side log.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	username := c.PostForm("username")
	password := c.PostForm("password")

	userID, err := h.auth.Register(ctx, username, password)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrDuplicateUsername) {
			logger.Warn().Str("username", username).Msg("Registration rejected, username taken")
		} else {
			logger.Error().Err(err).Str("username", username).Msg("Registration failed")
		}
		c.HTML(http.StatusOK, "register.html", viewData(c, gin.H{"Message": msgRegisterFailed}))
		return
	}

	logger.Info().Int64("user_id", userID).Msg("Registration successful")
	c.HTML(http.StatusOK, "login.html", viewData(c, gin.H{"Message": msgRegisterSuccess}))
}

// ShowLogin renders the login form.
func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", viewData(c, gin.H{"Message": ""}))
}

// Login handles the login form submission. On success the session token
// goes into an HttpOnly cookie and the client lands on the front page.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.auth.Login(ctx, username, password)
	if err != nil {
		span.RecordError(err)
		// Unknown username and wrong password get the same message.
		logger.Warn().Err(err).Msg("Login failed")
		c.HTML(http.StatusOK, "login.html", viewData(c, gin.H{"Message": msgLoginFailed}))
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(h.sessionTTL.Seconds()), "/", "", false, true)

	logger.Info().Msg("Login successful")
	c.Redirect(http.StatusFound, "/")
}

// Logout destroys the session server-side, expires the cookie and sends
// the client to the front page. The redirect happens even if the store
// delete fails; the cookie is gone either way.
func (h *Handler) Logout(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.auth.Logout(ctx, token); err != nil {
			span.RecordError(err)
			logger.Error().Err(err).Msg("Session delete failed")
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Index renders the front page with every post.
func (h *Handler) Index(c *gin.Context) {
	h.renderPostList(c, "index.html", "Blogi")
}

// ListPosts renders the posts page. /posts and /kirjoitukset share it.
func (h *Handler) ListPosts(c *gin.Context) {
	h.renderPostList(c, "kirjoitukset.html", "Kirjoitukset")
}

func (h *Handler) renderPostList(c *gin.Context, tmpl, title string) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	posts, err := h.blog.ListPosts(ctx)
	if err != nil {
		span.RecordError(err)
		zerolog.Ctx(ctx).Error().Err(err).Msg("Listing posts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.HTML(http.StatusOK, tmpl, viewData(c, gin.H{"Title": title, "Posts": posts}))
}

// CreatePost handles the new-post form submission. The route is behind
// the authorization gate; by the time this runs someone is signed in.
// Every field is optional and stored as submitted.
func (h *Handler) CreatePost(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	fields := domain.PostFields{
		Title:    c.PostForm("title"),
		Summary:  c.PostForm("summary"),
		Body:     c.PostForm("body"),
		ImageURL: c.PostForm("imageUrl"),
	}

	post, err := h.blog.CreatePost(ctx, fields)
	if err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Msg("Saving post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	logger.Info().Int64("post_id", post.ID).Msg("Post created")
	c.Redirect(http.StatusFound, "/kirjoitukset")
}

// ShowPost renders a single post. A malformed id lands in the same 404
// bucket as a well-formed one that matches nothing.
func (h *Handler) ShowPost(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, msgPostNotFound)
		return
	}

	post, err := h.blog.GetPost(ctx, id)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, logicv1.ErrPostNotFound) {
			c.String(http.StatusNotFound, msgPostNotFound)
			return
		}
		logger.Error().Err(err).Int64("post_id", id).Msg("Fetching post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.HTML(http.StatusOK, "post.html", viewData(c, gin.H{"Post": post}))
}

// ShowNewPost renders the new-post form. The gate on the route redirects
// anonymous clients to /register.
func (h *Handler) ShowNewPost(c *gin.Context) {
	c.HTML(http.StatusOK, "new.html", viewData(c, nil))
}
