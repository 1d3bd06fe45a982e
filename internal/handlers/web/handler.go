// Package web serves the character generation wizard over HTTP
package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KirkDiggler/chargen/internal/entities"
	"github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/orchestrators/character"
)

// DefaultPrefix is where the wizard is mounted
const DefaultPrefix = "/chargen"

const indexMessage = "You must be given a key to use this service!"

// Config holds the dependencies for the web handler
type Config struct {
	CharacterService character.Service
	// Prefix defaults to DefaultPrefix
	Prefix string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	return vb.Build()
}

// Handler renders the wizard pages and applies the generation steps
type Handler struct {
	svc    character.Service
	prefix string
}

// NewHandler creates a new web handler
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prefix := strings.TrimRight(cfg.Prefix, "/")
	if cfg.Prefix == "" {
		prefix = DefaultPrefix
	}

	return &Handler{svc: cfg.CharacterService, prefix: prefix}, nil
}

// Routes returns the wizard routes wrapped in request logging
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	p := h.prefix

	mux.HandleFunc("GET "+p+"/{$}", h.index)
	mux.HandleFunc("GET "+p+"/{key}", h.hub)
	mux.HandleFunc("GET "+p+"/roll_stats/{key}", h.rollStatsPage)
	mux.HandleFunc("POST "+p+"/roll_stats/{key}", h.rollStats)
	mux.HandleFunc("GET "+p+"/pick_class/{key}", h.pickClassPage)
	mux.HandleFunc("POST "+p+"/pick_class/{key}", h.pickClass)
	mux.HandleFunc("GET "+p+"/roll_hp_and_gear/{key}", h.rollHPAndGearPage)
	mux.HandleFunc("POST "+p+"/roll_hp_and_gear/{key}", h.rollHPAndGear)
	mux.HandleFunc("GET "+p+"/make_character", h.makeCharacterPage)
	mux.HandleFunc("POST "+p+"/make_character", h.makeCharacter)
	mux.HandleFunc("GET "+p+"/view_characters", h.viewCharacters)

	return logRequests(mux)
}

func (h *Handler) hubURL(key string) string {
	return h.prefix + "/" + key
}

func (h *Handler) stepURL(step, key string) string {
	return h.prefix + "/" + step + "/" + key
}

func (h *Handler) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(indexMessage))
}

// hub sends the player to the page for the character's current step,
// or shows the finished sheet
func (h *Handler) hub(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	out, err := h.svc.GetCharacter(r.Context(), &character.GetCharacterInput{ID: key})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch out.Character.State() {
	case entities.StateNew:
		http.Redirect(w, r, h.stepURL("roll_stats", key), http.StatusFound)
	case entities.StateHasStats:
		http.Redirect(w, r, h.stepURL("pick_class", key), http.StatusFound)
	case entities.StateHasClass:
		http.Redirect(w, r, h.stepURL("roll_hp_and_gear", key), http.StatusFound)
	default:
		h.render(w, r, "character.html", pageData{Character: newCharacterView(key, h.hubURL(key), out.Character)})
	}
}

type pageData struct {
	Character *characterView
	SubmitURL string
	Classes   []entities.Class
	Abilities []entities.Ability
}

// stepPage renders a step's form, or bounces to the hub when the
// character is at a different step
func (h *Handler) stepPage(w http.ResponseWriter, r *http.Request, step, page string, want entities.State) {
	key := r.PathValue("key")
	out, err := h.svc.GetCharacter(r.Context(), &character.GetCharacterInput{ID: key})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if out.Character.State() != want {
		http.Redirect(w, r, h.hubURL(key), http.StatusFound)
		return
	}

	h.render(w, r, page, pageData{
		Character: newCharacterView(key, h.hubURL(key), out.Character),
		SubmitURL: h.stepURL(step, key),
		Classes:   entities.Classes,
		Abilities: entities.Abilities,
	})
}

func (h *Handler) rollStatsPage(w http.ResponseWriter, r *http.Request) {
	h.stepPage(w, r, "roll_stats", "roll_stats.html", entities.StateNew)
}

func (h *Handler) pickClassPage(w http.ResponseWriter, r *http.Request) {
	h.stepPage(w, r, "pick_class", "pick_class.html", entities.StateHasStats)
}

func (h *Handler) rollHPAndGearPage(w http.ResponseWriter, r *http.Request) {
	h.stepPage(w, r, "roll_hp_and_gear", "roll_hp_and_gear.html", entities.StateHasClass)
}

// afterStep redirects to the hub on success or on a state mismatch
func (h *Handler) afterStep(w http.ResponseWriter, r *http.Request, key string, err error) {
	if err != nil && !errors.IsStateGuard(err) {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, h.hubURL(key), http.StatusSeeOther)
}

func (h *Handler) rollStats(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	_, err := h.svc.RollStats(r.Context(), &character.RollStatsInput{ID: key})
	h.afterStep(w, r, key, err)
}

func (h *Handler) pickClass(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid form"))
		return
	}

	_, err := h.svc.PickClass(r.Context(), &character.PickClassInput{
		ID:        key,
		ClassName: r.PostForm.Get("character_class"),
		SwapLeft:  r.PostForm.Get("left-stat"),
		SwapRight: r.PostForm.Get("right-stat"),
		Name:      r.PostForm.Get("name"),
	})
	h.afterStep(w, r, key, err)
}

func (h *Handler) rollHPAndGear(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	_, err := h.svc.RollHPAndGear(r.Context(), &character.RollHPAndGearInput{ID: key})
	h.afterStep(w, r, key, err)
}

func (h *Handler) makeCharacterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "make_character.html", pageData{SubmitURL: h.prefix + "/make_character"})
}

func (h *Handler) makeCharacter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid form"))
		return
	}

	out, err := h.svc.CreateCharacter(r.Context(), &character.CreateCharacterInput{
		PlayerName: r.PostForm.Get("player_name"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, h.hubURL(out.ID), http.StatusSeeOther)
}

func (h *Handler) viewCharacters(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListCharacters(r.Context(), &character.ListCharactersInput{})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	views := make([]*characterView, 0, len(out.Characters))
	for _, listed := range out.Characters {
		views = append(views, newCharacterView(listed.ID, h.hubURL(listed.ID), listed.Character))
	}

	h.render(w, r, "view_characters.html", struct {
		Characters []*characterView
	}{Characters: views})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, page, data); err != nil {
		slog.ErrorContext(r.Context(), "failed to render page",
			"page", page,
			"error", err.Error())
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.GetCode(err).HTTPStatus()
	logError(r.Context(), status, err)

	msg := http.StatusText(status)
	if status < http.StatusInternalServerError {
		msg = errors.GetMessage(err)
	}
	http.Error(w, msg, status)
}

func logError(ctx context.Context, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(ctx, level, "request failed",
		"status", status,
		"code", errors.GetCode(err),
		"error", err.Error())
}
