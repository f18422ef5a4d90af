// Package engine is the façade hosts embed: it wires the stores behind
// one API covering login, per-page content overlays, the leadership
// roster, form drafts and request submission. All user-facing notices are
// produced here so hosts only render them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"curator/internal/auth"
	"curator/internal/draft"
	"curator/internal/kv"
	"curator/internal/overlay"
	"curator/internal/platform/metrics"
	"curator/internal/request"
	"curator/internal/roster"
	"curator/internal/submit"
)

// Submission outcome modes, used both in Outcome and as metric labels.
const (
	ModeSent     = "sent"
	ModeCopied   = "copied"
	ModeDegraded = "degraded"
	ModeInvalid  = "invalid"
)

// Outcome is the result of a user-facing operation: whether it succeeded,
// the delivery mode for submissions, the request id when one was minted
// and the notice to render.
type Outcome struct {
	OK        bool
	Mode      string
	RequestID string
	Notice    string
}

// PageState describes what a freshly loaded page should render: whether a
// session is active, whether the stored edit-mode flag is set, and whether
// editing affordances are actually live on this page.
type PageState struct {
	LoggedIn bool
	EditMode bool
	Editing  bool
}

// Options wires an Engine. Zero-value fields fall back to in-memory
// stores, the default logger and no submit transport.
type Options struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Session    kv.Backend
	Persistent kv.Backend
	Submitter  submit.Submitter
	Clipboard  submit.Clipboard

	RequestPrefix string
	AdminUsername string
	AdminPassword string
}

// Engine is the orchestrating façade. It is safe for concurrent use as
// long as its backends are.
type Engine struct {
	log       *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	sessions  *auth.Manager
	creds     *auth.CredStore
	overlays  *overlay.Store
	rosters   *roster.Store
	drafts    *draft.Store
	requests  *request.Store
	gen       *request.Generator
	submitter submit.Submitter
	clipboard submit.Clipboard
}

// New builds an Engine from explicit collaborators.
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Session == nil {
		opts.Session = kv.NewMemory()
	}
	if opts.Persistent == nil {
		opts.Persistent = kv.NewMemory()
	}
	if opts.RequestPrefix == "" {
		opts.RequestPrefix = "SASPA"
	}
	if opts.AdminUsername == "" {
		opts.AdminUsername = "admin"
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = "admin"
	}

	persistent := kv.New(opts.Persistent, kv.WithLogger(opts.Logger), kv.WithMetrics(opts.Metrics))
	sessions := auth.NewManager(opts.Session, opts.Persistent, opts.Logger)

	return &Engine{
		log:       opts.Logger,
		metrics:   opts.Metrics,
		tracer:    otel.Tracer("curator/engine"),
		sessions:  sessions,
		creds:     auth.NewCredStore(persistent, opts.AdminUsername, opts.AdminPassword),
		overlays:  overlay.New(persistent, sessions, opts.Metrics),
		rosters:   roster.NewStore(persistent, opts.Metrics),
		drafts:    draft.NewStore(persistent, opts.Metrics),
		requests:  request.NewStore(persistent, opts.Metrics),
		gen:       request.NewGenerator(opts.RequestPrefix),
		submitter: opts.Submitter,
		clipboard: opts.Clipboard,
	}
}

// Login verifies the credential pair and, on success, opens the session.
func (e *Engine) Login(ctx context.Context, username, password string) Outcome {
	if !e.creds.Verify(ctx, strings.TrimSpace(username), password) {
		return Outcome{OK: false, Notice: "Неверный логин или пароль."}
	}
	e.sessions.Login(ctx)
	return Outcome{OK: true}
}

// Logout closes the session and forces edit-mode off for the page the
// user was on, so a later login does not resume editing silently.
func (e *Engine) Logout(ctx context.Context, path string) {
	e.sessions.Logout(ctx)
	e.overlays.ForceEditOff(ctx, path)
}

// IsLoggedIn reports whether a session is active.
func (e *Engine) IsLoggedIn(ctx context.Context) bool {
	return e.sessions.IsLoggedIn(ctx)
}

// LoadPage applies the page's stored overlay to the renderer and syncs
// editing affordances: they are live only with an active session, the
// stored edit-mode flag set and at least one editable slot present.
func (e *Engine) LoadPage(ctx context.Context, path string, r overlay.Renderer) PageState {
	ctx, span := e.tracer.Start(ctx, "engine.LoadPage")
	defer span.End()

	var state PageState
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		state.LoggedIn = e.sessions.IsLoggedIn(gctx)
		return nil
	})
	g.Go(func() error {
		state.EditMode = e.overlays.EditMode(gctx, path)
		return nil
	})
	_ = g.Wait()

	e.overlays.Apply(ctx, path, r)
	state.Editing = state.LoggedIn && state.EditMode && len(r.Slots()) > 0
	r.SetEditable(state.Editing)
	return state
}

// ToggleEdit flips the page's edit mode. Turning editing on without a
// session or without editable slots is rejected as a no-op.
func (e *Engine) ToggleEdit(ctx context.Context, path string, r overlay.Renderer) Outcome {
	on, ok := e.overlays.ToggleEdit(ctx, path, r)
	if !ok {
		return Outcome{OK: false}
	}
	notice := "Режим редактирования выключен."
	if on {
		notice = "Режим редактирования включён."
	}
	return Outcome{OK: true, Notice: notice}
}

// SavePage captures the page's current slot content into its overlay map.
// Requires an active session and editable slots.
func (e *Engine) SavePage(ctx context.Context, path string, r overlay.Renderer) Outcome {
	if !e.sessions.IsLoggedIn(ctx) || len(r.Slots()) == 0 {
		return Outcome{OK: false}
	}
	e.overlays.Capture(ctx, path, r)
	return Outcome{OK: true, Notice: "Сохранено локально."}
}

// ResetPage discards the page's overlay map and restores shipped content.
// Requires an active session and editable slots.
func (e *Engine) ResetPage(ctx context.Context, path string, r overlay.Renderer) Outcome {
	if !e.sessions.IsLoggedIn(ctx) || len(r.Slots()) == 0 {
		return Outcome{OK: false}
	}
	e.overlays.Reset(ctx, path, r)
	return Outcome{OK: true, Notice: "Сброшено на исходный вариант."}
}

// SubmitForm validates, renders and delivers a request. With no transport
// configured the text goes to the clipboard; a failed delivery also falls
// back to the clipboard so the user never loses a filled form. An audit
// record is written on every path that hands the user an id except the
// delivery-failure one, matching what a later status check can promise.
func (e *Engine) SubmitForm(ctx context.Context, kind request.Kind, form draft.Form) Outcome {
	ctx, span := e.tracer.Start(ctx, "engine.SubmitForm")
	defer span.End()

	if !form.Valid() {
		return e.outcome(Outcome{OK: false, Mode: ModeInvalid})
	}

	values := collectValues(form)
	id := e.gen.Generate()
	text := request.FormatText(kind, id, values)

	if e.submitter == nil {
		e.requests.Record(ctx, id, kind.Name, values)
		if err := e.copy(ctx, text); err != nil {
			return e.outcome(Outcome{OK: false, Mode: ModeCopied, RequestID: id, Notice: err.Error()})
		}
		return e.outcome(Outcome{
			OK:        true,
			Mode:      ModeCopied,
			RequestID: id,
			Notice:    fmt.Sprintf("Endpoint не задан: скопировано. ID: %s", id),
		})
	}

	err := e.submitter.Submit(ctx, submit.Payload{
		RequestID: id,
		Kind:      kind.Name,
		Values:    values,
		Text:      text,
	})
	if err != nil {
		e.log.Warn("request delivery failed, falling back to clipboard", "id", id, "err", err)
		if copyErr := e.copy(ctx, text); copyErr != nil {
			return e.outcome(Outcome{OK: false, Mode: ModeDegraded, RequestID: id, Notice: copyErr.Error()})
		}
		return e.outcome(Outcome{
			OK:        false,
			Mode:      ModeDegraded,
			RequestID: id,
			Notice:    fmt.Sprintf("Ошибка отправки: скопировано. ID: %s", id),
		})
	}

	e.requests.Record(ctx, id, kind.Name, values)
	return e.outcome(Outcome{
		OK:        true,
		Mode:      ModeSent,
		RequestID: id,
		Notice:    fmt.Sprintf("Отправлено. ID: %s", id),
	})
}

// CopyForm renders the request and copies it without any delivery
// attempt. The copy still mints an id and writes an audit record so the
// user can quote it when pasting manually.
func (e *Engine) CopyForm(ctx context.Context, kind request.Kind, form draft.Form) Outcome {
	if !form.Valid() {
		return e.outcome(Outcome{OK: false, Mode: ModeInvalid})
	}

	values := collectValues(form)
	id := e.gen.Generate()
	text := request.FormatText(kind, id, values)

	if err := e.copy(ctx, text); err != nil {
		return e.outcome(Outcome{OK: false, Mode: ModeCopied, RequestID: id, Notice: err.Error()})
	}
	e.requests.Record(ctx, id, kind.Name, values)
	return e.outcome(Outcome{
		OK:        true,
		Mode:      ModeCopied,
		RequestID: id,
		Notice:    fmt.Sprintf("Скопировано. ID: %s", id),
	})
}

// CheckStatus looks up a request id in the local audit trail. Absence is
// normal for requests submitted by hand on another device, and the notice
// says so.
func (e *Engine) CheckStatus(ctx context.Context, rawID string) Outcome {
	if strings.TrimSpace(rawID) == "" {
		return Outcome{OK: false, Notice: "Введите ID."}
	}
	rec, ok := e.requests.Lookup(ctx, rawID)
	if !ok {
		return Outcome{OK: false, Notice: "Не найдено. Если отправляли вручную — это нормально."}
	}
	return Outcome{
		OK:     true,
		Notice: fmt.Sprintf("Найдено локально: %s. Дата: %s", rec.Kind, rec.FormattedAt()),
	}
}

// AutosaveForm snapshots the form's current values as a draft.
func (e *Engine) AutosaveForm(ctx context.Context, formKey string, form draft.Form) {
	e.drafts.Save(ctx, formKey, draft.Capture(form))
}

// RestoreForm pushes a stored draft back into the form, if one exists.
func (e *Engine) RestoreForm(ctx context.Context, formKey string, form draft.Form) {
	draft.Restore(form, e.drafts.Load(ctx, formKey))
}

// Roster returns the migrated leadership roster for rendering.
func (e *Engine) Roster(ctx context.Context) roster.Roster {
	return e.rosters.Load(ctx)
}

// RosterFormSeed returns the admin-panel field values for the current
// roster.
func (e *Engine) RosterFormSeed(ctx context.Context) map[string]string {
	return roster.FormSeed(e.rosters.Load(ctx))
}

// SaveRoster applies admin-panel field values to the stored roster.
// Requires an active session.
func (e *Engine) SaveRoster(ctx context.Context, values map[string]string) Outcome {
	if !e.sessions.IsLoggedIn(ctx) {
		return Outcome{OK: false}
	}
	e.rosters.Save(ctx, roster.ApplyForm(e.rosters.Load(ctx), values))
	return Outcome{OK: true, Notice: "Сохранено локально."}
}

// Warm seeds lazily created records up front: the credential pair and the
// migrated roster. Hosts call it once at startup so first requests do not
// pay for the seeding writes.
func (e *Engine) Warm(ctx context.Context) {
	ctx, span := e.tracer.Start(ctx, "engine.Warm")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.creds.Ensure(gctx)
		return nil
	})
	g.Go(func() error {
		e.rosters.Load(gctx)
		return nil
	})
	_ = g.Wait()
}

func (e *Engine) outcome(o Outcome) Outcome {
	if e.metrics != nil && o.Mode != "" {
		e.metrics.SubmitOutcomes.WithLabelValues(o.Mode).Inc()
	}
	return o
}

// copy pushes text to the clipboard collaborator. A missing clipboard is
// an error: callers reach here only when the user was promised a copy.
func (e *Engine) copy(ctx context.Context, text string) error {
	if e.clipboard == nil {
		return errors.New("clipboard unavailable")
	}
	return e.clipboard.Copy(ctx, text)
}

// collectValues flattens the form into the submitted value map: text
// controls contribute their trimmed value, checkbox controls contribute
// "on" only while checked, mirroring browser form encoding.
func collectValues(form draft.Form) map[string]string {
	values := map[string]string{}
	for _, c := range form.Controls() {
		if c.Name == "" {
			continue
		}
		if c.Checkbox {
			if c.Checked {
				values[c.Name] = "on"
			}
			continue
		}
		values[c.Name] = strings.TrimSpace(c.Value)
	}
	return values
}
