package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/csg33k/leave-panel/internal/domain"
	"github.com/csg33k/leave-panel/internal/leaveform"
	"github.com/csg33k/leave-panel/internal/ports"
	"github.com/csg33k/leave-panel/internal/templates"
	"github.com/csg33k/leave-panel/internal/view"
)

// Options tunes the handler; the zero value is usable.
type Options struct {
	// InitialForm is the leave form state a freshly loaded panel starts in.
	InitialForm leaveform.State
	// ExportConcurrency bounds the parallel record fetches of a bulk export.
	ExportConcurrency int
	// AllowedOrigins enables CORS for pages served from another origin.
	AllowedOrigins []string
	// QRCode draws the contact card code; nil disables the route.
	QRCode ports.ContactCodeRenderer
}

type Handler struct {
	dir       ports.EmployeeDirectory
	exporters map[string]ports.EmployeeExporter
	opts      Options
}

// New builds the handler. Exporters are addressed by their Extension().
func New(dir ports.EmployeeDirectory, opts Options, exporters ...ports.EmployeeExporter) *Handler {
	if opts.ExportConcurrency < 1 {
		opts.ExportConcurrency = 1
	}
	h := &Handler{dir: dir, opts: opts, exporters: make(map[string]ports.EmployeeExporter, len(exporters))}
	for _, e := range exporters {
		h.exporters[e.Extension()] = e
	}
	return h
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Get("/healthz", h.health)
	r.Route("/panel/employees/{id}", func(r chi.Router) {
		r.Get("/", h.viewEmployee)
		r.Get("/leave-form", h.showLeaveForm)
		r.Post("/leaves", h.submitLeave)
		r.Get("/summary.{ext}", h.exportEmployee)
		r.Get("/vcard", h.exportVCard)
		r.Get("/qr.png", h.exportQR)
	})
	r.Get("/export/leave-summary.{ext}", h.exportAll)

	if len(h.opts.AllowedOrigins) == 0 {
		return r
	}
	return cors.New(cors.Options{
		AllowedOrigins: h.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{
			"Content-Type", "HX-Request", "HX-Trigger", "HX-Trigger-Name",
			"HX-Target", "HX-Current-URL", "HX-Boosted",
		},
		ExposedHeaders: []string{"HX-Retarget", "HX-Reswap"},
	}).Handler(r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	list, err := h.dir.ListEmployees(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list employees", "err", err, "request_id", middleware.GetReqID(r.Context()))
		renderStatus(w, r, http.StatusBadGateway, templates.Index(nil, domain.UserMessage(err)))
		return
	}
	render(w, r, templates.Index(view.BuildEmployeeList(list, h.dir.EmployeeLink), ""))
}

// viewEmployee fetches one employee and renders the details panel. Every
// click re-fetches; a newer click aborts the older request on the client,
// which cancels r.Context() and the backend call with it.
func (h *Handler) viewEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	ctx := r.Context()
	rec, err := h.dir.LoadEmployee(ctx, h.dir.EmployeeLink(id))
	if err != nil {
		if ctx.Err() != nil {
			slog.DebugContext(ctx, "employee fetch superseded", "employee_id", id)
			return
		}
		slog.ErrorContext(ctx, "load employee", "employee_id", id, "err", err, "request_id", middleware.GetReqID(ctx))
		// Leave the current panel alone and show the error above it.
		w.Header().Set("HX-Retarget", "#"+templates.AlertID)
		w.Header().Set("HX-Reswap", "innerHTML")
		render(w, r, templates.FetchError(domain.UserMessage(err)))
		return
	}
	form := leaveform.New(rec.ID, h.opts.InitialForm)
	render(w, r, templates.DetailsPanel(view.BuildPanel(*rec), form))
}

// showLeaveForm is the "Add Leave" activation: Hidden → VisibleEmpty.
func (h *Handler) showLeaveForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	form := leaveform.New(id, leaveform.Hidden)
	if err := form.Show(); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, templates.LeaveForm(form))
}

// submitLeave validates the posted fields and forwards them to the backend
// for the employee in the URL. It always answers with the form region.
func (h *Handler) submitLeave(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	ctx := r.Context()
	form := leaveform.New(id, leaveform.VisibleEmpty)
	if err := form.Edit(parseLeaveForm(r)); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if err := form.Submit(); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			http.Error(w, err.Error(), 500)
			return
		}
		slog.DebugContext(ctx, "leave form rejected", "employee_id", id, "field", ve.Field)
		render(w, r, templates.LeaveForm(form))
		return
	}

	ack, err := h.dir.SubmitLeave(ctx, form.EmployeeID, form.Draft)
	if err != nil {
		slog.ErrorContext(ctx, "submit leave", "employee_id", id, "err", err, "request_id", middleware.GetReqID(ctx))
		_ = form.Fail(err)
	} else {
		slog.InfoContext(ctx, "leave submitted", "employee_id", id, "leave_date", form.Draft.Date)
		_ = form.Succeed(ack)
	}
	render(w, r, templates.LeaveForm(form))
}

// parseLeaveForm binds the two leave fields from the posted body.
func parseLeaveForm(r *http.Request) domain.LeaveRequestDraft {
	return domain.LeaveRequestDraft{
		Date:   strings.TrimSpace(r.PostFormValue(domain.FieldLeaveDate)),
		Reason: strings.TrimSpace(r.PostFormValue(domain.FieldLeaveReason)),
	}
}

func (h *Handler) exportEmployee(w http.ResponseWriter, r *http.Request) {
	h.exportOne(w, r, chi.URLParam(r, "ext"), "%d_leave_summary.%s")
}

func (h *Handler) exportVCard(w http.ResponseWriter, r *http.Request) {
	h.exportOne(w, r, "vcf", "%d_vcard.%s")
}

func (h *Handler) exportOne(w http.ResponseWriter, r *http.Request, ext, nameFormat string) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	exp, ok := h.exporters[ext]
	if !ok {
		http.NotFound(w, r)
		return
	}
	rec, err := h.dir.LoadEmployee(r.Context(), h.dir.EmployeeLink(id))
	if err != nil {
		slog.ErrorContext(r.Context(), "export employee", "employee_id", id, "err", err)
		http.Error(w, domain.UserMessage(err), http.StatusBadGateway)
		return
	}
	h.writeExport(w, r, exp, []domain.EmployeeRecord{*rec}, fmt.Sprintf(nameFormat, id, ext))
}

// exportQR serves the employee's vCard as a QR code. ?size= sets the edge
// length in pixels.
func (h *Handler) exportQR(w http.ResponseWriter, r *http.Request) {
	if h.opts.QRCode == nil {
		http.NotFound(w, r)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size <= 0 {
			http.Error(w, "size must be a positive integer", 400)
			return
		}
	}
	rec, err := h.dir.LoadEmployee(r.Context(), h.dir.EmployeeLink(id))
	if err != nil {
		slog.ErrorContext(r.Context(), "export qr", "employee_id", id, "err", err)
		http.Error(w, domain.UserMessage(err), http.StatusBadGateway)
		return
	}
	var buf bytes.Buffer
	if err := h.opts.QRCode.Render(r.Context(), *rec, size, &buf); err != nil {
		if errors.Is(err, domain.ErrCodeSize) {
			http.Error(w, err.Error(), 400)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", h.opts.QRCode.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%d_vcard_qr.png"`, id))
	w.Write(buf.Bytes())
}

// exportAll fetches every employee's record with bounded concurrency and
// writes one document covering all of them.
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	exp, ok := h.exporters[chi.URLParam(r, "ext")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	records, err := h.loadAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "export all employees", "err", err)
		http.Error(w, domain.UserMessage(err), http.StatusBadGateway)
		return
	}
	if len(records) == 0 {
		http.Error(w, "no employees to export", 404)
		return
	}
	h.writeExport(w, r, exp, records, "leave_summary."+exp.Extension())
}

func (h *Handler) loadAll(ctx context.Context) ([]domain.EmployeeRecord, error) {
	list, err := h.dir.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]domain.EmployeeRecord, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.opts.ExportConcurrency)
	for i, e := range list {
		g.Go(func() error {
			rec, err := h.dir.LoadEmployee(gctx, h.dir.EmployeeLink(e.ID))
			if err != nil {
				return fmt.Errorf("employee %d: %w", e.ID, err)
			}
			records[i] = *rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (h *Handler) writeExport(w http.ResponseWriter, r *http.Request, exp ports.EmployeeExporter, records []domain.EmployeeRecord, filename string) {
	var buf bytes.Buffer
	if err := exp.Export(r.Context(), records, &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	renderStatus(w, r, http.StatusOK, c)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive")
	}
	return id, nil
}
