package handlers

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"taskstore/export"
	"taskstore/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handlers struct holds the task store and logger, allowing handler
// methods to share them.
type Handlers struct {
	Store  *store.TaskStore
	Logger *zap.SugaredLogger

	tmpl     *template.Template
	exporter *export.Exporter
}

// NewHandlers is a constructor for the Handlers struct.
func NewHandlers(st *store.TaskStore, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{
		Store:    st,
		Logger:   logger,
		tmpl:     template.Must(template.ParseFS(templateFS, "templates/*.html")),
		exporter: export.NewExporter(st),
	}
}

// NewRouter builds the route table for the service.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", h.Index).Methods("GET")
	router.HandleFunc("/add", h.AddTask).Methods("POST")
	router.HandleFunc("/toggle/{id}", h.ToggleTask).Methods("GET")
	router.HandleFunc("/complete/{id}", h.CompleteTask).Methods("GET")
	router.HandleFunc("/delete/{id}", h.DeleteTask).Methods("GET")

	router.HandleFunc("/api/tasks", h.GetTasks).Methods("GET")
	router.HandleFunc("/api/tasks/{id}", h.GetTask).Methods("GET")
	router.HandleFunc("/export", h.ExportTasks).Methods("GET")
	router.HandleFunc("/health", h.Health).Methods("GET")

	return router
}

// respondWithJSON is a helper function to format and send JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// taskID parses the {id} path variable.
func taskID(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars["id"], 10, 64)
}

// Index renders the task listing page.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Store.List(r.Context())
	if err != nil {
		h.Logger.Errorw("failed to list tasks", "error", err)
		http.Error(w, "Failed to retrieve tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", tasks); err != nil {
		h.Logger.Errorw("failed to render listing", "error", err)
	}
}

// AddTask creates a new task from the submitted form and redirects
// back to the listing. An empty title is silently ignored.
func (h *Handlers) AddTask(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	description := r.FormValue("description")

	if _, err := h.Store.Add(r.Context(), title, description); err != nil {
		if !errors.Is(err, store.ErrEmptyTitle) {
			h.Logger.Errorw("failed to add task", "error", err)
			http.Error(w, "Failed to create task", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ToggleTask flips the completed flag of an existing task.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	if err := h.Store.Toggle(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			http.Error(w, "Task not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("failed to toggle task", "id", id, "error", err)
		http.Error(w, "Failed to toggle task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CompleteTask marks a task as completed. Unknown ids redirect as
// well; the operation is an idempotent no-op for them.
func (h *Handlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	if err := h.Store.Complete(r.Context(), id); err != nil {
		h.Logger.Errorw("failed to complete task", "id", id, "error", err)
		http.Error(w, "Failed to complete task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteTask removes a task and redirects to the listing. Deleting a
// task that does not exist is not an error.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		h.Logger.Errorw("failed to delete task", "id", id, "error", err)
		http.Error(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GetTasks retrieves all tasks as JSON.
func (h *Handlers) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Store.List(r.Context())
	if err != nil {
		h.Logger.Errorw("failed to list tasks", "error", err)
		http.Error(w, "Failed to retrieve tasks", http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, tasks)
}

// GetTask retrieves a single task by its ID as JSON.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	task, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrTaskNotFound) {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	} else if err != nil {
		h.Logger.Errorw("failed to retrieve task", "id", id, "error", err)
		http.Error(w, "Failed to retrieve task", http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

// ExportTasks streams the task list in the requested format
// (?format=json|csv|pdf, defaulting to json).
func (h *Handlers) ExportTasks(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}

	b, err := h.exporter.Export(r.Context(), format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			http.Error(w, "Unknown export format", http.StatusBadRequest)
			return
		}
		h.Logger.Errorw("failed to export tasks", "format", format, "error", err)
		http.Error(w, "Failed to export tasks", http.StatusInternalServerError)
		return
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.Write(b)
}

// Health reports process liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
