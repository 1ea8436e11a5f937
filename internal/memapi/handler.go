package memapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"todo/internal/service"
)

// Handler serves the task API on top of any service.Service.
type Handler struct {
	svc    service.Service
	logger *slog.Logger
}

// NewHandler creates the router for the task API.
//
//	GET    /tasks
//	POST   /tasks
//	GET    /tasks/{id}
//	PUT    /tasks/{id}
//	DELETE /tasks/{id}
func NewHandler(svc service.Service, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{svc: svc, logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/tasks", h.listTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", h.createTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{id:[0-9]+}", h.getTask).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id:[0-9]+}", h.updateTask).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{id:[0-9]+}", h.deleteTask).Methods(http.MethodDelete)
	router.Use(h.logRequests)
	return router
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.Debug("serve",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", r.Header.Get("X-Request-Id")))
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
		return
	}
	task, err := h.svc.CreateTask(r.Context(), req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
		return
	}
	task, err := h.svc.UpdateTask(r.Context(), id, req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} route variable.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid task id"})
		return 0, false
	}
	return id, true
}

type errorBody struct {
	Error string `json:"error"`
}

// respondWithError maps an APIError to its status and {"error": ...} body.
// Other errors become 500.
func respondWithError(w http.ResponseWriter, err error) {
	if apiErr, ok := service.AsAPIError(err); ok && apiErr.Status >= 400 {
		respondWithJSON(w, apiErr.Status, errorBody{Error: apiErr.Message})
		return
	}
	respondWithJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response) //nolint:errcheck
}
