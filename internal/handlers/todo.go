package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/awessel/todo-api/internal/cache"
	"github.com/awessel/todo-api/internal/models"
	"github.com/awessel/todo-api/internal/repo"
)

// ==========================
// Todo Handler
// ==========================
type TodoHandler struct {
	Repo  *repo.TodoRepo
	Cache *cache.TodoCache
}

type TodoRequest struct {
	Title       string `json:"title" validate:"required,max=255" example:"buy milk"`
	Description string `json:"description" validate:"max=1000" example:"2 liters, whole"`
	Done        bool   `json:"done" example:"false"`
}

// List godoc
//
//	@Summary	List all todos
//	@Tags		todo
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		models.Todo
//	@Failure	401	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/todo [get]
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	if todos, ok := h.Cache.GetList(r.Context()); ok {
		writeJSON(w, http.StatusOK, todos)
		return
	}

	todos, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list todos", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}

	h.Cache.SetList(r.Context(), todos)
	writeJSON(w, http.StatusOK, todos)
}

// Get godoc
//
//	@Summary	Get a todo by id
//	@Tags		todo
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Todo ID"
//	@Success	200	{object}	models.Todo
//	@Failure	404	{object}	ErrorResponse
//	@Router		/todo/{id} [get]
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		h.repoError(w, err, "get todo")
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// Create godoc
//
//	@Summary	Create a todo
//	@Tags		todo
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		todo	body		TodoRequest	true	"Todo to create"
//	@Success	201		{object}	models.Todo
//	@Failure	400		{object}	ErrorResponse
//	@Router		/todo [post]
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeTodoRequest(w, r)
	if !ok {
		return
	}

	todo, err := h.Repo.Create(r.Context(), input.Title, input.Description)
	if err != nil {
		slog.Error("create todo", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	h.Cache.Invalidate(r.Context())
	w.Header().Set("Location", fmt.Sprintf("/todo/%d", todo.ID))
	writeJSON(w, http.StatusCreated, todo)
}

// Update godoc
//
//	@Summary	Replace a todo
//	@Description	Full replace of title, description, and done.
//	@Tags		todo
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int			true	"Todo ID"
//	@Param		todo	body		TodoRequest	true	"New todo contents"
//	@Success	200		{object}	models.Todo
//	@Failure	404		{object}	ErrorResponse
//	@Router		/todo/{id} [put]
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	input, ok := decodeTodoRequest(w, r)
	if !ok {
		return
	}

	todo, err := h.Repo.Update(r.Context(), id, input.Title, input.Description, input.Done)
	if err != nil {
		h.repoError(w, err, "update todo")
		return
	}

	h.Cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, todo)
}

// MarkDone godoc
//
//	@Summary	Mark a todo as done
//	@Tags		todo
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Todo ID"
//	@Success	200	{object}	models.Todo
//	@Failure	404	{object}	ErrorResponse
//	@Router		/todo/{id}/done [patch]
func (h *TodoHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.Repo.SetDone(r.Context(), id)
	if err != nil {
		h.repoError(w, err, "mark todo done")
		return
	}

	h.Cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, todo)
}

// Delete godoc
//
//	@Summary	Delete a todo
//	@Tags		todo
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Todo ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/todo/{id} [delete]
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		h.repoError(w, err, "delete todo")
		return
	}

	h.Cache.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Helpers

func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		JSONError(w, "invalid todo id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeTodoRequest(w http.ResponseWriter, r *http.Request) (TodoRequest, bool) {
	var input TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return input, false
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return input, false
	}
	return input, true
}

// repoError converts repo errors at the handler boundary: ErrNotFound
// becomes 404, everything else a generic 500 with no internal detail.
func (h *TodoHandler) repoError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "todo not found", http.StatusNotFound)
		return
	}
	slog.Error(op, "error", err)
	JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
}
