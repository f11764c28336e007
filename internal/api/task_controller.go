// Package api exposes the task repository over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/dao"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/model"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/security"
)

type TaskController struct {
	*core.BaseComponent
	store     dao.TaskStore
	webFolder string
}

func NewTaskController(store dao.TaskStore, webFolder string) *TaskController {
	return &TaskController{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_TASK_API, consts.COMPONENT_TASK_DAO),
		store:         store,
		webFolder:     webFolder,
	}
}

// Start fails when a web folder is configured but missing.
func (tc *TaskController) Start(ctx context.Context) error {
	if tc.webFolder != "" {
		fi, err := os.Stat(tc.webFolder)
		if err != nil {
			return fmt.Errorf("web folder: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("web folder %s is not a directory", tc.webFolder)
		}
		logging.Infof(ctx, "[task_api] serving web folder %s", tc.webFolder)
	}
	return tc.BaseComponent.Start(ctx)
}

// Routes mounts the task API, and the web folder when configured.
func (tc *TaskController) Routes(r chi.Router) {
	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", tc.listTasks)
		r.Post("/", tc.createTask)
		r.Get("/{id}", tc.withID(tc.getTask))
		r.Patch("/{id}", tc.withID(tc.updateTask))
		r.Delete("/{id}", tc.withID(tc.deleteTask))
	})
	if tc.webFolder != "" {
		r.Handle("/*", http.FileServer(http.Dir(tc.webFolder)))
	}
}

// RegisterRoutes is the http_server registrar for the task API.
func RegisterRoutes(r chi.Router, c *core.Container) error {
	tc, err := core.ResolveAs[*TaskController](c, consts.COMPONENT_TASK_API)
	if err != nil {
		return err
	}
	tc.Routes(r)
	return nil
}

func (tc *TaskController) withID(h func(http.ResponseWriter, *http.Request, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid task id")
			return
		}
		h(w, r, id)
	}
}

func actor(r *http.Request) *security.UserCtx {
	utx, _ := security.UserCtxFrom(r.Context())
	return utx
}

// decodePatch reads an optional JSON body. An empty body is an empty patch.
func decodePatch(r *http.Request) (model.TaskPatch, error) {
	var p model.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, fmt.Errorf("invalid body: %w", err)
	}
	return p, p.Validate()
}

func (tc *TaskController) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := tc.store.List(r.Context(), actor(r))
	if err != nil {
		writeStoreErr(w, r, err)
		return
	}
	writeData(w, http.StatusOK, tasks)
}

func (tc *TaskController) createTask(w http.ResponseWriter, r *http.Request) {
	patch, err := decodePatch(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	task, err := tc.store.Create(r.Context(), actor(r), patch)
	if err != nil {
		writeStoreErr(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, task)
}

func (tc *TaskController) getTask(w http.ResponseWriter, r *http.Request, id int64) {
	task, err := tc.store.Get(r.Context(), actor(r), id)
	if err != nil {
		writeStoreErr(w, r, err)
		return
	}
	writeData(w, http.StatusOK, task)
}

func (tc *TaskController) updateTask(w http.ResponseWriter, r *http.Request, id int64) {
	patch, err := decodePatch(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	task, err := tc.store.Update(r.Context(), actor(r), id, patch)
	if err != nil {
		writeStoreErr(w, r, err)
		return
	}
	writeData(w, http.StatusOK, task)
}

func (tc *TaskController) deleteTask(w http.ResponseWriter, r *http.Request, id int64) {
	task, err := tc.store.Delete(r.Context(), actor(r), id)
	if err != nil {
		writeStoreErr(w, r, err)
		return
	}
	writeData(w, http.StatusOK, task)
}
