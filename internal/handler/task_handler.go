package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"tasklist/internal/access"
	"tasklist/internal/model"
	"tasklist/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskRepo *repository.TaskRepository
	resolver *access.Resolver
}

func NewTaskHandler(taskRepo *repository.TaskRepository, resolver *access.Resolver) *TaskHandler {
	return &TaskHandler{
		taskRepo: taskRepo,
		resolver: resolver,
	}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
}

// UpdateTaskRequest carries partial update semantics: only fields present
// in the body change. An explicit empty description clears it; the title
// may never become empty.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	TaskListID  string `json:"task_list_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toTaskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		TaskListID:  task.TaskListID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}

// resolveListAccess resolves the caller's tier on the list in the request
// path and enforces the minimum. Writes the error response and returns
// ok=false when the operation must not proceed.
func (h *TaskHandler) resolveListAccess(c *gin.Context, listID, userID uuid.UUID, min access.Tier) (access.Tier, bool) {
	tier, _, err := h.resolver.Resolve(c.Request.Context(), listID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task list not found"})
			return access.TierNone, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve access"})
		return access.TierNone, false
	}

	if !tier.AtLeast(min) {
		if tier == access.TierNone {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this task list"})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify tasks on this task list"})
		}
		return tier, false
	}

	return tier, true
}

// getTaskInList loads the task and verifies its parent link matches the
// list in the request path, guarding against cross-list id confusion.
func (h *TaskHandler) getTaskInList(c *gin.Context, listID, taskID uuid.UUID) (*model.Task, bool) {
	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return nil, false
	}

	if task.TaskListID != listID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task does not belong to this task list"})
		return nil, false
	}

	return task, true
}

// List returns the tasks of a list newest-first, plus the caller's tier so
// the frontend can decide whether to render edit affordances.
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "listId")
	if !ok {
		return
	}

	tier, ok := h.resolveListAccess(c, listID, userID, access.TierView)
	if !ok {
		return
	}

	tasks, err := h.taskRepo.GetByListID(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = toTaskResponse(&task)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": response,
		"tier":  tier.String(),
	})
}

// Create adds a task to a list. Requires the edit or owner tier; a
// view-only caller gets 403. Status defaults to pending when omitted.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "listId")
	if !ok {
		return
	}

	if _, ok := h.resolveListAccess(c, listID, userID, access.TierEdit); !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task payload"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
		return
	}

	if req.Status == "" {
		req.Status = model.StatusPending
	}

	task := &model.Task{
		TaskListID:  listID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Update applies a partial update to a task. Omitted fields keep their
// prior values.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "listId")
	if !ok {
		return
	}

	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	if _, ok := h.resolveListAccess(c, listID, userID, access.TierEdit); !ok {
		return
	}

	task, ok := h.getTaskInList(c, listID, taskID)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task payload"})
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
			return
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// UpdateStatus changes only the status field. Used for quick status
// toggles from list views.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "listId")
	if !ok {
		return
	}

	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	if _, ok := h.resolveListAccess(c, listID, userID, access.TierEdit); !ok {
		return
	}

	task, ok := h.getTaskInList(c, listID, taskID)
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be one of pending, in_progress, completed"})
		return
	}

	task.Status = req.Status
	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task status"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete removes a task from a list.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "listId")
	if !ok {
		return
	}

	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	if _, ok := h.resolveListAccess(c, listID, userID, access.TierEdit); !ok {
		return
	}

	if _, ok := h.getTaskInList(c, listID, taskID); !ok {
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
