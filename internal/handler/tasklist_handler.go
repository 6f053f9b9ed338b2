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
)

type TaskListHandler struct {
	listRepo *repository.TaskListRepository
	resolver *access.Resolver
}

func NewTaskListHandler(listRepo *repository.TaskListRepository, resolver *access.Resolver) *TaskListHandler {
	return &TaskListHandler{
		listRepo: listRepo,
		resolver: resolver,
	}
}

type CreateTaskListRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

type UpdateTaskListRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

type TaskListResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	OwnerID   string          `json:"owner_id"`
	Tier      string          `json:"tier"`
	IsOwner   bool            `json:"is_owner"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
	Tasks     []TaskResponse  `json:"tasks,omitempty"`
	Shares    []ShareResponse `json:"shares,omitempty"`
}

func toTaskListResponse(list *model.TaskList, tier access.Tier) TaskListResponse {
	return TaskListResponse{
		ID:        list.ID.String(),
		Title:     list.Title,
		OwnerID:   list.OwnerID.String(),
		Tier:      tier.String(),
		IsOwner:   tier == access.TierOwner,
		CreatedAt: list.CreatedAt.Format(time.RFC3339),
		UpdatedAt: list.UpdatedAt.Format(time.RFC3339),
	}
}

// GetAll returns the union of lists the caller owns and lists shared to the
// caller, each annotated with the caller's tier. Holding the relation is the
// access grant, so no minimum tier applies here.
func (h *TaskListHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ownedLists, err := h.listRepo.GetOwned(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task lists"})
		return
	}

	sharedLists, err := h.listRepo.GetShared(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shared task lists"})
		return
	}

	owned := make([]TaskListResponse, len(ownedLists))
	for i, list := range ownedLists {
		owned[i] = toTaskListResponse(&list, access.TierOwner)
	}

	shared := make([]TaskListResponse, len(sharedLists))
	for i, item := range sharedLists {
		shared[i] = toTaskListResponse(&item.TaskList, access.TierFromPermission(item.Permission))
	}

	all := make([]TaskListResponse, 0, len(owned)+len(shared))
	all = append(all, owned...)
	all = append(all, shared...)

	c.JSON(http.StatusOK, gin.H{
		"owned":  owned,
		"shared": shared,
		"all":    all,
	})
}

// GetByID returns a single list with its tasks and shares embedded.
// Requires any tier above none.
func (h *TaskListHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tier, _, err := h.resolver.Resolve(c.Request.Context(), listID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve access"})
		return
	}

	if tier == access.TierNone {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this task list"})
		return
	}

	list, err := h.listRepo.GetByIDWithChildren(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task list"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task list not found"})
		return
	}

	response := toTaskListResponse(list, tier)

	response.Tasks = make([]TaskResponse, len(list.Tasks))
	for i, task := range list.Tasks {
		response.Tasks[i] = toTaskResponse(&task)
	}

	response.Shares = make([]ShareResponse, len(list.Shares))
	for i, share := range list.Shares {
		response.Shares[i] = toShareResponse(&share)
	}

	c.JSON(http.StatusOK, response)
}

// Create creates a new list owned by the caller.
func (h *TaskListHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required and must be at most 200 characters"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
		return
	}

	list := &model.TaskList{
		Title:   req.Title,
		OwnerID: userID,
	}

	if err := h.listRepo.Create(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task list"})
		return
	}

	c.JSON(http.StatusCreated, toTaskListResponse(list, access.TierOwner))
}

// Update renames a list. Requires exactly the owner tier; edit is not
// enough.
func (h *TaskListHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tier, list, err := h.resolver.Resolve(c.Request.Context(), listID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve access"})
		return
	}

	if tier != access.TierOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can update this task list"})
		return
	}

	var req UpdateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required and must be at most 200 characters"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
		return
	}

	list.Title = req.Title
	if err := h.listRepo.Update(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task list"})
		return
	}

	c.JSON(http.StatusOK, toTaskListResponse(list, tier))
}

// Delete removes a list together with all its tasks and shares. Owner only,
// no soft delete.
func (h *TaskListHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tier, _, err := h.resolver.Resolve(c.Request.Context(), listID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve access"})
		return
	}

	if tier != access.TierOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete this task list"})
		return
	}

	if err := h.listRepo.Delete(c.Request.Context(), listID); err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task list deleted successfully"})
}
