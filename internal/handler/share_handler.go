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

type ShareHandler struct {
	shareRepo *repository.ShareRepository
	userRepo  repository.UserRepositoryInterface
	resolver  *access.Resolver
}

func NewShareHandler(
	shareRepo *repository.ShareRepository,
	userRepo repository.UserRepositoryInterface,
	resolver *access.Resolver,
) *ShareHandler {
	return &ShareHandler{
		shareRepo: shareRepo,
		userRepo:  userRepo,
		resolver:  resolver,
	}
}

type GrantShareRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Permission string `json:"permission" binding:"required,oneof=view edit"`
}

type UpdateShareRequest struct {
	Permission string `json:"permission" binding:"required,oneof=view edit"`
}

type ShareResponse struct {
	ID         string `json:"id"`
	TaskListID string `json:"task_list_id"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Permission string `json:"permission"`
	CreatedAt  string `json:"created_at"`
}

func toShareResponse(share *model.Share) ShareResponse {
	return ShareResponse{
		ID:         share.ID.String(),
		TaskListID: share.TaskListID.String(),
		UserID:     share.UserID.String(),
		Email:      share.User.Email,
		Name:       share.User.Name,
		Permission: share.Permission,
		CreatedAt:  share.CreatedAt.Format(time.RFC3339),
	}
}

// requireOwner resolves the caller's tier on the list and rejects anything
// below owner. Every share operation is owner-gated before any other check.
func (h *ShareHandler) requireOwner(c *gin.Context, listID, userID uuid.UUID) bool {
	tier, _, err := h.resolver.Resolve(c.Request.Context(), listID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task list not found"})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve access"})
		return false
	}

	if tier != access.TierOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can manage sharing for this task list"})
		return false
	}

	return true
}

// getShareInList loads a share and verifies it belongs to the list in the
// request path.
func (h *ShareHandler) getShareInList(c *gin.Context, listID, shareID uuid.UUID) (*model.Share, bool) {
	share, err := h.shareRepo.GetByID(c.Request.Context(), shareID)
	if err != nil {
		if errors.Is(err, repository.ErrShareNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve share"})
		return nil, false
	}

	if share.TaskListID != listID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Share does not belong to this task list"})
		return nil, false
	}

	return share, true
}

// Grant shares a list with a registered user by email. Grants are not
// idempotent: re-granting an already shared pair is a conflict and the
// caller must update the existing share instead.
func (h *ShareHandler) Grant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "listId")
	if !ok {
		return
	}

	if !h.requireOwner(c, listID, userID) {
		return
	}

	var req GrantShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and a view or edit permission are required"})
		return
	}

	req.Email = strings.ToLower(req.Email)

	target, err := h.userRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}
	if target == nil {
		// Deliberately informative: the owner is told to have the invitee
		// register first.
		c.JSON(http.StatusNotFound, gin.H{"error": "User with this email is not registered"})
		return
	}

	if target.ID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot share a task list with yourself"})
		return
	}

	existing, err := h.shareRepo.FindByListAndUser(c.Request.Context(), listID, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing shares"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Task list is already shared with this user"})
		return
	}

	share := &model.Share{
		TaskListID: listID,
		UserID:     target.ID,
		Permission: req.Permission,
	}

	if err := h.shareRepo.Create(c.Request.Context(), share); err != nil {
		// A concurrent grant for the same pair loses at the unique
		// constraint and lands here.
		if errors.Is(err, repository.ErrShareExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Task list is already shared with this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to share task list"})
		return
	}

	share.User = *target
	c.JSON(http.StatusCreated, toShareResponse(share))
}

// List returns all shares for a list with the shared users embedded,
// newest-first.
func (h *ShareHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "listId")
	if !ok {
		return
	}

	if !h.requireOwner(c, listID, userID) {
		return
	}

	shares, err := h.shareRepo.GetByListID(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shares"})
		return
	}

	response := make([]ShareResponse, len(shares))
	for i, share := range shares {
		response[i] = toShareResponse(&share)
	}

	c.JSON(http.StatusOK, response)
}

// UpdatePermission changes the permission level of an existing share.
func (h *ShareHandler) UpdatePermission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "listId")
	if !ok {
		return
	}

	shareID, ok := pathUUID(c, "shareId")
	if !ok {
		return
	}

	if !h.requireOwner(c, listID, userID) {
		return
	}

	share, ok := h.getShareInList(c, listID, shareID)
	if !ok {
		return
	}

	var req UpdateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Permission must be view or edit"})
		return
	}

	share.Permission = req.Permission
	if err := h.shareRepo.Update(c.Request.Context(), share); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update share"})
		return
	}

	c.JSON(http.StatusOK, toShareResponse(share))
}

// Revoke deletes a share, removing the target user's access.
func (h *ShareHandler) Revoke(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "listId")
	if !ok {
		return
	}

	shareID, ok := pathUUID(c, "shareId")
	if !ok {
		return
	}

	if !h.requireOwner(c, listID, userID) {
		return
	}

	if _, ok := h.getShareInList(c, listID, shareID); !ok {
		return
	}

	if err := h.shareRepo.Delete(c.Request.Context(), shareID); err != nil {
		if errors.Is(err, repository.ErrShareNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke share"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share revoked successfully"})
}
