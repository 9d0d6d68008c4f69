package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habithive/habithive-api/internal/dto"
	apierrors "github.com/habithive/habithive-api/internal/errors"
	"github.com/habithive/habithive-api/internal/middleware"
	"github.com/habithive/habithive-api/internal/services"
)

// FriendHandler coordinates friend HTTP handlers.
type FriendHandler struct {
	friendService *services.FriendService
}

// NewFriendHandler creates a new FriendHandler
func NewFriendHandler(friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
	}
}

// SendRequest sends a friend request by friend code
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SendRequestRequest struct {
		FriendCode string `json:"friend_code" binding:"required"`
	}

	var req SendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	friendship, err := h.friendService.SendRequest(userID, req.FriendCode)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Friend request sent",
		"request_id": friendship.ID,
	})
}

// ListRequests returns pending requests addressed to the current user
func (h *FriendHandler) ListRequests(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	requests, err := h.friendService.ListPendingRequests(userID)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	items := make([]dto.FriendRequestDTO, len(requests))
	for i, r := range requests {
		items[i] = dto.ToFriendRequestDTO(r)
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": items,
	})
}

// AcceptRequest accepts a pending friend request
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID, requestID, ok := friendRequestIDs(c)
	if !ok {
		return
	}

	if _, err := h.friendService.Accept(requestID, userID); err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Friend request accepted",
	})
}

// DeclineRequest declines a pending friend request
func (h *FriendHandler) DeclineRequest(c *gin.Context) {
	userID, requestID, ok := friendRequestIDs(c)
	if !ok {
		return
	}

	if _, err := h.friendService.Decline(requestID, userID); err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Friend request declined",
	})
}

// ListFriends returns the current user's accepted friends
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	friendships, err := h.friendService.ListFriends(userID)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"friends": dto.ToFriendDTOs(friendships, userID),
	})
}

// Unfriend removes an accepted friendship
func (h *FriendHandler) Unfriend(c *gin.Context) {
	userID, friendshipID, ok := friendRequestIDs(c)
	if !ok {
		return
	}

	if err := h.friendService.Unfriend(friendshipID, userID); err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Friend removed",
	})
}

func friendRequestIDs(c *gin.Context) (userID, id uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, 0, false
	}

	return userID, id, true
}

func respondFriendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFriendCodeNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrFriendshipNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotRequestAddressee),
		errors.Is(err, services.ErrNotFriendshipMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrFriendshipExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotFriendSelf),
		errors.Is(err, services.ErrRequestNotPending),
		errors.Is(err, services.ErrFriendshipNotActive):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.ServiceUnavailable(c, "")
	}
}
