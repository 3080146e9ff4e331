package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	chatapp "github.com/tsvs/backend/internal/application/chat"
	"github.com/tsvs/backend/internal/infrastructure/realtime"
	"github.com/tsvs/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// chatUploadField is the multipart field carrying chat attachments
const chatUploadField = "files"

// ChatHandler serves chats, messages, uploads and the realtime feed
type ChatHandler struct {
	BaseHandler
	chatService    *chatapp.Service
	hub            *realtime.Hub
	originPatterns []string
	logger         *zap.Logger
}

// NewChatHandler creates a new ChatHandler.
// originPatterns restricts WebSocket upgrades to the listed hosts.
func NewChatHandler(chatService *chatapp.Service, hub *realtime.Hub, originPatterns []string, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		hub:            hub,
		originPatterns: originPatterns,
		logger:         logger,
	}
}

// RegisterRoutes mounts the REST chat routes on group
func (h *ChatHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/chats", h.CreateChat)
	group.GET("/chats", h.ListChats)
	group.POST("/chats/:id/messages", h.SendMessage)
	group.GET("/chats/:id/messages", h.ListMessages)
	group.PUT("/messages/:id", h.EditMessage)
	group.DELETE("/messages/:id", h.DeleteMessage)
	group.POST("/upload", h.Upload)
	group.GET("/users", h.ListUsers)
}

// CreateChat godoc
// @Summary      Create a chat room
// @Tags         chat
// @Security     BearerAuth
// @Router       /chat/chats [post]
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req chatapp.CreateChatInput
	if !h.bindJSON(c, &req) {
		return
	}
	chat, err := h.chatService.CreateChat(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, chat)
}

// ListChats godoc
// @Summary      List chat rooms
// @Tags         chat
// @Security     BearerAuth
// @Router       /chat/chats [get]
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chatService.ListChats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, chats)
}

// SendMessage godoc
// @Summary      Post a message as the authenticated user
// @Tags         chat
// @Security     BearerAuth
// @Router       /chat/chats/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	chatID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	senderID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req chatapp.SendMessageInput
	if !h.bindJSON(c, &req) {
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), chatID, senderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, msg)
}

// ListMessages godoc
// @Summary      Messages of a chat, oldest first
// @Tags         chat
// @Security     BearerAuth
// @Router       /chat/chats/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	chatID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	messages, err := h.chatService.ListMessages(c.Request.Context(), chatID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, messages)
}

// EditMessage godoc
// @Summary      Edit own message
// @Tags         chat
// @Security     BearerAuth
// @Router       /chat/messages/{id} [put]
func (h *ChatHandler) EditMessage(c *gin.Context) {
	messageID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req chatapp.EditMessageInput
	if !h.bindJSON(c, &req) {
		return
	}

	msg, err := h.chatService.EditMessage(c.Request.Context(), messageID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}

// DeleteMessage godoc
// @Summary      Delete own message
// @Tags         chat
// @Security     BearerAuth
// @Router       /chat/messages/{id} [delete]
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	messageID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.callerID(c)
	if !ok {
		return
	}

	if err := h.chatService.DeleteMessage(c.Request.Context(), messageID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Upload godoc
// @Summary      Upload chat attachments
// @Tags         chat
// @Accept       multipart/form-data
// @Param        files formData file true "One or more files"
// @Success      200 {object} dto.Response{data=chatapp.UploadResult}
// @Security     BearerAuth
// @Router       /chat/upload [post]
func (h *ChatHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.multipartError(c, err)
		return
	}
	headers := form.File[chatUploadField]
	if len(headers) == 0 {
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput, "No files uploaded")
		return
	}

	files := make([]chatapp.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.ErrorWithCode(c, dto.ErrCodeUploadFailed, "Failed to read "+fh.Filename)
			return
		}
		defer f.Close()
		files = append(files, chatapp.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	result, err := h.chatService.Upload(c.Request.Context(), files)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListUsers godoc
// @Summary      Recipient candidates
// @Tags         chat
// @Security     BearerAuth
// @Router       /chat/users [get]
func (h *ChatHandler) ListUsers(c *gin.Context) {
	users, err := h.chatService.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// Stream godoc
// @Summary      Realtime message feed over WebSocket
// @Tags         chat
// @Security     BearerAuth
// @Router       /chat/ws [get]
func (h *ChatHandler) Stream(c *gin.Context) {
	realtime.Serve(c.Writer, c.Request, h.hub, h.originPatterns, h.logger)
}

// multipartError answers a failed multipart parse, 413 when the body limit tripped
func (h *BaseHandler) multipartError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		h.ErrorWithCode(c, dto.ErrCodeFileTooLarge, "Uploaded file is too large")
		return
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		h.ErrorWithCode(c, dto.ErrCodeFileTooLarge, "Uploaded file is too large")
		return
	}
	h.ErrorWithCode(c, dto.ErrCodeInvalidInput, "Expected a multipart/form-data body")
}
