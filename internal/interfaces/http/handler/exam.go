package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	examapp "github.com/tsvs/backend/internal/application/exam"
)

// ExamHandler serves the question bank
type ExamHandler struct {
	BaseHandler
	categories *examapp.CategoryService
	types      *examapp.TypeSelectionService
	questions  *examapp.QuestionService
}

// NewExamHandler creates a new ExamHandler
func NewExamHandler(
	categories *examapp.CategoryService,
	types *examapp.TypeSelectionService,
	questions *examapp.QuestionService,
) *ExamHandler {
	return &ExamHandler{
		categories: categories,
		types:      types,
		questions:  questions,
	}
}

// RegisterRoutes mounts the exam routes on group
func (h *ExamHandler) RegisterRoutes(group *gin.RouterGroup) {
	categories := group.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	types := group.Group("/type-selections")
	{
		types.POST("", h.CreateTypeSelection)
		types.GET("", h.ListTypeSelections)
		types.GET("/:id", h.GetTypeSelection)
		types.PUT("/:id", h.UpdateTypeSelection)
		types.DELETE("/:id", h.DeleteTypeSelection)
	}

	questions := group.Group("/questions")
	{
		questions.POST("", h.CreateQuestion)
		questions.GET("", h.ListQuestions)
		questions.POST("/check", h.Check)
		questions.GET("/:id", h.GetQuestion)
		questions.PUT("/:id", h.UpdateQuestion)
		questions.DELETE("/:id", h.DeleteQuestion)

		questions.POST("/:id/answers", h.CreateAnswer)
		questions.GET("/:id/answers", h.ListAnswers)
		questions.PUT("/:id/answers/:answer_id", h.UpdateAnswer)
		questions.DELETE("/:id/answers/:answer_id", h.DeleteAnswer)
	}
}

// CreateCategory godoc
// @Summary      Create a question category
// @Tags         exam
// @Security     BearerAuth
// @Router       /exam/categories [post]
func (h *ExamHandler) CreateCategory(c *gin.Context) {
	var req examapp.TitleInput
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

func (h *ExamHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

func (h *ExamHandler) GetCategory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

func (h *ExamHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req examapp.TitleInput
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

func (h *ExamHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateTypeSelection godoc
// @Summary      Create a question type selection
// @Tags         exam
// @Security     BearerAuth
// @Router       /exam/type-selections [post]
func (h *ExamHandler) CreateTypeSelection(c *gin.Context) {
	var req examapp.TitleInput
	if !h.bindJSON(c, &req) {
		return
	}
	ts, err := h.types.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ts)
}

func (h *ExamHandler) ListTypeSelections(c *gin.Context) {
	types, err := h.types.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, types)
}

func (h *ExamHandler) GetTypeSelection(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	ts, err := h.types.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ts)
}

func (h *ExamHandler) UpdateTypeSelection(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req examapp.TitleInput
	if !h.bindJSON(c, &req) {
		return
	}
	ts, err := h.types.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ts)
}

func (h *ExamHandler) DeleteTypeSelection(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.types.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateQuestion godoc
// @Summary      Create a question with its answers
// @Tags         exam
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response{data=examapp.QuestionDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /exam/questions [post]
func (h *ExamHandler) CreateQuestion(c *gin.Context) {
	var req examapp.QuestionInput
	if !h.bindJSON(c, &req) {
		return
	}
	question, err := h.questions.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, question)
}

// ListQuestions godoc
// @Summary      List questions
// @Tags         exam
// @Param        category_id query string false "Category filter"
// @Param        type_selection_id query string false "Type selection filter"
// @Security     BearerAuth
// @Router       /exam/questions [get]
func (h *ExamHandler) ListQuestions(c *gin.Context) {
	var filter examapp.QuestionListFilter
	var ok bool
	if filter.CategoryID, ok = h.optionalUUIDQuery(c, "category_id"); !ok {
		return
	}
	if filter.TypeSelectionID, ok = h.optionalUUIDQuery(c, "type_selection_id"); !ok {
		return
	}

	questions, err := h.questions.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, questions)
}

func (h *ExamHandler) GetQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	question, err := h.questions.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, question)
}

// UpdateQuestion godoc
// @Summary      Replace a question and diff its answers
// @Tags         exam
// @Security     BearerAuth
// @Router       /exam/questions/{id} [put]
func (h *ExamHandler) UpdateQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req examapp.QuestionInput
	if !h.bindJSON(c, &req) {
		return
	}
	question, err := h.questions.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, question)
}

func (h *ExamHandler) DeleteQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.questions.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ExamHandler) CreateAnswer(c *gin.Context) {
	questionID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req examapp.SingleAnswerInput
	if !h.bindJSON(c, &req) {
		return
	}
	answer, err := h.questions.CreateAnswer(c.Request.Context(), questionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, answer)
}

func (h *ExamHandler) ListAnswers(c *gin.Context) {
	questionID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	answers, err := h.questions.ListAnswers(c.Request.Context(), questionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, answers)
}

func (h *ExamHandler) UpdateAnswer(c *gin.Context) {
	questionID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	answerID, ok := h.parseIDParam(c, "answer_id")
	if !ok {
		return
	}
	var req examapp.SingleAnswerInput
	if !h.bindJSON(c, &req) {
		return
	}
	answer, err := h.questions.UpdateAnswer(c.Request.Context(), questionID, answerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, answer)
}

func (h *ExamHandler) DeleteAnswer(c *gin.Context) {
	questionID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	answerID, ok := h.parseIDParam(c, "answer_id")
	if !ok {
		return
	}
	if err := h.questions.DeleteAnswer(c.Request.Context(), questionID, answerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Check godoc
// @Summary      Grade an attempt
// @Description  Body maps question IDs to the selected answer IDs
// @Tags         exam
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=examapp.CheckResult}
// @Security     BearerAuth
// @Router       /exam/questions/check [post]
func (h *ExamHandler) Check(c *gin.Context) {
	var req examapp.CheckInput
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.questions.Check(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// optionalUUIDQuery parses an optional UUID query parameter
func (h *ExamHandler) optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &id, true
}
