package handlers

import (
	"net/http"

	"github.com/Ajayrajc1998/wedding/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type QuizRequest struct {
	Question      string `json:"question" binding:"required" example:"Where did the couple meet?"`
	OptionA       string `json:"option_a" binding:"required,max=500" example:"School"`
	OptionB       string `json:"option_b" binding:"required,max=500" example:"Work"`
	OptionC       string `json:"option_c" binding:"required,max=500" example:"A concert"`
	OptionD       string `json:"option_d" binding:"required,max=500" example:"Online"`
	CorrectOption string `json:"correct_option" binding:"required" example:"B"`
}

func (r QuizRequest) input() services.QuizInput {
	return services.QuizInput{
		Question:      r.Question,
		OptionA:       r.OptionA,
		OptionB:       r.OptionB,
		OptionC:       r.OptionC,
		OptionD:       r.OptionD,
		CorrectOption: r.CorrectOption,
	}
}

// CreateQuiz godoc
// @Summary      Create a quiz question
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuizRequest true "Question"
// @Success      200 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Router       /admin/quiz [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// ListQuizzes godoc
// @Summary      List quiz questions with answers
// @Tags         quiz
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Quiz
// @Router       /admin/quiz [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// ListVisibleQuizzes godoc
// @Summary      List quiz questions for guests
// @Description  Correct options are not included. Returns 403 while the quiz is hidden if listing is gated.
// @Tags         quiz
// @Produce      json
// @Success      200 {array} PublicQuiz
// @Failure      403 {object} ErrorResponse
// @Router       /quiz [get]
func (h *QuizHandler) ListVisibleQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListVisible(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary      Get a quiz question
// @Tags         quiz
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /admin/quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := parseID(c, "quiz")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// UpdateQuiz godoc
// @Summary      Update a quiz question
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Param        request body QuizRequest true "Question"
// @Success      200 {object} Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /admin/quiz/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id, ok := parseID(c, "quiz")
	if !ok {
		return
	}

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary      Delete a quiz question
// @Tags         quiz
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/quiz/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := parseID(c, "quiz")
	if !ok {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Quiz deleted successfully"})
}
