package handlers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Ajayrajc1998/wedding/internal/models"
	"github.com/Ajayrajc1998/wedding/internal/services"
	"github.com/Ajayrajc1998/wedding/internal/ws"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
	hub               *ws.Hub
}

func NewSubmissionHandler(submissionService *services.SubmissionService, hub *ws.Hub) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, hub: hub}
}

type SubmitQuizRequest struct {
	FirstName   string          `json:"first_name" binding:"required,max=100" example:"Ada"`
	LastName    string          `json:"last_name" binding:"required,max=100" example:"Lovelace"`
	PhoneNumber string          `json:"phone_number" binding:"required,max=32" example:"+15550100"`
	Answers     map[uint]string `json:"answers" binding:"required"`
}

// SubmitQuiz godoc
// @Summary      Submit quiz answers
// @Description  Scores every answer at once. An unknown quiz id rejects the whole submission.
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body SubmitQuizRequest true "Answers keyed by quiz id"
// @Success      200 {object} QuizParticipant
// @Failure      404 {object} ErrorResponse
// @Router       /quiz/submit [post]
func (h *SubmissionHandler) SubmitQuiz(c *gin.Context) {
	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.submissionService.Submit(c.Request.Context(), services.SubmissionInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Answers:     req.Answers,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(ws.WSMessage{Type: ws.EventQuizSubmitted, Data: result})
	c.JSON(http.StatusOK, result)
}

// ListResults godoc
// @Summary      List quiz results
// @Description  Best score first. format=csv downloads a spreadsheet.
// @Tags         quiz
// @Produce      json
// @Produce      text/csv
// @Security     BearerAuth
// @Param        format query string false "json (default) or csv"
// @Success      200 {array} QuizParticipant
// @Failure      401 {object} ErrorResponse
// @Router       /quiz_participants [get]
func (h *SubmissionHandler) ListResults(c *gin.Context) {
	results, err := h.submissionService.ListResults(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "csv":
		writeResultsCSV(c, results)
	case "json":
		c.JSON(http.StatusOK, results)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be json or csv"})
	}
}

func writeResultsCSV(c *gin.Context, results []models.QuizParticipant) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename=\"quiz_results.csv\"")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	rows := [][]string{{"rank", "first_name", "last_name", "phone_number", "total_marks", "answers", "submitted_at"}}
	for i, r := range results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			csvCell(r.FirstName),
			csvCell(r.LastName),
			csvCell(r.PhoneNumber),
			strconv.Itoa(r.TotalMarks),
			formatAnswers(r.SubmittedAnswers),
			r.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		_ = c.Error(err)
		slog.Error("csv export failed", "error", err)
	}
}

// csvCell stops spreadsheet apps from evaluating guest-supplied text as a
// formula.
func csvCell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// formatAnswers renders answers as "1:A;2:C" ordered by quiz id.
func formatAnswers(answers map[uint]string) string {
	ids := make([]uint, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d:%s", id, answers[id]))
	}
	return strings.Join(parts, ";")
}
