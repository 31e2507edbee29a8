package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poultrytrade/ledger_backend/models"
)

func ListExpenses(c *gin.Context) {
	start, end, ok := queryDateRange(c)
	if !ok {
		return
	}
	var category *models.ExpenseCategory
	if raw := c.Query("category"); raw != "" {
		cat := models.ExpenseCategory(raw)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense category"})
			return
		}
		category = &cat
	}
	expenses, err := models.FindExpenses(c.Request.Context(), start, end, category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func GetExpense(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	expense, err := models.GetExpense(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func CreateExpense(c *gin.Context) {
	var input models.NewExpense
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	expense, err := models.CreateExpense(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func UpdateExpense(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewExpense
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	expense, err := models.UpdateExpense(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func DeleteExpense(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := models.DeleteExpense(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
