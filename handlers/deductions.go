package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poultrytrade/ledger_backend/models"
)

func ListDeductions(c *gin.Context) {
	start, end, ok := queryDateRange(c)
	if !ok {
		return
	}
	deductions, err := models.FindDeductionsByDateRange(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deductions)
}

func GetDeduction(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	deduction, err := models.GetCustomerDeduction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deduction)
}

func CreateDeduction(c *gin.Context) {
	var input models.NewCustomerDeduction
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	deduction, err := models.CreateCustomerDeduction(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deduction)
}

func UpdateDeduction(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewCustomerDeduction
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	deduction, err := models.UpdateCustomerDeduction(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deduction)
}

func DeleteDeduction(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := models.DeleteCustomerDeduction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
