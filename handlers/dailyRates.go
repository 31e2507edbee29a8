package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poultrytrade/ledger_backend/models"
)

func ListDailyRates(c *gin.Context) {
	start, end, ok := queryDateRange(c)
	if !ok {
		return
	}
	rates, err := models.FindDailyRatesByDateRange(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}

func GetDailyRate(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	rate, err := models.GetDailyRate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

func CreateDailyRate(c *gin.Context) {
	var input models.NewDailyRate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	rate, err := models.CreateDailyRate(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rate)
}

func UpdateDailyRate(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewDailyRate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	rate, err := models.UpdateDailyRate(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

func DeleteDailyRate(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := models.DeleteDailyRate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
