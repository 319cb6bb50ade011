package handler

import (
	"errors"
	"net/http"
	"strconv"

	"digital_market/internal/middleware"
	"digital_market/internal/service"
	"digital_market/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccountHandler struct {
	accountService service.AccountService
	log            logger.Logger
}

func NewAccountHandler(accountService service.AccountService, log logger.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		log:            log,
	}
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// Create принимает multipart/form-data: title, description, price и необязательный image.
func (h *AccountHandler) Create(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	input := service.CreateAccountInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Price:       price,
	}

	fileHeader, err := c.FormFile("image")
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			h.log.Error("Failed to open uploaded image", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
			return
		}
		defer file.Close()
		input.Image = file
	case errors.Is(err, http.ErrMissingFile):
		// без картинки
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), input, middleware.Actor(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.log.Info("Account listing created", "account_id", account.ID)
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account ID"})
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), id, middleware.Actor(c)); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
