package server

import (
	"net/http"

	paymentdomain "github.com/fortuna-labs/fortuna/internal/payment/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreatePaymentIntent(c *gin.Context) {
	var req paymentdomain.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.paymentSvc.CreatePaymentIntent(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) GetPaymentConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publishableKey": s.paymentSvc.PublishableKey()})
}

func (s *Server) VerifyPayment(c *gin.Context) {
	success, err := s.paymentSvc.VerifyPaymentSuccess(c.Request.Context(), c.Param("paymentIntentId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": success})
}
