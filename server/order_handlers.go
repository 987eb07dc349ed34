package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/order"
)

func (s *Server) createOrder(c *gin.Context) {
	var input order.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	created, err := s.orders.Create(c.Request.Context(), currentUser(c).ID, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) myOrders(c *gin.Context) {
	orders, err := s.orders.ListByUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.orders.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	detail, err := s.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) payOrder(c *gin.Context) {
	updated, err := s.orders.Pay(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deliverOrder(c *gin.Context) {
	updated, err := s.orders.Deliver(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) setOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated, err := s.orders.SetStatus(c.Request.Context(), currentUser(c).ID, c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
